package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/gateway"
	"travel-booking/pkg/metrics"
	"travel-booking/pkg/queue"
	"travel-booking/pkg/telemetry"
	"travel-booking/pkg/utils"
)

const (
	MsgPaymentInitiated = "Payment initiated successfully"
	MsgPaymentVerified  = "Payment verified and status updated"

	defaultFirstName = "Guest"
)

//go:generate mockgen -source=payment_srv.go -destination=mock_payment_srv.go -package=usecase
type PaymentService interface {
	// InitiatePayment opens a gateway checkout for the booking's total price
	// and records the payment as Pending.
	InitiatePayment(ctx context.Context, bookingID string) (*response.InitiatePaymentResponse, error)

	// VerifyPayment asks the gateway for the transaction outcome and stores it.
	// Entering Completed enqueues one confirmation email.
	VerifyPayment(ctx context.Context, req *request.VerifyPaymentRequest) (*response.VerifyPaymentResponse, error)

	ListPayments(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error)
	GetPayment(ctx context.Context, id string) (*response.PaymentResponse, error)
}

type paymentService struct {
	repo     *repository.Repository
	gateway  PaymentGateway
	notifier PaymentNotifier
	config   utils.GatewayConfig
	log      *zap.Logger
}

func NewPaymentService(
	repo *repository.Repository,
	gw PaymentGateway,
	notifier PaymentNotifier,
	config utils.GatewayConfig,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		repo:     repo,
		gateway:  gw,
		notifier: notifier,
		config:   config,
		log:      log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) InitiatePayment(ctx context.Context, bookingID string) (*response.InitiatePaymentResponse, error) {
	id, err := parseID("id", bookingID)
	if err != nil {
		return nil, err
	}

	// 1. Booking and its guest
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}

	user, err := s.repo.User.FindByID(ctx, booking.UserID)
	if err != nil {
		return nil, fmt.Errorf("find booking user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, booking.UserID)
	}

	// 2. Open the checkout
	amount := booking.TotalPrice()
	txRef := entity.BookingTxRef(booking.ID)

	firstName := user.FirstName
	if firstName == "" {
		firstName = defaultFirstName
	}

	result, err := s.gateway.Initialize(ctx, &gateway.InitializeRequest{
		Amount:      amount.StringFixed(entity.PricePrecision),
		Currency:    s.config.Currency,
		Email:       user.Email,
		FirstName:   firstName,
		LastName:    user.LastName,
		TxRef:       txRef,
		CallbackURL: s.config.CallbackURL,
		ReturnURL:   s.config.ReturnURL,
		Customization: gateway.Customization{
			Title:       "Booking Payment",
			Description: fmt.Sprintf("Payment for booking %s", booking.ID),
		},
	})
	if err != nil {
		metrics.RecordPaymentInitiated("gateway_error")
		s.log.Error("Gateway initialize failed",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("trace_id", telemetry.TraceID(ctx)),
		)
		return nil, fmt.Errorf("%w: initialize %s: %v", ErrGateway, txRef, err)
	}

	transactionID := result.TxRef
	if transactionID == "" {
		transactionID = txRef
	}

	// 3. Record as Pending, replacing any earlier attempt for this booking
	payment := &entity.Payment{
		BookingID:     booking.ID,
		TransactionID: transactionID,
		Amount:        amount,
		Status:        entity.PaymentStatusPending,
	}
	if err := s.repo.Payment.Upsert(ctx, payment); err != nil {
		metrics.RecordPaymentInitiated("store_error")
		return nil, fmt.Errorf("store payment: %w", err)
	}

	metrics.RecordPaymentInitiated("ok")
	s.log.Info("Payment initiated",
		zap.String("booking_id", bookingID),
		zap.String("transaction_id", transactionID),
		zap.String("amount", payment.Amount.StringFixed(entity.PricePrecision)),
	)

	return &response.InitiatePaymentResponse{
		PaymentURL:    result.CheckoutURL,
		TransactionID: transactionID,
		Message:       MsgPaymentInitiated,
	}, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, req *request.VerifyPaymentRequest) (*response.VerifyPaymentResponse, error) {
	transactionID := strings.TrimSpace(req.TransactionID)
	if transactionID == "" {
		return nil, fieldError("transaction_id", "Transaction ID is required")
	}

	// 1. Unknown transactions never reach the gateway
	existing, err := s.repo.Payment.FindByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: payment %s", ErrNotFound, transactionID)
	}

	// 2. Ask the gateway
	result, err := s.gateway.Verify(ctx, transactionID)
	if err != nil {
		metrics.RecordPaymentVerified("gateway_error")
		s.log.Error("Gateway verify failed",
			zap.Error(err),
			zap.String("transaction_id", transactionID),
			zap.String("trace_id", telemetry.TraceID(ctx)),
		)
		return nil, fmt.Errorf("%w: verify %s: %v", ErrGateway, transactionID, err)
	}

	status := entity.PaymentStatusFailed
	if result.Succeeded() {
		status = entity.PaymentStatusCompleted
	}

	// 3. Store the outcome; previous status is read under the same row lock
	payment, previous, err := s.repo.Payment.TransitionStatus(ctx, transactionID, status)
	if err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}
	if payment == nil {
		return nil, fmt.Errorf("%w: payment %s", ErrNotFound, transactionID)
	}

	metrics.RecordPaymentVerified(string(status))
	s.log.Info("Payment verified",
		zap.String("transaction_id", transactionID),
		zap.String("previous_status", string(previous)),
		zap.String("status", string(status)),
	)

	// 4. Notify once per transition into Completed
	if entity.EntersCompleted(previous, status) {
		s.notifyConfirmed(ctx, payment)
	}

	return &response.VerifyPaymentResponse{
		TransactionID: payment.TransactionID,
		Status:        payment.Status,
		Amount:        payment.Amount.StringFixed(entity.PricePrecision),
		Message:       MsgPaymentVerified,
	}, nil
}

func (s *paymentService) ListPayments(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error) {
	payments, err := s.repo.Payment.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	total, err := s.repo.Payment.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}

	items := make([]response.PaymentResponse, len(payments))
	for i, payment := range payments {
		items[i] = response.PaymentToResponse(payment)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *paymentService) GetPayment(ctx context.Context, id string) (*response.PaymentResponse, error) {
	paymentID, err := parseID("id", id)
	if err != nil {
		return nil, err
	}

	payment, err := s.repo.Payment.FindByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if payment == nil {
		return nil, fmt.Errorf("%w: payment %s", ErrNotFound, id)
	}

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

// notifyConfirmed enqueues the confirmation email. Failures are logged and
// counted; the verification itself has already been committed.
func (s *paymentService) notifyConfirmed(ctx context.Context, payment *entity.Payment) {
	log := s.log.With(
		zap.String("transaction_id", payment.TransactionID),
		zap.String("booking_id", payment.BookingID.String()),
	)

	booking, err := s.repo.Booking.FindByID(ctx, payment.BookingID)
	if err != nil || booking == nil {
		metrics.RecordNotification("enqueue", "failed")
		log.Error("Cannot notify: booking lookup failed", zap.Error(err))
		return
	}

	user, err := s.repo.User.FindByID(ctx, booking.UserID)
	if err != nil || user == nil {
		metrics.RecordNotification("enqueue", "failed")
		log.Error("Cannot notify: user lookup failed", zap.Error(err))
		return
	}

	err = s.notifier.EnqueuePaymentConfirmation(ctx, queue.PaymentConfirmationTask{
		UserEmail:     user.Email,
		BookingID:     payment.BookingID,
		TransactionID: payment.TransactionID,
		Amount:        payment.Amount,
	})
	if err != nil {
		metrics.RecordNotification("enqueue", "failed")
		log.Error("Failed to enqueue payment confirmation", zap.Error(err))
		return
	}

	metrics.RecordNotification("enqueue", "ok")
}
