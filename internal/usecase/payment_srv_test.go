package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/gateway"
	"travel-booking/pkg/queue"
	"travel-booking/pkg/utils"
)

type paymentMocks struct {
	bookings *repository.MockBookingRepository
	users    *repository.MockUserRepository
	payments *repository.MockPaymentRepository
	gateway  *usecase.MockPaymentGateway
	notifier *usecase.MockPaymentNotifier
}

func newPaymentService(t *testing.T) (usecase.PaymentService, paymentMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := paymentMocks{
		bookings: repository.NewMockBookingRepository(ctrl),
		users:    repository.NewMockUserRepository(ctrl),
		payments: repository.NewMockPaymentRepository(ctrl),
		gateway:  usecase.NewMockPaymentGateway(ctrl),
		notifier: usecase.NewMockPaymentNotifier(ctrl),
	}

	repo := &repository.Repository{
		Booking: m.bookings,
		User:    m.users,
		Payment: m.payments,
	}

	config := utils.GatewayConfig{
		Currency:    "ETB",
		CallbackURL: "http://localhost:8000/api/bookings/verify-payment/",
		ReturnURL:   "http://localhost:3000/payment-success",
	}

	return usecase.NewPaymentService(repo, m.gateway, m.notifier, config, zaptest.NewLogger(t)), m
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleBooking(userID uuid.UUID) *entity.Booking {
	return &entity.Booking{
		BaseSimple:   entity.BaseSimple{ID: uuid.New()},
		ListingID:    uuid.New(),
		UserID:       userID,
		CheckIn:      day(2024, 1, 1),
		CheckOut:     day(2024, 1, 4),
		Guests:       2,
		Status:       entity.BookingStatusPending,
		ListingPrice: decimal.RequireFromString("100.00"),
	}
}

func sampleUser() *entity.User {
	return &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "guest",
		Email:    "guest@example.com",
	}
}

func TestPaymentService_InitiatePayment(t *testing.T) {
	user := sampleUser()
	booking := sampleBooking(user.ID)
	txRef := "booking-" + booking.ID.String()

	tests := []struct {
		name      string
		bookingID string
		setupMock func(m paymentMocks)
		wantErr   error
		wantTxID  string
	}{
		{
			name:      "Success",
			bookingID: booking.ID.String(),
			setupMock: func(m paymentMocks) {
				m.bookings.EXPECT().FindByID(gomock.Any(), booking.ID).Return(booking, nil)
				m.users.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
				m.gateway.EXPECT().
					Initialize(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req *gateway.InitializeRequest) (*gateway.InitializeResult, error) {
						assert.Equal(t, "300.00", req.Amount)
						assert.Equal(t, "ETB", req.Currency)
						assert.Equal(t, "guest@example.com", req.Email)
						assert.Equal(t, "Guest", req.FirstName)
						assert.Equal(t, "", req.LastName)
						assert.Equal(t, txRef, req.TxRef)
						assert.Equal(t, "http://localhost:8000/api/bookings/verify-payment/", req.CallbackURL)
						assert.Equal(t, "http://localhost:3000/payment-success", req.ReturnURL)
						assert.Equal(t, "Booking Payment", req.Customization.Title)
						assert.Equal(t, "Payment for booking "+booking.ID.String(), req.Customization.Description)
						return &gateway.InitializeResult{CheckoutURL: "https://checkout.chapa.co/x", TxRef: txRef}, nil
					})
				m.payments.EXPECT().
					Upsert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *entity.Payment) error {
						assert.Equal(t, booking.ID, p.BookingID)
						assert.Equal(t, txRef, p.TransactionID)
						assert.Equal(t, entity.PaymentStatusPending, p.Status)
						assert.True(t, p.Amount.Equal(decimal.RequireFromString("300")))
						return nil
					})
			},
			wantTxID: txRef,
		},
		{
			name:      "GatewayOmitsTxRef",
			bookingID: booking.ID.String(),
			setupMock: func(m paymentMocks) {
				m.bookings.EXPECT().FindByID(gomock.Any(), booking.ID).Return(booking, nil)
				m.users.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
				m.gateway.EXPECT().Initialize(gomock.Any(), gomock.Any()).
					Return(&gateway.InitializeResult{CheckoutURL: "https://checkout.chapa.co/x"}, nil)
				m.payments.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantTxID: txRef,
		},
		{
			name:      "GatewayFailure",
			bookingID: booking.ID.String(),
			setupMock: func(m paymentMocks) {
				m.bookings.EXPECT().FindByID(gomock.Any(), booking.ID).Return(booking, nil)
				m.users.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
				m.gateway.EXPECT().Initialize(gomock.Any(), gomock.Any()).
					Return(nil, gateway.ErrGateway)
			},
			wantErr: usecase.ErrGateway,
		},
		{
			name:      "BookingNotFound",
			bookingID: booking.ID.String(),
			setupMock: func(m paymentMocks) {
				m.bookings.EXPECT().FindByID(gomock.Any(), booking.ID).Return(nil, nil)
			},
			wantErr: usecase.ErrNotFound,
		},
		{
			name:      "InvalidID",
			bookingID: "not-a-uuid",
			wantErr:   usecase.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newPaymentService(t)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			got, err := svc.InitiatePayment(context.Background(), tt.bookingID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "https://checkout.chapa.co/x", got.PaymentURL)
			assert.Equal(t, tt.wantTxID, got.TransactionID)
			assert.Equal(t, usecase.MsgPaymentInitiated, got.Message)
		})
	}
}

func TestPaymentService_VerifyPayment(t *testing.T) {
	user := sampleUser()
	booking := sampleBooking(user.ID)
	txRef := "booking-" + booking.ID.String()

	paymentWith := func(status entity.PaymentStatus) *entity.Payment {
		return &entity.Payment{
			Base:          entity.Base{ID: uuid.New()},
			BookingID:     booking.ID,
			TransactionID: txRef,
			Amount:        decimal.RequireFromString("300"),
			Status:        status,
		}
	}

	tests := []struct {
		name       string
		txID       string
		setupMock  func(m paymentMocks)
		wantErr    error
		wantStatus entity.PaymentStatus
	}{
		{
			name:    "MissingTransactionID",
			txID:    "  ",
			wantErr: usecase.ErrValidation,
		},
		{
			name: "UnknownTransactionSkipsGateway",
			txID: "booking-unknown",
			setupMock: func(m paymentMocks) {
				m.payments.EXPECT().FindByTransactionID(gomock.Any(), "booking-unknown").Return(nil, nil)
			},
			wantErr: usecase.ErrNotFound,
		},
		{
			name: "GatewayFailure",
			txID: txRef,
			setupMock: func(m paymentMocks) {
				m.payments.EXPECT().FindByTransactionID(gomock.Any(), txRef).Return(paymentWith(entity.PaymentStatusPending), nil)
				m.gateway.EXPECT().Verify(gomock.Any(), txRef).Return(nil, gateway.ErrGateway)
			},
			wantErr: usecase.ErrGateway,
		},
		{
			name: "CompletedEnqueuesOnce",
			txID: txRef,
			setupMock: func(m paymentMocks) {
				m.payments.EXPECT().FindByTransactionID(gomock.Any(), txRef).Return(paymentWith(entity.PaymentStatusPending), nil)
				m.gateway.EXPECT().Verify(gomock.Any(), txRef).Return(&gateway.VerifyResult{TxRef: txRef, Status: "success"}, nil)
				m.payments.EXPECT().TransitionStatus(gomock.Any(), txRef, entity.PaymentStatusCompleted).
					Return(paymentWith(entity.PaymentStatusCompleted), entity.PaymentStatusPending, nil)
				m.bookings.EXPECT().FindByID(gomock.Any(), booking.ID).Return(booking, nil)
				m.users.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
				m.notifier.EXPECT().
					EnqueuePaymentConfirmation(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, task queue.PaymentConfirmationTask) error {
						assert.Equal(t, "guest@example.com", task.UserEmail)
						assert.Equal(t, booking.ID, task.BookingID)
						assert.Equal(t, txRef, task.TransactionID)
						return nil
					}).
					Times(1)
			},
			wantStatus: entity.PaymentStatusCompleted,
		},
		{
			name: "AlreadyCompletedDoesNotNotify",
			txID: txRef,
			setupMock: func(m paymentMocks) {
				m.payments.EXPECT().FindByTransactionID(gomock.Any(), txRef).Return(paymentWith(entity.PaymentStatusCompleted), nil)
				m.gateway.EXPECT().Verify(gomock.Any(), txRef).Return(&gateway.VerifyResult{Status: "success"}, nil)
				m.payments.EXPECT().TransitionStatus(gomock.Any(), txRef, entity.PaymentStatusCompleted).
					Return(paymentWith(entity.PaymentStatusCompleted), entity.PaymentStatusCompleted, nil)
			},
			wantStatus: entity.PaymentStatusCompleted,
		},
		{
			name: "NonSuccessMarksFailed",
			txID: txRef,
			setupMock: func(m paymentMocks) {
				m.payments.EXPECT().FindByTransactionID(gomock.Any(), txRef).Return(paymentWith(entity.PaymentStatusPending), nil)
				m.gateway.EXPECT().Verify(gomock.Any(), txRef).Return(&gateway.VerifyResult{Status: "pending"}, nil)
				m.payments.EXPECT().TransitionStatus(gomock.Any(), txRef, entity.PaymentStatusFailed).
					Return(paymentWith(entity.PaymentStatusFailed), entity.PaymentStatusPending, nil)
			},
			wantStatus: entity.PaymentStatusFailed,
		},
		{
			name: "EnqueueFailureStillSucceeds",
			txID: txRef,
			setupMock: func(m paymentMocks) {
				m.payments.EXPECT().FindByTransactionID(gomock.Any(), txRef).Return(paymentWith(entity.PaymentStatusFailed), nil)
				m.gateway.EXPECT().Verify(gomock.Any(), txRef).Return(&gateway.VerifyResult{Status: "success"}, nil)
				m.payments.EXPECT().TransitionStatus(gomock.Any(), txRef, entity.PaymentStatusCompleted).
					Return(paymentWith(entity.PaymentStatusCompleted), entity.PaymentStatusFailed, nil)
				m.bookings.EXPECT().FindByID(gomock.Any(), booking.ID).Return(booking, nil)
				m.users.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
				m.notifier.EXPECT().EnqueuePaymentConfirmation(gomock.Any(), gomock.Any()).
					Return(errors.New("kafka: client has run out of available brokers"))
			},
			wantStatus: entity.PaymentStatusCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newPaymentService(t)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			got, err := svc.VerifyPayment(context.Background(), &request.VerifyPaymentRequest{TransactionID: tt.txID})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, txRef, got.TransactionID)
			assert.Equal(t, "300.00", got.Amount)
			assert.Equal(t, usecase.MsgPaymentVerified, got.Message)
		})
	}
}
