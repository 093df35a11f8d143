package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"
)

const (
	msgTransactionIDRequired = "Transaction ID is required"
	msgBookingNotFound       = "Booking not found"
	msgPaymentNotFound       = "Payment not found"
	msgInitiateFailed        = "Failed to initiate payment"
	msgVerifyFailed          = "Failed to verify payment"
)

// PaymentHandler serves the two payment actions with flat JSON bodies and
// the read-only payment views with the standard envelope.
type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// InitiatePayment handles POST /api/bookings/{id}/initiate-payment
func (h *PaymentHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	resp, err := h.service.InitiatePayment(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrValidation):
			h.log.Warn("Initiate payment rejected", zap.Error(err))
			utils.ResponseError(w, http.StatusBadRequest, "Invalid booking ID")
		case errors.Is(err, usecase.ErrNotFound):
			h.log.Warn("Initiate payment failed - not found", zap.Error(err))
			utils.ResponseError(w, http.StatusNotFound, msgBookingNotFound)
		case errors.Is(err, usecase.ErrGateway):
			h.log.Error("Initiate payment failed - gateway", zap.Error(err))
			utils.ResponseError(w, http.StatusBadGateway, msgInitiateFailed)
		default:
			h.log.Error("Failed to initiate payment", zap.Error(err), zap.String("booking_id", bookingID))
			utils.ResponseError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.ResponseRaw(w, http.StatusOK, resp)
}

// VerifyPayment handles POST /api/bookings/verify-payment
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseError(w, http.StatusBadRequest, msgTransactionIDRequired)
		return
	}

	resp, err := h.service.VerifyPayment(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrValidation):
			utils.ResponseError(w, http.StatusBadRequest, msgTransactionIDRequired)
		case errors.Is(err, usecase.ErrNotFound):
			h.log.Warn("Verify payment failed - not found", zap.Error(err))
			utils.ResponseError(w, http.StatusNotFound, msgPaymentNotFound)
		case errors.Is(err, usecase.ErrGateway):
			h.log.Error("Verify payment failed - gateway", zap.Error(err))
			utils.ResponseError(w, http.StatusBadGateway, msgVerifyFailed)
		default:
			h.log.Error("Failed to verify payment", zap.Error(err), zap.String("transaction_id", req.TransactionID))
			utils.ResponseError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.ResponseRaw(w, http.StatusOK, resp)
}

// ListPayments handles GET /api/payments
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListPayments(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list payments")
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}

// GetPayment handles GET /api/payments/{id}
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.service.GetPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get payment")
		return
	}

	utils.ResponseSuccess(w, "success", payment)
}
