package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/utils"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PAYMENT ACTIONS (flat JSON bodies) ====================
	// POST /api/bookings/{id}/initiate-payment - open a gateway checkout
	r.Post("/api/bookings/{id}/initiate-payment", paymentHandler.InitiatePayment)

	// POST /api/bookings/verify-payment - gateway callback and manual check
	r.Post("/api/bookings/verify-payment", paymentHandler.VerifyPayment)

	// ==================== READ-ONLY VIEWS ====================
	r.Get("/api/payments", paymentHandler.ListPayments)
	r.Get("/api/payments/{id}", paymentHandler.GetPayment)
}
