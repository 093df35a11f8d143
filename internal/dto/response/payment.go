package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type PaymentResponse struct {
	ID            string               `json:"id"`
	BookingID     string               `json:"booking_id"`
	TransactionID string               `json:"transaction_id"`
	Amount        string               `json:"amount"`
	Status        entity.PaymentStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// InitiatePaymentResponse is written without the standard envelope.
type InitiatePaymentResponse struct {
	PaymentURL    string `json:"payment_url"`
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
}

// VerifyPaymentResponse is written without the standard envelope.
type VerifyPaymentResponse struct {
	TransactionID string               `json:"transaction_id"`
	Status        entity.PaymentStatus `json:"status"`
	Amount        string               `json:"amount"`
	Message       string               `json:"message"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID.String(),
		BookingID:     payment.BookingID.String(),
		TransactionID: payment.TransactionID,
		Amount:        payment.Amount.StringFixed(entity.PricePrecision),
		Status:        payment.Status,
		CreatedAt:     payment.CreatedAt,
		UpdatedAt:     payment.UpdatedAt,
	}
}
