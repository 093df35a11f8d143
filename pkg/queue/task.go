package queue

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentConfirmationTask asks the worker to email a payment receipt.
type PaymentConfirmationTask struct {
	UserEmail     string          `json:"user_email"`
	BookingID     uuid.UUID       `json:"booking_id"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	EnqueuedAt    time.Time       `json:"enqueued_at"`
}
