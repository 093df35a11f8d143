package entity

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
)

type Payment struct {
	Base
	BookingID     uuid.UUID       `db:"booking_id"`
	TransactionID string          `db:"transaction_id"`
	Amount        decimal.Decimal `db:"amount"`
	Status        PaymentStatus   `db:"status"`
}

// BookingTxRef derives the gateway transaction reference for a booking.
func BookingTxRef(bookingID uuid.UUID) string {
	return fmt.Sprintf("booking-%s", bookingID)
}

// EntersCompleted reports whether moving from previous to next is a
// transition into Completed.
func EntersCompleted(previous, next PaymentStatus) bool {
	return next == PaymentStatusCompleted && previous != PaymentStatusCompleted
}
