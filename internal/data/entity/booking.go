package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	BaseSimple
	ListingID uuid.UUID     `db:"listing_id"`
	UserID    uuid.UUID     `db:"user_id"`
	CheckIn   time.Time     `db:"check_in"`
	CheckOut  time.Time     `db:"check_out"`
	Guests    int           `db:"guests"`
	Status    BookingStatus `db:"booking_status"`

	// ListingPrice is joined from listings.price_per_night on read.
	ListingPrice decimal.Decimal `db:"price_per_night"`
}

// Nights is the number of whole days between check-in and check-out.
// It is zero or negative when check-out does not follow check-in.
func (b *Booking) Nights() int64 {
	in := time.Date(b.CheckIn.Year(), b.CheckIn.Month(), b.CheckIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(b.CheckOut.Year(), b.CheckOut.Month(), b.CheckOut.Day(), 0, 0, 0, 0, time.UTC)
	return int64(out.Sub(in) / (24 * time.Hour))
}

// TotalPrice is nights times the listing's nightly price. It is derived on
// demand and never stored.
func (b *Booking) TotalPrice() decimal.Decimal {
	return decimal.NewFromInt(b.Nights()).Mul(b.ListingPrice)
}
