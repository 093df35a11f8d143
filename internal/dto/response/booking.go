package response

import (
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/utils"
)

type BookingResponse struct {
	ID         string               `json:"id"`
	ListingID  string               `json:"listing_id"`
	UserID     string               `json:"user_id"`
	CheckIn    string               `json:"check_in"`
	CheckOut   string               `json:"check_out"`
	Guests     int                  `json:"guests"`
	Status     entity.BookingStatus `json:"status"`
	TotalPrice string               `json:"total_price"`
	CreatedAt  time.Time            `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:         booking.ID.String(),
		ListingID:  booking.ListingID.String(),
		UserID:     booking.UserID.String(),
		CheckIn:    booking.CheckIn.Format(utils.DateLayout),
		CheckOut:   booking.CheckOut.Format(utils.DateLayout),
		Guests:     booking.Guests,
		Status:     booking.Status,
		TotalPrice: booking.TotalPrice().StringFixed(entity.PricePrecision),
		CreatedAt:  booking.CreatedAt,
	}
}
