package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type ListingResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	PricePerNight string    `json:"price_per_night"`
	HostID        string    `json:"host_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func ListingToResponse(listing *entity.Listing) ListingResponse {
	return ListingResponse{
		ID:            listing.ID.String(),
		Title:         listing.Title,
		Description:   listing.Description,
		Location:      listing.Location,
		PricePerNight: listing.PricePerNight.StringFixed(entity.PricePrecision),
		HostID:        listing.HostID.String(),
		CreatedAt:     listing.CreatedAt,
	}
}
