package request

import "github.com/shopspring/decimal"

// ListingRequest is used by both create and full update.
type ListingRequest struct {
	Title         string           `json:"title" validate:"required,max=255"`
	Description   string           `json:"description" validate:"required"`
	Location      string           `json:"location" validate:"required,max=255"`
	PricePerNight *decimal.Decimal `json:"price_per_night" validate:"required"`
}

type PatchListingRequest struct {
	Title         *string          `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description   *string          `json:"description,omitempty" validate:"omitempty,min=1"`
	Location      *string          `json:"location,omitempty" validate:"omitempty,min=1,max=255"`
	PricePerNight *decimal.Decimal `json:"price_per_night,omitempty"`
}
