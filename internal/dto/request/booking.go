package request

// BookingRequest is used by both create and full update. An empty status
// means pending on create and unchanged on update.
type BookingRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid4"`
	CheckIn   string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut  string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests    int    `json:"guests" validate:"required,min=1"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled"`
}

type PatchBookingRequest struct {
	ListingID *string `json:"listing_id,omitempty" validate:"omitempty,uuid4"`
	CheckIn   *string `json:"check_in,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CheckOut  *string `json:"check_out,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Guests    *int    `json:"guests,omitempty" validate:"omitempty,min=1"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled"`
}
