package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	ListingID uuid.UUID `db:"listing_id"`
	Rating    int       `db:"rating"` // 1-5
	Comment   string    `db:"comment"`
}
