package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricePrecision is the number of fractional digits stored for money.
const PricePrecision = 2

// MaxPrice is the exclusive upper bound of a NUMERIC(10,2) column.
var MaxPrice = decimal.New(1, 8)

type Listing struct {
	BaseSimple
	Title         string          `db:"title"`
	Description   string          `db:"description"`
	Location      string          `db:"location"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	HostID        uuid.UUID       `db:"host_id"`
}
