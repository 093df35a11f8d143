package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"travel-booking/internal/data/entity"
)

func TestListingKey(t *testing.T) {
	id := uuid.MustParse("0b9b5e0e-8a55-4d2b-9d8e-6b4d7f9b1c2a")
	assert.Equal(t, "listing:0b9b5e0e-8a55-4d2b-9d8e-6b4d7f9b1c2a", listingKey(id))
}

func TestListingCache_WithoutRedis(t *testing.T) {
	c := NewListingCache(nil, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	listing := &entity.Listing{
		BaseSimple:    entity.BaseSimple{ID: uuid.New()},
		Title:         "Lake house",
		PricePerNight: decimal.RequireFromString("99.50"),
	}

	assert.NotPanics(t, func() {
		c.Set(ctx, listing)
		c.Invalidate(ctx, listing.ID)
	})
	assert.Nil(t, c.Get(ctx, listing.ID))

	var nilCache *ListingCache
	assert.Nil(t, nilCache.Get(ctx, listing.ID))
}
