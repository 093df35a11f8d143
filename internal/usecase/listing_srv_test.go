package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
)

func newListingService(t *testing.T) (usecase.ListingService, *repository.MockListingRepository, *usecase.MockListingCache) {
	t.Helper()
	ctrl := gomock.NewController(t)

	listings := repository.NewMockListingRepository(ctrl)
	cache := usecase.NewMockListingCache(ctrl)

	return usecase.NewListingService(listings, cache, zaptest.NewLogger(t)), listings, cache
}

func price(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func TestListingService_CreateListing(t *testing.T) {
	hostID := uuid.New()

	tests := []struct {
		name      string
		req       request.ListingRequest
		setupMock func(listings *repository.MockListingRepository)
		wantErr   error
		wantField string
		wantPrice string
	}{
		{
			name: "Success",
			req: request.ListingRequest{
				Title:         "Lakeside cabin",
				Description:   "Two rooms by the water",
				Location:      "Bishoftu",
				PricePerNight: price("120.5"),
			},
			setupMock: func(listings *repository.MockListingRepository) {
				listings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantPrice: "120.50",
		},
		{
			name: "MissingTitle",
			req: request.ListingRequest{
				Description:   "Two rooms by the water",
				Location:      "Bishoftu",
				PricePerNight: price("120"),
			},
			wantErr:   usecase.ErrValidation,
			wantField: "title",
		},
		{
			name: "MissingPrice",
			req: request.ListingRequest{
				Title:       "Lakeside cabin",
				Description: "Two rooms by the water",
				Location:    "Bishoftu",
			},
			wantErr:   usecase.ErrValidation,
			wantField: "price_per_night",
		},
		{
			name: "NegativePrice",
			req: request.ListingRequest{
				Title:         "Lakeside cabin",
				Description:   "Two rooms by the water",
				Location:      "Bishoftu",
				PricePerNight: price("-1"),
			},
			wantErr:   usecase.ErrValidation,
			wantField: "price_per_night",
		},
		{
			name: "TooManyDecimals",
			req: request.ListingRequest{
				Title:         "Lakeside cabin",
				Description:   "Two rooms by the water",
				Location:      "Bishoftu",
				PricePerNight: price("10.005"),
			},
			wantErr:   usecase.ErrValidation,
			wantField: "price_per_night",
		},
		{
			name: "TooManyDigits",
			req: request.ListingRequest{
				Title:         "Lakeside cabin",
				Description:   "Two rooms by the water",
				Location:      "Bishoftu",
				PricePerNight: price("100000000"),
			},
			wantErr:   usecase.ErrValidation,
			wantField: "price_per_night",
		},
		{
			name: "LargestAllowedPrice",
			req: request.ListingRequest{
				Title:         "Lakeside cabin",
				Description:   "Two rooms by the water",
				Location:      "Bishoftu",
				PricePerNight: price("99999999.99"),
			},
			setupMock: func(listings *repository.MockListingRepository) {
				listings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantPrice: "99999999.99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, listings, _ := newListingService(t)
			if tt.setupMock != nil {
				tt.setupMock(listings)
			}

			got, err := svc.CreateListing(context.Background(), hostID, &tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				var verr *usecase.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, tt.wantField)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPrice, got.PricePerNight)
			assert.Equal(t, hostID.String(), got.HostID)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestListingService_GetListing(t *testing.T) {
	listing := &entity.Listing{
		BaseSimple:    entity.BaseSimple{ID: uuid.New()},
		Title:         "Loft",
		PricePerNight: decimal.RequireFromString("80"),
	}

	t.Run("CacheHit", func(t *testing.T) {
		svc, _, cache := newListingService(t)
		cache.EXPECT().Get(gomock.Any(), listing.ID).Return(listing)

		got, err := svc.GetListing(context.Background(), listing.ID.String())

		require.NoError(t, err)
		assert.Equal(t, "Loft", got.Title)
	})

	t.Run("CacheMissFillsCache", func(t *testing.T) {
		svc, listings, cache := newListingService(t)
		gomock.InOrder(
			cache.EXPECT().Get(gomock.Any(), listing.ID).Return(nil),
			listings.EXPECT().FindByID(gomock.Any(), listing.ID).Return(listing, nil),
			cache.EXPECT().Set(gomock.Any(), listing),
		)

		got, err := svc.GetListing(context.Background(), listing.ID.String())

		require.NoError(t, err)
		assert.Equal(t, "80.00", got.PricePerNight)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, listings, cache := newListingService(t)
		cache.EXPECT().Get(gomock.Any(), listing.ID).Return(nil)
		listings.EXPECT().FindByID(gomock.Any(), listing.ID).Return(nil, nil)

		_, err := svc.GetListing(context.Background(), listing.ID.String())

		assert.ErrorIs(t, err, usecase.ErrNotFound)
	})

	t.Run("InvalidID", func(t *testing.T) {
		svc, _, _ := newListingService(t)

		_, err := svc.GetListing(context.Background(), "42")

		assert.ErrorIs(t, err, usecase.ErrValidation)
	})
}

func TestListingService_PatchListing(t *testing.T) {
	id := uuid.New()
	stored := func() *entity.Listing {
		return &entity.Listing{
			BaseSimple:    entity.BaseSimple{ID: id},
			Title:         "Loft",
			Description:   "Top floor",
			Location:      "Addis Ababa",
			PricePerNight: decimal.RequireFromString("80"),
		}
	}
	newTitle := "Penthouse"

	svc, listings, cache := newListingService(t)
	cache.EXPECT().Get(gomock.Any(), id).Return(nil)
	listings.EXPECT().FindByID(gomock.Any(), id).Return(stored(), nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any())
	listings.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *entity.Listing) error {
			assert.Equal(t, "Penthouse", l.Title)
			assert.Equal(t, "Top floor", l.Description)
			assert.True(t, l.PricePerNight.Equal(decimal.RequireFromString("95.5")))
			return nil
		})
	cache.EXPECT().Invalidate(gomock.Any(), id)

	got, err := svc.PatchListing(context.Background(), id.String(), &request.PatchListingRequest{
		Title:         &newTitle,
		PricePerNight: price("95.50"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Penthouse", got.Title)
	assert.Equal(t, "95.50", got.PricePerNight)
}

func TestListingService_DeleteListing(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc, listings, cache := newListingService(t)
		listings.EXPECT().Delete(gomock.Any(), id).Return(nil)
		cache.EXPECT().Invalidate(gomock.Any(), id)

		assert.NoError(t, svc.DeleteListing(context.Background(), id.String()))
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, listings, _ := newListingService(t)
		listings.EXPECT().Delete(gomock.Any(), id).
			Return(fmt.Errorf("listing %s: %w", id, repository.ErrNotFound))

		err := svc.DeleteListing(context.Background(), id.String())

		assert.ErrorIs(t, err, usecase.ErrNotFound)
	})
}
