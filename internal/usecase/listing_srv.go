package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
)

type ListingService interface {
	ListListings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ListingResponse], error)
	CreateListing(ctx context.Context, hostID uuid.UUID, req *request.ListingRequest) (*response.ListingResponse, error)
	GetListing(ctx context.Context, id string) (*response.ListingResponse, error)
	UpdateListing(ctx context.Context, id string, req *request.ListingRequest) (*response.ListingResponse, error)
	PatchListing(ctx context.Context, id string, req *request.PatchListingRequest) (*response.ListingResponse, error)
	DeleteListing(ctx context.Context, id string) error
}

type listingService struct {
	listings repository.ListingRepository
	cache    ListingCache
	log      *zap.Logger
	now      func() time.Time
}

func NewListingService(listings repository.ListingRepository, cache ListingCache, log *zap.Logger) ListingService {
	return &listingService{
		listings: listings,
		cache:    cache,
		log:      log.With(zap.String("service", "listing")),
		now:      time.Now,
	}
}

func (s *listingService) ListListings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ListingResponse], error) {
	listings, err := s.listings.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}

	total, err := s.listings.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count listings: %w", err)
	}

	items := make([]response.ListingResponse, len(listings))
	for i, listing := range listings {
		items[i] = response.ListingToResponse(listing)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *listingService) CreateListing(ctx context.Context, hostID uuid.UUID, req *request.ListingRequest) (*response.ListingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	price, err := normalizePrice(*req.PricePerNight)
	if err != nil {
		return nil, err
	}

	listing := &entity.Listing{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now(),
		},
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		PricePerNight: price,
		HostID:        hostID,
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}

	s.log.Info("Listing created",
		zap.String("listing_id", listing.ID.String()),
		zap.String("host_id", hostID.String()),
	)

	resp := response.ListingToResponse(listing)
	return &resp, nil
}

func (s *listingService) GetListing(ctx context.Context, id string) (*response.ListingResponse, error) {
	listing, err := s.findListing(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.ListingToResponse(listing)
	return &resp, nil
}

func (s *listingService) UpdateListing(ctx context.Context, id string, req *request.ListingRequest) (*response.ListingResponse, error) {
	listing, err := s.findListing(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validate(req); err != nil {
		return nil, err
	}

	price, err := normalizePrice(*req.PricePerNight)
	if err != nil {
		return nil, err
	}

	listing.Title = req.Title
	listing.Description = req.Description
	listing.Location = req.Location
	listing.PricePerNight = price

	return s.save(ctx, listing)
}

func (s *listingService) PatchListing(ctx context.Context, id string, req *request.PatchListingRequest) (*response.ListingResponse, error) {
	listing, err := s.findListing(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validate(req); err != nil {
		return nil, err
	}

	if req.Title != nil {
		listing.Title = *req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.Location != nil {
		listing.Location = *req.Location
	}
	if req.PricePerNight != nil {
		price, err := normalizePrice(*req.PricePerNight)
		if err != nil {
			return nil, err
		}
		listing.PricePerNight = price
	}

	return s.save(ctx, listing)
}

func (s *listingService) DeleteListing(ctx context.Context, id string) error {
	listingID, err := parseID("id", id)
	if err != nil {
		return err
	}

	if err := s.listings.Delete(ctx, listingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: listing %s", ErrNotFound, id)
		}
		return fmt.Errorf("delete listing: %w", err)
	}

	s.cache.Invalidate(ctx, listingID)
	return nil
}

func (s *listingService) save(ctx context.Context, listing *entity.Listing) (*response.ListingResponse, error) {
	if err := s.listings.Update(ctx, listing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: listing %s", ErrNotFound, listing.ID)
		}
		return nil, fmt.Errorf("update listing: %w", err)
	}

	s.cache.Invalidate(ctx, listing.ID)

	s.log.Info("Listing updated", zap.String("listing_id", listing.ID.String()))

	resp := response.ListingToResponse(listing)
	return &resp, nil
}

// findListing reads through the cache.
func (s *listingService) findListing(ctx context.Context, id string) (*entity.Listing, error) {
	listingID, err := parseID("id", id)
	if err != nil {
		return nil, err
	}

	if listing := s.cache.Get(ctx, listingID); listing != nil {
		return listing, nil
	}

	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("find listing: %w", err)
	}
	if listing == nil {
		return nil, fmt.Errorf("%w: listing %s", ErrNotFound, id)
	}

	s.cache.Set(ctx, listing)
	return listing, nil
}

// normalizePrice enforces the NUMERIC(10,2) column: non-negative, at most
// two decimal places and eight integer digits.
func normalizePrice(price decimal.Decimal) (decimal.Decimal, error) {
	const field = "price_per_night"

	if price.IsNegative() {
		return decimal.Zero, fieldError(field, "Ensure this value is greater than or equal to 0.")
	}
	rounded := price.Round(entity.PricePrecision)
	if !rounded.Equal(price) {
		return decimal.Zero, fieldError(field, "Ensure that there are no more than 2 decimal places.")
	}
	if rounded.GreaterThanOrEqual(entity.MaxPrice) {
		return decimal.Zero, fieldError(field, "Ensure that there are no more than 8 digits before the decimal point.")
	}
	return rounded, nil
}
