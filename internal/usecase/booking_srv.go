package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/utils"
)

type BookingService interface {
	ListBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.BookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, id string) (*response.BookingResponse, error)
	UpdateBooking(ctx context.Context, id string, req *request.BookingRequest) (*response.BookingResponse, error)
	PatchBooking(ctx context.Context, id string, req *request.PatchBookingRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, id string) error
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
		now:  time.Now,
	}
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		items[i] = response.BookingToResponse(booking)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.BookingRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now(),
		},
		UserID: userID,
		Status: entity.BookingStatusPending,
	}
	if err := s.apply(ctx, booking, req); err != nil {
		return nil, err
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("listing_id", booking.ListingID.String()),
		zap.String("user_id", userID.String()),
		zap.Int64("nights", booking.Nights()),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, id string, req *request.BookingRequest) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validate(req); err != nil {
		return nil, err
	}
	if err := s.apply(ctx, booking, req); err != nil {
		return nil, err
	}

	return s.save(ctx, booking)
}

func (s *bookingService) PatchBooking(ctx context.Context, id string, req *request.PatchBookingRequest) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validate(req); err != nil {
		return nil, err
	}

	full := request.BookingRequest{
		ListingID: booking.ListingID.String(),
		CheckIn:   booking.CheckIn.Format(utils.DateLayout),
		CheckOut:  booking.CheckOut.Format(utils.DateLayout),
		Guests:    booking.Guests,
	}
	if req.ListingID != nil {
		full.ListingID = *req.ListingID
	}
	if req.CheckIn != nil {
		full.CheckIn = *req.CheckIn
	}
	if req.CheckOut != nil {
		full.CheckOut = *req.CheckOut
	}
	if req.Guests != nil {
		full.Guests = *req.Guests
	}
	if req.Status != nil {
		full.Status = *req.Status
	}

	if err := s.apply(ctx, booking, &full); err != nil {
		return nil, err
	}

	return s.save(ctx, booking)
}

func (s *bookingService) DeleteBooking(ctx context.Context, id string) error {
	bookingID, err := parseID("id", id)
	if err != nil {
		return err
	}

	if err := s.repo.Booking.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: booking %s", ErrNotFound, id)
		}
		return fmt.Errorf("delete booking: %w", err)
	}

	return nil
}

// apply copies a validated request onto booking. The listing is loaded only
// when it changes, which also refreshes the nightly price used for totals.
func (s *bookingService) apply(ctx context.Context, booking *entity.Booking, req *request.BookingRequest) error {
	listingID, err := parseID("listing_id", req.ListingID)
	if err != nil {
		return err
	}
	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		return fieldError("check_in", "Must be a date in 2006-01-02 format")
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		return fieldError("check_out", "Must be a date in 2006-01-02 format")
	}

	if listingID != booking.ListingID {
		listing, err := s.repo.Listing.FindByID(ctx, listingID)
		if err != nil {
			return fmt.Errorf("find listing: %w", err)
		}
		if listing == nil {
			return fmt.Errorf("%w: listing %s", ErrNotFound, listingID)
		}
		booking.ListingID = listing.ID
		booking.ListingPrice = listing.PricePerNight
	}

	booking.CheckIn = checkIn
	booking.CheckOut = checkOut
	booking.Guests = req.Guests
	if req.Status != "" {
		booking.Status = entity.BookingStatus(req.Status)
	}

	return nil
}

func (s *bookingService) save(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: booking %s", ErrNotFound, booking.ID)
		}
		return nil, fmt.Errorf("update booking: %w", err)
	}

	s.log.Info("Booking updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(booking.Status)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) findBooking(ctx context.Context, id string) (*entity.Booking, error) {
	bookingID, err := parseID("id", id)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, id)
	}

	return booking, nil
}
