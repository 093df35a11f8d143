package usecase

import (
	"go.uber.org/zap"

	"travel-booking/internal/data/repository"
	"travel-booking/pkg/utils"
)

type Service struct {
	Auth    AuthService
	Listing ListingService
	Booking BookingService
	Payment PaymentService
	Review  ReviewService
}

func NewService(
	repo *repository.Repository,
	gw PaymentGateway,
	notifier PaymentNotifier,
	listingCache ListingCache,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Listing: NewListingService(repo.Listing, listingCache, log),
		Booking: NewBookingService(repo, log),
		Payment: NewPaymentService(repo, gw, notifier, config.Gateway, log),
		Review:  NewReviewService(repo, log),
	}
}
