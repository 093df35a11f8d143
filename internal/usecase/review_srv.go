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
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID uuid.UUID, listingID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetListingReviews(ctx context.Context, listingID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetListingReviewStats(ctx context.Context, listingID string) (*response.ListingReviewStats, error)
	// DeleteReview removes a review; only its author may do so.
	DeleteReview(ctx context.Context, reviewID string, userID uuid.UUID) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
		now:  time.Now,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID uuid.UUID, listingID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	listingUUID, err := parseID("listing_id", listingID)
	if err != nil {
		return nil, err
	}

	if err := validate(req); err != nil {
		return nil, err
	}

	listing, err := s.repo.Listing.FindByID(ctx, listingUUID)
	if err != nil {
		return nil, fmt.Errorf("find listing: %w", err)
	}
	if listing == nil {
		return nil, fmt.Errorf("%w: listing %s", ErrNotFound, listingID)
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now(),
		},
		UserID:    userID,
		ListingID: listingUUID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	// one review per user and listing, enforced by the unique constraint
	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: user already reviewed this listing", ErrConflict)
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("listing_id", listingID),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review, s.username(ctx, userID))
	return &resp, nil
}

func (s *reviewService) GetListingReviews(ctx context.Context, listingID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	listingUUID, err := parseID("listing_id", listingID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByListingID(ctx, listingUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get listing reviews: %w", err)
	}

	total, err := s.repo.Review.CountByListingID(ctx, listingUUID)
	if err != nil {
		return nil, fmt.Errorf("count listing reviews: %w", err)
	}

	usernames := make(map[uuid.UUID]string)
	items := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		name, ok := usernames[review.UserID]
		if !ok {
			name = s.username(ctx, review.UserID)
			usernames[review.UserID] = name
		}
		items[i] = response.ReviewToResponse(review, name)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *reviewService) GetListingReviewStats(ctx context.Context, listingID string) (*response.ListingReviewStats, error) {
	listingUUID, err := parseID("listing_id", listingID)
	if err != nil {
		return nil, err
	}

	avgRating, reviewCount, err := s.repo.Review.GetListingReviewStats(ctx, listingUUID)
	if err != nil {
		return nil, fmt.Errorf("get listing review stats: %w", err)
	}

	return &response.ListingReviewStats{
		AverageRating: avgRating,
		ReviewCount:   reviewCount,
	}, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string, userID uuid.UUID) error {
	reviewUUID, err := parseID("id", reviewID)
	if err != nil {
		return err
	}

	review, err := s.repo.Review.FindByID(ctx, reviewUUID)
	if err != nil {
		return fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return fmt.Errorf("%w: review %s", ErrNotFound, reviewID)
	}

	if review.UserID != userID {
		return fmt.Errorf("%w: review belongs to another user", ErrForbidden)
	}

	if err := s.repo.Review.Delete(ctx, reviewUUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: review %s", ErrNotFound, reviewID)
		}
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID.String()),
	)

	return nil
}

func (s *reviewService) username(ctx context.Context, userID uuid.UUID) string {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil || user == nil {
		return ""
	}
	return user.Username
}
