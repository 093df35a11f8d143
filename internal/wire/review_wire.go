package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/listings/{id}/reviews - View listing reviews
	r.Get("/api/listings/{id}/reviews", reviewHandler.GetListingReviews)

	// GET /api/listings/{id}/review-stats - Average rating and count
	r.Get("/api/listings/{id}/review-stats", reviewHandler.GetListingReviewStats)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/listings/{id}/reviews - one review per user and listing
		r.Post("/api/listings/{id}/reviews", reviewHandler.CreateReview)

		// DELETE /api/reviews/{id} - author only
		r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)
	})
}
