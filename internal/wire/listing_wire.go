package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"
)

func wireListing(
	r chi.Router,
	listingHandler *adaptor.ListingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/listings", listingHandler.ListListings)

	// GET /api/listings/{id} - served through the listing cache
	r.Get("/api/listings/{id}", listingHandler.GetListing)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/listings - host is the authenticated user
		r.Post("/api/listings", listingHandler.CreateListing)

		r.Put("/api/listings/{id}", listingHandler.UpdateListing)
		r.Patch("/api/listings/{id}", listingHandler.PatchListing)
		r.Delete("/api/listings/{id}", listingHandler.DeleteListing)
	})
}
