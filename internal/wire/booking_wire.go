package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/bookings", bookingHandler.ListBookings)
	r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/bookings - guest is the authenticated user
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		r.Put("/api/bookings/{id}", bookingHandler.UpdateBooking)
		r.Patch("/api/bookings/{id}", bookingHandler.PatchBooking)
		r.Delete("/api/bookings/{id}", bookingHandler.DeleteBooking)
	})
}
