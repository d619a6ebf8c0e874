package wire

import (
	"event-marketplace/internal/adaptor"
	"event-marketplace/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireBooking configures booking routes. Visibility and transitions are
// decided per role inside the booking service.
func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, repo *repository.Repository, log *zap.Logger) {
	r.With(authenticated(repo, log)).Route("/api/bookings", func(r chi.Router) {
		r.Post("/", bookingHandler.Create)
		r.Get("/", bookingHandler.List) // GET /api/bookings?status=pending&page=1
		r.Get("/{id}", bookingHandler.Get)
		update(r, "/{id}", bookingHandler.Update)
	})
}
