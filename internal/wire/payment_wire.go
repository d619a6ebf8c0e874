package wire

import (
	"event-marketplace/internal/adaptor"
	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"
	"event-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	payoutHandler *adaptor.PayoutHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.With(authenticated(repo, log)).Route("/api/payments", func(r chi.Router) {
		r.Post("/", paymentHandler.Create)
		r.Get("/{id}", paymentHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(log, entity.RoleAdmin))
			r.Get("/", paymentHandler.List)
			update(r, "/{id}", paymentHandler.Update)
			r.Post("/{id}/refund", paymentHandler.Refund)
		})
	})

	r.With(authenticated(repo, log)).Route("/api/payouts", func(r chi.Router) {
		// Vendors see their own payouts
		r.Get("/", payoutHandler.List)
		r.Get("/{id}", payoutHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(log, entity.RoleAdmin))
			r.Post("/", payoutHandler.Create)
			update(r, "/{id}", payoutHandler.Update)
		})
	})
}
