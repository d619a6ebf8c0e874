package wire

import (
	"event-marketplace/internal/adaptor"
	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"
	"event-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler, repo *repository.Repository, log *zap.Logger) {
	r.Route("/api/reviews", func(r chi.Router) {
		r.Get("/", reviewHandler.List)
		r.Get("/{id}", reviewHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticated(repo, log))
			r.Use(middleware.RequireRole(log, entity.RoleCustomer, entity.RoleAdmin))

			r.Post("/", reviewHandler.Create)
			update(r, "/{id}", reviewHandler.Update)
		})
	})
}
