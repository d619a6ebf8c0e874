package wire

import (
	"event-marketplace/internal/adaptor"
	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"
	"event-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures profile and user management routes
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, repo *repository.Repository, log *zap.Logger) {
	r.With(authenticated(repo, log)).Get("/api/user/profile", userHandler.GetProfile)

	r.With(authenticated(repo, log)).Route("/api/users", func(r chi.Router) {
		// Owner or admin, decided per user
		r.Get("/{id}", userHandler.Get)
		update(r, "/{id}", userHandler.Update)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(log, entity.RoleAdmin))
			r.Post("/", userHandler.Create)
			r.Get("/", userHandler.List)                      // GET /api/users?role=vendor&page=1&per_page=10
			r.Patch("/{id}/status", userHandler.UpdateStatus) // active | suspended
			r.Delete("/{id}", userHandler.Delete)
		})
	})
}
