package wire

import (
	"event-marketplace/internal/adaptor"
	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"
	"event-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler, repo *repository.Repository, log *zap.Logger) {
	vendorOnly := func(r chi.Router) chi.Router {
		return r.With(
			authenticated(repo, log),
			middleware.RequireRole(log, entity.RoleVendor, entity.RoleAdmin),
		)
	}

	r.Route("/api/services", func(r chi.Router) {
		r.Get("/", catalogHandler.ListServices)
		r.Get("/{id}", catalogHandler.GetService)
		update(vendorOnly(r), "/{id}", catalogHandler.UpdateService)
	})

	r.Route("/api/media", func(r chi.Router) {
		r.Get("/", catalogHandler.ListMedia)
		vendorOnly(r).Delete("/{id}", catalogHandler.DeleteMedia)
	})

	r.Route("/api/availability", func(r chi.Router) {
		r.Get("/", catalogHandler.ListAvailability)
		vendorOnly(r).Delete("/{id}", catalogHandler.DeleteAvailability)
	})
}
