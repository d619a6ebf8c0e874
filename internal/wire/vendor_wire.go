package wire

import (
	"event-marketplace/internal/adaptor"
	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"
	"event-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireVendor configures vendor profiles, packages and the vendor-scoped
// catalog routes. Reads are public.
func wireVendor(r chi.Router, handler *adaptor.Handler, repo *repository.Repository, log *zap.Logger) {
	vendor, catalog := handler.Vendor, handler.Catalog

	r.Route("/api/vendors", func(r chi.Router) {
		r.Get("/", vendor.List)
		r.Get("/{id}", vendor.Get)
		r.Get("/{id}/rating", handler.Review.VendorRating)

		r.Group(func(r chi.Router) {
			r.Use(authenticated(repo, log))
			r.Use(middleware.RequireRole(log, entity.RoleVendor, entity.RoleAdmin))

			r.Post("/", vendor.Onboard)
			update(r, "/{id}", vendor.Update)
			r.Post("/{id}/packages", vendor.AddPackage)
			r.Post("/{id}/services", catalog.CreateService)
			r.Post("/{id}/media", catalog.AddMedia)
			r.Post("/{id}/availability", catalog.AddAvailability)
		})

		r.With(
			authenticated(repo, log),
			middleware.RequireRole(log, entity.RoleAdmin),
		).Post("/bulk", vendor.BulkOnboard)
	})

	r.Route("/api/packages", func(r chi.Router) {
		r.Get("/", vendor.ListPackages)
		update(r.With(
			authenticated(repo, log),
			middleware.RequireRole(log, entity.RoleVendor, entity.RoleAdmin),
		), "/{id}", vendor.UpdatePackage)
	})
}
