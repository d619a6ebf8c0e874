package wire

import (
	"event-marketplace/internal/adaptor"
	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"
	"event-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireNotification(r chi.Router, notificationHandler *adaptor.NotificationHandler, repo *repository.Repository, log *zap.Logger) {
	r.With(authenticated(repo, log)).Route("/api/notifications", func(r chi.Router) {
		r.Get("/", notificationHandler.ListOwn)
		r.Patch("/{id}/read", notificationHandler.MarkRead)

		r.With(middleware.RequireRole(log, entity.RoleAdmin)).Post("/", notificationHandler.Create)
	})
}

func wireAudit(r chi.Router, auditHandler *adaptor.AuditHandler, repo *repository.Repository, log *zap.Logger) {
	r.With(
		authenticated(repo, log),
		middleware.RequireRole(log, entity.RoleAdmin),
	).Route("/api/audit-logs", func(r chi.Router) {
		r.Get("/", auditHandler.List)
		r.Get("/{id}", auditHandler.Get)
	})
}
