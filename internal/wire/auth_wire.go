package wire

import (
	"event-marketplace/internal/adaptor"
	"event-marketplace/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, repo *repository.Repository, log *zap.Logger) {
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)

	r.With(authenticated(repo, log)).Post("/api/logout", authHandler.Logout)
}
