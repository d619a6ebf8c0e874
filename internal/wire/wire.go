// internal/wire/wire.go
package wire

import (
	"net/http"

	"event-marketplace/internal/adaptor"
	"event-marketplace/internal/audit"
	"event-marketplace/internal/data/repository"
	"event-marketplace/internal/usecase"
	"event-marketplace/pkg/metrics"
	"event-marketplace/pkg/middleware"
	"event-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes on top of the repositories.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	recorder audit.Recorder,
	m *metrics.Metrics,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, recorder, m, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, m, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	m *metrics.Metrics,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	if config.Metrics.Enabled {
		r.Use(middleware.Metrics(m))
	}

	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, repo, logger)
	wireVendor(r, handler, repo, logger)
	wireCatalog(r, handler.Catalog, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)
	wirePayment(r, handler.Payment, handler.Payout, repo, logger)
	wireReview(r, handler.Review, repo, logger)
	wireNotification(r, handler.Notification, repo, logger)
	wireAudit(r, handler.Audit, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if config.Metrics.Enabled {
		r.Handle(config.Metrics.Path, promhttp.Handler())
	}

	return r
}

// update registers an update handler. PUT is canonical; PATCH stays as an
// alias since every update body is partial.
func update(r chi.Router, pattern string, h http.HandlerFunc) {
	r.Put(pattern, h)
	r.Patch(pattern, h)
}

// authenticated resolves the bearer session into the request context.
func authenticated(repo *repository.Repository, log *zap.Logger) func(http.Handler) http.Handler {
	return middleware.AuthSession(repo.Session, repo.User, log)
}
