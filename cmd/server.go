package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"event-marketplace/internal/data/repository"

	"go.uber.org/zap"
)

const janitorInterval = time.Hour

// APIServer serves handler until ctx is cancelled, then shuts down
// gracefully within timeout.
func APIServer(ctx context.Context, handler http.Handler, port string, timeout time.Duration, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server", zap.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// SessionJanitor periodically purges expired sessions until ctx is done.
func SessionJanitor(ctx context.Context, sessions repository.SessionRepository, log *zap.Logger) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := sessions.CleanExpiredSessions(ctx)
			if err != nil {
				log.Error("Failed to clean expired sessions", zap.Error(err))
				continue
			}
			if removed > 0 {
				log.Info("Expired sessions removed", zap.Int64("count", removed))
			}
		}
	}
}
