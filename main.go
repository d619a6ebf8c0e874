// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"event-marketplace/cmd"
	"event-marketplace/internal/audit"
	"event-marketplace/internal/data/repository"
	"event-marketplace/internal/wire"
	"event-marketplace/pkg/database"
	"event-marketplace/pkg/metrics"
	"event-marketplace/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const auditQueueSize = 256

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database, config.App.Name)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	var m *metrics.Metrics
	if config.Metrics.Enabled {
		m = metrics.New(config.App.Name, prometheus.DefaultRegisterer)
	}

	dispatcher := audit.NewDispatcher(repos.AuditLog, logger, auditQueueSize)
	defer func() {
		drainCtx, cancel := context.WithTimeout(context.Background(), config.App.ShutdownTimeout)
		defer cancel()
		if err := dispatcher.Close(drainCtx); err != nil {
			logger.Warn("Audit queue not fully drained", zap.Error(err))
		}
	}()

	go cmd.SessionJanitor(ctx, repos.Session, logger)

	app := wire.Wiring(repos, config, dispatcher, m, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}

	logger.Info("Application stopped")
}
