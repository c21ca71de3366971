// Package bootstrap handles application initialization and lifecycle
// management for the onboarding service.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jonesrussell/onboarding/internal/logger"
)

// Start initializes and runs the onboarding application until shutdown.
func Start() error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Configuration loaded",
		logger.String("environment", cfg.App.Environment),
		logger.Bool("debug", cfg.App.Debug),
	)

	// Phase 2: Setup database and ensure the schema exists
	db, err := SetupDatabase(context.Background(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Failed to close database", logger.Error(closeErr))
		}
	}()

	// Phase 3: Setup event publisher (optional)
	publisher := SetupEventPublisher(cfg, log)

	// Phase 4: Setup and run HTTP server
	server := SetupHTTPServer(cfg, db, publisher, log)

	log.Info("Starting HTTP server",
		logger.String("host", cfg.Server.Host),
		logger.Int("port", cfg.Server.Port),
	)

	if runErr := RunServer(context.Background(), cfg, server, log); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}
