package bootstrap

import (
	"context"
	"fmt"

	"github.com/jonesrussell/onboarding/internal/config"
	"github.com/jonesrussell/onboarding/internal/database"
	"github.com/jonesrussell/onboarding/internal/logger"
)

// SetupDatabase connects to PostgreSQL and ensures the schema exists before
// the server starts accepting requests.
func SetupDatabase(ctx context.Context, cfg *config.Config, log logger.Logger) (*database.DB, error) {
	db, err := database.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}

	if err := db.CreateSchema(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Failed to close database", logger.Error(closeErr))
		}
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
