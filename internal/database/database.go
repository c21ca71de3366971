// Package database manages the PostgreSQL connection pool and the startup
// schema bootstrap for the onboarding service.
package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" //nolint:blankimports // PostgreSQL driver

	"github.com/jonesrussell/onboarding/internal/config"
	"github.com/jonesrussell/onboarding/internal/logger"
)

// DB wraps the sql.DB pool with the service logger.
type DB struct {
	db     *sql.DB
	logger logger.Logger
}

// New opens a connection pool using the configured DSN, applies the pool
// settings, and verifies connectivity with a ping bounded by the configured
// pool timeout.
func New(cfg *config.Config, log logger.Logger) (*DB, error) {
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns())
	db.SetMaxIdleConns(cfg.Database.PoolSize)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.PoolTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	log.Info("Database connection established",
		logger.Int("max_open_conns", cfg.Database.MaxOpenConns()),
		logger.Int("max_idle_conns", cfg.Database.PoolSize),
	)

	return &DB{
		db:     db,
		logger: log,
	}, nil
}

// Close releases the connection pool.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// DB returns the underlying sql.DB.
func (d *DB) DB() *sql.DB {
	return d.db
}

// Ping verifies the connection is still alive.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}
