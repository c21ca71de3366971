package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonesrussell/onboarding/internal/logger"
)

// schemaStatements are the CREATE TABLE statements applied at startup.
// All use IF NOT EXISTS so the bootstrap can run on every start without
// touching existing data; destructive changes go through cmd/migrate.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id UUID PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		department TEXT,
		start_date DATE,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS documents (
		id UUID PRIMARY KEY,
		employee_id UUID NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		doc_type TEXT NOT NULL,
		file_name TEXT NOT NULL,
		content_type TEXT NOT NULL,
		size_bytes BIGINT NOT NULL,
		storage_path TEXT NOT NULL,
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS onboarding_tasks (
		id UUID PRIMARY KEY,
		employee_id UUID NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		sequence INT NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_employee_id ON documents(employee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_onboarding_tasks_employee_id ON onboarding_tasks(employee_id)`,
}

// CreateSchema creates any missing tables and indexes. It must complete
// before the server starts accepting requests.
func (d *DB) CreateSchema(ctx context.Context) error {
	if err := createSchema(ctx, d.db); err != nil {
		return err
	}

	d.logger.Info("Database schema ensured",
		logger.Int("statements", len(schemaStatements)),
	)
	return nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
