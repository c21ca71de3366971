package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateSchema_ExecutesAllStatements(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	for range schemaStatements {
		mock.ExpectExec("CREATE (TABLE|INDEX) IF NOT EXISTS").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	if err := createSchema(context.Background(), db); err != nil {
		t.Fatalf("createSchema() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateSchema_Repeatable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	// Two full passes; every statement is IF NOT EXISTS so a re-run is a
	// no-op server-side and must not error client-side.
	for range 2 {
		for range schemaStatements {
			mock.ExpectExec("CREATE (TABLE|INDEX) IF NOT EXISTS").
				WillReturnResult(sqlmock.NewResult(0, 0))
		}
	}

	ctx := context.Background()
	if err := createSchema(ctx, db); err != nil {
		t.Fatalf("first createSchema() error = %v", err)
	}
	if err := createSchema(ctx, db); err != nil {
		t.Fatalf("second createSchema() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateSchema_OnlyIdempotentStatements(t *testing.T) {
	for i, stmt := range schemaStatements {
		if !containsIfNotExists(stmt) {
			t.Errorf("schemaStatements[%d] is not guarded with IF NOT EXISTS:\n%s", i, stmt)
		}
	}
}

func containsIfNotExists(stmt string) bool {
	for i := 0; i+13 <= len(stmt); i++ {
		if stmt[i:i+13] == "IF NOT EXISTS" {
			return true
		}
	}
	return false
}
