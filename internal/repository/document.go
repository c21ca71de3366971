package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/onboarding/internal/logger"
	"github.com/jonesrussell/onboarding/internal/models"
)

// DocumentRepository persists uploaded document metadata.
type DocumentRepository struct {
	db     *sql.DB
	logger logger.Logger
}

// NewDocumentRepository creates a document repository.
func NewDocumentRepository(db *sql.DB, log logger.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: log,
	}
}

const documentColumns = "id, employee_id, doc_type, file_name, content_type, size_bytes, storage_path, uploaded_at"

// Create inserts a new document record.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	doc.UploadedAt = time.Now().UTC()

	query := `
		INSERT INTO documents (id, employee_id, doc_type, file_name, content_type, size_bytes, storage_path, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.EmployeeID, doc.Type, doc.FileName,
		doc.ContentType, doc.SizeBytes, doc.StoragePath, doc.UploadedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create document",
			logger.String("employee_id", doc.EmployeeID.String()),
			logger.String("doc_type", string(doc.Type)),
			logger.Error(err),
		)
		return fmt.Errorf("insert document: %w", err)
	}

	return nil
}

// GetByID fetches a single document.
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("Failed to get document",
			logger.String("document_id", id.String()),
			logger.Error(err),
		)
		return nil, fmt.Errorf("select document: %w", err)
	}

	return doc, nil
}

// ListByEmployee returns an employee's documents, newest first.
func (r *DocumentRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE employee_id = $1 ORDER BY uploaded_at DESC`

	rows, err := r.db.QueryContext(ctx, query, employeeID)
	if err != nil {
		r.logger.Error("Failed to list documents",
			logger.String("employee_id", employeeID.String()),
			logger.Error(err),
		)
		return nil, fmt.Errorf("select documents: %w", err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		doc, scanErr := scanDocument(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan document: %w", scanErr)
		}
		docs = append(docs, *doc)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate documents: %w", rowsErr)
	}

	return docs, nil
}

// Delete removes a document record.
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete document",
			logger.String("document_id", id.String()),
			logger.Error(err),
		)
		return fmt.Errorf("delete document: %w", err)
	}

	return checkAffected(result)
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(
		&doc.ID,
		&doc.EmployeeID,
		&doc.Type,
		&doc.FileName,
		&doc.ContentType,
		&doc.SizeBytes,
		&doc.StoragePath,
		&doc.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
