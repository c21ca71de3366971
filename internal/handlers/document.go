package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jonesrussell/onboarding/internal/config"
	"github.com/jonesrussell/onboarding/internal/events"
	"github.com/jonesrussell/onboarding/internal/logger"
	"github.com/jonesrussell/onboarding/internal/models"
	"github.com/jonesrussell/onboarding/internal/repository"
)

// DocumentStore is the persistence surface the document endpoints need.
type DocumentStore interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]models.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DocumentHandler struct {
	store     DocumentStore
	employees EmployeeStore
	publisher EventPublisher
	uploads   config.UploadConfig
	logger    logger.Logger
}

func NewDocumentHandler(
	store DocumentStore,
	employees EmployeeStore,
	publisher EventPublisher,
	uploads config.UploadConfig,
	log logger.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		store:     store,
		employees: employees,
		publisher: publisher,
		uploads:   uploads,
		logger:    log,
	}
}

// multipartSlackBytes covers form-field and boundary overhead on top of the
// configured file size limit.
const multipartSlackBytes = 64 << 10

// multipartMemoryBytes is how much of a parsed form stays in memory before
// spilling to temp files.
const multipartMemoryBytes = 8 << 20

// Upload stores a multipart document for an employee.
func (h *DocumentHandler) Upload(c *gin.Context) {
	employeeID, ok := employeeID(c)
	if !ok {
		return
	}

	// Bound the body before the multipart form is parsed, so an oversized
	// upload is rejected while streaming instead of after buffering.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body,
		h.uploads.MaxUploadSize+multipartSlackBytes)

	if err := c.Request.ParseMultipartForm(multipartMemoryBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":     "File exceeds the upload size limit",
				"max_bytes": h.uploads.MaxUploadSize,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form", "details": err.Error()})
		return
	}

	if _, err := h.employees.GetByID(c.Request.Context(), employeeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload document"})
		return
	}

	docType := models.DocumentType(c.PostForm("type"))
	if !docType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Unknown document type",
			"allowed": models.DocumentTypes(),
		})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required", "details": err.Error()})
		return
	}
	defer file.Close()

	if header.Size > h.uploads.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error":     "File exceeds the upload size limit",
			"max_bytes": h.uploads.MaxUploadSize,
		})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !h.allowedContentType(contentType) {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{
			"error":   "Content type is not allowed",
			"allowed": h.uploads.AllowedContentTypes,
		})
		return
	}

	doc := &models.Document{
		EmployeeID:  employeeID,
		Type:        docType,
		FileName:    filepath.Base(header.Filename),
		ContentType: contentType,
		SizeBytes:   header.Size,
	}
	doc.ID = uuid.New()
	doc.StoragePath = filepath.Join(h.uploads.UploadDir, employeeID.String(),
		fmt.Sprintf("%s_%s", doc.ID, doc.FileName))

	if err := h.saveFile(file, doc.StoragePath); err != nil {
		h.logger.Error("Failed to store uploaded file",
			logger.String("employee_id", employeeID.String()),
			logger.String("path", doc.StoragePath),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	if err := h.store.Create(c.Request.Context(), doc); err != nil {
		h.logger.Error("Failed to record document",
			logger.String("employee_id", employeeID.String()),
			logger.Error(err),
		)
		os.Remove(doc.StoragePath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record document"})
		return
	}

	h.logger.Info("Document uploaded",
		logger.String("document_id", doc.ID.String()),
		logger.String("employee_id", employeeID.String()),
		logger.String("doc_type", string(docType)),
		logger.Int64("size_bytes", doc.SizeBytes),
	)
	h.publisher.PublishAsync(events.Event{
		EventType:  events.DocumentUploaded,
		EmployeeID: employeeID,
		Payload: events.DocumentUploadedPayload{
			DocumentID: doc.ID,
			Type:       string(docType),
			FileName:   doc.FileName,
		},
	})

	c.JSON(http.StatusCreated, doc)
}

// List returns an employee's documents.
func (h *DocumentHandler) List(c *gin.Context) {
	employeeID, ok := employeeID(c)
	if !ok {
		return
	}

	docs, err := h.store.ListByEmployee(c.Request.Context(), employeeID)
	if err != nil {
		h.logger.Error("Failed to list documents",
			logger.String("employee_id", employeeID.String()),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs, "count": len(docs)})
}

// Download streams the stored file for a document.
func (h *DocumentHandler) Download(c *gin.Context) {
	doc, ok := h.loadDocument(c)
	if !ok {
		return
	}

	c.FileAttachment(doc.StoragePath, doc.FileName)
}

// Delete removes a document record and its stored file.
func (h *DocumentHandler) Delete(c *gin.Context) {
	doc, ok := h.loadDocument(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), doc.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		h.logger.Error("Failed to delete document",
			logger.String("document_id", doc.ID.String()),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}

	if err := os.Remove(doc.StoragePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		h.logger.Warn("Stored file could not be removed",
			logger.String("path", doc.StoragePath),
			logger.Error(err),
		)
	}

	h.logger.Info("Document deleted", logger.String("document_id", doc.ID.String()))

	c.Status(http.StatusNoContent)
}

func (h *DocumentHandler) loadDocument(c *gin.Context) (*models.Document, bool) {
	id, err := uuid.Parse(c.Param("docID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return nil, false
	}

	doc, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return nil, false
		}
		h.logger.Error("Failed to get document",
			logger.String("document_id", id.String()),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get document"})
		return nil, false
	}

	return doc, true
}

func (h *DocumentHandler) allowedContentType(contentType string) bool {
	if len(h.uploads.AllowedContentTypes) == 0 {
		return true
	}
	// strip parameters like "; charset=utf-8"
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	return slices.Contains(h.uploads.AllowedContentTypes, contentType)
}

func (h *DocumentHandler) saveFile(src io.Reader, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
