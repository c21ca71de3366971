// Package handlers implements the HTTP endpoints of the onboarding API.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jonesrussell/onboarding/internal/events"
	"github.com/jonesrussell/onboarding/internal/importer"
	"github.com/jonesrussell/onboarding/internal/logger"
	"github.com/jonesrussell/onboarding/internal/models"
	"github.com/jonesrussell/onboarding/internal/repository"
)

// EmployeeStore is the persistence surface the employee endpoints need.
type EmployeeStore interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// EventPublisher emits onboarding lifecycle events.
type EventPublisher interface {
	PublishAsync(event events.Event)
}

type EmployeeHandler struct {
	store     EmployeeStore
	publisher EventPublisher
	logger    logger.Logger
}

func NewEmployeeHandler(store EmployeeStore, publisher EventPublisher, log logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		store:     store,
		publisher: publisher,
		logger:    log,
	}
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		h.logger.Debug("Invalid request body",
			logger.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if employee.Status != "" && !employee.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown onboarding status", "status": employee.Status})
		return
	}

	if err := h.store.Create(c.Request.Context(), &employee); err != nil {
		h.logger.Error("Failed to create employee",
			logger.String("email", employee.Email),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		return
	}

	h.logger.Info("Employee created",
		logger.String("employee_id", employee.ID.String()),
		logger.String("email", employee.Email),
	)
	h.publisher.PublishAsync(events.Event{
		EventType:  events.EmployeeCreated,
		EmployeeID: employee.ID,
	})

	c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}

	employee, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		h.logger.Error("Failed to get employee",
			logger.String("employee_id", id.String()),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get employee"})
		return
	}

	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list employees", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list employees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": employees, "count": len(employees)})
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}

	existing, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		h.logger.Error("Failed to load employee for update",
			logger.String("employee_id", id.String()),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
		return
	}

	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if employee.Status == "" {
		employee.Status = existing.Status
	}
	if !employee.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown onboarding status", "status": employee.Status})
		return
	}
	employee.ID = id
	employee.CreatedAt = existing.CreatedAt

	if err := h.store.Update(c.Request.Context(), &employee); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		h.logger.Error("Failed to update employee",
			logger.String("employee_id", id.String()),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
		return
	}

	h.logger.Info("Employee updated", logger.String("employee_id", id.String()))
	h.publisher.PublishAsync(events.Event{
		EventType:  events.EmployeeUpdated,
		EmployeeID: id,
	})
	if employee.Status != existing.Status {
		h.publisher.PublishAsync(events.Event{
			EventType:  events.StatusChanged,
			EmployeeID: id,
			Payload: events.StatusChangedPayload{
				Previous: string(existing.Status),
				Current:  string(employee.Status),
			},
		})
	}

	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		h.logger.Error("Failed to delete employee",
			logger.String("employee_id", id.String()),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete employee"})
		return
	}

	h.logger.Info("Employee deleted", logger.String("employee_id", id.String()))
	h.publisher.PublishAsync(events.Event{
		EventType:  events.EmployeeDeleted,
		EmployeeID: id,
	})

	c.Status(http.StatusNoContent)
}

// Import bulk-creates employees from an uploaded xlsx roster.
func (h *EmployeeHandler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A roster file is required", "details": err.Error()})
		return
	}
	defer file.Close()

	result, err := importer.ParseRoster(file)
	if err != nil {
		if errors.Is(err, importer.ErrEmptyRoster) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Roster has no data rows"})
			return
		}
		h.logger.Debug("Unreadable roster upload",
			logger.String("file_name", header.Filename),
			logger.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read roster", "details": err.Error()})
		return
	}

	created := make([]models.Employee, 0, len(result.Employees))
	rowErrors := result.Errors
	for i := range result.Employees {
		employee := result.Employees[i].Employee
		if err := h.store.Create(c.Request.Context(), &employee); err != nil {
			h.logger.Error("Failed to import employee",
				logger.String("email", employee.Email),
				logger.Error(err),
			)
			rowErrors = append(rowErrors, importer.RowError{
				Row:    result.Employees[i].Row,
				Reason: "could not save employee",
			})
			continue
		}
		h.publisher.PublishAsync(events.Event{
			EventType:  events.EmployeeCreated,
			EmployeeID: employee.ID,
		})
		created = append(created, employee)
	}

	h.logger.Info("Roster imported",
		logger.String("file_name", header.Filename),
		logger.Int("created", len(created)),
		logger.Int("errors", len(rowErrors)),
	)

	c.JSON(http.StatusCreated, gin.H{
		"created": created,
		"count":   len(created),
		"errors":  rowErrors,
	})
}

func employeeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID"})
		return uuid.Nil, false
	}
	return id, true
}
