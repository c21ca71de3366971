// Package events publishes onboarding lifecycle events to Redis Streams so
// downstream consumers (HRIS sync, notifications) can react to changes.
package events

import (
	"time"

	"github.com/google/uuid"
)

// StreamName is the Redis stream for onboarding events.
const StreamName = "onboarding-events"

// EventType represents the type of onboarding event.
type EventType string

const (
	// EmployeeCreated indicates a new employee record was created.
	EmployeeCreated EventType = "EMPLOYEE_CREATED"
	// EmployeeUpdated indicates an employee record was modified.
	EmployeeUpdated EventType = "EMPLOYEE_UPDATED"
	// EmployeeDeleted indicates an employee record was removed.
	EmployeeDeleted EventType = "EMPLOYEE_DELETED"
	// StatusChanged indicates an employee's onboarding status moved.
	StatusChanged EventType = "STATUS_CHANGED"
	// DocumentUploaded indicates a document was attached to an employee.
	DocumentUploaded EventType = "DOCUMENT_UPLOADED"
)

// Event is the envelope for all onboarding events.
type Event struct {
	EventID    uuid.UUID `json:"event_id"`
	EventType  EventType `json:"event_type"`
	EmployeeID uuid.UUID `json:"employee_id"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

// StatusChangedPayload contains data for STATUS_CHANGED events.
type StatusChangedPayload struct {
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

// DocumentUploadedPayload contains data for DOCUMENT_UPLOADED events.
type DocumentUploadedPayload struct {
	DocumentID uuid.UUID `json:"document_id"`
	Type       string    `json:"type"`
	FileName   string    `json:"file_name"`
}
