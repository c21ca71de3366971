package models

import (
	"time"

	"github.com/google/uuid"
)

// OnboardingTask is a single step in an employee's onboarding checklist.
// The workflow engine that drives tasks lives outside this service; the
// table is created here so both sides agree on the schema.
type OnboardingTask struct {
	ID          uuid.UUID        `json:"id"                     db:"id"`
	EmployeeID  uuid.UUID        `json:"employee_id"            db:"employee_id"`
	Name        string           `json:"name"                   db:"name"`
	Sequence    int              `json:"sequence"               db:"sequence"`
	Status      OnboardingStatus `json:"status"                 db:"status"`
	CompletedAt *time.Time       `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time        `json:"created_at"             db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"             db:"updated_at"`
}
