// Package models defines the onboarding domain records and the static
// enumerations shared across handlers, repositories, and events.
package models

import (
	"time"

	"github.com/google/uuid"
)

// OnboardingStatus is the workflow state of an employee's onboarding.
type OnboardingStatus string

const (
	StatusPending    OnboardingStatus = "pending"
	StatusInProgress OnboardingStatus = "in_progress"
	StatusCompleted  OnboardingStatus = "completed"
	StatusRejected   OnboardingStatus = "rejected"
)

// OnboardingStatuses returns all workflow statuses in declaration order.
func OnboardingStatuses() []OnboardingStatus {
	return []OnboardingStatus{
		StatusPending,
		StatusInProgress,
		StatusCompleted,
		StatusRejected,
	}
}

// Valid reports whether s is a known onboarding status.
func (s OnboardingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Employee represents a new hire moving through onboarding.
type Employee struct {
	ID         uuid.UUID        `json:"id"                    db:"id"`
	FirstName  string           `json:"first_name"            db:"first_name"  binding:"required"`
	LastName   string           `json:"last_name"             db:"last_name"   binding:"required"`
	Email      string           `json:"email"                 db:"email"       binding:"required,email"`
	Department string           `json:"department,omitempty"  db:"department"`
	StartDate  *time.Time       `json:"start_date,omitempty"  db:"start_date"`
	Status     OnboardingStatus `json:"status"                db:"status"`
	CreatedAt  time.Time        `json:"created_at"            db:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"            db:"updated_at"`
}
