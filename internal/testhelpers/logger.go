// Package testhelpers provides shared helpers for package tests.
package testhelpers

import (
	"github.com/jonesrussell/onboarding/internal/logger"
)

// NewTestLogger creates a logger that discards all output.
func NewTestLogger() logger.Logger {
	return logger.NewNop()
}
