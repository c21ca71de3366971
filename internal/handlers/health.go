package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/onboarding/internal/logger"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct {
	db      Pinger
	version string
	started time.Time
	logger  logger.Logger
}

func NewHealthHandler(db Pinger, version string, log logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		version: version,
		started: time.Now(),
		logger:  log,
	}
}

// Health reports overall service health, checking the database when wired.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := gin.H{}
	status := "healthy"
	code := http.StatusOK

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("Database health check failed", logger.Error(err))
			checks["database"] = "unreachable"
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		} else {
			checks["database"] = "ok"
		}
	}

	c.JSON(code, gin.H{
		"status":         status,
		"service":        "onboarding",
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"checks":         checks,
		"timestamp":      time.Now().UTC(),
	})
}

// Live is a bare liveness probe with no dependency checks.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
