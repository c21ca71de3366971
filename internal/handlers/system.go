package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/onboarding/internal/config"
)

// SystemHandler serves the root service-information endpoint.
type SystemHandler struct {
	cfg *config.Config
}

func NewSystemHandler(cfg *config.Config) *SystemHandler {
	return &SystemHandler{cfg: cfg}
}

// Root reports the service identity and where to find its surfaces.
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"system":      h.cfg.App.Name,
		"version":     h.cfg.App.Version,
		"status":      "operational",
		"environment": h.cfg.App.Environment,
		"docs":        "/docs",
		"health":      "/health",
		"api":         h.cfg.API.V1Prefix,
	})
}
