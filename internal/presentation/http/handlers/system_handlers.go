package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/performance"
)

// SystemHandlers exposes health and performance endpoints
type SystemHandlers struct {
	perfTracker *performance.Tracker
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(perfTracker *performance.Tracker) *SystemHandlers {
	return &SystemHandlers{perfTracker: perfTracker}
}

// GetHealth handles GET /api/health
func (h *SystemHandlers) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": h.perfTracker.Uptime().String(),
	})
}

// GetPerfStats handles GET /api/admin/perf
func (h *SystemHandlers) GetPerfStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.perfTracker.Stats())
}
