// Package handlers contains the HTTP handlers for the content API.
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hamatunited-sudo/Hamatunited/internal/application/services"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/performance"
)

// ContentHandlers handles the public content document endpoints.
// This is a thin wrapper around ContentService following the established pattern
type ContentHandlers struct {
	contentService *services.ContentService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewContentHandlers creates a new content handlers instance
func NewContentHandlers(contentService *services.ContentService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ContentHandlers {
	return &ContentHandlers{
		contentService: contentService,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// GetContent handles GET /api/content
func (h *ContentHandlers) GetContent(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_content_request")
	defer marker.Complete()
	h.logger.Content().Debug("Received get content request", "method", c.Request.Method, "path", c.Request.URL.Path)

	raw, source, err := h.contentService.RawDocument(c.Request.Context())
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to load content"})
		return
	}

	marker.SetSuccess(true)
	c.Header("X-Content-Source", source)
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// PostContent handles POST /api/content. The admin gate runs as route
// middleware; the handler only validates and publishes.
func (h *ContentHandlers) PostContent(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_content_request")
	defer marker.Complete()
	h.logger.Content().Debug("Received post content request", "method", c.Request.Method, "path", c.Request.URL.Path)

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Failed to read request body"})
		return
	}

	report, err := h.contentService.Publish(c.Request.Context(), raw)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	// pushedToSupabase is the key older clients read; both carry the
	// same value.
	c.JSON(http.StatusOK, gin.H{
		"ok":                  report.OK,
		"pushedToStorage":     report.PushedToStorage,
		"pushedToSupabase":    report.PushedToStorage,
		"pushedMessage":       report.PushedMessage,
		"publicUrl":           report.PublicURL,
		"localWriteAttempted": report.LocalWriteAttempted,
		"localWriteOk":        report.LocalWriteOk,
	})
}
