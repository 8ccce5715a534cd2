package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/messaging"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
	"github.com/hamatunited-sudo/Hamatunited/pkg/config"
)

// SSEHandlers streams content update events to connected readers.
type SSEHandlers struct {
	broadcaster *messaging.SSEBroadcaster
	logger      *logging.ChanneledLogger
}

// NewSSEHandlers creates a new SSE handlers instance
func NewSSEHandlers(broadcaster *messaging.SSEBroadcaster, logger *logging.ChanneledLogger) *SSEHandlers {
	return &SSEHandlers{broadcaster: broadcaster, logger: logger}
}

// Stream handles GET /api/content/sse. One event is pushed for every
// published revision; heartbeats keep proxies from closing the stream.
func (h *SSEHandlers) Stream(c *gin.Context) {
	if int64(h.broadcaster.ClientCount()) >= config.MaxSSEConnections {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "Too many connections"})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Streaming unsupported"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	client := h.broadcaster.AddClient()
	defer h.broadcaster.RemoveClient(client)

	fmt.Fprintf(c.Writer, ": connected\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(time.Duration(config.SSEHeartbeatIntervalSeconds) * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case msg, open := <-client:
			if !open {
				return
			}
			fmt.Fprint(c.Writer, msg)
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprintf(c.Writer, ": heartbeat\n\n")
			flusher.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
