package server

import (
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/hamatunited-sudo/Hamatunited/internal/application/container"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/performance"
	"github.com/hamatunited-sudo/Hamatunited/pkg/config"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// Long-lived connections (the SSE stream and the admin websocket) must
// outlive any global write deadline, so the default leaves it unset.
func TestNewServerKeepsStreamsUncapped(t *testing.T) {
	if config.ServerWriteTimeout != 0 {
		t.Fatalf("default write timeout = %v, want 0", config.ServerWriteTimeout)
	}

	origState := config.StateDir
	config.StateDir = t.TempDir()
	t.Cleanup(func() { config.StateDir = origState })

	logger := logging.NewTestLogger()
	deps := container.New(logger, performance.NewTracker())
	srv := New("8080", deps)

	if srv.httpServer.WriteTimeout != 0 {
		t.Fatalf("WriteTimeout = %v, want 0 so event streams stay open", srv.httpServer.WriteTimeout)
	}
	if srv.httpServer.ReadTimeout != config.ServerReadTimeout {
		t.Fatalf("ReadTimeout = %v, want %v", srv.httpServer.ReadTimeout, config.ServerReadTimeout)
	}
	if srv.httpServer.IdleTimeout != config.ServerIdleTimeout {
		t.Fatalf("IdleTimeout = %v, want %v", srv.httpServer.IdleTimeout, config.ServerIdleTimeout)
	}
}
