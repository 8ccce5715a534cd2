// Concrete SSE broadcaster implementation.
package messaging

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
)

// SSEBroadcaster manages SSE client channels and fans content events out to
// them. This is the cross-tab analog of the browser storage event: any tab
// holding an open event stream learns about a save from any other client.
type SSEBroadcaster struct {
	clients    map[chan string]struct{}
	bufferSize int
	mu         sync.Mutex
	logger     *logging.ChanneledLogger
}

var (
	globalBroadcaster *SSEBroadcaster
	once              sync.Once
)

// NewSSEBroadcaster creates the singleton SSEBroadcaster instance.
func NewSSEBroadcaster(bufferSize int, logger *logging.ChanneledLogger) *SSEBroadcaster {
	once.Do(func() {
		if bufferSize <= 0 {
			bufferSize = 10
		}
		globalBroadcaster = &SSEBroadcaster{
			clients:    make(map[chan string]struct{}),
			bufferSize: bufferSize,
			logger:     logger,
		}
	})
	return globalBroadcaster
}

// AddClient registers a new SSE client and returns its message channel.
func (b *SSEBroadcaster) AddClient() chan string {
	ch := make(chan string, b.bufferSize)

	b.mu.Lock()
	b.clients[ch] = struct{}{}
	count := len(b.clients)
	b.mu.Unlock()

	b.logger.SSE().Debug("SSE client registered", "clients", count)
	return ch
}

// RemoveClient removes an SSE client.
func (b *SSEBroadcaster) RemoveClient(ch chan string) {
	b.mu.Lock()
	delete(b.clients, ch)
	count := len(b.clients)
	b.mu.Unlock()

	b.logger.SSE().Debug("SSE client unregistered", "clients", count)
}

// ClientCount returns the number of connected SSE clients.
func (b *SSEBroadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// NotifyContentUpdated formats the event as an SSE frame and sends it to
// every client. Full channels drop the message instead of blocking a save.
func (b *SSEBroadcaster) NotifyContentUpdated(event ContentEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.SSE().Error("Panic recovered in NotifyContentUpdated", "error", r)
		}
	}()

	payload, _ := json.Marshal(event)
	message := fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, payload)

	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.clients {
		select {
		case ch <- message:
		default:
			b.logger.SSE().Warn("SSE channel full, message dropped", "event", event.Type)
		}
	}
}
