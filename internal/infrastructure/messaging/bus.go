package messaging

import (
	"sync"

	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
)

// Bus is the in-process notifier: subscribers get content events on buffered
// channels, the same-process analog of the window event the original admin
// page dispatched after a save. Slow subscribers drop events rather than
// block a save.
type Bus struct {
	subscribers map[int]chan ContentEvent
	nextID      int
	mu          sync.Mutex
	logger      *logging.ChanneledLogger
}

// NewBus creates an in-process event bus.
func NewBus(logger *logging.ChanneledLogger) *Bus {
	return &Bus{
		subscribers: make(map[int]chan ContentEvent),
		logger:      logger,
	}
}

// Subscribe registers a consumer. The returned cancel func removes the
// subscription and closes the channel.
func (b *Bus) Subscribe() (<-chan ContentEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan ContentEvent, 4)
	b.subscribers[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(sub)
		}
	}
	return ch, cancel
}

// NotifyContentUpdated delivers an event to every subscriber without blocking.
func (b *Bus) NotifyContentUpdated(event ContentEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			b.logger.SSE().Warn("Bus subscriber full, event dropped", "subscriber", id, "event", event.Type)
		}
	}
}
