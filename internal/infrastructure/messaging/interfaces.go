// Package messaging carries content change notifications between the editor,
// the resolver and connected clients. Two transports implement the same
// notifier contract: an in-process bus for same-process consumers and an SSE
// broadcaster for browser tabs; admin panels additionally get a WebSocket hub.
package messaging

import "time"

// Event names on the wire. content_updated mirrors the custom DOM event the
// original site dispatched after a save.
const (
	EventContentUpdated = "content_updated"
	EventSaveStatus     = "save_status"
)

// ContentEvent describes one content change notification.
type ContentEvent struct {
	Type      string    `json:"type"`
	Revision  time.Time `json:"revision"`
	Detail    string    `json:"detail,omitempty"`
	PublicURL string    `json:"publicUrl,omitempty"`
}

// Notifier publishes content change events to interested consumers.
type Notifier interface {
	NotifyContentUpdated(event ContentEvent)
}

// MultiNotifier fans one event out to several transports.
type MultiNotifier []Notifier

// NotifyContentUpdated delivers the event to every wrapped notifier.
func (m MultiNotifier) NotifyContentUpdated(event ContentEvent) {
	for _, n := range m {
		n.NotifyContentUpdated(event)
	}
}
