package messaging_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/messaging"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
)

func TestBusFanOut(t *testing.T) {
	bus := messaging.NewBus(logging.NewTestLogger())

	first, cancelFirst := bus.Subscribe()
	second, cancelSecond := bus.Subscribe()
	defer cancelSecond()

	bus.NotifyContentUpdated(messaging.ContentEvent{Type: messaging.EventContentUpdated})

	for name, ch := range map[string]<-chan messaging.ContentEvent{"first": first, "second": second} {
		select {
		case event := <-ch:
			if event.Type != messaging.EventContentUpdated {
				t.Fatalf("%s got event type %q", name, event.Type)
			}
		case <-time.After(time.Second):
			t.Fatalf("%s subscriber got no event", name)
		}
	}

	// A cancelled subscriber stops receiving; the publisher must not block.
	cancelFirst()
	bus.NotifyContentUpdated(messaging.ContentEvent{Type: messaging.EventSaveStatus})

	select {
	case event := <-second:
		if event.Type != messaging.EventSaveStatus {
			t.Fatalf("got event type %q", event.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber got no event")
	}
}

func TestBroadcasterFormatsSSEFrames(t *testing.T) {
	broadcaster := messaging.NewSSEBroadcaster(4, logging.NewTestLogger())

	client := broadcaster.AddClient()
	defer broadcaster.RemoveClient(client)

	broadcaster.NotifyContentUpdated(messaging.ContentEvent{
		Type:      messaging.EventContentUpdated,
		PublicURL: "https://cdn/content.json",
	})

	select {
	case frame := <-client:
		if !strings.HasPrefix(frame, "event: "+messaging.EventContentUpdated+"\n") {
			t.Fatalf("frame = %q", frame)
		}
		if !strings.Contains(frame, "data: ") || !strings.HasSuffix(frame, "\n\n") {
			t.Fatalf("frame not SSE formatted: %q", frame)
		}
	case <-time.After(time.Second):
		t.Fatal("no frame received")
	}
}

func TestBroadcasterDropsWhenClientIsFull(t *testing.T) {
	broadcaster := messaging.NewSSEBroadcaster(4, logging.NewTestLogger())

	client := broadcaster.AddClient()
	defer broadcaster.RemoveClient(client)

	// Overrun the buffer; the broadcaster must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			broadcaster.NotifyContentUpdated(messaging.ContentEvent{Type: messaging.EventContentUpdated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcaster blocked on a slow client")
	}
}

func TestHubDeliversBroadcasts(t *testing.T) {
	hub := messaging.NewHub(logging.NewTestLogger())
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Registration races the broadcast; give the hub a beat.
	time.Sleep(50 * time.Millisecond)

	hub.BroadcastEvent(messaging.ContentEvent{Type: messaging.EventContentUpdated, Detail: "profile_image"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(payload), messaging.EventContentUpdated) {
		t.Fatalf("payload = %s", payload)
	}
	if !strings.Contains(string(payload), "profile_image") {
		t.Fatalf("payload missing detail: %s", payload)
	}
}
