package messaging

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checks happen in the CORS layer; the hub sits behind the
		// admin gate already.
		return true
	},
}

// HubClient represents a connected admin WebSocket client.
type HubClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of admin WebSocket clients and pushes save status
// and content update frames to them, so a second open admin panel sees
// changes without polling.
type Hub struct {
	clients    map[*HubClient]bool
	broadcast  chan []byte
	register   chan *HubClient
	unregister chan *HubClient
	mu         sync.Mutex
	logger     *logging.ChanneledLogger
}

// NewHub creates an admin WebSocket hub.
func NewHub(logger *logging.ChanneledLogger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 16),
		register:   make(chan *HubClient),
		unregister: make(chan *HubClient),
		clients:    make(map[*HubClient]bool),
		logger:     logger,
	}
}

// Run processes register/unregister/broadcast events until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.SSE().Debug("WebSocket client registered")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.SSE().Debug("WebSocket client unregistered")
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// NotifyContentUpdated satisfies the Notifier contract for admin clients.
func (h *Hub) NotifyContentUpdated(event ContentEvent) {
	h.BroadcastEvent(event)
}

// BroadcastEvent sends one event frame to every connected client.
func (h *Hub) BroadcastEvent(event ContentEvent) {
	payload, err := marshalEvent(event)
	if err != nil {
		h.logger.SSE().Error("Failed to marshal hub event", "error", err.Error())
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.SSE().Warn("Hub broadcast queue full, event dropped", "event", event.Type)
	}
}

func marshalEvent(event ContentEvent) ([]byte, error) {
	return json.Marshal(event)
}

// ServeWS upgrades an HTTP request into a hub connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.SSE().Error("WebSocket upgrade failed", "error", err.Error())
		return
	}

	client := &HubClient{hub: h, conn: conn, send: make(chan []byte, 16)}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// hubWriteWait bounds a single frame write so one stalled client cannot
// hold its pump forever.
const hubWriteWait = 10 * time.Second

func (c *HubClient) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(hubWriteWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// readPump drains the connection so pings and close frames are handled;
// admin clients only listen.
func (c *HubClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
