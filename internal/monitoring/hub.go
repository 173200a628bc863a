// Package monitoring pushes terminal events (connectivity changes, sync
// results, created transactions) to subscribed UI screens over a websocket.
package monitoring

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type EventType string

const (
	EventConnectivity EventType = "connectivity"
	EventSync         EventType = "sync"
	EventTransaction  EventType = "transaction"
)

type Event struct {
	Type      EventType   `json:"type"`
	Message   string      `json:"message"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type Hub struct {
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Event
	upgrader   websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Event, 16),
		upgrader: websocket.Upgrader{
			// The surface is loopback-only; UI screens connect from file://
			// or localhost origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run delivers broadcast events to every connected client. Dead connections
// are dropped on write failure.
func (h *Hub) Run() {
	for event := range h.broadcast {
		h.clientsMux.Lock()
		for conn := range h.clients {
			if err := conn.WriteJSON(event); err != nil {
				conn.Close()
				delete(h.clients, conn)
			}
		}
		h.clientsMux.Unlock()
	}
}

// Publish queues an event for broadcast; drops it if the queue is full rather
// than block a repository operation.
func (h *Hub) Publish(eventType EventType, message string, payload interface{}) {
	event := Event{
		Type:      eventType,
		Message:   message,
		Payload:   payload,
		Timestamp: time.Now(),
	}
	select {
	case h.broadcast <- event:
	default:
		log.Printf("[Monitoring] event queue full, dropping %s event", eventType)
	}
}

// HandleWS upgrades the connection and registers the client. The read loop
// exists only to notice the peer going away.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Monitoring] websocket upgrade failed: %v", err)
		return
	}

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.clientsMux.Lock()
				delete(h.clients, conn)
				h.clientsMux.Unlock()
				conn.Close()
				return
			}
		}
	}()
}
