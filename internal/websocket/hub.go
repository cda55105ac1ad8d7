package websocket

import (
	"encoding/json"
	"sync"

	"doc-chat-be/internal/pkg/logger"
)

// Event is the wire envelope pushed to connected clients. Types in use:
// "chat_fragment" (incremental answer text), "chat_done" (final answer),
// "notice" (non-fatal warnings).
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Hub struct {
	// Registered clients map: SessionID -> List of Clients (multi-tab)
	clients map[string][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"session_id": client.SessionID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers an event to every client watching the session. A client
// whose buffer is full is dropped rather than blocking the stream. The read
// lock is held across the channel sends: Run closes a client's channel only
// under the write lock, so a send can never race a close.
func (h *Hub) Send(sessionID string, event Event) {
	data, _ := json.Marshal(event)

	var dropped []*Client
	h.mu.RLock()
	for _, client := range h.clients[sessionID] {
		select {
		case client.Send <- data:
		default:
			dropped = append(dropped, client)
		}
	}
	h.mu.RUnlock()

	// Run closes the channel when it processes the unregister; a client
	// already gone by then is skipped there, so repeat drops are harmless.
	for _, client := range dropped {
		h.logger.Warn("Hub", "Client Send buffer full, dropping connection", map[string]interface{}{"session_id": sessionID})
		h.unregister <- client
	}
}

// CloseSession disconnects all clients of a session (session deleted or
// evicted).
func (h *Hub) CloseSession(sessionID string) {
	h.mu.RLock()
	clients := append([]*Client(nil), h.clients[sessionID]...)
	h.mu.RUnlock()

	for _, client := range clients {
		h.unregister <- client
	}
}
