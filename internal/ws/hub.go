// Package ws delivers realtime events to connected users. Delivery is best
// effort: a slow or absent client never blocks or fails the operation that
// produced the event.
package ws

import (
	"sync"

	"lenslend-backend/internal/logger"
)

// Hub maintains the set of active clients keyed by user id.
type Hub struct {
	// Registered clients per user; one user may hold several connections.
	clients map[int32]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	deliveries chan delivery

	mu sync.RWMutex
}

type delivery struct {
	userID  int32
	payload []byte
}

// NewHub creates a new hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int32]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliveries: make(chan delivery, 256),
	}
}

// Run starts the hub's event loop. Call in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			conns := h.clients[client.userID]
			if conns == nil {
				conns = make(map[*Client]bool)
				h.clients[client.userID] = conns
			}
			conns[client] = true
			h.mu.Unlock()
			logger.Debug("ws client connected", "user_id", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.userID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(h.clients, client.userID)
					}
				}
			}
			h.mu.Unlock()
			logger.Debug("ws client disconnected", "user_id", client.userID)

		case d := <-h.deliveries:
			h.mu.Lock()
			for client := range h.clients[d.userID] {
				select {
				case client.send <- d.payload:
				default:
					// Send buffer full, drop the connection.
					close(client.send)
					delete(h.clients[d.userID], client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendToUser queues a payload for every connection the user holds. Dropped
// when the hub is backed up.
func (h *Hub) SendToUser(userID int32, payload []byte) {
	select {
	case h.deliveries <- delivery{userID: userID, payload: payload}:
	default:
		logger.Warn("ws delivery channel full, dropping event", "user_id", userID)
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
