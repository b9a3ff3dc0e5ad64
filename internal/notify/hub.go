package notify

import (
	"context"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// client wraps one websocket connection with a write lock. gorilla/websocket
// allows at most one concurrent writer per connection; emits arrive from
// racing handlers and the redis bridge, so every write must hold the lock.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) write(ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(ev)
}

// Hub maps userID to live websocket connections within this process.
// Undelivered payloads are dropped; a connection that fails a write is
// closed and forgotten.
type Hub struct {
	mu    sync.RWMutex
	conns map[string][]*client
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string][]*client)}
}

// Register attaches a connection to a user. The caller keeps ownership of
// the read side; the hub only ever writes.
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[userID] = append(h.conns[userID], &client{conn: conn})
	h.mu.Unlock()
}

// Unregister detaches a connection, closing it.
func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := h.conns[userID]
	for i, c := range clients {
		if c.conn == conn {
			h.conns[userID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
	_ = conn.Close()
}

// Emit writes the event to every live connection of the user. Best effort:
// failed connections are dropped, nothing is queued.
func (h *Hub) Emit(_ context.Context, userID string, ev Event) {
	h.mu.RLock()
	clients := append([]*client(nil), h.conns[userID]...)
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(ev); err != nil {
			log.Printf("ws write to %s: %v", userID, err)
			h.Unregister(userID, c.conn)
		}
	}
}
