// Package hub pushes snapshot updates to websocket subscribers.
package hub

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/fortuna/services/live-scores-service/pkg/models"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub maintains the set of active clients and broadcasts updates to them
type Hub struct {
	ctx context.Context

	clients   map[*Client]bool
	clientsMu sync.RWMutex

	// Inbound updates from the refresh scheduler
	broadcast chan models.SnapshotUpdate

	register   chan *Client
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	upgrader websocket.Upgrader

	totalConnections atomic.Int64
	totalMessages    atomic.Int64
	droppedUpdates   atomic.Int64
}

// NewHub creates a new Hub. allowOrigin decides which browser origins may connect;
// nil allows all.
func NewHub(allowOrigin func(origin string) bool) *Hub {
	h := &Hub{
		ctx:        context.Background(),
		clients:    make(map[*Client]bool),
		broadcast:  make(chan models.SnapshotUpdate, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if allowOrigin == nil {
				return true
			}
			return allowOrigin(r.Header.Get("Origin"))
		},
	}
	return h
}

// Run starts the hub's main loop
func (h *Hub) Run(ctx context.Context) {
	h.ctx = ctx
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case update := <-h.broadcast:
			h.broadcastUpdate(update)
		}
	}
}

// Notify queues a snapshot update for broadcast without blocking
func (h *Hub) Notify(update models.SnapshotUpdate) {
	select {
	case h.broadcast <- update:
	default:
		h.droppedUpdates.Add(1)
		log.Printf("[%s] Broadcast buffer full, dropping %s update", update.League, update.Kind)
	}
}

// Register adds a client to the hub
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ServeWS upgrades the request and subscribes the connection to updates
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	c := NewClient(uuid.NewString(), conn, h)
	if !h.Register(c) {
		conn.Close()
		return
	}

	// Pumps follow the hub lifetime, not the request
	go c.WritePump(h.ctx)
	go c.ReadPump(h.ctx)
}

func (h *Hub) registerClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.clients[c] = true
	h.totalConnections.Add(1)

	log.Printf("client %s connected (total: %d)", c.ID, len(h.clients))
}

func (h *Hub) unregisterClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
		log.Printf("client %s disconnected (total: %d)", c.ID, len(h.clients))
	}
}

// broadcastUpdate sends an update to every client, disconnecting slow ones
func (h *Hub) broadcastUpdate(update models.SnapshotUpdate) {
	message, err := json.Marshal(update)
	if err != nil {
		log.Printf("[%s] Error encoding %s update: %v", update.League, update.Kind, err)
		return
	}

	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	for c := range h.clients {
		if c.TrySend(message) {
			continue
		}
		// Client buffer full - they're too slow, disconnect them
		log.Printf("client %s buffer full, disconnecting", c.ID)
		delete(h.clients, c)
		close(c.Send)
	}
	h.totalMessages.Add(1)
}

// ClientCount returns the number of active clients
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// Metrics returns hub counters
func (h *Hub) Metrics() map[string]interface{} {
	return map[string]interface{}{
		"active_clients":    h.ClientCount(),
		"total_connections": h.totalConnections.Load(),
		"total_messages":    h.totalMessages.Load(),
		"dropped_updates":   h.droppedUpdates.Load(),
	}
}

// shutdown closes all client connections
func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	log.Printf("Shutting down hub (%d active clients)", len(h.clients))

	for c := range h.clients {
		close(c.Send)
		delete(h.clients, c)
	}
}
