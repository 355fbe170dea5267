// Package realtime pushes applied game events to WebSocket subscribers.
package realtime

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/petegordon/mferoll-sub000/internal/metrics"
	"github.com/petegordon/mferoll-sub000/pkg/bet"
)

// Hub tracks connected subscribers and fans events out to them
type Hub struct {
	logger *zap.Logger

	mu      sync.RWMutex
	clients map[*Client]struct{}
	closed  bool
}

// NewHub creates an empty hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[*Client]struct{}),
	}
}

// Register adds a client. Clients registered after Close are closed immediately.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		c.Close()
		return
	}
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(count))
	h.logger.Debug("Client registered", zap.String("client", c.ID()), zap.Int("clients", count))
}

// TryRegister adds c unless limit clients are already registered. The check
// and the insert happen under one lock so concurrent upgrades cannot exceed
// the limit. A limit <= 0 means unbounded. A rejected client is left open.
func (h *Hub) TryRegister(c *Client, limit int) bool {
	h.mu.Lock()
	if h.closed || (limit > 0 && len(h.clients) >= limit) {
		h.mu.Unlock()
		return false
	}
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(count))
	h.logger.Debug("Client registered", zap.String("client", c.ID()), zap.Int("clients", count))
	return true
}

// Unregister removes and closes a client. It is the only path that drops a
// client from the registry.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	count := len(h.clients)
	h.mu.Unlock()

	if ok {
		metrics.WSConnections.Set(float64(count))
		h.logger.Debug("Client unregistered", zap.String("client", c.ID()), zap.Int("clients", count))
	}
	c.Close()
}

// ClientCount returns the number of registered clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast delivers ev to every client whose filter matches the event player
// and returns how many clients accepted it. Closed clients are skipped, not
// removed.
func (h *Hub) Broadcast(ev bet.Event) int {
	msg, err := NewEventMessage(ev)
	if err != nil {
		h.logger.Error("Failed to build event message", zap.Error(err))
		return 0
	}
	data, err := msg.ToJSON()
	if err != nil {
		h.logger.Error("Failed to encode event message", zap.Error(err))
		return 0
	}

	player := ev.Player()

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		if c.Matches(player) {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range targets {
		if c.Send(data) {
			delivered++
			continue
		}
		metrics.WSMessagesDropped.WithLabelValues("undeliverable").Inc()
	}
	metrics.WSMessagesSent.WithLabelValues(msg.Type).Add(float64(delivered))

	return delivered
}

// OnEvent broadcasts ev; it lets the hub subscribe to an event emitter.
func (h *Hub) OnEvent(_ context.Context, ev bet.Event) {
	h.Broadcast(ev)
}

// Close closes every client and rejects later registrations
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[*Client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.Close()
	}
	metrics.WSConnections.Set(0)
}
