package realtime

import (
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/petegordon/mferoll-sub000/internal/metrics"
	"github.com/petegordon/mferoll-sub000/pkg/bet"
	"github.com/petegordon/mferoll-sub000/pkg/config"
)

// Client is one real-time subscriber connection
type Client struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	logger *zap.Logger
	cfg    config.WebSocketConfig

	filterMu sync.RWMutex
	filter   string

	closedMu sync.RWMutex
	closed   bool
}

// NewClient creates a subscriber. conn may be nil until the upgrade completes;
// it must be set before the pumps start.
func NewClient(hub *Hub, conn *websocket.Conn, logger *zap.Logger, cfg config.WebSocketConfig) *Client {
	size := cfg.SendBufferSize
	if size <= 0 {
		size = 64
	}
	return &Client{
		id:     uuid.New().String(),
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, size),
		logger: logger,
		cfg:    cfg,
	}
}

// ID returns the client id
func (c *Client) ID() string {
	return c.id
}

// Filter returns the lowercased address filter, or "" when unfiltered
func (c *Client) Filter() string {
	c.filterMu.RLock()
	defer c.filterMu.RUnlock()
	return c.filter
}

// SetFilter narrows delivery to events for address
func (c *Client) SetFilter(address string) {
	c.filterMu.Lock()
	c.filter = bet.NormalizeAddress(address)
	c.filterMu.Unlock()
}

// ClearFilter restores delivery of all events
func (c *Client) ClearFilter() {
	c.filterMu.Lock()
	c.filter = ""
	c.filterMu.Unlock()
}

// Matches reports whether an event for player should be delivered
func (c *Client) Matches(player string) bool {
	filter := c.Filter()
	return filter == "" || strings.EqualFold(filter, player)
}

// ReadPump reads control frames until the connection fails, then unregisters
// the client.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(c.cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("Websocket read error", zap.String("client", c.id), zap.Error(err))
			}
			return
		}
		c.handleMessage(message)
	}
}

// WritePump writes queued frames one per websocket message and keeps the
// connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage applies a control frame. Bad frames are answered with an
// error and the connection stays open.
func (c *Client) handleMessage(data []byte) {
	msg, err := ParseClientMessage(data)
	if err != nil {
		c.logger.Warn("Invalid websocket message", zap.String("client", c.id), zap.Error(err))
		c.reply(NewErrorMessage("invalid message format"))
		return
	}

	switch msg.Type {
	case MsgTypePing:
		c.reply(NewPongMessage())
	case MsgTypeSubscribe:
		if !common.IsHexAddress(msg.Address) {
			c.reply(NewErrorMessage("invalid address"))
			return
		}
		c.SetFilter(msg.Address)
		c.reply(NewSubscribedMessage(c.Filter()))
		c.logger.Debug("Client subscribed", zap.String("client", c.id), zap.String("address", c.Filter()))
	case MsgTypeUnsubscribe:
		c.ClearFilter()
		c.reply(NewUnsubscribedMessage())
	default:
		c.reply(NewErrorMessage("unknown message type"))
	}
}

func (c *Client) reply(msg *ServerMessage) {
	data, err := msg.ToJSON()
	if err != nil {
		c.logger.Error("Failed to encode websocket reply", zap.Error(err))
		return
	}
	if c.Send(data) {
		metrics.WSMessagesSent.WithLabelValues(msg.Type).Inc()
	}
}

// Send queues data without blocking. When the queue is full the oldest queued
// frame is dropped. Returns false if the client is closed or data could not
// be queued.
func (c *Client) Send(data []byte) bool {
	c.closedMu.RLock()
	defer c.closedMu.RUnlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- data:
		return true
	default:
	}

	select {
	case <-c.send:
		metrics.WSMessagesDropped.WithLabelValues("overflow").Inc()
		c.logger.Warn("Client send buffer full, dropped oldest frame", zap.String("client", c.id))
	default:
	}

	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// Close marks the client closed and closes its queue, which ends WritePump.
func (c *Client) Close() {
	c.closedMu.Lock()
	defer c.closedMu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// IsClosed reports whether Close was called
func (c *Client) IsClosed() bool {
	c.closedMu.RLock()
	defer c.closedMu.RUnlock()
	return c.closed
}
