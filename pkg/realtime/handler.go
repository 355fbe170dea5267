package realtime

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/petegordon/mferoll-sub000/pkg/config"
)

// Handler upgrades HTTP requests to subscriber connections
type Handler struct {
	hub      *Hub
	logger   *zap.Logger
	cfg      config.WebSocketConfig
	upgrader websocket.Upgrader
}

// NewHandler creates the upgrade handler. An empty AllowedOrigins accepts any origin.
func NewHandler(hub *Hub, logger *zap.Logger, cfg config.WebSocketConfig) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
		cfg:    cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				if len(cfg.AllowedOrigins) == 0 {
					return true
				}
				return slices.Contains(cfg.AllowedOrigins, r.Header.Get("Origin"))
			},
		},
	}
}

// ServeHTTP handles GET /ws. A slot is reserved in the hub before the upgrade
// and released if the upgrade fails.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	client := NewClient(h.hub, nil, h.logger, h.cfg)
	// queued first so the greeting precedes any broadcast frame
	client.reply(NewConnectedMessage())

	if !h.hub.TryRegister(client, h.cfg.MaxConnections) {
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		h.hub.Unregister(client)
		h.logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	// the pumps below are the only readers of conn
	client.conn = conn

	h.logger.Info("Websocket client connected",
		zap.String("client", client.ID()),
		zap.String("remote", r.RemoteAddr))

	go client.WritePump()
	go client.ReadPump()
}
