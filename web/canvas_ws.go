// Package web exposes the live canvas over HTTP: a WebSocket feed of
// scene/camera frames for connected Excalidraw frontends and a small JSON
// API for the latest resolved state.
package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// CanvasWSMessage is one frame on the live canvas feed.
type CanvasWSMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// CanvasWSConn is a single connected canvas client. Writes are serialized
// through a mutex since broadcasts and pong replies race.
type CanvasWSConn struct {
	conn    *websocket.Conn
	handler *CanvasWSHandler
	id      string
	mu      sync.Mutex
}

// Send writes one message to the client.
func (c *CanvasWSConn) Send(msg CanvasWSMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// readLoop consumes client messages until the connection closes.
func (c *CanvasWSConn) readLoop() {
	defer c.handler.remove(c)
	for {
		var msg CanvasWSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Type {
		case "ping":
			if err := c.Send(CanvasWSMessage{Type: "pong", Data: msg.Data}); err != nil {
				return
			}
		default:
			slog.Debug("unknown WebSocket message type", "type", msg.Type, "client", c.id)
		}
	}
}

// CanvasWSHandler manages the live canvas WebSocket connections.
type CanvasWSHandler struct {
	upgrader websocket.Upgrader
	clients  map[string]*CanvasWSConn
	mu       sync.RWMutex
}

// NewCanvasWSHandler returns an empty connection registry.
func NewCanvasWSHandler() *CanvasWSHandler {
	return &CanvasWSHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*CanvasWSConn),
	}
}

// ServeHTTP upgrades the request and registers the client.
func (h *CanvasWSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("WebSocket upgrade failed", "err", err)
		return
	}
	c := &CanvasWSConn{
		conn:    conn,
		handler: h,
		id:      fmt.Sprintf("conn_%s", conn.RemoteAddr().String()),
	}
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	slog.Info("WebSocket client connected", "client", c.id)

	c.Send(CanvasWSMessage{Type: "connected", Data: map[string]any{
		"status": "connected",
		"server": "Excalidraw Canvas API",
		"id":     c.id,
	}})
	go c.readLoop()
}

// Broadcast fans a message out to every connected client. Dead connections
// are dropped on write failure.
func (h *CanvasWSHandler) Broadcast(msg CanvasWSMessage) {
	h.mu.RLock()
	conns := make([]*CanvasWSConn, 0, len(h.clients))
	for _, c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.RUnlock()
	for _, c := range conns {
		if err := c.Send(msg); err != nil {
			h.remove(c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *CanvasWSHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *CanvasWSHandler) remove(c *CanvasWSConn) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		slog.Info("WebSocket client disconnected", "client", c.id)
	}
	h.mu.Unlock()
	c.conn.Close()
}
