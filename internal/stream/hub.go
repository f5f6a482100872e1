// Package stream broadcasts frame outputs to websocket clients.
package stream

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cwbudde/algo-glass/internal/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	defaultBuffer = 64
)

// ErrClosed is returned by Broadcast after Close.
var ErrClosed = errors.New("stream: hub closed")

// Option configures a [Hub].
type Option func(*Hub)

// WithLogger sets the hub logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithBuffer sets the per-client queue length. A client whose queue is full
// when a message arrives is dropped. Values below 1 are ignored.
func WithBuffer(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

// WithCheckOrigin replaces the upgrader origin check.
func WithCheckOrigin(fn func(*http.Request) bool) Option {
	return func(h *Hub) {
		h.upgrader.CheckOrigin = fn
	}
}

// Hub is an [http.Handler] that upgrades requests to websockets and fans out
// every broadcast to all connected clients.
type Hub struct {
	name     string
	logger   *slog.Logger
	buffer   int
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
	sent    uint64
	dropped uint64
}

// New returns a hub. name tags log lines.
func New(name string, opts ...Option) *Hub {
	h := &Hub{
		name:    name,
		logger:  log.Discard(),
		buffer:  defaultBuffer,
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// ServeHTTP upgrades the connection and blocks until the client leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		http.Error(w, "stream closed", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		h.logger.Debug("stream: upgrade failed", "hub", h.name, "error", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, h.buffer)}
	if !h.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	go c.writePump()
	c.readPump()
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.logger.Info("stream: client connected", "hub", h.name, "clients", len(h.clients))

	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.logger.Info("stream: client disconnected", "hub", h.name, "clients", len(h.clients))
}

// Broadcast queues data as a text message for every client. Clients whose
// queue is full are disconnected.
func (h *Hub) Broadcast(data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}

	for c := range h.clients {
		select {
		case c.send <- data:
			h.sent++
		default:
			delete(h.clients, c)
			close(c.send)
			h.dropped++
			h.logger.Warn("stream: dropped slow client", "hub", h.name)
		}
	}

	return nil
}

// BroadcastJSON encodes v and broadcasts it.
func (h *Hub) BroadcastJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return h.Broadcast(data)
}

// Stats reports message and drop counters.
type Stats struct {
	Clients int
	Sent    uint64
	Dropped uint64
}

// Stats returns the current counters.
func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{Clients: len(h.clients), Sent: h.sent, Dropped: h.dropped}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}

	return nil
}
