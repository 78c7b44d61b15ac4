package presentation

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/logging"
)

const (
	MessageSnapshot = "snapshot"
	MessageScore    = "score"

	clientBuffer = 32
	writeTimeout = 5 * time.Second
)

// Message is the envelope written to feed subscribers.
type Message struct {
	Type        string          `json:"type"`
	Matches     []matches.Match `json:"matches,omitempty"`
	Change      *matches.Change `json:"change,omitempty"`
	HighlightMS int64           `json:"highlightMs,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan Message
}

// Hub pushes score changes to websocket subscribers. New subscribers first
// receive a snapshot of every match.
type Hub struct {
	mu        sync.Mutex
	clients   map[*client]struct{}
	closed    bool
	upgrader  websocket.Upgrader
	snapshot  func() []matches.Match
	logger    *slog.Logger
	highlight time.Duration
}

// NewHub constructs a Hub. snapshot may be nil, in which case no initial snapshot is sent.
func NewHub(snapshot func() []matches.Match, highlight time.Duration, logger *slog.Logger) *Hub {
	return &Hub{
		clients:   make(map[*client]struct{}),
		upgrader:  websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		snapshot:  snapshot,
		logger:    logger,
		highlight: highlight,
	}
}

// Publish queues the change for every subscriber. Subscribers that fall
// behind are disconnected.
func (h *Hub) Publish(_ context.Context, change matches.Change) {
	msg := Message{Type: MessageScore, Change: &change, HighlightMS: h.highlight.Milliseconds()}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastLocked(msg)
}

// Restart sends every subscriber a fresh snapshot, replacing whatever board
// they were showing.
func (h *Hub) Restart() {
	if h.snapshot == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastLocked(Message{Type: MessageSnapshot, Matches: h.snapshot()})
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams changes until the peer disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(logging.FromContext(r.Context(), h.logger), "websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan Message, clientBuffer)}
	if !h.register(c) {
		_ = conn.Close()
		return
	}

	go h.writeLoop(c)
	h.readLoop(c)
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

// register queues the snapshot before the client becomes visible to
// Publish and Close, so it is always the first message sent.
func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	if h.snapshot != nil {
		c.send <- Message{Type: MessageSnapshot, Matches: h.snapshot()}
	}
	h.clients[c] = struct{}{}
	return true
}

// broadcastLocked must be called with h.mu held.
func (h *Hub) broadcastLocked(msg Message) {
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			logging.Warn(h.logger, "dropping slow feed subscriber", "message", msg.Type)
			h.removeLocked(c)
		}
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// removeLocked must be called with h.mu held.
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(msg); err != nil {
			logging.Debug(h.logger, "feed write failed", "error", err)
			h.unregister(c)
			return
		}
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readLoop drains client frames so close and ping frames are processed.
func (h *Hub) readLoop(c *client) {
	defer h.unregister(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
