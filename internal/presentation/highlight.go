package presentation

import (
	"context"
	"sync"
	"time"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
)

// DefaultHighlightDuration is how long a changed score stays highlighted.
const DefaultHighlightDuration = 600 * time.Millisecond

type highlightKey struct {
	matchID int
	side    matches.Side
}

// Highlighter tracks which (match, side) scores changed recently.
type Highlighter struct {
	mu       sync.Mutex
	duration time.Duration
	now      func() time.Time
	until    map[highlightKey]time.Time
}

// NewHighlighter builds a Highlighter; a non-positive duration uses the default.
func NewHighlighter(duration time.Duration) *Highlighter {
	if duration <= 0 {
		duration = DefaultHighlightDuration
	}
	return &Highlighter{
		duration: duration,
		now:      time.Now,
		until:    make(map[highlightKey]time.Time),
	}
}

// Duration returns the highlight length.
func (h *Highlighter) Duration() time.Duration {
	return h.duration
}

// Publish starts (or restarts) the highlight for the changed side.
func (h *Highlighter) Publish(_ context.Context, change matches.Change) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	for k, until := range h.until {
		if !now.Before(until) {
			delete(h.until, k)
		}
	}
	h.until[highlightKey{matchID: change.MatchID, side: change.Side}] = now.Add(h.duration)
}

// Restart forgets every highlight.
func (h *Highlighter) Restart() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.until)
}

// Active reports whether the side's score is still highlighted.
func (h *Highlighter) Active(matchID int, side matches.Side) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	until, ok := h.until[highlightKey{matchID: matchID, side: side}]
	return ok && h.now().Before(until)
}
