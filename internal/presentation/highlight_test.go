package presentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
)

type stepClock struct{ t time.Time }

func (c *stepClock) now() time.Time          { return c.t }
func (c *stepClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestHighlighter(d time.Duration) (*Highlighter, *stepClock) {
	clock := &stepClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	h := NewHighlighter(d)
	h.now = clock.now
	return h, clock
}

func TestHighlighterExpiresAfterDuration(t *testing.T) {
	h, clock := newTestHighlighter(0)
	assert.Equal(t, DefaultHighlightDuration, h.Duration())

	h.Publish(context.Background(), matches.Change{MatchID: 1, Side: matches.SideA})
	assert.True(t, h.Active(1, matches.SideA))
	assert.False(t, h.Active(1, matches.SideB))
	assert.False(t, h.Active(2, matches.SideA))

	clock.advance(599 * time.Millisecond)
	assert.True(t, h.Active(1, matches.SideA))

	clock.advance(time.Millisecond)
	assert.False(t, h.Active(1, matches.SideA))
}

func TestHighlighterRestartsOnRepeatChange(t *testing.T) {
	h, clock := newTestHighlighter(time.Second)

	h.Publish(context.Background(), matches.Change{MatchID: 3, Side: matches.SideB})
	clock.advance(800 * time.Millisecond)
	h.Publish(context.Background(), matches.Change{MatchID: 3, Side: matches.SideB})
	clock.advance(800 * time.Millisecond)

	assert.True(t, h.Active(3, matches.SideB))
}

func TestHighlighterPrunesExpired(t *testing.T) {
	h, clock := newTestHighlighter(time.Second)

	h.Publish(context.Background(), matches.Change{MatchID: 1, Side: matches.SideA})
	clock.advance(2 * time.Second)
	h.Publish(context.Background(), matches.Change{MatchID: 2, Side: matches.SideA})

	assert.Len(t, h.until, 1)
}

type countingSink struct{ got []matches.Change }

func (c *countingSink) Publish(_ context.Context, change matches.Change) {
	c.got = append(c.got, change)
}

func TestFanoutForwardsInOrder(t *testing.T) {
	first, second := &countingSink{}, &countingSink{}
	f := Fanout{first, nil, second}

	f.Publish(context.Background(), matches.Change{MatchID: 1})
	f.Publish(context.Background(), matches.Change{MatchID: 2})

	assert.Len(t, first.got, 2)
	assert.Len(t, second.got, 2)
	assert.Equal(t, 2, second.got[1].MatchID)
}

func TestHighlighterRestartClearsActiveHighlights(t *testing.T) {
	h, _ := newTestHighlighter(time.Second)
	h.Publish(context.Background(), matches.Change{MatchID: 1, Side: matches.SideA})
	h.Publish(context.Background(), matches.Change{MatchID: 3, Side: matches.SideB})

	h.Restart()

	assert.False(t, h.Active(1, matches.SideA))
	assert.False(t, h.Active(3, matches.SideB))
	assert.Empty(t, h.until)
}
