package presentation

import (
	"context"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
)

// Sink receives score changes for display.
type Sink interface {
	Publish(ctx context.Context, change matches.Change)
}

// Fanout forwards every change to each notifier in order.
type Fanout []Sink

// Publish implements Sink.
func (f Fanout) Publish(ctx context.Context, change matches.Change) {
	for _, n := range f {
		if n != nil {
			n.Publish(ctx, change)
		}
	}
}
