package server

import (
	"context"

	"github.com/preston-bernstein/live-scores-service/internal/scheduler"
)

// Scheduler defines the minimal score scheduler behavior needed by the server.
type Scheduler interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() scheduler.Status
}
