package testutil

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/live-scores-service/internal/scheduler"
)

// StubScheduler implements the server's Scheduler for tests.
type StubScheduler struct {
	StartCalls int
	StopCalls  int
	Err        error
	StatusVal  scheduler.Status
}

func (s *StubScheduler) Start(_ context.Context) {
	s.StartCalls++
}

func (s *StubScheduler) Stop(_ context.Context) error {
	s.StopCalls++
	return s.Err
}

func (s *StubScheduler) Status() scheduler.Status {
	return s.StatusVal
}

// StubHTTPServer implements the server's httpServer for tests. ListenAndServe
// returns ListenErr immediately (use http.ErrServerClosed for a clean exit).
// When Unblock is set, Shutdown waits for it or for ctx to end.
type StubHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ListenErr     error
	ShutdownErr   error
	Unblock       chan struct{}
	ListenCalls   int
	ShutdownCalls int
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.ListenCalls++
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.ShutdownCalls++
	if s.Unblock == nil {
		return s.ShutdownErr
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.Unblock:
		return s.ShutdownErr
	}
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NewServeMux()
	}
	return s.HandlerVal
}
