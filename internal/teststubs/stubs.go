package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
)

// SequenceSource is a deterministic random source that replays Values in order,
// wrapping around once exhausted. An empty source always yields 0.
type SequenceSource struct {
	mu     sync.Mutex
	Values []float64
	next   int
}

// NewSequenceSource builds a source replaying the given values.
func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{Values: values}
}

// Float64 returns the next configured value.
func (s *SequenceSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// Draws reports how many values have been consumed.
func (s *SequenceSource) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// RecordingNotifier collects published changes for assertions.
type RecordingNotifier struct {
	mu      sync.Mutex
	changes []matches.Change
	Calls   atomic.Int32
	Notify  chan struct{}
}

// Publish records the change and signals Notify on the first call.
func (n *RecordingNotifier) Publish(_ context.Context, change matches.Change) {
	n.mu.Lock()
	n.changes = append(n.changes, change)
	n.mu.Unlock()
	n.Calls.Add(1)
	if n.Notify != nil {
		select {
		case <-n.Notify:
		default:
			close(n.Notify)
		}
	}
}

// Changes returns a copy of the recorded changes.
func (n *RecordingNotifier) Changes() []matches.Change {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]matches.Change(nil), n.changes...)
}

// StubTask is a scheduler task that counts runs and returns Err.
type StubTask struct {
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// Run increments the call counter and signals Notify on each call when buffered.
func (t *StubTask) Run(_ context.Context) error {
	t.Calls.Add(1)
	if t.Notify != nil {
		select {
		case t.Notify <- struct{}{}:
		default:
		}
	}
	return t.Err
}
