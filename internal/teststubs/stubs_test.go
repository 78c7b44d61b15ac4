package teststubs

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
)

func TestSequenceSourceReplaysAndWraps(t *testing.T) {
	src := NewSequenceSource(0.1, 0.9)
	got := []float64{src.Float64(), src.Float64(), src.Float64()}
	want := []float64{0.1, 0.9, 0.1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("draw %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if src.Draws() != 3 {
		t.Fatalf("expected 3 draws, got %d", src.Draws())
	}
}

func TestSequenceSourceEmptyYieldsZero(t *testing.T) {
	var src SequenceSource
	if v := src.Float64(); v != 0 {
		t.Fatalf("expected 0 from empty source, got %v", v)
	}
}

func TestRecordingNotifierCollectsChanges(t *testing.T) {
	n := &RecordingNotifier{Notify: make(chan struct{})}
	n.Publish(context.Background(), matches.Change{MatchID: 1, Side: matches.SideA})
	n.Publish(context.Background(), matches.Change{MatchID: 1, Side: matches.SideB})

	select {
	case <-n.Notify:
	default:
		t.Fatalf("expected notify channel closed after first publish")
	}
	if got := len(n.Changes()); got != 2 {
		t.Fatalf("expected 2 changes, got %d", got)
	}
	if n.Calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", n.Calls.Load())
	}
}

func TestStubTaskReturnsConfiguredError(t *testing.T) {
	task := &StubTask{Err: errors.New("boom"), Notify: make(chan struct{}, 1)}
	if err := task.Run(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	select {
	case <-task.Notify:
	default:
		t.Fatalf("expected notify signal")
	}
}
