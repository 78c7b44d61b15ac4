package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksAdvancesAndFinals(t *testing.T) {
	rec := NewRecorder()
	rec.RecordAdvance("Basketball", 2, false)
	rec.RecordAdvance("Basketball", 3, true)
	rec.RecordSkipped("Basketball")

	snap := rec.Snapshot("Basketball")
	if snap.Advances != 2 || snap.Points != 5 || snap.Finals != 1 || snap.Skipped != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if other := rec.Snapshot("Tennis"); other != (Snapshot{}) {
		t.Fatalf("expected empty snapshot for untouched sport, got %+v", other)
	}
}

func TestRecorderTracksSchedulerCycles(t *testing.T) {
	rec := NewRecorder()
	rec.RecordSchedulerCycle(15*time.Second, time.Millisecond, nil)
	rec.RecordSchedulerCycle(20*time.Second, time.Millisecond, errors.New("boom"))

	got := rec.Scheduler()
	if got.Cycles != 2 || got.Errors != 1 {
		t.Fatalf("unexpected scheduler snapshot %+v", got)
	}
	if got.LastDelay != 20*time.Second {
		t.Fatalf("expected last delay 20s, got %s", got.LastDelay)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordAdvance("Football", 1, false)
	rec.RecordSkipped("Football")
	rec.RecordSchedulerCycle(time.Second, time.Millisecond, nil)
	rec.RecordHTTPRequest("GET", "/matches", 200, time.Millisecond)
	if rec.Snapshot("Football") != (Snapshot{}) || rec.Scheduler() != (SchedulerSnapshot{}) {
		t.Fatalf("expected zero snapshots from nil recorder")
	}
}

func TestRecordHTTPRequestCountsByRoute(t *testing.T) {
	rec := NewRecorder()
	rec.RecordHTTPRequest("GET", "/matches", 200, time.Millisecond)
	rec.RecordHTTPRequest("GET", "/matches", 400, time.Millisecond)
	rec.RecordHTTPRequest("GET", "/matches/{id}", 404, time.Millisecond)

	if got := rec.HTTPRequests("/matches"); got != 2 {
		t.Fatalf("expected 2 requests for /matches, got %d", got)
	}
	if got := rec.HTTPRequests("/matches/{id}"); got != 1 {
		t.Fatalf("expected 1 request for /matches/{id}, got %d", got)
	}
	if got := rec.HTTPRequests("/health"); got != 0 {
		t.Fatalf("expected no requests for /health, got %d", got)
	}
}
