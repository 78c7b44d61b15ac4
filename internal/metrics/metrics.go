package metrics

import (
	"sync"
	"time"
)

type sportStats struct {
	advances int
	skipped  int
	finals   int
	points   int
}

type schedulerStats struct {
	cycles    int
	errors    int
	lastDelay time.Duration
}

// Recorder captures lightweight, in-memory metrics about simulator activity and
// forwards them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu        sync.Mutex
	stats     map[string]*sportStats
	scheduler schedulerStats
	requests  map[string]int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:    make(map[string]*sportStats),
		requests: make(map[string]int),
		otel:     otel,
	}
}

// RecordAdvance tracks one applied score update and the points it added.
// Tennis updates count as a single point step.
func (r *Recorder) RecordAdvance(sport string, points int, finalized bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(sport)
	stats.advances++
	stats.points += points
	if finalized {
		stats.finals++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAdvance(sport, points, finalized)
	}
}

// RecordSkipped tracks an advance that landed on a finished match.
func (r *Recorder) RecordSkipped(sport string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ensureStats(sport).skipped++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSkipped(sport)
	}
}

// RecordSchedulerCycle tracks one scheduled run, the delay that preceded it, and its error.
func (r *Recorder) RecordSchedulerCycle(delay, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.scheduler.cycles++
	r.scheduler.lastDelay = delay
	if err != nil {
		r.scheduler.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordScheduler(delay, duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics. path should be a route template.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.requests[path]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordHTTPRequest(method, path, status, duration)
	}
}

// HTTPRequests returns how many requests were recorded for the route.
func (r *Recorder) HTTPRequests(path string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[path]
}

// Snapshot is a copy of the stats for one sport.
type Snapshot struct {
	Advances int
	Skipped  int
	Finals   int
	Points   int
}

// Snapshot returns a copy of the current stats for the sport.
func (r *Recorder) Snapshot(sport string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[sport]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Advances: stats.advances,
		Skipped:  stats.skipped,
		Finals:   stats.finals,
		Points:   stats.points,
	}
}

// SchedulerSnapshot is a copy of the scheduler stats.
type SchedulerSnapshot struct {
	Cycles    int
	Errors    int
	LastDelay time.Duration
}

// Scheduler returns a copy of the scheduler stats.
func (r *Recorder) Scheduler() SchedulerSnapshot {
	if r == nil {
		return SchedulerSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return SchedulerSnapshot{
		Cycles:    r.scheduler.cycles,
		Errors:    r.scheduler.errors,
		LastDelay: r.scheduler.lastDelay,
	}
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(sport string) *sportStats {
	stats, ok := r.stats[sport]
	if !ok {
		stats = &sportStats{}
		r.stats[sport] = stats
	}
	return stats
}
