package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/live-scores-service/internal/logging"
	"github.com/preston-bernstein/live-scores-service/internal/metrics"
)

const (
	DefaultMinDelay = 15 * time.Second
	DefaultMaxDelay = 30 * time.Second
)

// Task is the unit of work run after each randomized delay.
type Task interface {
	Run(ctx context.Context) error
}

// TaskFunc adapts a function to Task.
type TaskFunc func(ctx context.Context) error

// Run calls f(ctx).
func (f TaskFunc) Run(ctx context.Context) error { return f(ctx) }

// RandomSource yields uniform values in [0,1).
type RandomSource interface {
	Float64() float64
}

type timer interface {
	C() <-chan time.Time
	Stop() bool
}

type realTimer struct{ t *time.Timer }

func (r realTimer) C() <-chan time.Time { return r.t.C }
func (r realTimer) Stop() bool          { return r.t.Stop() }

func newRealTimer(d time.Duration) timer { return realTimer{t: time.NewTimer(d)} }

// Scheduler waits a random delay in [min, max], runs the task, and repeats
// until stopped. Runs never overlap: the next delay starts after the task returns.
type Scheduler struct {
	task     Task
	rand     RandomSource
	logger   *slog.Logger
	metrics  *metrics.Recorder
	minDelay time.Duration
	maxDelay time.Duration
	newTimer func(time.Duration) timer
	now      func() time.Time

	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the scheduling loop.
type Status struct {
	Running             bool
	Runs                int
	ConsecutiveFailures int
	LastError           string
	LastRun             time.Time
	NextDelay           time.Duration
	NextRunAt           time.Time
}

// IsReady reports whether the loop is running and not failing repeatedly.
func (s Status) IsReady() bool {
	return s.Running && s.ConsecutiveFailures < 3
}

// New constructs a Scheduler. Non-positive bounds fall back to the defaults and
// an inverted range is collapsed onto min.
func New(task Task, rnd RandomSource, logger *slog.Logger, recorder *metrics.Recorder, minDelay, maxDelay time.Duration) *Scheduler {
	if minDelay <= 0 {
		minDelay = DefaultMinDelay
	}
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Scheduler{
		task:     task,
		rand:     rnd,
		logger:   logger,
		metrics:  recorder,
		minDelay: minDelay,
		maxDelay: maxDelay,
		newTimer: newRealTimer,
		now:      time.Now,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

// Start begins the loop until the context is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return
	}
	s.started = true
	s.startMu.Unlock()

	s.setRunning(true)
	logging.Info(s.logger, "scheduler started",
		slog.Int64("min_delay_ms", s.minDelay.Milliseconds()),
		slog.Int64("max_delay_ms", s.maxDelay.Milliseconds()),
	)

	go func() {
		defer close(s.exited)
		defer s.setRunning(false)

		for {
			delay := s.nextDelay()
			s.recordScheduled(delay)
			t := s.newTimer(delay)

			select {
			case <-ctx.Done():
				t.Stop()
				logging.Info(s.logger, "scheduler stopped")
				return
			case <-s.done:
				t.Stop()
				logging.Info(s.logger, "scheduler stopped")
				return
			case <-t.C():
				s.runOnce(ctx, delay)
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight run to finish or ctx to expire.
// It is safe to call more than once and before Start.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.done)
	})

	s.startMu.Lock()
	started := s.started
	s.startMu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-s.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// nextDelay returns floor(r*(max-min+1)) + min, in whole milliseconds.
func (s *Scheduler) nextDelay() time.Duration {
	minMs := s.minDelay.Milliseconds()
	maxMs := s.maxDelay.Milliseconds()
	r := 0.0
	if s.rand != nil {
		r = s.rand.Float64()
	}
	ms := int64(r*float64(maxMs-minMs+1)) + minMs
	if ms > maxMs {
		ms = maxMs
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *Scheduler) runOnce(ctx context.Context, delay time.Duration) {
	start := time.Now()
	err := s.task.Run(ctx)
	duration := time.Since(start)
	s.metrics.RecordSchedulerCycle(delay, duration, err)
	if err != nil {
		logging.Error(s.logger, "scheduled run failed", err,
			logging.FieldDelayMS, delay.Milliseconds(),
			logging.FieldDurationMS, duration.Milliseconds(),
		)
		s.recordFailure(err)
		return
	}
	s.recordSuccess()
	logging.Debug(s.logger, "scheduled run complete",
		logging.FieldDelayMS, delay.Milliseconds(),
		logging.FieldDurationMS, duration.Milliseconds(),
	)
}

func (s *Scheduler) setRunning(running bool) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.Running = running
}

func (s *Scheduler) recordScheduled(delay time.Duration) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.NextDelay = delay
	s.status.NextRunAt = s.now().Add(delay)
}

func (s *Scheduler) recordSuccess() {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.Runs++
	s.status.ConsecutiveFailures = 0
	s.status.LastError = ""
	s.status.LastRun = s.now()
}

func (s *Scheduler) recordFailure(err error) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.Runs++
	s.status.ConsecutiveFailures++
	if err != nil {
		s.status.LastError = err.Error()
	}
	s.status.LastRun = s.now()
}

// Status returns a snapshot of the scheduler's recent health.
func (s *Scheduler) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}
