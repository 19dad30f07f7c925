package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/new-item-notifier/internal/metrics"
)

// ErrRunInProgress is returned by Scheduler.Run when another run holds the
// scheduler.
var ErrRunInProgress = errors.New("a run is already in progress")

// Scheduler runs the pipeline periodically. At most one run touches state at
// a time: Run and scheduled ticks give up when a run is in flight, RunOnce
// waits for it.
type Scheduler struct {
	cron    *cron.Cron
	runner  Runner
	log     *slog.Logger
	entryID cron.EntryID

	mu sync.Mutex
}

// NewScheduler creates a new Scheduler that invokes r every interval.
func NewScheduler(r Runner, interval time.Duration, log *slog.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("schedule interval must be positive (got %s)", interval)
	}

	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	s := &Scheduler{
		cron:   c,
		runner: r,
		log:    log,
	}

	id, err := c.AddFunc("@every "+interval.String(), s.runScheduled)
	if err != nil {
		return nil, fmt.Errorf("registering run schedule: %w", err)
	}
	s.entryID = id

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
	s.SyncNextRunTimestamp()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// NextRun returns when the next scheduled run fires. It is zero until the
// scheduler has started.
func (s *Scheduler) NextRun() time.Time {
	return s.cron.Entry(s.entryID).Next
}

// SyncNextRunTimestamp publishes NextRun as a gauge.
func (s *Scheduler) SyncNextRunTimestamp() {
	if next := s.NextRun(); !next.IsZero() {
		metrics.SchedulerNextRunTimestamp.Set(float64(next.Unix()))
	}
}

// Run implements Runner. It returns ErrRunInProgress without waiting when
// another run is in flight.
func (s *Scheduler) Run(ctx context.Context) (*RunResult, error) {
	if !s.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.mu.Unlock()
	return s.execute(ctx)
}

// RunOnce executes the pipeline immediately, waiting for any in-flight run.
func (s *Scheduler) RunOnce(ctx context.Context) (*RunResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.execute(ctx)
}

func (s *Scheduler) execute(ctx context.Context) (*RunResult, error) {
	res, err := s.runner.Run(ctx)
	if err != nil {
		s.log.Error("run failed", "error", err)
		return res, err
	}
	s.log.Info("run finished",
		"status", res.Status,
		"run_id", res.RunID,
		"new_items", res.NewItems,
	)
	return res, nil
}

func (s *Scheduler) runScheduled() {
	defer s.SyncNextRunTimestamp()
	s.log.Info("scheduled run starting")
	if _, err := s.Run(context.Background()); errors.Is(err, ErrRunInProgress) {
		metrics.SchedulerSkippedTotal.Inc()
		s.log.Warn("scheduled run skipped, manual run still in progress")
	}
}

// cronLogger adapts slog to cron.Logger and counts skipped ticks.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	if msg == "skip" {
		metrics.SchedulerSkippedTotal.Inc()
		l.log.Warn("scheduled run skipped, previous run still in progress")
		return
	}
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
