package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/new-item-notifier/internal/metrics"
	"github.com/donaldgifford/new-item-notifier/pkg/logger"
	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

// fakeRunner counts invocations and returns a canned result.
type fakeRunner struct {
	calls  atomic.Int32
	result *RunResult
	err    error
}

func (f *fakeRunner) Run(context.Context) (*RunResult, error) {
	f.calls.Add(1)
	return f.result, f.err
}

func TestNewScheduler_RegistersCronEntry(t *testing.T) {
	t.Parallel()

	sched, err := NewScheduler(&fakeRunner{}, 10*time.Minute, logger.Discard())
	require.NoError(t, err)

	assert.Len(t, sched.Entries(), 1)
	assert.True(t, sched.NextRun().IsZero(), "next run is unset before Start")
}

func TestNewScheduler_RejectsNonPositiveInterval(t *testing.T) {
	t.Parallel()

	_, err := NewScheduler(&fakeRunner{}, 0, logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule interval must be positive")
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	sched, err := NewScheduler(&fakeRunner{}, time.Hour, logger.Discard())
	require.NoError(t, err)

	sched.Start()
	assert.WithinDuration(t, time.Now().Add(time.Hour), sched.NextRun(), 5*time.Second)
	assert.Greater(t, ptestutil.ToFloat64(metrics.SchedulerNextRunTimestamp), float64(0))

	ctx := sched.Stop()
	<-ctx.Done()
}

func TestScheduler_RunOnce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		runner  *fakeRunner
		wantErr bool
	}{
		{
			name: "success",
			runner: &fakeRunner{result: &RunResult{
				RunID:  "abc",
				Status: domain.RunNotified,
			}},
		},
		{
			name:    "failure is returned",
			runner:  &fakeRunner{err: errors.New("scraping listing: 503")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sched, err := NewScheduler(tt.runner, time.Hour, logger.Discard())
			require.NoError(t, err)

			res, err := sched.RunOnce(context.Background())
			assert.Equal(t, int32(1), tt.runner.calls.Load())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "abc", res.RunID)
		})
	}
}

func TestScheduler_ScheduledTickInvokesRunner(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{result: &RunResult{Status: domain.RunNoNewItems}}
	sched, err := NewScheduler(r, time.Second, logger.Discard())
	require.NoError(t, err)

	sched.Start()
	defer sched.Stop()

	assert.Eventually(t, func() bool { return r.calls.Load() >= 1 }, 5*time.Second, 50*time.Millisecond)
}

func TestCronLogger_CountsSkippedTicks(t *testing.T) {
	t.Parallel()

	before := ptestutil.ToFloat64(metrics.SchedulerSkippedTotal)

	l := cronLogger{log: logger.Discard()}
	l.Info("skip")
	l.Info("wake")
	l.Error(errors.New("panic"), "recovered")

	assert.InDelta(t, 1.0, ptestutil.ToFloat64(metrics.SchedulerSkippedTotal)-before, 0.0001)
}

// blockingRunner holds each run open until released.
type blockingRunner struct {
	active  atomic.Int32
	maxSeen atomic.Int32
	release chan struct{}
}

func (b *blockingRunner) Run(context.Context) (*RunResult, error) {
	n := b.active.Add(1)
	for {
		m := b.maxSeen.Load()
		if n <= m || b.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	<-b.release
	b.active.Add(-1)
	return &RunResult{Status: domain.RunNoNewItems}, nil
}

func TestScheduler_RunRejectsWhileBusy(t *testing.T) {
	t.Parallel()

	r := &blockingRunner{release: make(chan struct{})}
	sched, err := NewScheduler(r, time.Hour, logger.Discard())
	require.NoError(t, err)

	var runner Runner = sched
	first := make(chan error, 1)
	go func() {
		_, err := runner.Run(context.Background())
		first <- err
	}()
	assert.Eventually(t, func() bool { return r.active.Load() == 1 }, time.Second, 10*time.Millisecond)

	res, err := runner.Run(context.Background())
	require.ErrorIs(t, err, ErrRunInProgress)
	assert.Nil(t, res)

	r.release <- struct{}{}
	require.NoError(t, <-first)
	assert.Equal(t, int32(1), r.maxSeen.Load())
}

func TestScheduler_RunOnceWaitsForInFlightRun(t *testing.T) {
	t.Parallel()

	r := &blockingRunner{release: make(chan struct{})}
	sched, err := NewScheduler(r, time.Hour, logger.Discard())
	require.NoError(t, err)

	done := make(chan struct{}, 2)
	for range 2 {
		go func() {
			_, _ = sched.RunOnce(context.Background())
			done <- struct{}{}
		}()
	}

	assert.Eventually(t, func() bool { return r.active.Load() == 1 }, time.Second, 10*time.Millisecond)
	r.release <- struct{}{}
	r.release <- struct{}{}
	<-done
	<-done

	assert.Equal(t, int32(1), r.maxSeen.Load())
}

func TestScheduler_TickSkippedDuringManualRun(t *testing.T) {
	r := &blockingRunner{release: make(chan struct{})}
	sched, err := NewScheduler(r, time.Hour, logger.Discard())
	require.NoError(t, err)

	manual := make(chan error, 1)
	go func() {
		_, err := sched.Run(context.Background())
		manual <- err
	}()
	assert.Eventually(t, func() bool { return r.active.Load() == 1 }, time.Second, 10*time.Millisecond)

	before := ptestutil.ToFloat64(metrics.SchedulerSkippedTotal)
	sched.runScheduled()
	assert.InDelta(t, 1.0, ptestutil.ToFloat64(metrics.SchedulerSkippedTotal)-before, 0.0001)

	r.release <- struct{}{}
	require.NoError(t, <-manual)
}
