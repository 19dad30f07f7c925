package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/donaldgifford/new-item-notifier/internal/metrics"
)

// ErrDailyLimitReached is returned when the daily post quota has been exhausted.
var ErrDailyLimitReached = errors.New("daily post limit reached")

// RateLimiter controls posting rate and daily usage limits.
// It uses a token bucket for per-second rate limiting and a rolling
// 24-hour window for daily quota tracking. A maxDaily of zero disables
// the daily quota.
type RateLimiter struct {
	limiter  *rate.Limiter
	daily    atomic.Int64
	maxDaily int64
	resetAt  time.Time
	mu       sync.Mutex
	nowFunc  func() time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter creates a rate limiter with the given per-second rate,
// burst size, and daily limit. The daily window resets 24 hours after it
// opened.
func NewRateLimiter(
	perSecond float64,
	burst int,
	maxDaily int64,
	opts ...RateLimiterOption,
) *RateLimiter {
	r := &RateLimiter{
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
		maxDaily: maxDaily,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.nowFunc().Add(24 * time.Hour)
	return r
}

// Wait blocks until the rate limiter allows a post, or the context is
// canceled. Returns ErrDailyLimitReached if the daily quota is exhausted.
// The quota slot is reserved before waiting so concurrent callers never
// overshoot it.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.checkDailyReset()

	if r.maxDaily > 0 {
		for {
			cur := r.daily.Load()
			if cur >= r.maxDaily {
				return fmt.Errorf("%w (%d/%d)", ErrDailyLimitReached, cur, r.maxDaily)
			}
			if r.daily.CompareAndSwap(cur, cur+1) {
				break
			}
		}
	} else {
		r.daily.Add(1)
	}

	if err := r.limiter.Wait(ctx); err != nil {
		r.daily.Add(-1)
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

// DailyCount returns the number of posts in the current window.
func (r *RateLimiter) DailyCount() int64 {
	return r.daily.Load()
}

// Remaining returns the posts left in the current 24-hour window, or -1
// when there is no daily quota.
func (r *RateLimiter) Remaining() int64 {
	if r.maxDaily <= 0 {
		return -1
	}
	return max(r.maxDaily-r.daily.Load(), 0)
}

// ResetAt returns the time when the current 24-hour window expires.
func (r *RateLimiter) ResetAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetAt
}

func (r *RateLimiter) checkDailyReset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	if now.After(r.resetAt) {
		r.daily.Store(0)
		r.resetAt = now.Add(24 * time.Hour)
	}
}

// LimitedNotifier gates another Notifier behind a RateLimiter.
type LimitedNotifier struct {
	next    Notifier
	limiter *RateLimiter
}

// Limited wraps n so every post first waits on rl.
func Limited(n Notifier, rl *RateLimiter) *LimitedNotifier {
	return &LimitedNotifier{next: n, limiter: rl}
}

// Post implements Notifier.Post. An exhausted daily quota fails only this
// post, with KindRateLimit.
func (l *LimitedNotifier) Post(ctx context.Context, text string) (*PostResult, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		if errors.Is(err, ErrDailyLimitReached) {
			return nil, &Error{Kind: KindRateLimit, Message: "client-side daily quota", Err: err}
		}
		return nil, &Error{Kind: KindRequest, Message: "waiting for rate limiter", Err: err}
	}
	metrics.NotificationDailyUsage.Set(float64(l.limiter.DailyCount()))

	return l.next.Post(ctx, text)
}
