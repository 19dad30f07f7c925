package notify

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/new-item-notifier/internal/metrics"
)

// DefaultConcurrency is the number of posts PostBatch keeps in flight.
const DefaultConcurrency = 4

// Outcome is the result of posting one text in a batch. Index is the text's
// position in the input.
type Outcome struct {
	Index     int
	ID        string
	RateLimit *RateLimit
	Err       error
}

// Success reports whether the post succeeded.
func (o Outcome) Success() bool {
	return o.Err == nil
}

type batchConfig struct {
	concurrency int
}

// BatchOption configures PostBatch.
type BatchOption func(*batchConfig)

// WithConcurrency bounds the number of posts in flight. Values below 1 are
// ignored.
func WithConcurrency(n int) BatchOption {
	return func(c *batchConfig) {
		if n >= 1 {
			c.concurrency = n
		}
	}
}

// PostBatch posts every text through n concurrently and waits for all of
// them. A failed post never cancels the others. The returned slice has one
// Outcome per text, in input order.
func PostBatch(ctx context.Context, n Notifier, texts []string, opts ...BatchOption) []Outcome {
	cfg := batchConfig{concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(&cfg)
	}

	outcomes := make([]Outcome, len(texts))

	var g errgroup.Group
	g.SetLimit(cfg.concurrency)

	for i, text := range texts {
		g.Go(func() error {
			outcomes[i] = postOne(ctx, n, i, text)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func postOne(ctx context.Context, n Notifier, i int, text string) Outcome {
	start := time.Now()
	res, err := n.Post(ctx, text)
	metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	if err == nil && res == nil {
		err = &Error{Kind: KindResponse, Message: "notifier returned no result"}
	}

	if err != nil {
		metrics.NotificationFailuresTotal.WithLabelValues(string(KindOf(err))).Inc()
		return Outcome{Index: i, Err: err}
	}

	metrics.NotificationsSentTotal.Inc()

	if res.RateLimit != nil {
		metrics.NotificationRateRemaining.Set(float64(res.RateLimit.Remaining))
	}
	return Outcome{Index: i, ID: res.ID, RateLimit: res.RateLimit}
}
