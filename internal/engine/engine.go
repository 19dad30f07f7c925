// Package engine runs the scrape, diff, notify and persist pipeline.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/new-item-notifier/internal/diff"
	"github.com/donaldgifford/new-item-notifier/internal/metrics"
	"github.com/donaldgifford/new-item-notifier/internal/notify"
	"github.com/donaldgifford/new-item-notifier/internal/scrape"
	"github.com/donaldgifford/new-item-notifier/internal/store"
	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

const tracerName = "github.com/donaldgifford/new-item-notifier/internal/engine"

// Snapshot orderings accepted by WithSnapshotOrdering.
const (
	// CommitBeforeNotify persists state before posting. A crash between the
	// two loses notifications but never duplicates them.
	CommitBeforeNotify = "before_notify"
	// CommitAfterNotify persists state once every post has completed.
	CommitAfterNotify = "after_notify"
)

// Run stages, used as the stage label on run error metrics.
const (
	stageScrape = "scrape"
	stageDiff   = "diff"
	stageCommit = "commit"
	stageLog    = "run_log"
)

// Runner executes a single pipeline run.
type Runner interface {
	Run(ctx context.Context) (*RunResult, error)
}

// RunResult describes how a run ended. RunID and Log are only set when the
// run reached the notification stage.
type RunResult struct {
	RunID     string           `json:"run_id,omitempty"`
	Status    domain.RunStatus `json:"status"`
	StartedAt time.Time        `json:"started_at"`
	NewItems  int              `json:"new_items"`
	Log       *domain.RunLog   `json:"log,omitempty"`
}

// Engine orchestrates a run against injected collaborators.
type Engine struct {
	scraper  scrape.Scraper
	strategy diff.Strategy
	store    store.Store
	notifier notify.Notifier
	log      *slog.Logger

	exclude     Predicate
	hashtags    []string
	itemBaseURL string
	ordering    string
	concurrency int
	now         func() time.Time
	newRunID    func() string
	tracer      trace.Tracer
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(
	sc scrape.Scraper,
	st diff.Strategy,
	s store.Store,
	n notify.Notifier,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		scraper:     sc,
		strategy:    st,
		store:       s,
		notifier:    n,
		log:         slog.Default(),
		itemBaseURL: scrape.DefaultBaseURL,
		ordering:    CommitBeforeNotify,
		concurrency: notify.DefaultConcurrency,
		now:         time.Now,
		newRunID:    uuid.NewString,
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithExclude sets the predicate that removes new items before posting.
func WithExclude(p Predicate) EngineOption {
	return func(e *Engine) {
		e.exclude = p
	}
}

// WithHashtags sets the hashtags appended to every notification.
func WithHashtags(tags ...string) EngineOption {
	return func(e *Engine) {
		e.hashtags = tags
	}
}

// WithItemBaseURL sets the base used to derive item URLs.
func WithItemBaseURL(u string) EngineOption {
	return func(e *Engine) {
		e.itemBaseURL = u
	}
}

// WithSnapshotOrdering chooses when state is committed relative to posting.
// Unknown values keep the default, CommitBeforeNotify.
func WithSnapshotOrdering(o string) EngineOption {
	return func(e *Engine) {
		if o == CommitAfterNotify {
			e.ordering = CommitAfterNotify
		}
	}
}

// WithConcurrency bounds the number of in-flight posts.
func WithConcurrency(n int) EngineOption {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// WithRunIDFunc overrides run ID generation.
func WithRunIDFunc(f func() string) EngineOption {
	return func(e *Engine) {
		e.newRunID = f
	}
}

// WithTracer sets the tracer used for run spans.
func WithTracer(t trace.Tracer) EngineOption {
	return func(e *Engine) {
		e.tracer = t
	}
}

// Run executes one pipeline pass. Fatal errors are returned; per-item
// notification failures are only recorded in the run log.
func (e *Engine) Run(ctx context.Context) (*RunResult, error) {
	startedAt, err := domain.TruncateToMinute(e.now())
	if err != nil {
		return nil, err
	}

	ctx, span := e.tracer.Start(ctx, "engine.Run", trace.WithAttributes(
		attribute.String("strategy", e.strategy.Name()),
	))
	defer span.End()

	timer := time.Now()
	defer func() {
		metrics.RunDuration.Observe(time.Since(timer).Seconds())
	}()

	log := e.log.With("strategy", e.strategy.Name())
	result := &RunResult{StartedAt: startedAt}

	// Scraping
	current, err := e.scraper.Scrape(ctx)
	if err != nil {
		return nil, e.fail(span, stageScrape, fmt.Errorf("scraping listing: %w", err))
	}
	metrics.ScrapedItems.Set(float64(len(current)))
	span.SetAttributes(attribute.Int("items.scraped", len(current)))

	// Diffing
	res, err := e.strategy.Diff(ctx, current)
	if err != nil {
		return nil, e.fail(span, stageDiff, fmt.Errorf("diffing against stored state: %w", err))
	}

	if res.Reset {
		if err := e.commit(ctx, current, startedAt); err != nil {
			return nil, e.fail(span, stageCommit, err)
		}
		log.Warn("stored anchor not found in listing, state reset without notifying",
			"head", headID(current),
		)
		return e.finish(span, result, domain.RunCursorReset), nil
	}

	if len(res.NewItems) == 0 {
		if res.Persist {
			if err := e.commit(ctx, current, startedAt); err != nil {
				return nil, e.fail(span, stageCommit, err)
			}
		}
		log.Info("no new items", "scraped", len(current))
		return e.finish(span, result, domain.RunNoNewItems), nil
	}

	result.NewItems = len(res.NewItems)
	metrics.NewItemsTotal.Add(float64(len(res.NewItems)))
	span.SetAttributes(attribute.Int("items.new", len(res.NewItems)))

	if e.ordering == CommitBeforeNotify {
		if err := e.commit(ctx, current, startedAt); err != nil {
			return nil, e.fail(span, stageCommit, err)
		}
	}

	// Filtering
	survivors := e.filter(res.NewItems)
	if dropped := len(res.NewItems) - len(survivors); dropped > 0 {
		metrics.FilteredItemsTotal.Add(float64(dropped))
		log.Info("excluded new items", "count", dropped)
	}
	if len(survivors) == 0 {
		if e.ordering == CommitAfterNotify {
			if err := e.commit(ctx, current, startedAt); err != nil {
				return nil, e.fail(span, stageCommit, err)
			}
		}
		log.Info("all new items excluded", "new_items", len(res.NewItems))
		return e.finish(span, result, domain.RunAllFiltered), nil
	}

	// Notifying
	result.RunID = e.newRunID()
	span.SetAttributes(attribute.String("run_id", result.RunID))
	log = log.With("run_id", result.RunID)

	chronological := survivors.Reversed()
	outcomes := notify.PostBatch(ctx, e.notifier, e.texts(chronological),
		notify.WithConcurrency(e.concurrency))

	runLog := domain.RunLog{
		Key:       domain.RunLogKey(startedAt),
		RunID:     result.RunID,
		CreatedAt: startedAt,
		Entries:   make([]domain.LogEntry, len(chronological)),
	}
	for i, o := range outcomes {
		entry := domain.LogEntry{ItemID: chronological[i].ID}
		if o.Success() {
			entry.NotificationID = domain.StringPtr(o.ID)
		} else {
			entry.Error = o.Err.Error()
			log.Warn("notification failed",
				"item_id", chronological[i].ID,
				"kind", notify.KindOf(o.Err),
				"error", o.Err,
			)
		}
		runLog.Entries[i] = entry
	}
	result.Log = &runLog

	// Persisting
	var errs []error
	if err := e.store.PutRunLog(ctx, runLog); err != nil {
		metrics.RunErrorsTotal.WithLabelValues(stageLog).Inc()
		errs = append(errs, fmt.Errorf("writing run log %s: %w", runLog.Key, err))
	} else {
		metrics.StateWritesTotal.WithLabelValues("run_log").Inc()
	}
	if e.ordering == CommitAfterNotify {
		if err := e.commit(ctx, current, startedAt); err != nil {
			metrics.RunErrorsTotal.WithLabelValues(stageCommit).Inc()
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}

	log.Info("run complete",
		"notified", runLog.NotifiedCount(),
		"failed", len(runLog.Entries)-runLog.NotifiedCount(),
		"log_key", runLog.Key,
	)
	return e.finish(span, result, domain.RunNotified), nil
}

func (e *Engine) commit(ctx context.Context, current domain.ItemList, at time.Time) error {
	if err := e.strategy.Commit(ctx, current, at); err != nil {
		return fmt.Errorf("committing %s state: %w", e.strategy.Name(), err)
	}
	metrics.StateWritesTotal.WithLabelValues(e.strategy.Name()).Inc()
	return nil
}

func (e *Engine) filter(items domain.ItemList) domain.ItemList {
	if e.exclude == nil {
		return items
	}
	out := make(domain.ItemList, 0, len(items))
	for _, it := range items {
		if !e.exclude(it) {
			out = append(out, it)
		}
	}
	return out
}

func (e *Engine) texts(items domain.ItemList) []string {
	texts := make([]string, len(items))
	for i, it := range items {
		texts[i] = notify.BuildText(notify.TextParams{
			Name:     it.Name,
			ShopName: it.ShopName,
			Hashtags: e.hashtags,
			URL:      scrape.ItemURL(e.itemBaseURL, it.ID),
		})
	}
	return texts
}

func (e *Engine) fail(span trace.Span, stage string, err error) error {
	metrics.RunErrorsTotal.WithLabelValues(stage).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func (*Engine) finish(span trace.Span, r *RunResult, status domain.RunStatus) *RunResult {
	r.Status = status
	metrics.RunsTotal.WithLabelValues(string(status)).Inc()
	span.SetAttributes(attribute.String("status", string(status)))
	return r
}

func headID(l domain.ItemList) int64 {
	head, _ := l.Head()
	return head.ID
}
