// Package diff computes which scraped items are new relative to persisted
// state. Two interchangeable strategies are provided: SetStrategy compares
// against every ID seen so far, CursorStrategy compares against the single
// most recent ID.
package diff

import (
	"context"
	"fmt"
	"time"

	"github.com/donaldgifford/new-item-notifier/internal/store"
	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

// Strategy names accepted by New.
const (
	StrategySet    = "set"
	StrategyCursor = "cursor"
)

// DefaultWindow is the number of leading items SetStrategy considers for
// new-item candidacy.
const DefaultWindow = 30

// Result is the outcome of a single diff.
type Result struct {
	// NewItems is newest first, a prefix or order-preserving subset of the
	// current list.
	NewItems domain.ItemList
	// Persist is true when Commit should be called for this run.
	Persist bool
	// Reset is true when the stored anchor could not be located and the
	// delta is unknown. NewItems is empty in that case.
	Reset bool
}

// Strategy detects new items and commits the state that future runs diff
// against.
type Strategy interface {
	Name() string
	// Diff reads persisted state once and compares it with current.
	Diff(ctx context.Context, current domain.ItemList) (*Result, error)
	// Commit persists the state derived from current.
	Commit(ctx context.Context, current domain.ItemList, at time.Time) error
}

// Option configures a Strategy built by New.
type Option func(*options)

type options struct {
	window int
}

// WithWindow sets the SetStrategy candidacy window. Zero considers the whole
// list. Ignored by CursorStrategy.
func WithWindow(k int) Option {
	return func(o *options) {
		o.window = k
	}
}

// New returns the strategy registered under name.
func New(name string, s store.Store, opts ...Option) (Strategy, error) {
	o := options{window: DefaultWindow}
	for _, opt := range opts {
		opt(&o)
	}

	switch name {
	case StrategySet, "":
		return NewSetStrategy(s, o.window), nil
	case StrategyCursor:
		return NewCursorStrategy(s), nil
	default:
		return nil, fmt.Errorf("unknown diff strategy %q", name)
	}
}
