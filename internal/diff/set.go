package diff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/donaldgifford/new-item-notifier/internal/store"
	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

// SetStrategy reports items whose IDs are absent from the stored snapshot.
// It tolerates reordering and items disappearing then reappearing upstream.
type SetStrategy struct {
	store  store.Store
	window int
}

// NewSetStrategy returns a SetStrategy that only considers the first window
// items of each scrape. A window of zero or less considers every item.
func NewSetStrategy(s store.Store, window int) *SetStrategy {
	return &SetStrategy{store: s, window: window}
}

// Name implements Strategy.
func (*SetStrategy) Name() string { return StrategySet }

// Diff implements Strategy. A missing snapshot is treated as an empty set.
func (s *SetStrategy) Diff(ctx context.Context, current domain.ItemList) (*Result, error) {
	known := map[int64]struct{}{}

	snap, err := s.store.GetSnapshot(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		known = snap.Set()
	}

	candidates := current
	if s.window > 0 && len(candidates) > s.window {
		candidates = candidates[:s.window]
	}

	var fresh domain.ItemList
	for _, it := range candidates {
		if _, ok := known[it.ID]; !ok {
			fresh = append(fresh, it)
		}
	}

	return &Result{NewItems: fresh, Persist: len(fresh) > 0}, nil
}

// Commit implements Strategy by overwriting the snapshot with every ID in
// current.
func (s *SetStrategy) Commit(ctx context.Context, current domain.ItemList, at time.Time) error {
	snap := domain.Snapshot{CapturedAt: at, KnownIDs: current.IDs()}
	if err := s.store.PutSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
