package diff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/donaldgifford/new-item-notifier/internal/store"
	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

// CursorStrategy reports the items listed ahead of the stored latest ID.
// It assumes the upstream list is strictly newest first with no duplicates.
type CursorStrategy struct {
	store store.Store
}

// NewCursorStrategy returns a CursorStrategy backed by s.
func NewCursorStrategy(s store.Store) *CursorStrategy {
	return &CursorStrategy{store: s}
}

// Name implements Strategy.
func (*CursorStrategy) Name() string { return StrategyCursor }

// Diff implements Strategy. When the stored ID is missing or no longer
// listed, the result is a reset: zero new items and a fresh anchor.
func (c *CursorStrategy) Diff(ctx context.Context, current domain.ItemList) (*Result, error) {
	if len(current) == 0 {
		return &Result{}, nil
	}

	cur, err := c.store.GetCursor(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return &Result{Persist: true, Reset: true}, nil
	}
	if err != nil {
		return nil, err
	}

	switch i := current.Index(cur.LatestID); {
	case i == 0:
		return &Result{}, nil
	case i > 0:
		return &Result{NewItems: current[:i:i], Persist: true}, nil
	default:
		return &Result{Persist: true, Reset: true}, nil
	}
}

// Commit implements Strategy by storing the head of current. An empty list
// leaves the cursor untouched.
func (c *CursorStrategy) Commit(ctx context.Context, current domain.ItemList, at time.Time) error {
	head, ok := current.Head()
	if !ok {
		return nil
	}
	if err := c.store.PutCursor(ctx, domain.Cursor{UpdatedAt: at, LatestID: head.ID}); err != nil {
		return fmt.Errorf("writing cursor: %w", err)
	}
	return nil
}
