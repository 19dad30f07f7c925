// Package store defines the persisted-state abstraction for new-item-notifier.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running database.
package store

import (
	"context"
	"errors"

	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

// ErrNotFound is returned when the requested state has never been written.
// For snapshots and cursors this is the valid first-run state.
var ErrNotFound = errors.New("not found")

const defaultListLimit = 20

// Store defines all persisted-state operations.
type Store interface {
	// Snapshot
	GetSnapshot(ctx context.Context) (*domain.Snapshot, error)
	PutSnapshot(ctx context.Context, s domain.Snapshot) error

	// Cursor
	GetCursor(ctx context.Context) (*domain.Cursor, error)
	PutCursor(ctx context.Context, c domain.Cursor) error

	// Run logs
	PutRunLog(ctx context.Context, l domain.RunLog) error
	GetRunLog(ctx context.Context, key string) (*domain.RunLog, error)
	ListRunLogs(ctx context.Context, limit int) ([]domain.RunLog, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}

// runLogKey returns the log's key, deriving it from CreatedAt when unset.
func runLogKey(l *domain.RunLog) string {
	if l.Key != "" {
		return l.Key
	}
	return domain.RunLogKey(l.CreatedAt)
}

func listLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}
