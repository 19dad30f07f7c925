package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/new-item-notifier/internal/store"
	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

// runStoreContract exercises the behavior every Store backend must share.
// newStore must return an empty store.
func runStoreContract(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Helper()

	base := time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)

	t.Run("missing snapshot is not found", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetSnapshot(context.Background())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("snapshot round trip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		want := domain.Snapshot{CapturedAt: base, KnownIDs: []int64{30, 20, 10}}
		require.NoError(t, s.PutSnapshot(ctx, want))

		got, err := s.GetSnapshot(ctx)
		require.NoError(t, err)
		assert.True(t, want.CapturedAt.Equal(got.CapturedAt))
		assert.Equal(t, want.KnownIDs, got.KnownIDs)
	})

	t.Run("snapshot overwrite replaces ids", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.PutSnapshot(ctx, domain.Snapshot{CapturedAt: base, KnownIDs: []int64{1, 2}}))
		require.NoError(t, s.PutSnapshot(ctx, domain.Snapshot{CapturedAt: base.Add(time.Minute), KnownIDs: []int64{3}}))

		got, err := s.GetSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{3}, got.KnownIDs)
		assert.True(t, base.Add(time.Minute).Equal(got.CapturedAt))
	})

	t.Run("empty snapshot is valid", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.PutSnapshot(ctx, domain.Snapshot{CapturedAt: base}))

		got, err := s.GetSnapshot(ctx)
		require.NoError(t, err)
		assert.Empty(t, got.KnownIDs)
		assert.NotNil(t, got.KnownIDs)
	})

	t.Run("cursor round trip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.GetCursor(ctx)
		require.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, s.PutCursor(ctx, domain.Cursor{UpdatedAt: base, LatestID: 42}))
		require.NoError(t, s.PutCursor(ctx, domain.Cursor{UpdatedAt: base, LatestID: 43}))

		got, err := s.GetCursor(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(43), got.LatestID)
	})

	t.Run("run log round trip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		want := domain.RunLog{
			RunID:     "run-1",
			CreatedAt: base,
			Entries: []domain.LogEntry{
				{ItemID: 1, NotificationID: domain.StringPtr("t1")},
				{ItemID: 2, Error: "rate limited"},
			},
		}
		require.NoError(t, s.PutRunLog(ctx, want))

		want.Key = "logs/2024-01-01T1230.json"
		got, err := s.GetRunLog(ctx, want.Key)
		require.NoError(t, err)
		if diff := cmp.Diff(want, *got, cmpopts.EquateApproxTime(time.Millisecond)); diff != "" {
			t.Errorf("run log mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing run log is not found", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetRunLog(context.Background(), "logs/1999-01-01T0000.json")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("run log with no entries", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.PutRunLog(ctx, domain.RunLog{CreatedAt: base}))

		got, err := s.GetRunLog(ctx, domain.RunLogKey(base))
		require.NoError(t, err)
		assert.Empty(t, got.Entries)
	})

	t.Run("list run logs newest first with limit", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for i := range 5 {
			at := base.Add(time.Duration(i) * time.Minute)
			require.NoError(t, s.PutRunLog(ctx, domain.RunLog{
				CreatedAt: at,
				Entries:   []domain.LogEntry{{ItemID: int64(i + 1)}},
			}))
		}

		logs, err := s.ListRunLogs(ctx, 3)
		require.NoError(t, err)
		require.Len(t, logs, 3)
		assert.Equal(t, domain.RunLogKey(base.Add(4*time.Minute)), logs[0].Key)
		assert.Equal(t, domain.RunLogKey(base.Add(2*time.Minute)), logs[2].Key)
		assert.Equal(t, int64(5), logs[0].Entries[0].ItemID)
	})

	t.Run("list run logs when empty", func(t *testing.T) {
		s := newStore(t)
		logs, err := s.ListRunLogs(context.Background(), 0)
		require.NoError(t, err)
		assert.Empty(t, logs)
	})

	t.Run("ping", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Ping(context.Background()))
	})
}
