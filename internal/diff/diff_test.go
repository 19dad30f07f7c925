package diff_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/new-item-notifier/internal/diff"
	"github.com/donaldgifford/new-item-notifier/internal/store"
	"github.com/donaldgifford/new-item-notifier/internal/store/mocks"
	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

var commitTime = time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)

func items(ids ...int64) domain.ItemList {
	l := make(domain.ItemList, len(ids))
	for i, id := range ids {
		l[i] = domain.Item{ID: id, Name: "item"}
	}
	return l
}

func newMemStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewInMemoryBadgerStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNew(t *testing.T) {
	t.Parallel()

	s := mocks.NewMockStore(t)

	tests := []struct {
		name     string
		strategy string
		want     string
		wantErr  bool
	}{
		{name: "set", strategy: "set", want: "set"},
		{name: "default is set", strategy: "", want: "set"},
		{name: "cursor", strategy: "cursor", want: "cursor"},
		{name: "unknown", strategy: "bloom", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := diff.New(tt.strategy, s, diff.WithWindow(10))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "bloom")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name())
		})
	}
}

func TestSetStrategy_Diff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		known       []int64
		current     domain.ItemList
		window      int
		wantIDs     []int64
		wantPersist bool
	}{
		{
			name:        "one new item at head",
			known:       []int64{100001, 100002},
			current:     items(100003, 100002, 100001),
			window:      30,
			wantIDs:     []int64{100003},
			wantPersist: true,
		},
		{
			name:    "nothing new",
			known:   []int64{3, 2, 1},
			current: items(3, 2, 1),
			window:  30,
		},
		{
			name:        "reordered upstream keeps input order",
			known:       []int64{2},
			current:     items(1, 5, 2, 4),
			window:      30,
			wantIDs:     []int64{1, 5, 4},
			wantPersist: true,
		},
		{
			name:        "window bounds candidacy",
			known:       []int64{},
			current:     items(9, 8, 7, 6, 5),
			window:      2,
			wantIDs:     []int64{9, 8},
			wantPersist: true,
		},
		{
			name:        "zero window considers whole list",
			known:       []int64{8},
			current:     items(9, 8, 7),
			window:      0,
			wantIDs:     []int64{9, 7},
			wantPersist: true,
		},
		{
			name:    "empty current list",
			known:   []int64{1},
			current: domain.ItemList{},
			window:  30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newMemStore(t)
			require.NoError(t, s.PutSnapshot(context.Background(),
				domain.Snapshot{CapturedAt: commitTime, KnownIDs: tt.known}))

			res, err := diff.NewSetStrategy(s, tt.window).Diff(context.Background(), tt.current)
			require.NoError(t, err)

			if d := cmp.Diff(tt.wantIDs, res.NewItems.IDs(), cmpopts.EquateEmpty()); d != "" {
				t.Errorf("new items mismatch (-want +got):\n%s", d)
			}
			assert.Equal(t, tt.wantPersist, res.Persist)
			assert.False(t, res.Reset)
		})
	}
}

func TestSetStrategy_FirstRunTreatsEverythingAsNew(t *testing.T) {
	t.Parallel()

	s := newMemStore(t)
	res, err := diff.NewSetStrategy(s, 30).Diff(context.Background(), items(3, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2, 1}, res.NewItems.IDs())
	assert.True(t, res.Persist)
}

func TestSetStrategy_CommitWritesFullList(t *testing.T) {
	t.Parallel()

	s := newMemStore(t)
	st := diff.NewSetStrategy(s, 1)
	current := items(5, 4, 3)

	require.NoError(t, st.Commit(context.Background(), current, commitTime))

	snap, err := s.GetSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 4, 3}, snap.KnownIDs)
	assert.True(t, commitTime.Equal(snap.CapturedAt))

	res, err := st.Diff(context.Background(), current)
	require.NoError(t, err)
	assert.Empty(t, res.NewItems)
	assert.False(t, res.Persist)
}

func TestSetStrategy_StoreErrorsAreReturned(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")

	s := mocks.NewMockStore(t)
	s.EXPECT().GetSnapshot(mock.Anything).Return(nil, boom).Once()
	s.EXPECT().PutSnapshot(mock.Anything, mock.Anything).Return(boom).Once()

	st := diff.NewSetStrategy(s, 30)

	_, err := st.Diff(context.Background(), items(1))
	require.ErrorIs(t, err, boom)

	err = st.Commit(context.Background(), items(1), commitTime)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "writing snapshot")
}

func TestSetStrategy_InvalidStateIsFatal(t *testing.T) {
	t.Parallel()

	s := mocks.NewMockStore(t)
	s.EXPECT().GetSnapshot(mock.Anything).Return(nil, domain.ErrInvalidState)

	_, err := diff.NewSetStrategy(s, 30).Diff(context.Background(), items(1))
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCursorStrategy_Diff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cursor      int64
		current     domain.ItemList
		wantIDs     []int64
		wantPersist bool
		wantReset   bool
	}{
		{
			name:    "head matches cursor",
			cursor:  500,
			current: items(500, 300, 100),
		},
		{
			name:        "cursor found further down",
			cursor:      300,
			current:     items(700, 600, 500, 300, 100),
			wantIDs:     []int64{700, 600, 500},
			wantPersist: true,
		},
		{
			name:        "cursor fell off the list",
			cursor:      42,
			current:     items(700, 600, 500),
			wantPersist: true,
			wantReset:   true,
		},
		{
			name:    "empty current list",
			cursor:  42,
			current: domain.ItemList{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newMemStore(t)
			require.NoError(t, s.PutCursor(context.Background(),
				domain.Cursor{UpdatedAt: commitTime, LatestID: tt.cursor}))

			res, err := diff.NewCursorStrategy(s).Diff(context.Background(), tt.current)
			require.NoError(t, err)

			if d := cmp.Diff(tt.wantIDs, res.NewItems.IDs(), cmpopts.EquateEmpty()); d != "" {
				t.Errorf("new items mismatch (-want +got):\n%s", d)
			}
			assert.Equal(t, tt.wantPersist, res.Persist)
			assert.Equal(t, tt.wantReset, res.Reset)
		})
	}
}

func TestCursorStrategy_PrefixDoesNotAliasCurrent(t *testing.T) {
	t.Parallel()

	s := newMemStore(t)
	require.NoError(t, s.PutCursor(context.Background(), domain.Cursor{UpdatedAt: commitTime, LatestID: 1}))

	current := items(3, 2, 1)
	res, err := diff.NewCursorStrategy(s).Diff(context.Background(), current)
	require.NoError(t, err)

	res.NewItems = append(res.NewItems, domain.Item{ID: 99})
	assert.Equal(t, []int64{3, 2, 1}, current.IDs())
}

func TestCursorStrategy_FirstRunAnchorsWithoutNotifying(t *testing.T) {
	t.Parallel()

	s := newMemStore(t)
	st := diff.NewCursorStrategy(s)
	current := items(900, 800)

	res, err := st.Diff(context.Background(), current)
	require.NoError(t, err)
	assert.Empty(t, res.NewItems)
	assert.True(t, res.Persist)
	assert.True(t, res.Reset)

	require.NoError(t, st.Commit(context.Background(), current, commitTime))

	cur, err := s.GetCursor(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(900), cur.LatestID)

	res, err = st.Diff(context.Background(), current)
	require.NoError(t, err)
	assert.Empty(t, res.NewItems)
	assert.False(t, res.Persist)
}

func TestCursorStrategy_CommitEmptyListIsNoop(t *testing.T) {
	t.Parallel()

	s := mocks.NewMockStore(t)
	require.NoError(t, diff.NewCursorStrategy(s).Commit(context.Background(), nil, commitTime))
	s.AssertNotCalled(t, "PutCursor", mock.Anything, mock.Anything)
}

func TestCursorStrategy_StoreErrorsAreReturned(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")

	s := mocks.NewMockStore(t)
	s.EXPECT().GetCursor(mock.Anything).Return(nil, boom).Once()
	s.EXPECT().PutCursor(mock.Anything, domain.Cursor{UpdatedAt: commitTime, LatestID: 7}).Return(boom).Once()

	st := diff.NewCursorStrategy(s)

	_, err := st.Diff(context.Background(), items(7))
	require.ErrorIs(t, err, boom)

	err = st.Commit(context.Background(), items(7), commitTime)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "writing cursor")
}
