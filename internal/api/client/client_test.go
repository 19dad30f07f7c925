package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.GetSnapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"internal"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListRuns(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (HTTP 500)")
	assert.False(t, IsNotFound(err))
}

func TestClient_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"no snapshot has been written yet"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetSnapshot(context.Background())
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestClient_TriggerRun(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/runs", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "notified",
			"run_id": "run-1",
			"started_at": "2024-01-01T12:30:00Z",
			"new_items": 1,
			"entries": [{"product_id": 100003, "notification_id": "t-1"}]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.TriggerRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "notified", res.Status)
	assert.Equal(t, "run-1", res.RunID)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC), res.StartedAt)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, int64(100003), res.Entries[0].ProductID)
	require.NotNil(t, res.Entries[0].NotificationID)
	assert.Equal(t, "t-1", *res.Entries[0].NotificationID)
}

func TestClient_ListRuns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		limit     int
		wantLimit string
	}{
		{name: "server default", limit: 0, wantLimit: ""},
		{name: "explicit limit", limit: 5, wantLimit: "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/runs", r.URL.Path)
				assert.Equal(t, tt.wantLimit, r.URL.Query().Get("limit"))

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(runsResponse{Runs: []RunLog{
					{Key: "logs/2024-01-01T1230.json", Entries: []RunEntry{{ProductID: 1}}},
				}})
			}))
			defer srv.Close()

			c := New(srv.URL)
			runs, err := c.ListRuns(context.Background(), tt.limit)
			require.NoError(t, err)
			require.Len(t, runs, 1)
			assert.Equal(t, "logs/2024-01-01T1230.json", runs[0].Key)
			assert.Nil(t, runs[0].Entries[0].NotificationID)
		})
	}
}

func TestClient_GetRun(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/runs/2024-01-01T1230", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(RunLog{Key: "logs/2024-01-01T1230.json", RunID: "run-7"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	l, err := c.GetRun(context.Background(), "2024-01-01T1230")
	require.NoError(t, err)
	assert.Equal(t, "run-7", l.RunID)
}

func TestClient_State(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/snapshot":
			_, _ = w.Write([]byte(`{"updated_at":"2024-01-01T12:30:00Z","product_ids":[3,2,1]}`))
		case "/api/v1/cursor":
			_, _ = w.Write([]byte(`{"updated_at":"2024-01-01T12:30:00Z","latest_product_id":3}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	snap, err := c.GetSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2, 1}, snap.ProductIDs)

	cur, err := c.GetCursor(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), cur.LatestProductID)
}
