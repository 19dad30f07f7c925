package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// RunEntry is one notification outcome within a run.
type RunEntry struct {
	ProductID      int64   `json:"product_id"`
	NotificationID *string `json:"notification_id"`
	Error          string  `json:"error,omitempty"`
}

// TriggerResult is the response from triggering a run.
type TriggerResult struct {
	Status    string     `json:"status"`
	RunID     string     `json:"run_id,omitempty"`
	StartedAt time.Time  `json:"started_at"`
	NewItems  int        `json:"new_items"`
	Entries   []RunEntry `json:"entries,omitempty"`
}

// RunLog is a persisted run log.
type RunLog struct {
	Key       string     `json:"key"`
	RunID     string     `json:"run_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Entries   []RunEntry `json:"entries"`
}

type runsResponse struct {
	Runs []RunLog `json:"runs"`
}

// TriggerRun runs the pipeline once on the server and waits for the result.
func (c *Client) TriggerRun(ctx context.Context) (*TriggerResult, error) {
	var res TriggerResult
	if err := c.post(ctx, "/api/v1/runs", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListRuns returns up to limit run logs, newest first. A limit of zero uses
// the server default.
func (c *Client) ListRuns(ctx context.Context, limit int) ([]RunLog, error) {
	path := "/api/v1/runs"
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}

	var resp runsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Runs, nil
}

// GetRun returns the run log for a minute stamp such as 2024-01-01T1230.
func (c *Client) GetRun(ctx context.Context, minute string) (*RunLog, error) {
	var l RunLog
	if err := c.get(ctx, fmt.Sprintf("/api/v1/runs/%s", url.PathEscape(minute)), &l); err != nil {
		return nil, err
	}
	return &l, nil
}
