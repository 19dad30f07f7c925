package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/new-item-notifier/internal/engine"
	"github.com/donaldgifford/new-item-notifier/internal/store"
	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

// RunLogReader reads persisted run logs.
type RunLogReader interface {
	GetRunLog(ctx context.Context, key string) (*domain.RunLog, error)
	ListRunLogs(ctx context.Context, limit int) ([]domain.RunLog, error)
}

// RunHandler triggers runs and serves run logs. The runner reports
// overlapping runs with engine.ErrRunInProgress.
type RunHandler struct {
	runner engine.Runner
	logs   RunLogReader
}

// NewRunHandler creates a RunHandler.
func NewRunHandler(r engine.Runner, logs RunLogReader) *RunHandler {
	return &RunHandler{runner: r, logs: logs}
}

// RunEntry is one notification outcome.
type RunEntry struct {
	ProductID      int64   `json:"product_id" example:"100003" doc:"Item ID"`
	NotificationID *string `json:"notification_id" example:"1445880548472328192" doc:"Posted notification ID, null on failure"`
	Error          string  `json:"error,omitempty" doc:"Failure detail when the post failed"`
}

// RunLogBody is a persisted run log.
type RunLogBody struct {
	Key       string     `json:"key" example:"logs/2024-01-01T1230.json" doc:"Storage key"`
	RunID     string     `json:"run_id,omitempty" doc:"Run identifier"`
	CreatedAt time.Time  `json:"created_at" doc:"Run start, truncated to the minute"`
	Entries   []RunEntry `json:"entries" doc:"Outcomes in posting order"`
}

// TriggerRunOutput is the response for POST /api/v1/runs.
type TriggerRunOutput struct {
	Body struct {
		Status    domain.RunStatus `json:"status" example:"notified" doc:"Terminal state of the run"`
		RunID     string           `json:"run_id,omitempty" doc:"Run identifier, empty on early exit"`
		StartedAt time.Time        `json:"started_at" doc:"Run start, truncated to the minute"`
		NewItems  int              `json:"new_items" doc:"Number of new items detected"`
		Entries   []RunEntry       `json:"entries,omitempty" doc:"Notification outcomes"`
	}
}

// Trigger runs the pipeline once. The run is detached from the request
// context so a client disconnect cannot abort posting after state has been
// committed.
func (h *RunHandler) Trigger(ctx context.Context, _ *struct{}) (*TriggerRunOutput, error) {
	res, err := h.runner.Run(context.WithoutCancel(ctx))
	if errors.Is(err, engine.ErrRunInProgress) {
		return nil, huma.Error409Conflict(err.Error())
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("run failed: " + err.Error())
	}

	out := &TriggerRunOutput{}
	out.Body.Status = res.Status
	out.Body.RunID = res.RunID
	out.Body.StartedAt = res.StartedAt
	out.Body.NewItems = res.NewItems
	if res.Log != nil {
		out.Body.Entries = toRunEntries(res.Log.Entries)
	}
	return out, nil
}

// ListRunsInput is the request for GET /api/v1/runs.
type ListRunsInput struct {
	Limit int `query:"limit" minimum:"1" maximum:"100" default:"20" doc:"Maximum number of logs to return"`
}

// ListRunsOutput is the response for GET /api/v1/runs.
type ListRunsOutput struct {
	Body struct {
		Runs []RunLogBody `json:"runs" doc:"Run logs, newest first"`
	}
}

// List returns recent run logs, newest first.
func (h *RunHandler) List(ctx context.Context, in *ListRunsInput) (*ListRunsOutput, error) {
	logs, err := h.logs.ListRunLogs(ctx, in.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing run logs: " + err.Error())
	}

	out := &ListRunsOutput{}
	out.Body.Runs = make([]RunLogBody, 0, len(logs))
	for i := range logs {
		out.Body.Runs = append(out.Body.Runs, toRunLogBody(&logs[i]))
	}
	return out, nil
}

// GetRunInput is the request for GET /api/v1/runs/{minute}.
type GetRunInput struct {
	Minute string `path:"minute" example:"2024-01-01T1230" doc:"Run minute as YYYY-MM-DDTHHMM, or the full log key"`
}

// GetRunOutput is the response for GET /api/v1/runs/{minute}.
type GetRunOutput struct {
	Body RunLogBody
}

// Get returns a single run log.
func (h *RunHandler) Get(ctx context.Context, in *GetRunInput) (*GetRunOutput, error) {
	l, err := h.logs.GetRunLog(ctx, RunLogKeyFromMinute(in.Minute))
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("run log not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("getting run log: " + err.Error())
	}
	return &GetRunOutput{Body: toRunLogBody(l)}, nil
}

// RunLogKeyFromMinute expands a YYYY-MM-DDTHHMM stamp into a run log key.
// Full keys pass through unchanged.
func RunLogKeyFromMinute(minute string) string {
	stamp := strings.TrimSuffix(strings.TrimPrefix(minute, "logs/"), ".json")
	return "logs/" + stamp + ".json"
}

func toRunLogBody(l *domain.RunLog) RunLogBody {
	return RunLogBody{
		Key:       l.Key,
		RunID:     l.RunID,
		CreatedAt: l.CreatedAt,
		Entries:   toRunEntries(l.Entries),
	}
}

func toRunEntries(entries []domain.LogEntry) []RunEntry {
	out := make([]RunEntry, len(entries))
	for i, e := range entries {
		out[i] = RunEntry{ProductID: e.ItemID, NotificationID: e.NotificationID, Error: e.Error}
	}
	return out
}

// RegisterRunRoutes registers run endpoints with the Huma API.
func RegisterRunRoutes(api huma.API, h *RunHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trigger-run",
		Method:      http.MethodPost,
		Path:        "/api/v1/runs",
		Summary:     "Trigger a run",
		Description: "Scrapes the listing, diffs it against stored state, " +
			"posts a notification per new item and records the run log.",
		Tags:   []string{"runs"},
		Errors: []int{http.StatusConflict, http.StatusInternalServerError},
	}, h.Trigger)

	huma.Register(api, huma.Operation{
		OperationID: "list-runs",
		Method:      http.MethodGet,
		Path:        "/api/v1/runs",
		Summary:     "List run logs",
		Description: "Returns the most recent run logs, newest first.",
		Tags:        []string{"runs"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "get-run",
		Method:      http.MethodGet,
		Path:        "/api/v1/runs/{minute}",
		Summary:     "Get a run log",
		Description: "Returns the run log written for the given minute.",
		Tags:        []string{"runs"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.Get)
}
