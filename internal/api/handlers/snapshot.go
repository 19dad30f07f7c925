package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/new-item-notifier/internal/store"
	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

// StateReader reads the persisted diff state.
type StateReader interface {
	GetSnapshot(ctx context.Context) (*domain.Snapshot, error)
	GetCursor(ctx context.Context) (*domain.Cursor, error)
}

// StateHandler serves the stored snapshot and cursor.
type StateHandler struct {
	store StateReader
}

// NewStateHandler creates a StateHandler.
func NewStateHandler(s StateReader) *StateHandler {
	return &StateHandler{store: s}
}

// SnapshotOutput is the response for GET /api/v1/snapshot.
type SnapshotOutput struct {
	Body struct {
		UpdatedAt  time.Time `json:"updated_at" doc:"When the snapshot was captured"`
		ProductIDs []int64   `json:"product_ids" doc:"Every known item ID, newest first"`
	}
}

// GetSnapshot returns the stored snapshot.
func (h *StateHandler) GetSnapshot(ctx context.Context, _ *struct{}) (*SnapshotOutput, error) {
	snap, err := h.store.GetSnapshot(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("no snapshot has been written yet")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("reading snapshot: " + err.Error())
	}

	out := &SnapshotOutput{}
	out.Body.UpdatedAt = snap.CapturedAt
	out.Body.ProductIDs = snap.KnownIDs
	return out, nil
}

// CursorOutput is the response for GET /api/v1/cursor.
type CursorOutput struct {
	Body struct {
		UpdatedAt       time.Time `json:"updated_at" doc:"When the cursor was written"`
		LatestProductID int64     `json:"latest_product_id" doc:"Most recent item ID seen"`
	}
}

// GetCursor returns the stored cursor.
func (h *StateHandler) GetCursor(ctx context.Context, _ *struct{}) (*CursorOutput, error) {
	cur, err := h.store.GetCursor(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("no cursor has been written yet")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("reading cursor: " + err.Error())
	}

	out := &CursorOutput{}
	out.Body.UpdatedAt = cur.UpdatedAt
	out.Body.LatestProductID = cur.LatestID
	return out, nil
}

// RegisterStateRoutes registers state endpoints with the Huma API.
func RegisterStateRoutes(api huma.API, h *StateHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-snapshot",
		Method:      http.MethodGet,
		Path:        "/api/v1/snapshot",
		Summary:     "Get the stored snapshot",
		Description: "Returns every item ID known to the set strategy.",
		Tags:        []string{"state"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.GetSnapshot)

	huma.Register(api, huma.Operation{
		OperationID: "get-cursor",
		Method:      http.MethodGet,
		Path:        "/api/v1/cursor",
		Summary:     "Get the stored cursor",
		Description: "Returns the latest item ID known to the cursor strategy.",
		Tags:        []string{"state"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.GetCursor)
}
