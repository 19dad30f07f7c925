package client

import (
	"context"
	"time"
)

// Snapshot is the set of item IDs known to the server.
type Snapshot struct {
	UpdatedAt  time.Time `json:"updated_at"`
	ProductIDs []int64   `json:"product_ids"`
}

// Cursor is the latest item ID known to the server.
type Cursor struct {
	UpdatedAt       time.Time `json:"updated_at"`
	LatestProductID int64     `json:"latest_product_id"`
}

// GetSnapshot returns the stored snapshot.
func (c *Client) GetSnapshot(ctx context.Context) (*Snapshot, error) {
	var s Snapshot
	if err := c.get(ctx, "/api/v1/snapshot", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetCursor returns the stored cursor.
func (c *Client) GetCursor(ctx context.Context) (*Cursor, error) {
	var cur Cursor
	if err := c.get(ctx, "/api/v1/cursor", &cur); err != nil {
		return nil, err
	}
	return &cur, nil
}
