package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	domain "github.com/donaldgifford/new-item-notifier/pkg/types"
)

// Object keys used by key-value backends. Snapshots exported from a bucket
// can be loaded under the same names.
const (
	snapshotKey = "scraped_data.json"
	cursorKey   = "latest_product_id.json"
	logPrefix   = "logs/"
)

// validator is implemented by every persisted document.
type validator interface {
	Validate() error
}

// decodeStrict decodes a persisted JSON document, rejecting unknown fields
// and trailing data, then validates it. Any failure wraps
// domain.ErrInvalidState so corrupted state aborts the run.
func decodeStrict(data []byte, dst validator) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidState, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after document", domain.ErrInvalidState)
	}

	return dst.Validate()
}

func encodeSnapshot(s domain.Snapshot) ([]byte, error) {
	if s.KnownIDs == nil {
		s.KnownIDs = []int64{}
	}
	s.CapturedAt = s.CapturedAt.UTC()
	return json.Marshal(s)
}

func decodeSnapshot(data []byte) (*domain.Snapshot, error) {
	s := &domain.Snapshot{}
	if err := decodeStrict(data, s); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return s, nil
}

func encodeCursor(c domain.Cursor) ([]byte, error) {
	c.UpdatedAt = c.UpdatedAt.UTC()
	return json.Marshal(c)
}

func decodeCursor(data []byte) (*domain.Cursor, error) {
	c := &domain.Cursor{}
	if err := decodeStrict(data, c); err != nil {
		return nil, fmt.Errorf("decoding cursor: %w", err)
	}
	return c, nil
}

func encodeRunLog(l domain.RunLog) ([]byte, error) {
	if l.Entries == nil {
		l.Entries = []domain.LogEntry{}
	}
	l.CreatedAt = l.CreatedAt.UTC()
	return json.Marshal(l)
}

func decodeRunLog(key string, data []byte) (*domain.RunLog, error) {
	l := &domain.RunLog{}
	if err := decodeStrict(data, l); err != nil {
		return nil, fmt.Errorf("decoding run log %s: %w", key, err)
	}
	l.Key = key
	return l, nil
}

func encodeIDs(ids []int64) (string, error) {
	if ids == nil {
		ids = []int64{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("marshaling ids: %w", err)
	}
	return string(b), nil
}

func decodeIDs(raw string) ([]int64, error) {
	var ids []int64
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	if err := dec.Decode(&ids); err != nil {
		return nil, fmt.Errorf("%w: product ids: %w", domain.ErrInvalidState, err)
	}
	return ids, nil
}
