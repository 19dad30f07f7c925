// Package domain defines the core business types for the new item notifier.
package domain

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrInvalidState is returned when persisted state does not match the
// expected schema. It is fatal for a run.
var ErrInvalidState = errors.New("invalid persisted state")

// Item is a single marketplace listing as scraped from the listing page.
type Item struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ShopID   string `json:"shop_id,omitempty"`
	ShopName string `json:"shop_name,omitempty"`
}

// ItemList is an ordered sequence of items, newest first.
type ItemList []Item

// IDs returns the item IDs in list order.
func (l ItemList) IDs() []int64 {
	ids := make([]int64, len(l))
	for i := range l {
		ids[i] = l[i].ID
	}
	return ids
}

// Index returns the position of id in the list, or -1.
func (l ItemList) Index(id int64) int {
	return slices.IndexFunc(l, func(it Item) bool { return it.ID == id })
}

// Head returns the newest item and false when the list is empty.
func (l ItemList) Head() (Item, bool) {
	if len(l) == 0 {
		return Item{}, false
	}
	return l[0], true
}

// Dedupe returns a copy of the list with repeated IDs removed, keeping the
// first occurrence.
func (l ItemList) Dedupe() ItemList {
	seen := make(map[int64]struct{}, len(l))
	out := make(ItemList, 0, len(l))
	for _, it := range l {
		if _, ok := seen[it.ID]; ok {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Reversed returns a copy of the list in the opposite order.
func (l ItemList) Reversed() ItemList {
	out := slices.Clone(l)
	slices.Reverse(out)
	return out
}

// Snapshot is every item ID seen as of the last successful run.
type Snapshot struct {
	CapturedAt time.Time `json:"updated_at"`
	KnownIDs   []int64   `json:"product_ids"`
}

// Set returns KnownIDs as a lookup set.
func (s *Snapshot) Set() map[int64]struct{} {
	set := make(map[int64]struct{}, len(s.KnownIDs))
	for _, id := range s.KnownIDs {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports whether id is a known item.
func (s *Snapshot) Contains(id int64) bool {
	return slices.Contains(s.KnownIDs, id)
}

// Validate checks a decoded snapshot against the persisted schema.
func (s *Snapshot) Validate() error {
	if s.CapturedAt.IsZero() {
		return fmt.Errorf("%w: snapshot updated_at is missing", ErrInvalidState)
	}
	if s.KnownIDs == nil {
		return fmt.Errorf("%w: snapshot product_ids is missing", ErrInvalidState)
	}
	for _, id := range s.KnownIDs {
		if id <= 0 {
			return fmt.Errorf("%w: snapshot product id %d", ErrInvalidState, id)
		}
	}
	return nil
}

// Cursor is the single most recent item ID, the lightweight alternative to a
// full snapshot.
type Cursor struct {
	UpdatedAt time.Time `json:"updated_at"`
	LatestID  int64     `json:"latest_product_id"`
}

// Validate checks a decoded cursor against the persisted schema.
func (c *Cursor) Validate() error {
	if c.UpdatedAt.IsZero() {
		return fmt.Errorf("%w: cursor updated_at is missing", ErrInvalidState)
	}
	if c.LatestID <= 0 {
		return fmt.Errorf("%w: cursor latest_product_id %d", ErrInvalidState, c.LatestID)
	}
	return nil
}

// LogEntry records the notification outcome for one item.
// NotificationID is nil when posting failed or was skipped.
type LogEntry struct {
	ItemID         int64   `json:"product_id"`
	NotificationID *string `json:"tweet_id"`
	Error          string  `json:"error,omitempty"`
}

// Notified reports whether the entry carries a notification ID.
func (e LogEntry) Notified() bool {
	return e.NotificationID != nil
}

// RunLog is the durable per-run record of notification attempts.
type RunLog struct {
	Key       string     `json:"-"`
	RunID     string     `json:"run_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Entries   []LogEntry `json:"new_products"`
}

// Validate checks a decoded run log against the persisted schema.
func (r *RunLog) Validate() error {
	if r.CreatedAt.IsZero() {
		return fmt.Errorf("%w: run log created_at is missing", ErrInvalidState)
	}
	if r.Entries == nil {
		return fmt.Errorf("%w: run log new_products is missing", ErrInvalidState)
	}
	for _, e := range r.Entries {
		if e.ItemID <= 0 {
			return fmt.Errorf("%w: run log product id %d", ErrInvalidState, e.ItemID)
		}
	}
	return nil
}

// NotifiedCount returns the number of entries with a notification ID.
func (r *RunLog) NotifiedCount() int {
	n := 0
	for _, e := range r.Entries {
		if e.Notified() {
			n++
		}
	}
	return n
}

// RunLogKey returns the storage key for a run started at t. Keys are unique
// per minute.
func RunLogKey(t time.Time) string {
	return "logs/" + t.UTC().Format("2006-01-02T1504") + ".json"
}

// TruncateToMinute drops seconds and sub-second precision from t.
func TruncateToMinute(t time.Time) (time.Time, error) {
	if t.IsZero() {
		return time.Time{}, errors.New("truncate to minute: zero time")
	}
	return t.Truncate(time.Minute), nil
}

// RunStatus is the terminal state of a single run.
type RunStatus string

// Run status constants.
const (
	RunNoNewItems  RunStatus = "no_new_items"
	RunAllFiltered RunStatus = "all_filtered"
	RunCursorReset RunStatus = "cursor_reset"
	RunNotified    RunStatus = "notified"
)

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
