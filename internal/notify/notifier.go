// Package notify defines the notification interface and implementations
// for posting new-item announcements.
package notify

import (
	"context"
	"time"
)

// RateLimit is the rate-limit state reported by the posting API after a
// successful post. Day carries the separate 24-hour user quota when the
// API reports one.
type RateLimit struct {
	Limit     int        `json:"limit"`
	Remaining int        `json:"remaining"`
	Reset     time.Time  `json:"reset"`
	Day       *RateLimit `json:"day,omitempty"`
}

// PostResult is the outcome of a successful post.
type PostResult struct {
	ID        string
	RateLimit *RateLimit
}

// Notifier posts a single message to an external channel.
type Notifier interface {
	Post(ctx context.Context, text string) (*PostResult, error)
}
