package notify

import (
	"context"
	"errors"
	"fmt"
)

// ErrPostingDisabled is wrapped by the error NoOpNotifier returns.
var ErrPostingDisabled = errors.New("posting disabled")

// ErrorKind classifies a posting failure.
type ErrorKind string

// Error kinds.
const (
	KindRequest   ErrorKind = "request"    // the request never got a response
	KindAuth      ErrorKind = "auth"       // credentials rejected
	KindRateLimit ErrorKind = "rate_limit" // server or client-side quota hit
	KindResponse  ErrorKind = "response"   // server answered with an error
	KindDisabled  ErrorKind = "disabled"   // posting turned off by config
	KindUnknown   ErrorKind = "unknown"
)

// Error is a classified posting failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf classifies err. It returns "" for nil.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var ne *Error
	if errors.As(err, &ne) {
		return ne.Kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindRequest
	}
	return KindUnknown
}
