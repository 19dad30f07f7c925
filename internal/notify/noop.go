package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging and refusing every post. It is
// used when posting is disabled, so run logs record the item with a null
// notification ID.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards posts with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// Post logs the text and returns a disabled error.
func (n *NoOpNotifier) Post(_ context.Context, text string) (*PostResult, error) {
	n.log.Info("notification discarded (posting disabled)", "text", text)
	return nil, &Error{Kind: KindDisabled, Message: "notification not sent", Err: ErrPostingDisabled}
}
