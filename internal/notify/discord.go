package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Discord rejects message content longer than this.
const discordMaxContent = 2000

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Content string `json:"content"`
}

type discordMessage struct {
	ID string `json:"id"`
}

// Post implements Notifier.Post by executing the webhook with wait=true, so
// Discord answers with the created message and its ID.
func (d *DiscordNotifier) Post(ctx context.Context, text string) (*PostResult, error) {
	content := []rune(text)
	if len(content) > discordMaxContent {
		content = content[:discordMaxContent]
	}

	body, err := json.Marshal(discordWebhookPayload{Content: string(content)})
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Message: "marshaling discord payload", Err: err}
	}

	endpoint, err := waitURL(d.webhookURL)
	if err != nil {
		return nil, &Error{Kind: KindRequest, Message: "parsing webhook url", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindRequest, Message: "creating discord request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindRequest, Message: "sending discord webhook", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &Error{Kind: KindRateLimit, Message: "discord rate limited (429)"}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &Error{Kind: KindAuth, Message: fmt.Sprintf("discord returned %d", resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		if readErr != nil {
			return nil, &Error{Kind: KindResponse, Message: fmt.Sprintf("discord returned %d (body unreadable)", resp.StatusCode)}
		}
		return nil, &Error{Kind: KindResponse, Message: fmt.Sprintf("discord returned %d: %s", resp.StatusCode, respBody)}
	}

	if readErr != nil {
		return nil, &Error{Kind: KindResponse, Message: "reading discord response", Err: readErr}
	}

	var msg discordMessage
	if err := json.Unmarshal(respBody, &msg); err != nil || msg.ID == "" {
		return nil, &Error{Kind: KindResponse, Message: "discord response has no message id", Err: err}
	}

	return &PostResult{ID: msg.ID}, nil
}

func waitURL(webhookURL string) (string, error) {
	u, err := url.Parse(webhookURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("wait", "true")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
