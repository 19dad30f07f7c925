package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	defaultTwitterAPIURL  = "https://api.x.com"
	defaultTwitterTimeout = 15 * time.Second
	tweetsPath            = "/2/tweets"
	maxErrorBody          = 4 << 10
)

// TwitterNotifier posts tweets through the v2 API using a user-context
// OAuth 2.0 access token.
type TwitterNotifier struct {
	apiURL string
	client *http.Client
}

type twitterConfig struct {
	apiURL  string
	base    *http.Client
	timeout time.Duration
}

// TwitterOption configures a TwitterNotifier.
type TwitterOption func(*twitterConfig)

// WithTwitterAPIURL overrides the API base URL, e.g. for a test server.
func WithTwitterAPIURL(u string) TwitterOption {
	return func(c *twitterConfig) {
		if u != "" {
			c.apiURL = u
		}
	}
}

// WithTwitterHTTPClient sets the client whose transport carries the
// authenticated requests.
func WithTwitterHTTPClient(hc *http.Client) TwitterOption {
	return func(c *twitterConfig) {
		c.base = hc
	}
}

// WithTwitterTimeout sets the per-request timeout.
func WithTwitterTimeout(d time.Duration) TwitterOption {
	return func(c *twitterConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewTwitterNotifier creates a TwitterNotifier authenticating with the given
// access token.
func NewTwitterNotifier(accessToken string, opts ...TwitterOption) *TwitterNotifier {
	cfg := twitterConfig{
		apiURL:  defaultTwitterAPIURL,
		timeout: defaultTwitterTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx := context.Background()
	if cfg.base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, cfg.base)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = cfg.timeout

	return &TwitterNotifier{
		apiURL: strings.TrimRight(cfg.apiURL, "/"),
		client: hc,
	}
}

type tweetRequest struct {
	Text string `json:"text"`
}

type tweetResponse struct {
	Data *struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
	Errors []twitterAPIError `json:"errors"`
}

// twitterAPIError covers both the v2 problem shape and the legacy errors
// array entries.
type twitterAPIError struct {
	Title   string `json:"title"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (e twitterAPIError) String() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Message != "":
		return e.Message
	default:
		return e.Title
	}
}

// Post implements Notifier.Post by creating a tweet.
func (t *TwitterNotifier) Post(ctx context.Context, text string) (*PostResult, error) {
	body, err := json.Marshal(tweetRequest{Text: text})
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Message: "marshaling tweet", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.apiURL+tweetsPath, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindRequest, Message: "creating tweet request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindRequest, Message: "sending tweet", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, &Error{Kind: KindResponse, Message: "reading tweet response", Err: err}
	}

	if err := classifyStatus(resp.StatusCode, raw); err != nil {
		return nil, err
	}

	var tr tweetResponse
	if err := json.Unmarshal(raw, &tr); err != nil {
		return nil, &Error{Kind: KindResponse, Message: "decoding tweet response", Err: err}
	}
	if tr.Data == nil || tr.Data.ID == "" {
		msg := "tweet response has no id"
		if len(tr.Errors) > 0 {
			msg = tr.Errors[0].String()
		}
		return nil, &Error{Kind: KindResponse, Message: msg}
	}

	return &PostResult{
		ID:        tr.Data.ID,
		RateLimit: parseRateLimit(resp.Header),
	}, nil
}

func classifyStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	msg := fmt.Sprintf("twitter returned %d", status)
	var problem twitterAPIError
	if json.Unmarshal(body, &problem) == nil && problem.String() != "" {
		msg += ": " + problem.String()
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &Error{Kind: KindAuth, Message: msg}
	case http.StatusTooManyRequests:
		return &Error{Kind: KindRateLimit, Message: msg}
	default:
		return &Error{Kind: KindResponse, Message: msg}
	}
}

// parseRateLimit reads the x-rate-limit-* headers and, when present, the
// x-user-limit-24hour-* headers. It returns nil without the former.
func parseRateLimit(h http.Header) *RateLimit {
	rl, ok := readLimitHeaders(h, "x-rate-limit-")
	if !ok {
		return nil
	}
	if day, ok := readLimitHeaders(h, "x-user-limit-24hour-"); ok {
		rl.Day = day
	}
	return rl
}

func readLimitHeaders(h http.Header, prefix string) (*RateLimit, bool) {
	limit, err := strconv.Atoi(h.Get(prefix + "limit"))
	if err != nil {
		return nil, false
	}
	remaining, _ := strconv.Atoi(h.Get(prefix + "remaining"))

	rl := &RateLimit{Limit: limit, Remaining: remaining}
	if reset, err := strconv.ParseInt(h.Get(prefix+"reset"), 10, 64); err == nil {
		rl.Reset = time.Unix(reset, 0).UTC()
	}
	return rl, true
}
