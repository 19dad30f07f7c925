package main

import "errors"

// KnownMetrics is the set of metric names exported by new-item-notifier
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"nin_http_request_duration_seconds_bucket": true,
	"nin_http_requests_total":                  true,

	// Health metrics.
	"nin_healthz_up": true,
	"nin_readyz_up":  true,

	// Pipeline metrics.
	"nin_run_duration_seconds_bucket": true,
	"nin_runs_total":                  true,
	"nin_run_errors_total":            true,
	"nin_scraped_items":               true,
	"nin_new_items_total":             true,
	"nin_filtered_items_total":        true,
	"nin_state_writes_total":          true,

	// Notification metrics.
	"nin_notifications_sent_total":             true,
	"nin_notification_failures_total":          true,
	"nin_notification_duration_seconds_bucket": true,
	"nin_notification_rate_limit_remaining":    true,
	"nin_notification_daily_usage":             true,

	// Scheduler metrics.
	"nin_scheduler_next_run_timestamp": true,
	"nin_scheduler_skipped_total":      true,

	// Recording rules.
	"nin:http_requests:rate5m":         true,
	"nin:http_errors:rate5m":           true,
	"nin:runs:rate1h":                  true,
	"nin:run_errors:rate1h":            true,
	"nin:notification_failures:rate1h": true,
	"nin:notification_duration:p95_1h": true,

	// Standard Prometheus metrics referenced in alerts.
	"up": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
