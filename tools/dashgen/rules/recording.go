package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return resource("nin-recording-rules", "nin-recording",
		record("nin:http_requests:rate5m", `sum(rate(nin_http_requests_total[5m]))`),
		record("nin:http_errors:rate5m", `sum(rate(nin_http_requests_total{status=~"5.."}[5m]))`),
		record("nin:runs:rate1h", `sum by (status) (rate(nin_runs_total[1h]))`),
		record("nin:run_errors:rate1h", `sum by (stage) (rate(nin_run_errors_total[1h]))`),
		record("nin:notification_failures:rate1h", `sum by (kind) (rate(nin_notification_failures_total[1h]))`),
		record("nin:notification_duration:p95_1h", `histogram_quantile(0.95, sum(rate(nin_notification_duration_seconds_bucket[1h])) by (le))`),
	)
}
