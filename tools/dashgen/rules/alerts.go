package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// new-item-notifier operational monitoring.
func AlertRules() PrometheusRule {
	return resource("nin-alerts", "nin-alerts",
		alert("NinDown", `absent(up{job="new-item-notifier"})`, "5m", Critical,
			"New item notifier is down",
			"The new-item-notifier job has been absent for more than 5 minutes."),
		alert("NinReadinessDown", `nin_readyz_up == 0`, "5m", Critical,
			"New item notifier cannot reach its store",
			"The readiness probe has been failing for more than 5 minutes; runs cannot persist state."),
		alert("NinScrapeFailing", `increase(nin_run_errors_total{stage="scrape"}[1h]) >= 3`, "0m", Warning,
			"Listing scrape is failing",
			"Three or more runs in the last hour failed while fetching the listing page."),
		alert("NinStateWriteFailing", `increase(nin_run_errors_total{stage=~"commit|run_log"}[1h]) > 0`, "0m", Critical,
			"Run state could not be persisted",
			"A snapshot, cursor or run log write failed. The next run may re-announce items."),
		alert("NinNoRuns", `sum(increase(nin_runs_total[1h])) == 0`, "30m", Warning,
			"No runs completed in the last hour",
			"The scheduler has not completed a run for over an hour."),
		alert("NinPostQuotaHigh", `nin_notification_daily_usage >= 14`, "0m", Warning,
			"Daily post quota is above 80%",
			"Posts in the current 24h window are close to the client-side limit."),
		alert("NinNotificationFailures", `sum(increase(nin_notification_failures_total[15m])) > 0`, "1m", Warning,
			"Notification posts are failing",
			"One or more notifications failed to post; see the run logs for the affected items."),
	)
}
