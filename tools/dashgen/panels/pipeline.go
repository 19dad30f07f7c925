package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RunsByStatus returns a timeseries panel showing completed runs per hour,
// split by terminal status.
func RunsByStatus() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Runs / hour").
		Description("Completed runs by terminal status").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`nin:runs:rate1h * 3600`, "{{status}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("last", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// RunErrors returns a timeseries panel showing fatal run errors per hour by
// pipeline stage.
func RunErrors() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Run Errors / hour").
		Description("Fatal run errors by stage (scrape, diff, commit, run_log)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`nin:run_errors:rate1h * 3600`, "{{stage}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleBars)
}

// RunDuration returns a timeseries panel showing the p95 run duration.
func RunDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Run Duration (p95)").
		Description("95th percentile end-to-end run duration").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(nin_run_duration_seconds_bucket{`+Job+`}[1h])) by (le))`,
			"p95",
			"A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ScrapedItems returns a stat panel showing the size of the last scraped
// listing.
func ScrapedItems() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Listing Size").
		Description("Items on the listing page at the last run").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`nin_scraped_items{`+Job+`}`, "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// NewItems returns a timeseries panel showing new and filtered items per
// hour.
func NewItems() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("New Items / hour").
		Description("Items detected as new, and those dropped by the shop blocklist").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`increase(nin_new_items_total{`+Job+`}[1h])`, "new", "A")).
		WithTarget(PromQuery(`increase(nin_filtered_items_total{`+Job+`}[1h])`, "filtered", "B")).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("sum", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// SkippedTicks returns a stat panel showing scheduled runs skipped because
// the previous run was still in progress.
func SkippedTicks() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Skipped Ticks (24h)").
		Description("Scheduled runs skipped while a previous run was still in progress").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`increase(nin_scheduler_skipped_total{`+Job+`}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}
