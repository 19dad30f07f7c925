// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/new-item-notifier/tools/dashgen/panels"
)

// BuildOverview constructs the notifier overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("New Item Notifier").
		Uid("nin-overview").
		Tags([]string{"nin", "new-item-notifier"}).
		Refresh("1m").
		Time("now-24h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.QuotaGauge()).
		WithPanel(panels.NextRunStat()))

	b.WithRow(dashboard.NewRowBuilder("Pipeline").
		WithPanel(panels.RunsByStatus()).
		WithPanel(panels.RunErrors()).
		WithPanel(panels.RunDuration()).
		WithPanel(panels.NewItems()).
		WithPanel(panels.ScrapedItems()).
		WithPanel(panels.SkippedTicks()))

	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationsSent()).
		WithPanel(panels.NotificationFailures()).
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.RateRemaining()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
