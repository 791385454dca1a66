// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/part-price-tracker/tools/dashgen/panels"
)

// OverviewUID is the stable dashboard uid; it also names the output file.
const OverviewUID = "ppt-overview"

// BuildOverview constructs the PPT Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("PPT Overview").
		Uid(OverviewUID).
		Tags([]string{"ppt", "part-price-tracker"}).
		Refresh("1m").
		Time("now-24h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.NextRefresh()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Refresh cycles.
	b.WithRow(dashboard.NewRowBuilder("Refresh").
		WithPanel(panels.CycleItems()).
		WithPanel(panels.SkippedCycles()).
		WithPanel(panels.CyclesByOutcome()).
		WithPanel(panels.CycleDuration()))

	// Row 4: Fetching.
	b.WithRow(dashboard.NewRowBuilder("Fetching").
		WithPanel(panels.FetchAttemptsRate()).
		WithPanel(panels.FetchRetriesRate()).
		WithPanel(panels.FetchLatency()).
		WithPanel(panels.RateLimitWait()))

	// Row 5: Samples.
	b.WithRow(dashboard.NewRowBuilder("Samples").
		WithPanel(panels.StaleSamples()).
		WithPanel(panels.HistoryQueryLatency()).
		WithPanel(panels.SamplesByStatus()).
		WithPanel(panels.FetchFailureRatio()))

	// Row 6: Changes and notifications.
	b.WithRow(dashboard.NewRowBuilder("Changes").
		WithPanel(panels.ClassificationsRate()).
		WithPanel(panels.NotificationsByOutcome()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
