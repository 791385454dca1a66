package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CyclesByOutcome returns a timeseries panel showing completed refresh
// cycles per hour split by outcome.
func CyclesByOutcome() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Cycles / hour").
		Description("Completed refresh cycles per hour by outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum by (outcome) (increase(`+Sel("ppt_refresh_cycles_total")+`[1h]))`,
			"{{outcome}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("lastNotNull", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// CycleDuration returns a timeseries panel showing the p95 refresh cycle
// duration.
func CycleDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Cycle Duration (p95)").
		Description("95th percentile refresh cycle duration").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(P95("ppt_refresh_cycle_duration_seconds"), "p95", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CycleItems returns a stat panel showing how many product URLs the most
// recent cycle processed.
func CycleItems() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Items per Cycle").
		Description("Active product URLs processed by the last refresh cycle").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(Sel("ppt_refresh_cycle_items"), "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// SkippedCycles returns a stat panel counting refresh triggers rejected
// because a cycle was already running.
func SkippedCycles() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Skipped Cycles (24h)").
		Description("Refresh triggers rejected while another cycle was in progress").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`increase(`+Sel("ppt_refresh_cycles_skipped_total")+`[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}
