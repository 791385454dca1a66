package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// FetchAttemptsRate returns a timeseries panel showing HTTP fetch attempts
// per second for each retailer.
func FetchAttemptsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Fetch Attempts").
		Description("Retailer page fetch attempts per second, retries included").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`ppt:fetch_attempts:rate5m`, "{{retailer}}", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FetchRetriesRate returns a timeseries panel showing retries per minute
// for each retailer.
func FetchRetriesRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Retries / min").
		Description("Transient fetch failures that were retried").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum by (retailer) (rate(`+Sel("ppt_fetch_retries_total")+`[5m])) * 60`,
			"{{retailer}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FetchLatency returns a timeseries panel showing the p95 end-to-end fetch
// duration per retailer.
func FetchLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Fetch Duration (p95)").
		Description("95th percentile fetch duration per retailer, retries and backoff included").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(P95("ppt_fetch_duration_seconds", "retailer"), "{{retailer}}", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// RateLimitWait returns a timeseries panel showing the p95 time spent
// waiting on the per-retailer rate limiter.
func RateLimitWait() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Rate Limit Wait (p95)").
		Description("95th percentile wait for a per-retailer request slot").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(P95("ppt_rate_limit_wait_seconds", "retailer"), "{{retailer}}", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// SamplesByStatus returns a timeseries panel showing recorded samples per
// minute by status.
func SamplesByStatus() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Samples / min").
		Description("Price samples produced per minute by status").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`ppt:samples:rate5m * 60`, "{{status}}", "A")).
		FillOpacity(20).
		LineWidth(1).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FetchFailureRatio returns a timeseries panel showing the share of samples
// that ended in fetch_error.
func FetchFailureRatio() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Fetch Error %").
		Description("Share of samples recorded as fetch_error").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`ppt:samples_failed:ratio5m * 100`, "error %", "A")).
		Unit("percent").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(10, 50)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// StaleSamples returns a stat panel counting samples rejected for being
// older than the latest recorded one.
func StaleSamples() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Stale Samples (24h)").
		Description("Samples rejected because a newer sample was already recorded").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`increase(`+Sel("ppt_stale_samples_total")+`[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// HistoryQueryLatency returns a stat panel with the p95 latency of the
// latest-sample lookup that guards every append.
func HistoryQueryLatency() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Latest Lookup p95").
		Description("95th percentile duration of latest-sample queries").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`histogram_quantile(0.95, sum(rate(`+
			Sel("ppt_history_query_duration_seconds_bucket", `op="latest"`)+`[5m])) by (le))`, "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenYellowRed(0.05, 0.25)).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}
