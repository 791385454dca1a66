package main

import "errors"

// KnownMetrics is the set of metric names exported by part-price-tracker
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"ppt_http_request_duration_seconds": true,
	"ppt_http_requests_total":           true,

	// Health metrics.
	"ppt_healthz_up": true,
	"ppt_readyz_up":  true,

	// Refresh orchestration.
	"ppt_refresh_cycle_duration_seconds":   true,
	"ppt_refresh_cycles_total":             true,
	"ppt_refresh_cycles_skipped_total":     true,
	"ppt_refresh_cycle_in_progress":        true,
	"ppt_refresh_cycle_items":              true,
	"ppt_scheduler_next_refresh_timestamp": true,

	// Fetching.
	"ppt_fetch_attempts_total":    true,
	"ppt_fetch_retries_total":     true,
	"ppt_fetch_duration_seconds":  true,
	"ppt_rate_limit_wait_seconds": true,
	"ppt_samples_total":           true,
	"ppt_stale_samples_total":     true,

	// History store.
	"ppt_history_query_duration_seconds": true,

	// Change detection and notifications.
	"ppt_classifications_total":       true,
	"ppt_notifications_total":         true,
	"ppt_notification_failures_total": true,

	// Recording rules.
	"ppt:http_requests:rate5m":   true,
	"ppt:http_errors:rate5m":     true,
	"ppt:fetch_attempts:rate5m":  true,
	"ppt:samples:rate5m":         true,
	"ppt:samples_failed:ratio5m": true,
	"ppt:classifications:rate5m": true,
	"ppt:history_queries:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
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
