package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "ppt-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "ppt-recording",
					Rules: []Rule{
						{
							Record: "ppt:http_requests:rate5m",
							Expr:   `sum(rate(ppt_http_requests_total[5m]))`,
						},
						{
							Record: "ppt:http_errors:rate5m",
							Expr:   `sum(rate(ppt_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "ppt:fetch_attempts:rate5m",
							Expr:   `sum by (retailer) (rate(ppt_fetch_attempts_total[5m]))`,
						},
						{
							Record: "ppt:samples:rate5m",
							Expr:   `sum by (status) (rate(ppt_samples_total[5m]))`,
						},
						{
							Record: "ppt:samples_failed:ratio5m",
							Expr: `sum(rate(ppt_samples_total{status="fetch_error"}[5m]))` +
								` / sum(rate(ppt_samples_total[5m]))`,
						},
						{
							Record: "ppt:classifications:rate5m",
							Expr:   `sum by (classification) (rate(ppt_classifications_total[5m]))`,
						},
						{
							Record: "ppt:history_queries:rate5m",
							Expr:   `sum by (op) (rate(ppt_history_query_duration_seconds_count[5m]))`,
						},
					},
				},
			},
		},
	}
}
