package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// part-price-tracker operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "ppt-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "ppt-alerts",
					Rules: []Rule{
						{
							Alert: "PptDown",
							Expr:  `absent(up{job="part-price-tracker"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Part Price Tracker is down",
								"description": "The part-price-tracker job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "PptReadinessDown",
							Expr:  `ppt_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Part Price Tracker readiness check is failing",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert: "PptHighErrorRate",
							Expr:  `ppt:http_errors:rate5m / ppt:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on Part Price Tracker",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "PptRefreshTotalFailure",
							Expr:  `increase(ppt_refresh_cycles_total{outcome="total_failure"}[1h]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "A refresh cycle failed for every product URL",
								"description": "Every fetch in a refresh cycle ended in fetch_error. Check network egress and retailer availability.",
							},
						},
						{
							Alert: "PptRefreshOverdue",
							Expr:  `time() - ppt_scheduler_next_refresh_timestamp > 1800 and ppt_refresh_cycle_in_progress == 0`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Scheduled refresh is overdue",
								"description": "The next scheduled refresh is more than 30 minutes in the past and no cycle is running.",
							},
						},
						{
							Alert: "PptFetchErrorsHigh",
							Expr:  `ppt:samples_failed:ratio5m > 0.5`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "More than half of fetches are failing",
								"description": "Over 50% of recorded samples are fetch_error. A retailer layout may have changed.",
							},
						},
						{
							Alert: "PptStaleSamples",
							Expr:  `increase(ppt_stale_samples_total[1h]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "info",
							},
							Annotations: map[string]string{
								"summary":     "Out-of-order price samples were rejected",
								"description": "The history store rejected samples older than the latest recorded one. Check host clock skew.",
							},
						},
						{
							Alert: "PptNotificationFailures",
							Expr:  `increase(ppt_notification_failures_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more push notifications have failed to send.",
							},
						},
					},
				},
			},
		},
	}
}
