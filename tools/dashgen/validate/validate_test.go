package validate_test

import (
	"testing"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/part-price-tracker/tools/dashgen/rules"
	"github.com/donaldgifford/part-price-tracker/tools/dashgen/validate"
)

var known = map[string]bool{
	"ppt_fetch_duration_seconds": true,
	"ppt_samples_total":          true,
	"ppt:samples:rate5m":         true,
	"up":                         true,
}

func TestExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		expr    string
		wantErr string
	}{
		{name: "plain counter", expr: `rate(ppt_samples_total[5m])`},
		{name: "recording rule", expr: `ppt:samples:rate5m{status="ok"} * 60`},
		{
			name: "histogram bucket",
			expr: `histogram_quantile(0.95, sum(rate(ppt_fetch_duration_seconds_bucket[5m])) by (le))`,
		},
		{name: "histogram count", expr: `ppt_fetch_duration_seconds_count`},
		{name: "unknown metric", expr: `rate(ppt_listings_total[5m])`, wantErr: `unknown metric "ppt_listings_total"`},
		{name: "unknown suffix base", expr: `ppt_nope_bucket`, wantErr: "unknown metric"},
		{name: "syntax error", expr: `sum(rate(ppt_samples_total[5m])`, wantErr: "invalid PromQL"},
		{name: "absent wrapper", expr: `absent(up{job="part-price-tracker"})`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := validate.Expr("q", tt.expr, known)
			if tt.wantErr == "" {
				assert.True(t, r.Ok(), "errors: %v", r.Errors)
				return
			}
			require.False(t, r.Ok())
			assert.Contains(t, r.Errors[0], tt.wantErr)
		})
	}
}

func panel(title string, exprs ...string) *timeseries.PanelBuilder {
	b := timeseries.NewPanelBuilder().Title(title)
	for i, e := range exprs {
		b.WithTarget(prometheus.NewDataqueryBuilder().Expr(e).RefId(string(rune('A' + i))))
	}
	return b
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	dash, err := dashboard.NewDashboardBuilder("test").
		WithRow(dashboard.NewRowBuilder("row").
			WithPanel(panel("Samples", `ppt:samples:rate5m`)).
			WithPanel(panel("Broken", `rate(ppt_unknown_total[5m])`)).
			WithPanel(panel("Samples", `ppt_samples_total`)).
			WithPanel(panel("Empty"))).
		Build()
	require.NoError(t, err)

	r := validate.Dashboard(dash, known)
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], `panel "Broken" query A: unknown metric`)
	assert.ElementsMatch(t, []string{
		`panel "Samples": duplicate title`,
		`panel "Empty": no queries`,
	}, r.Warnings)
}

func TestRules(t *testing.T) {
	t.Parallel()

	cr := rules.PrometheusRule{
		Metadata: rules.PrometheusRuleMetadata{Name: "test"},
		Spec: rules.PrometheusRuleSpec{Groups: []rules.RuleGroup{{
			Name: "g",
			Rules: []rules.Rule{
				{Record: "ppt:samples:rate5m", Expr: `sum by (status) (rate(ppt_samples_total[5m]))`},
				{Record: "ppt:samples:rate5m", Expr: `ppt_samples_total`},
				{Alert: "BadFor", Expr: `up == 0`, For: "five minutes", Labels: map[string]string{"severity": "warning"}},
				{Alert: "NoSeverity", Expr: `up == 0`},
				{Expr: `up`},
			},
		}}},
	}

	r := validate.Rules(cr, known)
	assert.False(t, r.Ok())

	joined := func(ss []string) string {
		out := ""
		for _, s := range ss {
			out += s + "\n"
		}
		return out
	}
	errs := joined(r.Errors)
	assert.Contains(t, errs, `rule "ppt:samples:rate5m": duplicate name`)
	assert.Contains(t, errs, `invalid for duration "five minutes"`)
	assert.Contains(t, errs, "neither record nor alert is set")
	assert.Contains(t, joined(r.Warnings), `rule "NoSeverity": alert has no severity label`)
}
