// Package validate checks generated dashboards and rule files before they
// are written: every PromQL expression must parse and every metric it
// selects must be one the tracker exports or a recording rule defines.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/common/model"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/part-price-tracker/tools/dashgen/rules"
)

// Result collects problems found during validation. Errors make an artifact
// unusable; warnings flag queries that work but are probably wrong.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// histogramSuffixes are the series a histogram or summary exposes beyond
// its base name.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Expr parses a single PromQL expression and checks every selected metric
// against known. where prefixes each message.
func Expr(where, expr string, known map[string]bool) Result {
	var r Result

	node, err := parser.ParseExpr(expr)
	if err != nil {
		r.errorf("%s: invalid PromQL %q: %v", where, expr, err)
		return r
	}

	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !knownMetric(vs.Name, known) {
			r.errorf("%s: unknown metric %q", where, vs.Name)
		}
		return nil
	})
	return r
}

func knownMetric(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, s := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, s); ok && known[base] {
			return true
		}
	}
	return false
}

// panelJSON is the subset of the Grafana panel model validation needs. It is
// read from the marshaled dashboard so that every datasource variant is seen
// the way Grafana will see it.
type panelJSON struct {
	Title   string      `json:"title"`
	Type    string      `json:"type"`
	Panels  []panelJSON `json:"panels"`
	Targets []struct {
		RefID string `json:"refId"`
		Expr  string `json:"expr"`
	} `json:"targets"`
}

// Dashboard validates every query of every panel in dash.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var r Result

	raw, err := json.Marshal(dash)
	if err != nil {
		r.errorf("marshaling dashboard: %v", err)
		return r
	}
	var doc struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		r.errorf("reading dashboard json: %v", err)
		return r
	}

	titles := make(map[string]bool)
	var walk func(ps []panelJSON)
	walk = func(ps []panelJSON) {
		for _, p := range ps {
			if p.Type == "row" {
				walk(p.Panels)
				continue
			}
			if titles[p.Title] {
				r.warnf("panel %q: duplicate title", p.Title)
			}
			titles[p.Title] = true

			if len(p.Targets) == 0 {
				r.warnf("panel %q: no queries", p.Title)
			}
			refs := make(map[string]bool)
			for _, t := range p.Targets {
				where := fmt.Sprintf("panel %q query %s", p.Title, t.RefID)
				if refs[t.RefID] {
					r.errorf("%s: duplicate refId", where)
				}
				refs[t.RefID] = true
				if strings.TrimSpace(t.Expr) == "" {
					r.errorf("%s: empty expression", where)
					continue
				}
				r.merge(Expr(where, t.Expr, known))
			}
		}
	}
	walk(doc.Panels)

	return r
}

// Rules validates a PrometheusRule resource: expressions parse, metrics are
// known, durations are well formed, and rule names are unique.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var r Result

	if cr.Metadata.Name == "" {
		r.errorf("rule resource has no name")
	}

	seen := make(map[string]bool)
	for _, g := range cr.Spec.Groups {
		if len(g.Rules) == 0 {
			r.warnf("group %q: no rules", g.Name)
		}
		for _, rule := range g.Rules {
			name := rule.Record
			if name == "" {
				name = rule.Alert
			}
			where := fmt.Sprintf("group %q rule %q", g.Name, name)

			switch {
			case rule.Record == "" && rule.Alert == "":
				r.errorf("%s: neither record nor alert is set", where)
			case rule.Record != "" && rule.Alert != "":
				r.errorf("%s: both record and alert are set", where)
			}
			if seen[name] {
				r.errorf("%s: duplicate name", where)
			}
			seen[name] = true

			if rule.Record != "" && !known[rule.Record] {
				r.warnf("%s: recording rule is not listed as a known metric", where)
			}
			if rule.For != "" {
				if _, err := model.ParseDuration(rule.For); err != nil {
					r.errorf("%s: invalid for duration %q: %v", where, rule.For, err)
				}
			}
			if rule.Alert != "" && rule.Labels["severity"] == "" {
				r.warnf("%s: alert has no severity label", where)
			}

			r.merge(Expr(where, rule.Expr, known))
		}
	}
	return r
}
