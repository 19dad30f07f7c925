// Package validate checks generated dashboards and rules for PromQL syntax
// errors and references to metrics the service does not export.
package validate

import (
	"encoding/json"
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/new-item-notifier/tools/dashgen/rules"
)

// Result collects validation findings.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// Expr parses expr and reports any metric it selects that is not in known.
func Expr(where, expr string, known map[string]bool) Result {
	var res Result

	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: invalid PromQL %q: %v", where, expr, err))
		return res
	}

	parser.Inspect(parsed, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !known[vs.Name] {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: unknown metric %q", where, vs.Name))
		}
		return nil
	})

	return res
}

// Dashboard validates every Prometheus target in a built dashboard.
func Dashboard(d dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	for _, p := range d.Panels {
		if p.RowPanel != nil {
			for i := range p.RowPanel.Panels {
				res.merge(panel(&p.RowPanel.Panels[i], known))
			}
		}
		if p.Panel != nil {
			res.merge(panel(p.Panel, known))
		}
	}

	return res
}

func panel(p *dashboard.Panel, known map[string]bool) Result {
	var res Result

	title := "untitled panel"
	if p.Title != nil {
		title = *p.Title
	}
	if len(p.Targets) == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: no targets", title))
	}

	for _, t := range p.Targets {
		expr, err := targetExpr(t)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", title, err))
			continue
		}
		if expr == "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: target %T has no expr", title, t))
			continue
		}
		res.merge(Expr(title, expr, known))
	}

	return res
}

// targetExpr reads the PromQL expression from a panel target through its
// JSON form, which is the same for every dataquery variant.
func targetExpr(t any) (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encoding target: %w", err)
	}
	var q struct {
		Expr string `json:"expr"`
	}
	if err := json.Unmarshal(data, &q); err != nil {
		return "", fmt.Errorf("decoding target: %w", err)
	}
	return q.Expr, nil
}

// Rules validates every expression in a PrometheusRule.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			name := r.Record
			if name == "" {
				name = r.Alert
			}
			res.merge(Expr(g.Name+"/"+name, r.Expr, known))
		}
	}
	return res
}
