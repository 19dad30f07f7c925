// Package rules generates Prometheus recording and alert rules as
// Kubernetes PrometheusRule custom resources.
package rules

// Severity is the value of an alert's severity label.
type Severity string

// Alert severities routed by Alertmanager.
const (
	Warning  Severity = "warning"
	Critical Severity = "critical"
)

// PrometheusRule is a Prometheus Operator custom resource.
type PrometheusRule struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
	Metadata   struct {
		Name   string            `yaml:"name"`
		Labels map[string]string `yaml:"labels,omitempty"`
	} `yaml:"metadata"`
	Spec struct {
		Groups []RuleGroup `yaml:"groups"`
	} `yaml:"spec"`
}

// RuleGroup is a named collection of rules.
type RuleGroup struct {
	Name  string `yaml:"name"`
	Rules []Rule `yaml:"rules"`
}

// Rule is a recording rule when Record is set and an alert when Alert is.
type Rule struct {
	Record      string            `yaml:"record,omitempty"`
	Alert       string            `yaml:"alert,omitempty"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for,omitempty"`
	Labels      map[string]string `yaml:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
}

// resource wraps rules in a single-group CR picked up by the system rules
// Prometheus.
func resource(name, group string, rules ...Rule) PrometheusRule {
	var cr PrometheusRule
	cr.APIVersion = "monitoring.coreos.com/v1"
	cr.Kind = "PrometheusRule"
	cr.Metadata.Name = name
	cr.Metadata.Labels = map[string]string{"prometheus": "system-rules-prometheus"}
	cr.Spec.Groups = []RuleGroup{{Name: group, Rules: rules}}
	return cr
}

func record(name, expr string) Rule {
	return Rule{Record: name, Expr: expr}
}

func alert(name, expr, forDur string, sev Severity, summary, description string) Rule {
	return Rule{
		Alert:  name,
		Expr:   expr,
		For:    forDur,
		Labels: map[string]string{"severity": string(sev)},
		Annotations: map[string]string{
			"summary":     summary,
			"description": description,
		},
	}
}
