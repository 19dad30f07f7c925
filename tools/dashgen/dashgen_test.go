package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/new-item-notifier/tools/dashgen/dashboards"
	"github.com/donaldgifford/new-item-notifier/tools/dashgen/rules"
	"github.com/donaldgifford/new-item-notifier/tools/dashgen/validate"
)

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate_EmptyOutputDir(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "", DashboardEnabled: true}
	assert.Error(t, cfg.Validate())
}

func TestConfigValidate_NothingEnabled(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "/tmp", DashboardEnabled: false, RulesEnabled: false}
	assert.Error(t, cfg.Validate())
}

func TestBuildOverviewDashboard(t *testing.T) {
	t.Parallel()

	builder := dashboards.BuildOverview()
	dash, err := builder.Build()
	require.NoError(t, err)

	require.NotNil(t, dash.Uid)
	assert.Equal(t, "nin-overview", *dash.Uid)

	require.NotNil(t, dash.Title)
	assert.Equal(t, "New Item Notifier", *dash.Title)

	require.NotNil(t, dash.Templating)
	assert.Len(t, dash.Templating.List, 1)
	assert.Equal(t, "datasource", dash.Templating.List[0].Name)

	assert.Len(t, dash.Panels, 4)

	totalPanels := 0
	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			totalPanels += len(p.RowPanel.Panels)
		}
	}
	assert.Equal(t, 17, totalPanels)

	result := validate.Dashboard(dash, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings, "unexpected warnings: %v", result.Warnings)
}

func TestRecordingRules(t *testing.T) {
	t.Parallel()

	cr := rules.RecordingRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "nin-recording-rules", cr.Metadata.Name)
	assert.Equal(t, "system-rules-prometheus", cr.Metadata.Labels["prometheus"])

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "nin-recording", group.Name)

	expectedRecords := []string{
		"nin:http_requests:rate5m",
		"nin:http_errors:rate5m",
		"nin:runs:rate1h",
		"nin:run_errors:rate1h",
		"nin:notification_failures:rate1h",
		"nin:notification_duration:p95_1h",
	}
	require.Len(t, group.Rules, len(expectedRecords))
	for i, rule := range group.Rules {
		assert.Equal(t, expectedRecords[i], rule.Record)
		assert.True(t, KnownMetrics[rule.Record], "recording rule %s not in KnownMetrics", rule.Record)
	}

	result := validate.Rules(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)

	data, err := yaml.Marshal(cr)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: monitoring.coreos.com/v1")
}

func TestAlertRules(t *testing.T) {
	t.Parallel()

	cr := rules.AlertRules()
	assert.Equal(t, "nin-alerts", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "nin-alerts", group.Name)

	expectedAlerts := []string{
		"NinDown",
		"NinReadinessDown",
		"NinScrapeFailing",
		"NinStateWriteFailing",
		"NinNoRuns",
		"NinPostQuotaHigh",
		"NinNotificationFailures",
	}
	require.Len(t, group.Rules, len(expectedAlerts))
	for i, rule := range group.Rules {
		assert.Equal(t, expectedAlerts[i], rule.Alert)
		assert.Contains(t, []string{string(rules.Warning), string(rules.Critical)}, rule.Labels["severity"],
			"alert %s has unknown severity", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], "alert %s missing summary", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["description"], "alert %s missing description", rule.Alert)
	}

	result := validate.Rules(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
}

func TestValidateExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		expr    string
		wantErr string
	}{
		{name: "known metric", expr: `rate(nin_runs_total[5m])`},
		{name: "unknown metric", expr: `rate(spt_ingestion_listings_total[5m])`, wantErr: "unknown metric"},
		{name: "syntax error", expr: `rate(nin_runs_total[5m]`, wantErr: "invalid PromQL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := validate.Expr("test", tt.expr, KnownMetrics)
			if tt.wantErr == "" {
				assert.True(t, res.Ok(), "errors: %v", res.Errors)
				return
			}
			require.Len(t, res.Errors, 1)
			assert.Contains(t, res.Errors[0], tt.wantErr)
		})
	}
}

func TestRun_WritesArtifacts(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	require.NoError(t, run(cfg, false))

	for _, p := range []string{
		filepath.Join("grafana", "data", "nin-overview.json"),
		filepath.Join("prometheus", "nin-recording-rules.yaml"),
		filepath.Join("prometheus", "nin-alerts.yaml"),
	} {
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, p))
		require.NoError(t, err, p)
		assert.NotEmpty(t, data, p)
	}

	rulesYAML, err := os.ReadFile(filepath.Join(cfg.OutputDir, "prometheus", "nin-alerts.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(rulesYAML), generatedHeader)
}

func TestRun_ValidateOnlyWritesNothing(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	require.NoError(t, run(cfg, true))

	_, err := os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(err))
}
