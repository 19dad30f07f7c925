package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HealthzUp)
	assert.NotNil(t, ReadyzUp)
	assert.NotNil(t, RunDuration)
	assert.NotNil(t, RunsTotal)
	assert.NotNil(t, RunErrorsTotal)
	assert.NotNil(t, ScrapedItems)
	assert.NotNil(t, NewItemsTotal)
	assert.NotNil(t, FilteredItemsTotal)
	assert.NotNil(t, StateWritesTotal)
	assert.NotNil(t, NotificationsSentTotal)
	assert.NotNil(t, NotificationFailuresTotal)
	assert.NotNil(t, NotificationDuration)
	assert.NotNil(t, NotificationRateRemaining)
	assert.NotNil(t, NotificationDailyUsage)
	assert.NotNil(t, SchedulerNextRunTimestamp)
	assert.NotNil(t, SchedulerSkippedTotal)
}

func TestRunsTotal_LabelsByStatus(t *testing.T) {
	t.Parallel()

	c := RunsTotal.WithLabelValues("metrics_test_status")
	before := testutil.ToFloat64(c)
	c.Inc()
	assert.InDelta(t, before+1, testutil.ToFloat64(c), 0.001)
}
