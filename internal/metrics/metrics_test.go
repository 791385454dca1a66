package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HealthzUp)
	assert.NotNil(t, ReadyzUp)
	assert.NotNil(t, CycleDuration)
	assert.NotNil(t, CyclesTotal)
	assert.NotNil(t, CycleSkippedTotal)
	assert.NotNil(t, CycleInProgress)
	assert.NotNil(t, SchedulerNextRefreshTimestamp)
	assert.NotNil(t, FetchAttemptsTotal)
	assert.NotNil(t, FetchRetriesTotal)
	assert.NotNil(t, RateLimitWaitDuration)
	assert.NotNil(t, SamplesTotal)
	assert.NotNil(t, StaleSamplesTotal)
	assert.NotNil(t, HistoryQueryDuration)
	assert.NotNil(t, ClassificationsTotal)
	assert.NotNil(t, NotificationsTotal)
	assert.NotNil(t, NotificationFailuresTotal)
}

func TestLabelledCounters(t *testing.T) {
	t.Parallel()

	before := testutil.ToFloat64(SamplesTotal.WithLabelValues("metrics-test", "ok"))
	SamplesTotal.WithLabelValues("metrics-test", "ok").Inc()
	assert.InDelta(t, before+1, testutil.ToFloat64(SamplesTotal.WithLabelValues("metrics-test", "ok")), 0.001)
}
