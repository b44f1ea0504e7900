package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryMetrics_Counter(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Counter(MetricBatchTotal, 1)
	m.Counter(MetricBatchTotal, 2)

	assert.Equal(t, int64(3), m.GetCounter(MetricBatchTotal))
	assert.Equal(t, int64(0), m.GetCounter(MetricBatchErrors))
}

func TestInMemoryMetrics_Tags(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Counter(MetricOperationTotal, 1, T("operation", "optimize_batch"))
	m.Counter(MetricOperationTotal, 1, T("operation", "other"))

	assert.Equal(t, int64(1), m.GetCounter(MetricOperationTotal, T("operation", "optimize_batch")))
	assert.Equal(t, int64(0), m.GetCounter(MetricOperationTotal))
}

func TestInMemoryMetrics_GaugeAndTiming(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Gauge(MetricFairnessScore, 97.5)
	m.Gauge(MetricFairnessScore, 88.0)
	m.Timing(MetricBatchDuration, 40*time.Millisecond)
	m.Timing(MetricBatchDuration, 60*time.Millisecond)

	assert.Equal(t, 88.0, m.GetGauge(MetricFairnessScore))
	assert.Len(t, m.GetTimings(MetricBatchDuration), 2)
}

func TestInMemoryMetrics_Reset(t *testing.T) {
	m := NewInMemoryMetrics()
	m.Counter(MetricBatchTotal, 5)
	m.Gauge(MetricFairnessScore, 90)

	m.Reset()

	assert.Equal(t, int64(0), m.GetCounter(MetricBatchTotal))
	assert.Equal(t, 0.0, m.GetGauge(MetricFairnessScore))
}

func TestTimer_RecordsOperationMetrics(t *testing.T) {
	m := NewInMemoryMetrics()

	timer := StartTimer("optimize_batch").WithMetrics(m)
	duration := timer.Stop()

	assert.GreaterOrEqual(t, duration, time.Duration(0))
	assert.Equal(t, int64(1), m.GetCounter(MetricOperationTotal, T("operation", "optimize_batch")))
	assert.Len(t, m.GetTimings(MetricOperationDuration, T("operation", "optimize_batch")), 1)
}

func TestTimer_StopWithError(t *testing.T) {
	m := NewInMemoryMetrics()

	StartTimer("optimize_batch").WithMetrics(m).StopWithError(assert.AnError)

	assert.Equal(t, int64(1), m.GetCounter(MetricOperationErrors, T("operation", "optimize_batch")))
}
