package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counters(t *testing.T) {
	c := NewCollector("scout")

	c.RecordRun("success")
	c.RecordRun("success")
	c.RecordRun("weather_error")
	c.ProviderFailed("openweathermap")
	c.SinkFailed("smtp")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.RunsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RunsTotal.WithLabelValues("weather_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ProviderFailuresTotal.WithLabelValues("openweathermap")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SinkFailuresTotal.WithLabelValues("smtp")))
}

func TestCollector_RecordScore(t *testing.T) {
	c := NewCollector("scout")
	at := time.Date(2026, 10, 17, 7, 0, 0, 0, time.UTC)

	c.RecordScore(85, at)

	assert.Equal(t, 85.0, testutil.ToFloat64(c.LastScore))
	assert.Equal(t, float64(at.Unix()), testutil.ToFloat64(c.LastRunTime))
}

func TestCollector_IndependentRegistries(t *testing.T) {
	a := NewCollector("scout")
	b := NewCollector("scout")

	a.RecordRun("success")

	assert.Equal(t, 0.0, testutil.ToFloat64(b.RunsTotal.WithLabelValues("success")))

	families, err := a.Registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["scout_runs_total"])
	assert.True(t, names["go_goroutines"])
}

func TestTimer_ObserveDuration(t *testing.T) {
	c := NewCollector("scout")

	timer := c.NewTimer(c.RunDuration)
	d := timer.ObserveDuration()

	assert.GreaterOrEqual(t, d, time.Duration(0))
	assert.Equal(t, 1, testutil.CollectAndCount(c.RunDuration))
}
