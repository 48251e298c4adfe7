package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection
type Collector struct {
	Registry *prometheus.Registry

	// Run Metrics
	RunsTotal   *prometheus.CounterVec
	RunDuration prometheus.Histogram
	LastScore   prometheus.Gauge
	LastRunTime prometheus.Gauge

	// Provider Metrics
	ProviderFailuresTotal *prometheus.CounterVec

	// Delivery Metrics
	SinkFailuresTotal *prometheus.CounterVec
}

// NewCollector creates a collector on its own registry, with Go runtime and process metrics.
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Collector{
		Registry: reg,

		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of scouting runs by result",
			},
			[]string{"result"}, // "success", "weather_error", "score_error"
		),

		RunDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of scouting runs in seconds",
				Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
		),

		LastScore: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_score",
				Help:      "Sunset score of the most recent successful run",
			},
		),

		LastRunTime: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the most recent successful run",
			},
		),

		ProviderFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_failures_total",
				Help:      "Total number of failed weather provider calls by provider",
			},
			[]string{"provider"},
		),

		SinkFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sink_failures_total",
				Help:      "Total number of failed report deliveries by sink",
			},
			[]string{"sink"},
		),
	}
}

// Timer provides timing functionality for operations
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// NewTimer creates a new timer
func (c *Collector) NewTimer(histogram prometheus.Observer) *Timer {
	return &Timer{
		start:    time.Now(),
		observer: histogram,
	}
}

// ObserveDuration records the elapsed time since timer creation
func (t *Timer) ObserveDuration() time.Duration {
	duration := time.Since(t.start)
	if t.observer != nil {
		t.observer.Observe(duration.Seconds())
	}
	return duration
}

// RecordRun increments the run counter.
func (c *Collector) RecordRun(result string) {
	c.RunsTotal.WithLabelValues(result).Inc()
}

// RecordScore stores the latest score and run time.
func (c *Collector) RecordScore(score int, at time.Time) {
	c.LastScore.Set(float64(score))
	c.LastRunTime.Set(float64(at.Unix()))
}

// ProviderFailed increments the provider failure counter.
func (c *Collector) ProviderFailed(provider string) {
	c.ProviderFailuresTotal.WithLabelValues(provider).Inc()
}

// SinkFailed increments the delivery failure counter.
func (c *Collector) SinkFailed(sink string) {
	c.SinkFailuresTotal.WithLabelValues(sink).Inc()
}
