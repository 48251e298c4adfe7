// Package runner performs one complete scouting run: weather, score, transit plan,
// report, storage and delivery.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/sunset-scout/internal/metrics"
	"github.com/i474232898/sunset-scout/internal/notify"
	"github.com/i474232898/sunset-scout/internal/scout"
	"github.com/i474232898/sunset-scout/internal/weather"
)

// ErrWeatherUnavailable is returned when current conditions could not be fetched.
var ErrWeatherUnavailable = errors.New("weather data unavailable")

// Result labels for the runs counter.
const (
	ResultSuccess      = "success"
	ResultWeatherError = "weather_error"
	ResultScoreError   = "score_error"
)

// WeatherSource is satisfied by *weather.Service.
type WeatherSource interface {
	Current(ctx context.Context) (weather.Observation, error)
	Forecast(ctx context.Context) weather.Forecast
	Sunset(ctx context.Context, now time.Time) time.Time
}

// ReportStore is satisfied by *store.MemoryStore.
type ReportStore interface {
	Save(r scout.Report)
}

type Config struct {
	Region      string
	HomeStation string
	Location    *time.Location
}

type Runner struct {
	cfg     Config
	source  WeatherSource
	scorer  *scout.Scorer
	store   ReportStore
	sinks   []notify.Sink
	metrics *metrics.Collector
	logger  *slog.Logger

	now   func() time.Time
	newID func() string

	// runs are serialized so a manual trigger cannot overlap the scheduled one
	mu sync.Mutex
}

// New creates a Runner. store and m may be nil.
func New(cfg Config, source WeatherSource, scorer *scout.Scorer, store ReportStore, sinks []notify.Sink, m *metrics.Collector, logger *slog.Logger) *Runner {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:     cfg,
		source:  source,
		scorer:  scorer,
		store:   store,
		sinks:   sinks,
		metrics: m,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Run performs one scouting run and returns the report. Sink failures are
// logged and do not fail the run.
func (r *Runner) Run(ctx context.Context) (scout.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.metrics != nil {
		defer r.metrics.NewTimer(r.metrics.RunDuration).ObserveDuration()
	}

	runID := r.newID()
	now := r.now().In(r.cfg.Location)
	log := r.logger.With("run_id", runID)
	log.Info("scouting run started")

	obs, err := r.source.Current(ctx)
	if err != nil {
		r.recordRun(ResultWeatherError)
		log.Error("weather fetch failed", "error", err)
		return scout.Report{}, fmt.Errorf("%w: %w", ErrWeatherUnavailable, err)
	}

	sunset := r.source.Sunset(ctx, now)
	forecast := r.source.Forecast(ctx)

	assessment, err := r.scorer.Score(&obs, forecast, sunset)
	if err != nil {
		r.recordRun(ResultScoreError)
		return scout.Report{}, fmt.Errorf("score: %w", err)
	}

	dest, ok := r.scorer.Locations().ByKey(assessment.LocationKey)
	if !ok {
		r.recordRun(ResultScoreError)
		return scout.Report{}, fmt.Errorf("unknown location %q", assessment.LocationKey)
	}
	plan := scout.PlanTransit(sunset, dest)

	report := scout.Report{
		RunID:       runID,
		GeneratedAt: now,
		Observation: obs,
		Sunset:      sunset,
		Assessment:  assessment,
		Transit:     plan,
	}
	report.Text = scout.FormatReport(scout.ReportInput{
		Region:      r.cfg.Region,
		HomeStation: r.cfg.HomeStation,
		Assessment:  assessment,
		Observation: obs,
		Sunset:      sunset,
		Transit:     plan,
		Location:    dest,
	})

	if r.store != nil {
		r.store.Save(report)
	}
	r.deliver(ctx, log, report)

	r.recordRun(ResultSuccess)
	if r.metrics != nil {
		r.metrics.RecordScore(assessment.Score, now)
	}
	log.Info("scouting run finished",
		"score", assessment.Score,
		"rating", assessment.Rating,
		"recommendation", assessment.Recommendation,
		"location", dest.Key,
		"sunset", sunset.Format("15:04"),
	)
	return report, nil
}

func (r *Runner) deliver(ctx context.Context, log *slog.Logger, report scout.Report) {
	for _, s := range r.sinks {
		if err := s.Deliver(ctx, report); err != nil {
			log.Warn("report delivery failed", "sink", s.Name(), "error", err)
			if r.metrics != nil {
				r.metrics.SinkFailed(s.Name())
			}
			continue
		}
		log.Debug("report delivered", "sink", s.Name())
	}
}

func (r *Runner) recordRun(result string) {
	if r.metrics != nil {
		r.metrics.RecordRun(result)
	}
}
