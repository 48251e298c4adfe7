package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrNoReadings is returned when no current-conditions provider succeeded.
var ErrNoReadings = errors.New("no successful provider readings")

// FailureRecorder is notified of every failed provider call.
type FailureRecorder interface {
	ProviderFailed(provider string)
}

// ServiceConfig holds the fixed observation point and sunset fallback.
type ServiceConfig struct {
	Point    Point
	Location *time.Location

	// FallbackSunsetHour and FallbackSunsetMinute give the local clock time
	// used when the sunset provider is unavailable.
	FallbackSunsetHour   int
	FallbackSunsetMinute int
}

// Service fetches current conditions, forecast and sunset time from its providers.
type Service struct {
	cfg       ServiceConfig
	providers []Provider
	sunset    SunsetProvider
	failures  FailureRecorder
	logger    *slog.Logger
}

// NewService creates a new Service. sunset and failures may be nil.
func NewService(cfg ServiceConfig, providers []Provider, sunset SunsetProvider, failures FailureRecorder, logger *slog.Logger) *Service {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:       cfg,
		providers: providers,
		sunset:    sunset,
		failures:  failures,
		logger:    logger,
	}
}

// Current queries every provider in order and aggregates the successful readings.
// It fails when no provider succeeds since no valid default weather state exists.
func (s *Service) Current(ctx context.Context) (Observation, error) {
	if len(s.providers) == 0 {
		return Observation{}, fmt.Errorf("no weather providers configured")
	}

	var readings []ProviderReading
	var lastErr error
	for _, p := range s.providers {
		r, err := p.Fetch(ctx, s.cfg.Point)
		if err != nil {
			// Log and continue; we want partial success when possible.
			s.logger.Warn("provider fetch failed", "provider", p.Name(), "error", err)
			s.recordFailure(p.Name())
			lastErr = err
			continue
		}
		readings = append(readings, r)
	}

	if len(readings) == 0 {
		return Observation{}, fmt.Errorf("%w: %v", ErrNoReadings, lastErr)
	}

	obs := AggregateReadings(readings)
	s.logger.Debug("current conditions aggregated",
		"providers", len(readings),
		"cloud", obs.CloudCover,
		"humidity", obs.Humidity,
		"visibility", obs.Visibility,
		"condition", obs.Condition,
	)
	return obs, nil
}

// Forecast returns the forecast of the first forecast-capable provider that
// succeeds. A nil Forecast with no error means none was available.
func (s *Service) Forecast(ctx context.Context) Forecast {
	for _, p := range s.providers {
		fp, ok := p.(ForecastProvider)
		if !ok {
			continue
		}
		fc, err := fp.FetchForecast(ctx, s.cfg.Point)
		if err != nil {
			s.logger.Warn("provider forecast failed", "provider", p.Name(), "error", err)
			s.recordFailure(p.Name())
			continue
		}
		return fc
	}
	return nil
}

// Sunset returns the sunset time for the local calendar day of now, falling
// back to the configured default clock time when the provider fails.
func (s *Service) Sunset(ctx context.Context, now time.Time) time.Time {
	local := now.In(s.cfg.Location)
	if s.sunset != nil {
		ts, err := s.sunset.Sunset(ctx, s.cfg.Point, local)
		if err == nil {
			return ts.In(s.cfg.Location)
		}
		s.logger.Warn("sunset lookup failed; using fallback", "error", err)
		s.recordFailure("sunset")
	}
	return s.FallbackSunset(local)
}

// FallbackSunset returns the default sunset clock time on the calendar day of date.
func (s *Service) FallbackSunset(date time.Time) time.Time {
	d := date.In(s.cfg.Location)
	return time.Date(d.Year(), d.Month(), d.Day(), s.cfg.FallbackSunsetHour, s.cfg.FallbackSunsetMinute, 0, 0, s.cfg.Location)
}

func (s *Service) recordFailure(name string) {
	if s.failures != nil {
		s.failures.ProviderFailed(name)
	}
}
