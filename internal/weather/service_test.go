package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name     string
	reading  ProviderReading
	err      error
	forecast Forecast
	fcErr    error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Fetch(context.Context, Point) (ProviderReading, error) {
	return f.reading, f.err
}

type fakeForecastProvider struct {
	fakeProvider
}

func (f *fakeForecastProvider) FetchForecast(context.Context, Point) (Forecast, error) {
	return f.forecast, f.fcErr
}

type fakeSunset struct {
	ts  time.Time
	err error
}

func (f fakeSunset) Sunset(context.Context, Point, time.Time) (time.Time, error) {
	return f.ts, f.err
}

type countingRecorder struct {
	failed []string
}

func (c *countingRecorder) ProviderFailed(name string) { c.failed = append(c.failed, name) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func taipei(t *testing.T) *time.Location {
	t.Helper()
	return time.FixedZone("CST", 8*60*60)
}

func TestService_Current_PartialSuccess(t *testing.T) {
	rec := &countingRecorder{}
	svc := NewService(ServiceConfig{}, []Provider{
		&fakeProvider{name: "down", err: errors.New("boom")},
		&fakeProvider{name: "up", reading: ProviderReading{ProviderName: "up", CloudCover: 55, Humidity: 50, Visibility: 10000, Condition: ConditionClouds}},
	}, nil, rec, discardLogger())

	obs, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 55, obs.CloudCover)
	assert.Equal(t, []string{"down"}, rec.failed)
}

func TestService_Current_AllFail(t *testing.T) {
	svc := NewService(ServiceConfig{}, []Provider{
		&fakeProvider{name: "a", err: errors.New("boom")},
	}, nil, nil, discardLogger())

	_, err := svc.Current(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoReadings))
}

func TestService_Current_NoProviders(t *testing.T) {
	svc := NewService(ServiceConfig{}, nil, nil, nil, discardLogger())
	_, err := svc.Current(context.Background())
	assert.Error(t, err)
}

func TestService_Forecast_FirstSuccessWins(t *testing.T) {
	want := Forecast{{Time: time.Unix(100, 0), CloudCover: 40}}
	svc := NewService(ServiceConfig{}, []Provider{
		&fakeProvider{name: "plain"},
		&fakeForecastProvider{fakeProvider{name: "broken", fcErr: errors.New("nope")}},
		&fakeForecastProvider{fakeProvider{name: "good", forecast: want}},
	}, nil, nil, discardLogger())

	assert.Equal(t, want, svc.Forecast(context.Background()))
}

func TestService_Forecast_NoneAvailable(t *testing.T) {
	svc := NewService(ServiceConfig{}, []Provider{&fakeProvider{name: "plain"}}, nil, nil, discardLogger())
	assert.Nil(t, svc.Forecast(context.Background()))
}

func TestService_Sunset_Fallback(t *testing.T) {
	loc := taipei(t)
	svc := NewService(ServiceConfig{
		Location:             loc,
		FallbackSunsetHour:   17,
		FallbackSunsetMinute: 42,
	}, nil, fakeSunset{err: errors.New("down")}, nil, discardLogger())

	now := time.Date(2026, 10, 17, 3, 0, 0, 0, time.UTC)
	got := svc.Sunset(context.Background(), now)

	assert.Equal(t, time.Date(2026, 10, 17, 17, 42, 0, 0, loc), got)
}

func TestService_Sunset_ConvertsToLocalZone(t *testing.T) {
	loc := taipei(t)
	utc := time.Date(2026, 10, 17, 9, 35, 0, 0, time.UTC)
	svc := NewService(ServiceConfig{Location: loc}, nil, fakeSunset{ts: utc}, nil, discardLogger())

	got := svc.Sunset(context.Background(), utc)
	assert.Equal(t, 17, got.Hour())
	assert.Equal(t, 35, got.Minute())
	assert.Equal(t, loc, got.Location())
}
