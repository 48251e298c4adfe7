package weather

import (
	"context"
	"time"
)

// ProviderReading represents a single provider's normalized reading
// that can be aggregated into an Observation.
type ProviderReading struct {
	ProviderName string
	Timestamp    time.Time

	CloudCover   int
	Humidity     int
	Visibility   int
	TemperatureC float64
	Condition    Condition
	Description  string
}

// Provider abstracts a current-conditions source (e.g. OpenWeatherMap, WeatherAPI, Open-Meteo).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, pt Point) (ProviderReading, error)
}

// ForecastProvider is implemented by providers that can also return
// near-term cloud-cover samples.
type ForecastProvider interface {
	Provider
	FetchForecast(ctx context.Context, pt Point) (Forecast, error)
}

// SunsetProvider returns the sunset instant for the calendar day of date at pt.
type SunsetProvider interface {
	Sunset(ctx context.Context, pt Point, date time.Time) (time.Time, error)
}
