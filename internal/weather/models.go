package weather

import (
	"time"
)

// Condition is the provider-neutral weather group, named after the
// OpenWeatherMap "main" groups. Unrecognized groups pass through unchanged.
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionClouds       Condition = "Clouds"
	ConditionRain         Condition = "Rain"
	ConditionDrizzle      Condition = "Drizzle"
	ConditionThunderstorm Condition = "Thunderstorm"
	ConditionSnow         Condition = "Snow"
	ConditionMist         Condition = "Mist"
	ConditionFog          Condition = "Fog"
	ConditionHaze         Condition = "Haze"
	ConditionSmoke        Condition = "Smoke"
	ConditionDust         Condition = "Dust"
)

// Default values substituted when a provider omits a field.
const (
	DefaultCloudCover = 0
	DefaultHumidity   = 0
	DefaultVisibility = 10000
	DefaultCondition  = ConditionClear
)

// Point is the fixed geographic point weather is observed for.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Observation is the current weather at the observed point.
type Observation struct {
	Time         time.Time `json:"time"`
	CloudCover   int       `json:"cloudCoverPercent"`
	Humidity     int       `json:"humidityPercent"`
	Visibility   int       `json:"visibilityMeters"`
	Condition    Condition `json:"condition"`
	Description  string    `json:"description"`
	TemperatureC float64   `json:"temperatureC"`

	// Providers contributing to this observation.
	Providers []ProviderContribution `json:"providers,omitempty"`
}

// ForecastEntry is a single future cloud-cover sample.
type ForecastEntry struct {
	Time       time.Time `json:"time"`
	CloudCover int       `json:"cloudCoverPercent"`
}

// Forecast is ordered by Time ascending.
type Forecast []ForecastEntry

// ProviderContribution describes data coming from a single provider used in aggregation.
type ProviderContribution struct {
	ProviderName string    `json:"provider"`
	Timestamp    time.Time `json:"timestamp"`
}
