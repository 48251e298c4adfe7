package providers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/i474232898/sunset-scout/internal/weather"
	"github.com/sony/gobreaker"
)

// forecastStep matches the 3-hour spacing of the OpenWeatherMap forecast so
// both forecast providers feed the outlook scan the same cadence.
const forecastStep = 3

// OpenMeteoProvider implements weather.ForecastProvider for Open-Meteo. No API key is needed.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, opts ...Option) *OpenMeteoProvider {
	o := buildOptions("https://api.open-meteo.com/v1", opts)
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: strings.TrimSuffix(o.baseURL, "/"),
		httpCfg: HTTPClientConfig{Client: client, Backoff: o.backoff},
		circuit: newCircuitBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) query(pt weather.Point) url.Values {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", pt.Lat))
	values.Set("longitude", fmt.Sprintf("%f", pt.Lon))
	values.Set("timeformat", "unixtime")
	values.Set("timezone", "GMT")
	return values
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, pt weather.Point) (weather.ProviderReading, error) {
	values := p.query(pt)
	values.Set("current", "temperature_2m,relative_humidity_2m,cloud_cover,visibility,weather_code")

	var payload struct {
		Current struct {
			Time        int64    `json:"time"`
			Temperature *float64 `json:"temperature_2m"`
			Humidity    *float64 `json:"relative_humidity_2m"`
			CloudCover  *float64 `json:"cloud_cover"`
			Visibility  *float64 `json:"visibility"`
			WeatherCode *int     `json:"weather_code"`
		} `json:"current"`
	}
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL+"/forecast", values, &payload); err != nil {
		return weather.ProviderReading{}, err
	}

	ts := time.Now().UTC()
	if payload.Current.Time > 0 {
		ts = time.Unix(payload.Current.Time, 0).UTC()
	}

	cond, desc := weather.DefaultCondition, ""
	if payload.Current.WeatherCode != nil {
		cond, desc = mapOpenMeteoCondition(*payload.Current.WeatherCode)
	}

	return weather.ProviderReading{
		ProviderName: p.name,
		Timestamp:    ts,
		CloudCover:   roundOr(payload.Current.CloudCover, weather.DefaultCloudCover),
		Humidity:     roundOr(payload.Current.Humidity, weather.DefaultHumidity),
		Visibility:   roundOr(payload.Current.Visibility, weather.DefaultVisibility),
		TemperatureC: floatOr(payload.Current.Temperature, 0),
		Condition:    cond,
		Description:  desc,
	}, nil
}

// FetchForecast returns hourly cloud cover for the next day, sampled every third hour.
func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, pt weather.Point) (weather.Forecast, error) {
	values := p.query(pt)
	values.Set("hourly", "cloud_cover")
	values.Set("forecast_hours", "48")

	var payload struct {
		Hourly struct {
			Time       []int64    `json:"time"`
			CloudCover []*float64 `json:"cloud_cover"`
		} `json:"hourly"`
	}
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL+"/forecast", values, &payload); err != nil {
		return nil, err
	}

	n := len(payload.Hourly.Time)
	if len(payload.Hourly.CloudCover) < n {
		n = len(payload.Hourly.CloudCover)
	}

	fc := make(weather.Forecast, 0, n/forecastStep+1)
	for i := 0; i < n; i += forecastStep {
		fc = append(fc, weather.ForecastEntry{
			Time:       time.Unix(payload.Hourly.Time[i], 0).UTC(),
			CloudCover: roundOr(payload.Hourly.CloudCover[i], weather.DefaultCloudCover),
		})
	}
	return fc, nil
}

// mapOpenMeteoCondition maps WMO weather codes onto condition groups.
func mapOpenMeteoCondition(code int) (weather.Condition, string) {
	switch {
	case code == 0:
		return weather.ConditionClear, "clear sky"
	case code == 1:
		return weather.ConditionClouds, "mainly clear"
	case code == 2:
		return weather.ConditionClouds, "partly cloudy"
	case code == 3:
		return weather.ConditionClouds, "overcast"
	case code == 45 || code == 48:
		return weather.ConditionFog, "fog"
	case code >= 51 && code <= 57:
		return weather.ConditionDrizzle, "drizzle"
	case (code >= 61 && code <= 67) || (code >= 80 && code <= 82):
		return weather.ConditionRain, "rain"
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return weather.ConditionSnow, "snow"
	case code >= 95:
		return weather.ConditionThunderstorm, "thunderstorm"
	default:
		return weather.DefaultCondition, ""
	}
}

func roundOr(v *float64, def int) int {
	if v == nil {
		return def
	}
	return int(math.Round(*v))
}
