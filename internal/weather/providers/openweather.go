package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/i474232898/sunset-scout/internal/weather"
	"github.com/sony/gobreaker"
)

// OpenWeatherProvider implements weather.ForecastProvider for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts ...Option) *OpenWeatherProvider {
	o := buildOptions("https://api.openweathermap.org/data/2.5", opts)
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(o.baseURL, "/"),
		httpCfg: HTTPClientConfig{Client: client, Backoff: o.backoff},
		circuit: newCircuitBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) query(pt weather.Point) url.Values {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", pt.Lat))
	values.Set("lon", fmt.Sprintf("%f", pt.Lon))
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	return values
}

type owmCurrent struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     *float64 `json:"temp"`
		Humidity *int     `json:"humidity"`
	} `json:"main"`
	Clouds struct {
		All *int `json:"all"`
	} `json:"clouds"`
	Visibility *int `json:"visibility"`
	Weather    []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, pt weather.Point) (weather.ProviderReading, error) {
	if p.apiKey == "" {
		return weather.ProviderReading{}, fmt.Errorf("openweather: %w", errMissingAPIKey)
	}

	var payload owmCurrent
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL+"/weather", p.query(pt), &payload); err != nil {
		return weather.ProviderReading{}, err
	}

	ts := time.Now().UTC()
	if payload.Dt > 0 {
		ts = time.Unix(payload.Dt, 0).UTC()
	}

	cond, desc := weather.DefaultCondition, ""
	if len(payload.Weather) > 0 {
		if payload.Weather[0].Main != "" {
			cond = weather.Condition(payload.Weather[0].Main)
		}
		desc = payload.Weather[0].Description
	}

	return weather.ProviderReading{
		ProviderName: p.name,
		Timestamp:    ts,
		CloudCover:   intOr(payload.Clouds.All, weather.DefaultCloudCover),
		Humidity:     intOr(payload.Main.Humidity, weather.DefaultHumidity),
		Visibility:   intOr(payload.Visibility, weather.DefaultVisibility),
		TemperatureC: floatOr(payload.Main.Temp, 0),
		Condition:    cond,
		Description:  desc,
	}, nil
}

// FetchForecast returns the 3-hourly cloud-cover forecast.
func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, pt weather.Point) (weather.Forecast, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("openweather: %w", errMissingAPIKey)
	}

	var payload struct {
		List []struct {
			Dt     int64 `json:"dt"`
			Clouds struct {
				All *int `json:"all"`
			} `json:"clouds"`
		} `json:"list"`
	}
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL+"/forecast", p.query(pt), &payload); err != nil {
		return nil, err
	}

	fc := make(weather.Forecast, 0, len(payload.List))
	for _, item := range payload.List {
		fc = append(fc, weather.ForecastEntry{
			Time:       time.Unix(item.Dt, 0).UTC(),
			CloudCover: intOr(item.Clouds.All, weather.DefaultCloudCover),
		})
	}
	return fc, nil
}
