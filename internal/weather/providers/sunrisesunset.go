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

// SunriseSunsetProvider implements weather.SunsetProvider using api.sunrise-sunset.org.
type SunriseSunsetProvider struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewSunriseSunsetProvider(client *http.Client, opts ...Option) *SunriseSunsetProvider {
	o := buildOptions("https://api.sunrise-sunset.org", opts)
	return &SunriseSunsetProvider{
		baseURL: strings.TrimSuffix(o.baseURL, "/"),
		httpCfg: HTTPClientConfig{Client: client, Backoff: o.backoff},
		circuit: newCircuitBreaker("sunrisesunset"),
	}
}

// Sunset returns the sunset instant (UTC) for the calendar day of date.
func (p *SunriseSunsetProvider) Sunset(ctx context.Context, pt weather.Point, date time.Time) (time.Time, error) {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", pt.Lat))
	values.Set("lng", fmt.Sprintf("%f", pt.Lon))
	values.Set("date", date.Format("2006-01-02"))
	values.Set("formatted", "0")

	var payload struct {
		Status  string `json:"status"`
		Results struct {
			Sunset string `json:"sunset"`
		} `json:"results"`
	}
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL+"/json", values, &payload); err != nil {
		return time.Time{}, err
	}
	if payload.Status != "OK" {
		return time.Time{}, fmt.Errorf("sunrise-sunset: status %q", payload.Status)
	}

	ts, err := time.Parse(time.RFC3339, payload.Results.Sunset)
	if err != nil {
		return time.Time{}, fmt.Errorf("sunrise-sunset: parse sunset: %w", err)
	}
	return ts.UTC(), nil
}
