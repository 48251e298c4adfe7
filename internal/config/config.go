package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/i474232898/sunset-scout/internal/scout"
	"github.com/i474232898/sunset-scout/internal/weather"
)

type AppConfig struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// Observation point and its civil time zone.
	Region   string  `envconfig:"SCOUT_REGION" default:"Taipei" validate:"required"`
	Timezone string  `envconfig:"SCOUT_TIMEZONE" default:"Asia/Taipei" validate:"required"`
	Lat      float64 `envconfig:"SCOUT_LAT" default:"25.0330" validate:"gte=-90,lte=90"`
	Lon      float64 `envconfig:"SCOUT_LON" default:"121.5654" validate:"gte=-180,lte=180"`

	HomeStation    string `envconfig:"SCOUT_HOME_STATION" default:"Technology Building Station" validate:"required"`
	FallbackSunset string `envconfig:"SCOUT_FALLBACK_SUNSET" default:"17:42" validate:"datetime=15:04"`

	// LocationsFile optionally replaces the built-in viewing spots with a JSON array.
	LocationsFile string          `envconfig:"SCOUT_LOCATIONS_FILE"`
	Locations     scout.Locations `ignored:"true" validate:"min=2,dive"`

	OpenWeatherAPIKey string        `envconfig:"OPENWEATHER_API_KEY"`
	WeatherAPIKey     string        `envconfig:"WEATHERAPI_API_KEY"`
	Providers         []string      `envconfig:"SCOUT_PROVIDERS" default:"openweather,openmeteo" validate:"min=1,dive,oneof=openweather openmeteo weatherapi"`
	HTTPTimeout       time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s" validate:"gt=0"`

	// Serve mode.
	RunAt string `envconfig:"SCOUT_RUN_AT" default:"15:00" validate:"datetime=15:04"`
	Port  string `envconfig:"PORT" default:"8080"`

	// In-memory store retention.
	StoreMaxHistory int           `envconfig:"STORE_MAX_HISTORY" default:"7"`    // max number of reports kept (0 = unlimited)
	StoreMaxAge     time.Duration `envconfig:"STORE_MAX_AGE" default:"168h"` // max age of reports (0 = unlimited)

	// Sinks.
	OutputDir      string `envconfig:"SCOUT_OUTPUT_DIR" default:"reports"`
	AlertFile      string `envconfig:"SCOUT_ALERT_FILE" default:"/tmp/sunset_alert.txt"`
	AlertThreshold int    `envconfig:"SCOUT_ALERT_THRESHOLD" default:"80" validate:"gte=0,lte=100"`

	Email EmailConfig
}

type EmailConfig struct {
	Provider string   `envconfig:"EMAIL_PROVIDER" default:"none" validate:"oneof=none smtp sendgrid"`
	From     string   `envconfig:"EMAIL_FROM" validate:"required_unless=Provider none"`
	To       []string `envconfig:"EMAIL_TO" validate:"required_unless=Provider none,dive,email"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME" validate:"required_if=Provider smtp"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD" validate:"required_if=Provider smtp"`

	SendGridAPIKey string `envconfig:"SENDGRID_API_KEY" validate:"required_if=Provider sendgrid"`
}

// Load reads configuration from the environment (and a .env file if present).
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	cfg.Locations = DefaultLocations()
	if cfg.LocationsFile != "" {
		locs, err := loadLocationsFile(cfg.LocationsFile)
		if err != nil {
			return nil, err
		}
		cfg.Locations = locs
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.TimeLocation(); err != nil {
		return nil, fmt.Errorf("invalid SCOUT_TIMEZONE: %w", err)
	}
	return cfg, nil
}

// TimeLocation resolves the configured time zone.
func (c *AppConfig) TimeLocation() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Point is the observed geographic point.
func (c *AppConfig) Point() weather.Point {
	return weather.Point{Lat: c.Lat, Lon: c.Lon}
}

// FallbackClock splits FallbackSunset into hour and minute.
func (c *AppConfig) FallbackClock() (hour, minute int) {
	t, err := time.Parse("15:04", c.FallbackSunset)
	if err != nil {
		return 17, 42
	}
	return t.Hour(), t.Minute()
}

func loadLocationsFile(path string) (scout.Locations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locations file: %w", err)
	}
	var locs scout.Locations
	if err := json.Unmarshal(data, &locs); err != nil {
		return nil, fmt.Errorf("parse locations file %s: %w", path, err)
	}
	for i := range locs {
		locs[i].Role = scout.Role(strings.ToLower(string(locs[i].Role)))
	}
	return locs, nil
}
