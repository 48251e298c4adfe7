package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/sunset-scout/internal/scout"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Taipei", cfg.Region)
	assert.Equal(t, []string{"openweather", "openmeteo"}, cfg.Providers)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 80, cfg.AlertThreshold)
	assert.Equal(t, "none", cfg.Email.Provider)
	assert.InDelta(t, 25.0330, cfg.Point().Lat, 1e-9)

	h, m := cfg.FallbackClock()
	assert.Equal(t, 17, h)
	assert.Equal(t, 42, m)

	require.Len(t, cfg.Locations, 2)
	near, ok := cfg.Locations.ByRole(scout.RoleNear)
	require.True(t, ok)
	assert.Equal(t, 25, near.TransitMinutes)

	loc, err := cfg.TimeLocation()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Taipei", loc.String())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SCOUT_PROVIDERS", "weatherapi")
	t.Setenv("SCOUT_FALLBACK_SUNSET", "18:05")
	t.Setenv("EMAIL_PROVIDER", "smtp")
	t.Setenv("EMAIL_FROM", "scout@example.com")
	t.Setenv("EMAIL_TO", "a@example.com,b@example.com")
	t.Setenv("SMTP_USERNAME", "scout@example.com")
	t.Setenv("SMTP_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"weatherapi"}, cfg.Providers)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Email.To)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
	h, m := cfg.FallbackClock()
	assert.Equal(t, 18, h)
	assert.Equal(t, 5, m)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown provider":     {"SCOUT_PROVIDERS": "darksky"},
		"bad run time":         {"SCOUT_RUN_AT": "3pm"},
		"bad timezone":         {"SCOUT_TIMEZONE": "Mars/Olympus"},
		"smtp without secrets": {"EMAIL_PROVIDER": "smtp", "EMAIL_FROM": "x@example.com", "EMAIL_TO": "y@example.com"},
		"sendgrid without key": {"EMAIL_PROVIDER": "sendgrid", "EMAIL_FROM": "x@example.com", "EMAIL_TO": "y@example.com"},
		"bad recipient":        {"EMAIL_PROVIDER": "sendgrid", "SENDGRID_API_KEY": "k", "EMAIL_FROM": "x@example.com", "EMAIL_TO": "nope"},
		"bad threshold":        {"SCOUT_ALERT_THRESHOLD": "101"},
		"bad duration":         {"HTTP_TIMEOUT": "soon"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_LocationsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spots.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"key":"pier","name":"Pier","role":"NEAR","transitMinutes":10},
		{"key":"peak","name":"Peak","role":"far","transitMinutes":70,"route":["Bus 1"]}
	]`), 0o644))
	t.Setenv("SCOUT_LOCATIONS_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	far, ok := cfg.Locations.ByRole(scout.RoleFar)
	require.True(t, ok)
	assert.Equal(t, "peak", far.Key)
	assert.Equal(t, []string{"Bus 1"}, far.Route)

	near, ok := cfg.Locations.ByRole(scout.RoleNear)
	require.True(t, ok)
	assert.Equal(t, "pier", near.Key)
}

func TestLoad_LocationsFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spots.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"key":"pier","name":"Pier","role":"near","transitMinutes":0}]`), 0o644))
	t.Setenv("SCOUT_LOCATIONS_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}
