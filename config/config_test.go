package config

import (
	"strings"
	"testing"
	"time"
)

var validYAML = []byte(`
geocoding:
  baseURL: https://geocoding-api.open-meteo.com/v1
  language: en
  count: 5
forecast:
  baseURL: https://api.open-meteo.com/v1
locate:
  baseURL: http://ip-api.com
refresh:
  interval: 60s
  hours: 6
units: metric
`)

func TestLoad(t *testing.T) {
	cfg, err := Load(validYAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Geocoding.Count != 5 || cfg.Geocoding.Language != "en" {
		t.Fatalf("geocoding = %+v", cfg.Geocoding)
	}
	if cfg.Refresh.Every != time.Minute {
		t.Fatalf("refresh interval = %s, want 1m", cfg.Refresh.Every)
	}
	if cfg.Refresh.Hours != 6 {
		t.Fatalf("refresh hours = %d, want 6", cfg.Refresh.Hours)
	}
	if cfg.Units != "metric" {
		t.Fatalf("units = %q", cfg.Units)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SKYWATCH_UNITS", "imperial")
	t.Setenv("SKYWATCH_FORECAST_URL", "http://localhost:9999")
	t.Setenv("SKYWATCH_REFRESH_INTERVAL", "90s")

	cfg, err := Load(validYAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Units != "imperial" {
		t.Fatalf("units = %q, want imperial", cfg.Units)
	}
	if cfg.Forecast.BaseURL != "http://localhost:9999" {
		t.Fatalf("forecast baseURL = %q", cfg.Forecast.BaseURL)
	}
	if cfg.Refresh.Every != 90*time.Second {
		t.Fatalf("refresh interval = %s, want 90s", cfg.Refresh.Every)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name        string
		replace     [2]string
		wantMessage string
	}{
		{"bad units", [2]string{"units: metric", "units: kelvin"}, "invalid config"},
		{"bad interval", [2]string{"interval: 60s", "interval: soon"}, "invalid refresh interval"},
		{"sub-second interval", [2]string{"interval: 60s", "interval: 100ms"}, "below 1s"},
		{"missing url", [2]string{"baseURL: https://api.open-meteo.com/v1", `baseURL: ""`}, "invalid config"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			raw := strings.Replace(string(validYAML), c.replace[0], c.replace[1], 1)
			_, err := Load([]byte(raw))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), c.wantMessage) {
				t.Fatalf("error %q does not mention %q", err, c.wantMessage)
			}
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	if _, err := Load([]byte("units: [")); err == nil {
		t.Fatal("expected an error for malformed yaml")
	}
}
