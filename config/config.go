package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

type Config struct {
	Geocoding Geocoding `yaml:"geocoding"`
	Forecast  Forecast  `yaml:"forecast"`
	Locate    Locate    `yaml:"locate"`
	Refresh   Refresh   `yaml:"refresh"`
	Units     string    `yaml:"units" validate:"oneof=metric imperial"`
}

type Geocoding struct {
	BaseURL  string `yaml:"baseURL" validate:"required,url"`
	Language string `yaml:"language" validate:"required"`
	Count    int    `yaml:"count" validate:"min=1,max=10"`
}

type Forecast struct {
	BaseURL string `yaml:"baseURL" validate:"required,url"`
}

type Locate struct {
	BaseURL string `yaml:"baseURL" validate:"required,url"`
}

type Refresh struct {
	Interval string `yaml:"interval" validate:"required"`
	Hours    int    `yaml:"hours" validate:"min=1,max=24"`

	// Every is Interval parsed; filled in by Load.
	Every time.Duration `yaml:"-"`
}

// Load parses the embedded YAML, applies SKYWATCH_* environment overrides
// (a .env file is honoured when present) and validates the result.
func Load(raw []byte) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: skipping .env: %v", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Geocoding.BaseURL = getenvDefault("SKYWATCH_GEOCODING_URL", cfg.Geocoding.BaseURL)
	cfg.Forecast.BaseURL = getenvDefault("SKYWATCH_FORECAST_URL", cfg.Forecast.BaseURL)
	cfg.Locate.BaseURL = getenvDefault("SKYWATCH_LOCATE_URL", cfg.Locate.BaseURL)
	cfg.Refresh.Interval = getenvDefault("SKYWATCH_REFRESH_INTERVAL", cfg.Refresh.Interval)
	cfg.Units = getenvDefault("SKYWATCH_UNITS", cfg.Units)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	every, err := time.ParseDuration(cfg.Refresh.Interval)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh interval: %w", err)
	}
	if every < time.Second {
		return nil, fmt.Errorf("refresh interval %s is below 1s", every)
	}
	cfg.Refresh.Every = every

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
