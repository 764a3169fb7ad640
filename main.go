package main

import (
	"context"
	_ "embed"
	"log"
	"os/signal"
	"syscall"

	"skywatch/apis/geocoding"
	"skywatch/apis/iplocate"
	"skywatch/apis/openmeteo"
	"skywatch/cli"
	"skywatch/config"
)

//go:embed config.yaml
var configRaw []byte

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configRaw)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	geocoder := geocoding.New(cfg.Geocoding.BaseURL, cfg.Geocoding.Language, cfg.Geocoding.Count)
	forecaster := openmeteo.New(cfg.Forecast.BaseURL)
	locator := iplocate.New(cfg.Locate.BaseURL)

	cmd, err := cli.New(forecaster, geocoder, locator, cfg)
	if err != nil {
		log.Fatalf("new cli: %s", err)
	}

	if err = cmd.ExecuteContext(ctx); err != nil {
		log.Printf("exec: %s\n", err)
	}
}
