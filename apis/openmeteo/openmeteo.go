package openmeteo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"skywatch/manager"
)

const DefaultBaseURL = "https://api.open-meteo.com/v1"

// Open-Meteo reports timestamps as local time without a zone suffix.
const timeLayout = "2006-01-02T15:04"

const (
	currentFields = "temperature_2m,apparent_temperature,weather_code,wind_speed_10m,relative_humidity_2m"
	hourlyFields  = "temperature_2m,precipitation_probability"
)

func New(baseURL string) *forecast {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &forecast{
		client: resty.New().SetBaseURL(baseURL),
	}
}

type forecast struct {
	client *resty.Client
}

// Fetch retrieves current and hourly weather for the place in the given
// unit system. A single attempt per call; scheduling the next attempt is
// the caller's concern.
func (f *forecast) Fetch(ctx context.Context, place manager.Place, units manager.UnitSystem) (manager.Snapshot, error) {
	resolved := manager.ResolveUnits(units)

	params := map[string]string{
		"latitude":         strconv.FormatFloat(place.Latitude, 'f', -1, 64),
		"longitude":        strconv.FormatFloat(place.Longitude, 'f', -1, 64),
		"timezone":         "auto",
		"current":          currentFields,
		"hourly":           hourlyFields,
		"temperature_unit": resolved.TemperatureParam,
		"wind_speed_unit":  resolved.WindParam,
	}

	body, err := f.processRequest(ctx, "/forecast", params)
	if err != nil {
		return manager.Snapshot{}, err
	}

	var response forecastResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return manager.Snapshot{}, err
	}

	return response.snapshot()
}

func (f *forecast) processRequest(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	request := f.client.R().SetContext(ctx)
	request.SetQueryParams(params)

	response, err := request.Get(path)
	if err != nil {
		return nil, err
	}

	if response.StatusCode() != 200 {
		buf := &bytes.Buffer{}
		if err = json.Indent(buf, response.Body(), "", "  "); err != nil {
			return nil, fmt.Errorf("status code: %d", response.StatusCode())
		}

		return nil, fmt.Errorf("status code: %d\n%s", response.StatusCode(), buf.String())
	}

	return response.Body(), nil
}

type forecastResponse struct {
	Timezone string `json:"timezone"`
	Current  struct {
		Time                string  `json:"time"`
		Temperature         float64 `json:"temperature_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		WeatherCode         int     `json:"weather_code"`
		WindSpeed           float64 `json:"wind_speed_10m"`
		RelativeHumidity    float64 `json:"relative_humidity_2m"`
	} `json:"current"`
	Hourly struct {
		Time                     []string  `json:"time"`
		Temperature              []float64 `json:"temperature_2m"`
		PrecipitationProbability []float64 `json:"precipitation_probability"`
	} `json:"hourly"`
}

// snapshot flattens the parallel hourly arrays into one record sequence.
// When the arrays disagree in length the series is truncated to the
// shortest; index alignment within that range is the service's contract.
func (r forecastResponse) snapshot() (manager.Snapshot, error) {
	observedAt, err := time.Parse(timeLayout, r.Current.Time)
	if err != nil {
		return manager.Snapshot{}, fmt.Errorf("current time %q: %w", r.Current.Time, err)
	}

	count := len(r.Hourly.Time)
	if len(r.Hourly.Temperature) < count {
		count = len(r.Hourly.Temperature)
	}
	if len(r.Hourly.PrecipitationProbability) < count {
		count = len(r.Hourly.PrecipitationProbability)
	}

	hourly := make([]manager.HourlyPoint, 0, count)
	for i := 0; i < count; i++ {
		ts, err := time.Parse(timeLayout, r.Hourly.Time[i])
		if err != nil {
			continue
		}
		hourly = append(hourly, manager.HourlyPoint{
			Time:                     ts,
			Temperature:              r.Hourly.Temperature[i],
			PrecipitationProbability: r.Hourly.PrecipitationProbability[i],
		})
	}

	return manager.Snapshot{
		Current: manager.CurrentConditions{
			Temperature:         r.Current.Temperature,
			ApparentTemperature: r.Current.ApparentTemperature,
			WeatherCode:         r.Current.WeatherCode,
			WindSpeed:           r.Current.WindSpeed,
			RelativeHumidity:    r.Current.RelativeHumidity,
			ObservedAt:          observedAt,
		},
		Hourly:   hourly,
		Timezone: r.Timezone,
	}, nil
}
