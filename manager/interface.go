package manager

import (
	"context"
	"time"
)

// Forecaster fetches a weather snapshot for one place in one unit system.
type Forecaster interface {
	Fetch(ctx context.Context, place Place, units UnitSystem) (Snapshot, error)
}

// Geocoder resolves place names to coordinates and back.
// Reverse never fails: when the service has no answer it returns a
// synthetic "My location" place for the given coordinates.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]Place, error)
	Reverse(ctx context.Context, latitude, longitude float64) Place
}

// Locator yields the device's approximate coordinates.
type Locator interface {
	Locate(ctx context.Context) (latitude, longitude float64, err error)
}

// Place is a named, geocoded point. Immutable once selected.
type Place struct {
	ID        int64
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
}

// Label renders the place for display: "Berlin, Germany" or just the name.
func (p Place) Label() string {
	if p.Country == "" {
		return p.Name
	}
	return p.Name + ", " + p.Country
}

// CurrentConditions is the observed state at the place. Replaced wholesale
// on every successful fetch, never merged with a prior value.
type CurrentConditions struct {
	Temperature         float64
	ApparentTemperature float64
	WeatherCode         int
	WindSpeed           float64
	RelativeHumidity    float64
	ObservedAt          time.Time
}

// HourlyPoint is one entry of the hourly series.
type HourlyPoint struct {
	Time                     time.Time
	Temperature              float64
	PrecipitationProbability float64
}

// Snapshot is the atomic current+hourly payload for one place at one fetch.
type Snapshot struct {
	Current  CurrentConditions
	Hourly   []HourlyPoint
	Timezone string
}
