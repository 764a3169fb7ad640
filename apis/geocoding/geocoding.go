package geocoding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/go-resty/resty/v2"

	"skywatch/manager"
)

const DefaultBaseURL = "https://geocoding-api.open-meteo.com/v1"

// FallbackName is used when a reverse lookup yields nothing.
const FallbackName = "My location"

func New(baseURL, language string, count int) *geocoding {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if language == "" {
		language = "en"
	}
	if count <= 0 {
		count = 5
	}
	return &geocoding{
		client:   resty.New().SetBaseURL(baseURL),
		language: language,
		count:    count,
	}
}

type geocoding struct {
	client   *resty.Client
	language string
	count    int
}

// Search resolves a city name to up to count places, in the relevance
// order the service returned them. No matches is an empty slice, not an
// error.
func (g *geocoding) Search(ctx context.Context, query string) ([]manager.Place, error) {
	params := map[string]string{
		"name":     query,
		"count":    strconv.Itoa(g.count),
		"language": g.language,
		"format":   "json",
	}

	body, err := g.processRequest(ctx, "/search", params)
	if err != nil {
		return nil, err
	}

	var response searchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, err
	}

	places := make([]manager.Place, 0, len(response.Results))
	for _, result := range response.Results {
		places = append(places, result.place())
	}

	return places, nil
}

// Reverse names the place at the given coordinates. When the service has
// no answer, or fails, a synthetic place is returned instead of an error.
func (g *geocoding) Reverse(ctx context.Context, latitude, longitude float64) manager.Place {
	fallback := manager.Place{
		Name:      FallbackName,
		Latitude:  latitude,
		Longitude: longitude,
	}

	params := map[string]string{
		"latitude":  strconv.FormatFloat(latitude, 'f', -1, 64),
		"longitude": strconv.FormatFloat(longitude, 'f', -1, 64),
		"language":  g.language,
		"format":    "json",
	}

	body, err := g.processRequest(ctx, "/reverse", params)
	if err != nil {
		log.Printf("geocoding: reverse lookup: %v", err)
		return fallback
	}

	var response searchResponse
	if err := json.Unmarshal(body, &response); err != nil || len(response.Results) == 0 {
		return fallback
	}

	return response.Results[0].place()
}

func (g *geocoding) processRequest(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	request := g.client.R().SetContext(ctx)
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

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r searchResult) place() manager.Place {
	return manager.Place{
		ID:        r.ID,
		Name:      r.Name,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}
