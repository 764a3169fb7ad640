package iplocate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"skywatch/manager"
)

const DefaultBaseURL = "http://ip-api.com"

// New builds a locator that approximates the device position from its
// public IP address.
func New(baseURL string) *iplocate {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &iplocate{
		client: resty.New().SetBaseURL(baseURL),
	}
}

type iplocate struct {
	client *resty.Client
}

func (l *iplocate) Locate(ctx context.Context) (float64, float64, error) {
	request := l.client.R().SetContext(ctx)
	request.SetQueryParam("fields", "status,message,lat,lon")

	response, err := request.Get("/json/")
	if err != nil {
		return 0, 0, err
	}

	if response.StatusCode() == 403 {
		return 0, 0, manager.ErrPermissionDenied
	}
	if response.StatusCode() != 200 {
		return 0, 0, fmt.Errorf("status code: %d", response.StatusCode())
	}

	var payload struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.Unmarshal(response.Body(), &payload); err != nil {
		return 0, 0, err
	}

	if payload.Status != "success" {
		if payload.Message != "" {
			return 0, 0, fmt.Errorf("%w: %s", manager.ErrUnsupported, payload.Message)
		}
		return 0, 0, manager.ErrUnsupported
	}

	return payload.Lat, payload.Lon, nil
}
