package iplocate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"skywatch/manager"
)

func TestLocate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/json/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","lat":52.52,"lon":13.41}`))
	}))
	defer server.Close()

	client := New(server.URL)

	latitude, longitude, err := client.Locate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latitude != 52.52 || longitude != 13.41 {
		t.Fatalf("coordinates = %v, %v", latitude, longitude)
	}
}

func TestLocateFailStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer server.Close()

	client := New(server.URL)

	_, _, err := client.Locate(context.Background())
	if !errors.Is(err, manager.ErrUnsupported) {
		t.Fatalf("error = %v, want ErrUnsupported", err)
	}
}

func TestLocateForbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := New(server.URL)

	_, _, err := client.Locate(context.Background())
	if !errors.Is(err, manager.ErrPermissionDenied) {
		t.Fatalf("error = %v, want ErrPermissionDenied", err)
	}
}
