package geoip

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"onlyoomfs/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocator(endpoint string) *ipAPIClient {
	cfg := &config.Config{GeoIP: &config.GeoIPConfig{Endpoint: endpoint}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(cfg, logger).(*ipAPIClient)
}

func TestIPAPIClient_Locate_Success(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","lat":51.5,"lon":-0.1}`))
	}))
	defer server.Close()

	locator := newTestLocator(server.URL)

	location, err := locator.Locate(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, "/203.0.113.7", requestedPath)
	assert.True(t, location.Known)
	assert.InDelta(t, 51.5, float64(location.Latitude), 1e-6)
	assert.InDelta(t, -0.1, float64(location.Longitude), 1e-6)
}

func TestIPAPIClient_Locate_ProviderFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// ip-api reports lookup failures inside a 200 response.
		_, _ = w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer server.Close()

	locator := newTestLocator(server.URL)

	location, err := locator.Locate(context.Background(), "10.0.0.1")
	assert.Error(t, err)
	assert.False(t, location.Known)
	assert.Zero(t, location.Latitude)
	assert.Zero(t, location.Longitude)
}

func TestIPAPIClient_Locate_MissingCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","lat":51.5}`))
	}))
	defer server.Close()

	locator := newTestLocator(server.URL)

	location, err := locator.Locate(context.Background(), "203.0.113.7")
	assert.Error(t, err)
	assert.False(t, location.Known)
}

func TestIPAPIClient_Locate_OutOfRangeCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A latitude beyond 90 cannot be a real fix; the lookup must fail
		// rather than persist garbage.
		_, _ = w.Write([]byte(`{"status":"success","lat":123.4,"lon":-0.1}`))
	}))
	defer server.Close()

	locator := newTestLocator(server.URL)

	location, err := locator.Locate(context.Background(), "203.0.113.7")
	assert.Error(t, err)
	assert.False(t, location.Known)
}

func TestIPAPIClient_Locate_NonSuccessHTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	locator := newTestLocator(server.URL)

	location, err := locator.Locate(context.Background(), "203.0.113.7")
	assert.Error(t, err)
	assert.False(t, location.Known)
}

func TestIPAPIClient_Locate_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"lat": not-json`))
	}))
	defer server.Close()

	locator := newTestLocator(server.URL)

	location, err := locator.Locate(context.Background(), "203.0.113.7")
	assert.Error(t, err)
	assert.False(t, location.Known)
}

func TestIPAPIClient_Locate_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Refuse connections.

	locator := newTestLocator(server.URL)

	location, err := locator.Locate(context.Background(), "203.0.113.7")
	assert.Error(t, err)
	assert.False(t, location.Known)
}

func TestNew_DefaultEndpoint(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	locator := New(&config.Config{}, logger).(*ipAPIClient)

	assert.Equal(t, defaultEndpoint, locator.endpoint)
}
