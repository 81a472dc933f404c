// Package geoip resolves network addresses to approximate coordinates through
// the ip-api.com JSON endpoint.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"onlyoomfs/config"
	"onlyoomfs/internal/domain/entity"
	"onlyoomfs/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const defaultEndpoint = "http://ip-api.com/json"

const statusSuccess = "success"

// worldBound is the valid WGS84 coordinate range. The provider response is
// external input; a point outside this bound is treated as a failed lookup.
var worldBound = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// ipAPIClient implements the GeoLocator interface against ip-api.com.
type ipAPIClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// lookupPayload mirrors the subset of the provider response we consume.
// Pointers distinguish missing fields from a genuine zero coordinate.
type lookupPayload struct {
	Status string   `json:"status"`
	Lat    *float64 `json:"lat"`
	Lon    *float64 `json:"lon"`
}

// New creates a GeoLocator backed by ip-api.com. The HTTP client carries no
// request timeout: a slow provider is not retried mid-registration, and any
// caller-visible deadline belongs to the inbound HTTP layer.
func New(cfg *config.Config, logger *slog.Logger) service.GeoLocator {
	endpoint := defaultEndpoint
	if cfg.GeoIP != nil && cfg.GeoIP.Endpoint != "" {
		endpoint = strings.TrimRight(cfg.GeoIP.Endpoint, "/")
	}

	return &ipAPIClient{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Locate issues one lookup for addr. Every failure mode (transport error,
// non-2xx status, malformed payload, missing fields) is an error for the
// caller to absorb; the account's location stays unknown.
func (c *ipAPIClient) Locate(ctx context.Context, addr string) (entity.Coordinates, error) {
	lookupURL := c.endpoint + "/" + url.PathEscape(addr)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return entity.UnknownCoordinates(), errors.Wrap(err, "failed to build geolocation request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entity.UnknownCoordinates(), errors.Wrap(err, "geolocation lookup failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return entity.UnknownCoordinates(), errors.Errorf("geolocation provider returned non-success status: %d", resp.StatusCode)
	}

	var payload lookupPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return entity.UnknownCoordinates(), errors.Wrap(err, "failed to decode geolocation payload")
	}

	if payload.Status != "" && payload.Status != statusSuccess {
		return entity.UnknownCoordinates(), errors.Errorf("geolocation provider reported status %q", payload.Status)
	}

	if payload.Lat == nil || payload.Lon == nil {
		return entity.UnknownCoordinates(), errors.New("geolocation payload missing coordinates")
	}

	point := orb.Point{*payload.Lon, *payload.Lat}
	if !worldBound.Contains(point) {
		return entity.UnknownCoordinates(), errors.Errorf("geolocation payload outside valid range: %.4f,%.4f", point.Lat(), point.Lon())
	}

	c.logger.Debug("Resolved caller location",
		slog.String("addr", addr),
		slog.String("point", fmt.Sprintf("%.4f,%.4f", point.Lat(), point.Lon())),
	)

	return entity.Coordinates{
		Latitude:  float32(point.Lat()),
		Longitude: float32(point.Lon()),
		Known:     true,
	}, nil
}
