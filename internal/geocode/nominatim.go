package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"wheelshare/pkg/apperr"

	"go.uber.org/zap"
)

// defaultUserAgent identifies us to the Nominatim service, which rejects
// anonymous clients.
const defaultUserAgent = "WheelShare/1.0"

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type nominatimGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
	log       *zap.Logger
}

// NewNominatim builds a Geocoder backed by a Nominatim-compatible endpoint.
func NewNominatim(baseURL, userAgent string, timeout time.Duration, log *zap.Logger) Geocoder {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &nominatimGeocoder{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
		log:       log.With(zap.String("service", "geocode")),
	}
}

func (g *nominatimGeocoder) Geocode(ctx context.Context, address string) (Point, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return Point{}, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Error("Geocoding request failed",
			zap.Error(err),
			zap.String("address", address),
		)
		return Point{}, apperr.Wrap(apperr.CodeUpstreamUnavailable, "geocoding service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.log.Error("Geocoding service returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("address", address),
		)
		return Point{}, apperr.UpstreamUnavailable(
			fmt.Sprintf("geocoding service returned status %d", resp.StatusCode))
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		g.log.Error("Failed to decode geocoding response", zap.Error(err))
		return Point{}, apperr.Wrap(apperr.CodeUpstreamUnavailable, "invalid geocoding response", err)
	}

	if len(results) == 0 {
		return Point{}, apperr.AddressNotFound(fmt.Sprintf("address %q could not be resolved", address))
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Point{}, apperr.Wrap(apperr.CodeUpstreamUnavailable, "invalid latitude in geocoding response", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Point{}, apperr.Wrap(apperr.CodeUpstreamUnavailable, "invalid longitude in geocoding response", err)
	}

	return Point{Latitude: lat, Longitude: lon}, nil
}
