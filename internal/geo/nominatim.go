package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/tempesttoday/tempest/internal/upstream"
)

const DefaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder resolves addresses through the OpenStreetMap
// Nominatim search API. It needs no API key but requires an
// identifying User-Agent.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	httpCfg   upstream.ClientConfig
	circuit   *gobreaker.CircuitBreaker
}

func NewNominatim(client *http.Client, baseURL, userAgent string) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = DefaultNominatimBaseURL
	}
	return &NominatimGeocoder{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpCfg: upstream.ClientConfig{
			Client:  client,
			Backoff: upstream.DefaultBackoff(),
		},
		circuit: upstream.NewBreaker("nominatim"),
	}
}

// WithBackoff overrides the retry policy. Tests use it to avoid
// sleeping through backoff delays.
func (g *NominatimGeocoder) WithBackoff(cfg upstream.BackoffConfig) *NominatimGeocoder {
	g.httpCfg.Backoff = cfg
	return g
}

// Locate resolves the query, biased to the US by suffixing ", USA" the
// way the search box expects.
func (g *NominatimGeocoder) Locate(ctx context.Context, query string) (Place, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", fmt.Sprintf("%s, USA", query))
		values.Set("format", "jsonv2")
		values.Set("addressdetails", "1")
		values.Set("limit", "1")

		u := fmt.Sprintf("%s/search?%s", g.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", g.userAgent)
		return req, nil
	}

	resp, err := upstream.Do(ctx, g.httpCfg, g.circuit, buildRequest)
	if err != nil {
		return Place{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var payload []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
		Address     struct {
			CountryCode string `json:"country_code"`
			Country     string `json:"country"`
			State       string `json:"state"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Place{}, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}

	if len(payload) == 0 {
		return Place{}, ErrNotFound
	}

	hit := payload[0]
	lat, latErr := strconv.ParseFloat(hit.Lat, 64)
	lon, lonErr := strconv.ParseFloat(hit.Lon, 64)
	if latErr != nil || lonErr != nil {
		return Place{}, fmt.Errorf("%w: malformed coordinates %q,%q", ErrUnavailable, hit.Lat, hit.Lon)
	}

	return Place{
		Lat:         lat,
		Lon:         lon,
		CountryCode: strings.ToUpper(hit.Address.CountryCode),
		Country:     hit.Address.Country,
		State:       hit.Address.State,
		DisplayName: hit.DisplayName,
	}, nil
}
