// Package nws is a client for the National Weather Service API
// (api.weather.gov). NWS requires an identifying User-Agent on every
// request and hands back follow-up URLs in its /points metadata.
package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/tempesttoday/tempest/internal/upstream"
)

const DefaultBaseURL = "https://api.weather.gov"

// Client talks to the NWS API through the shared resilience layer.
type Client struct {
	baseURL   string
	userAgent string
	httpCfg   upstream.ClientConfig
	circuit   *gobreaker.CircuitBreaker
}

// NewClient creates an NWS client using the shared outbound HTTP
// client. baseURL falls back to the production API when empty.
func NewClient(client *http.Client, baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpCfg: upstream.ClientConfig{
			Client:  client,
			Backoff: upstream.DefaultBackoff(),
		},
		circuit: upstream.NewBreaker("nws"),
	}
}

// WithBackoff overrides the retry policy. Tests use it to avoid
// sleeping through backoff delays.
func (c *Client) WithBackoff(cfg upstream.BackoffConfig) *Client {
	c.httpCfg.Backoff = cfg
	return c
}

// Points fetches the metadata for a coordinate: the forecast URL and
// the observation stations URL.
func (c *Client) Points(ctx context.Context, lat, lon float64) (Metadata, error) {
	var payload struct {
		Properties struct {
			Forecast            string `json:"forecast"`
			ObservationStations string `json:"observationStations"`
		} `json:"properties"`
	}

	u := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, lat, lon)
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return Metadata{}, fmt.Errorf("nws points: %w", err)
	}

	return Metadata{
		ForecastURL: payload.Properties.Forecast,
		StationsURL: payload.Properties.ObservationStations,
	}, nil
}

// Forecast fetches the forecast periods from the URL the metadata
// handed out.
func (c *Client) Forecast(ctx context.Context, forecastURL string) ([]ForecastPeriod, error) {
	var payload struct {
		Properties struct {
			Periods []ForecastPeriod `json:"periods"`
		} `json:"properties"`
	}

	if err := c.getJSON(ctx, forecastURL, &payload); err != nil {
		return nil, fmt.Errorf("nws forecast: %w", err)
	}
	return payload.Properties.Periods, nil
}

// NearestStation returns the first station of the stations collection,
// which NWS orders by distance. A zero Station (no error) means the
// collection was empty.
func (c *Client) NearestStation(ctx context.Context, stationsURL string) (Station, error) {
	var payload struct {
		Features []struct {
			Properties struct {
				StationIdentifier string `json:"stationIdentifier"`
				Name              string `json:"name"`
			} `json:"properties"`
		} `json:"features"`
	}

	if err := c.getJSON(ctx, stationsURL, &payload); err != nil {
		return Station{}, fmt.Errorf("nws stations: %w", err)
	}

	if len(payload.Features) == 0 {
		return Station{}, nil
	}
	props := payload.Features[0].Properties
	return Station{ID: props.StationIdentifier, Name: props.Name}, nil
}

// LatestObservations fetches the most recent observation for a
// station.
func (c *Client) LatestObservations(ctx context.Context, stationID string) (Observation, error) {
	var payload struct {
		Properties Observation `json:"properties"`
	}

	u := fmt.Sprintf("%s/stations/%s/observations/latest", c.baseURL, stationID)
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return Observation{}, fmt.Errorf("nws observations: %w", err)
	}
	return payload.Properties, nil
}

// ActiveAlerts fetches the active alerts covering a coordinate.
func (c *Client) ActiveAlerts(ctx context.Context, lat, lon float64) ([]Alert, error) {
	var payload struct {
		Features []struct {
			Properties Alert `json:"properties"`
		} `json:"features"`
	}

	u := fmt.Sprintf("%s/alerts/active?point=%.4f,%.4f", c.baseURL, lat, lon)
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("nws alerts: %w", err)
	}

	alerts := make([]Alert, 0, len(payload.Features))
	for _, f := range payload.Features {
		alerts = append(alerts, f.Properties)
	}
	return alerts, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out interface{}) error {
	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/geo+json")
		return req, nil
	}

	resp, err := upstream.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}
