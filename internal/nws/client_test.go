package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempesttoday/tempest/internal/upstream"
)

func testClient(baseURL string) *Client {
	return NewClient(http.DefaultClient, baseURL, "tempest-test").
		WithBackoff(upstream.BackoffConfig{MaxRetries: 0, InitialInterval: time.Millisecond})
}

func TestPoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/points/40.7128,-74.0060", r.URL.Path)
		assert.Equal(t, "tempest-test", r.Header.Get("User-Agent"))
		fmt.Fprint(w, `{"properties":{
			"forecast":"https://api.weather.gov/gridpoints/OKX/33,35/forecast",
			"observationStations":"https://api.weather.gov/gridpoints/OKX/33,35/stations"}}`)
	}))
	defer srv.Close()

	meta, err := testClient(srv.URL).Points(context.Background(), 40.7128, -74.0060)
	require.NoError(t, err)
	assert.Contains(t, meta.ForecastURL, "/forecast")
	assert.Contains(t, meta.StationsURL, "/stations")
}

func TestPointsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "oops", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Points(context.Background(), 40.7128, -74.0060)
	assert.Error(t, err)
}

func TestForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"properties":{"periods":[
			{"number":1,"name":"Today","temperature":72,"temperatureUnit":"F","shortForecast":"Sunny"},
			{"number":2,"name":"Tonight","temperature":"58","temperatureUnit":"F"},
			{"number":3,"name":"Monday","temperature":"hot","temperatureUnit":"F"},
			{"number":4,"name":"Monday Night","temperature":null,"temperatureUnit":"F"}]}}`)
	}))
	defer srv.Close()

	periods, err := testClient(srv.URL).Forecast(context.Background(), srv.URL+"/forecast")
	require.NoError(t, err)
	require.Len(t, periods, 4)

	require.NotNil(t, periods[0].Temperature.Value)
	assert.Equal(t, 72.0, *periods[0].Temperature.Value)

	// Numeric strings parse; junk degrades to absent instead of
	// failing the whole forecast.
	require.NotNil(t, periods[1].Temperature.Value)
	assert.Equal(t, 58.0, *periods[1].Temperature.Value)
	assert.Nil(t, periods[2].Temperature.Value)

	// A null temperature is absent, never a present zero.
	assert.Nil(t, periods[3].Temperature.Value)
}

func TestNearestStation(t *testing.T) {
	t.Run("first feature wins", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"features":[
				{"properties":{"stationIdentifier":"KNYC","name":"Central Park"}},
				{"properties":{"stationIdentifier":"KLGA","name":"LaGuardia"}}]}`)
		}))
		defer srv.Close()

		station, err := testClient(srv.URL).NearestStation(context.Background(), srv.URL+"/stations")
		require.NoError(t, err)
		assert.Equal(t, "KNYC", station.ID)
		assert.Equal(t, "Central Park", station.Name)
	})

	t.Run("empty collection is a zero station, not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"features":[]}`)
		}))
		defer srv.Close()

		station, err := testClient(srv.URL).NearestStation(context.Background(), srv.URL+"/stations")
		require.NoError(t, err)
		assert.Empty(t, station.ID)
	})
}

func TestLatestObservations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stations/KNYC/observations/latest", r.URL.Path)
		fmt.Fprint(w, `{"properties":{
			"textDescription":"Clear",
			"temperature":{"value":21.7,"unitCode":"wmoUnit:degC"},
			"windSpeed":{"value":null,"unitCode":"wmoUnit:km_h-1"},
			"relativeHumidity":{"value":55.2,"unitCode":"wmoUnit:percent"}}}`)
	}))
	defer srv.Close()

	obs, err := testClient(srv.URL).LatestObservations(context.Background(), "KNYC")
	require.NoError(t, err)

	assert.Equal(t, "Clear", obs.TextDescription)
	require.NotNil(t, obs.Temperature.Float())
	assert.Equal(t, 21.7, *obs.Temperature.Float())
	assert.Nil(t, obs.WindSpeed.Float(), "null value decodes to absent")
	assert.Equal(t, "wmoUnit:km_h-1", obs.WindSpeed.UnitCode)
	assert.Nil(t, obs.HeatIndex.Float(), "missing key decodes to absent")
}

func TestLatestObservationsMalformedValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"properties":{
			"temperature":{"value":21.7,"unitCode":"wmoUnit:degC"},
			"relativeHumidity":{"value":"55.2","unitCode":"wmoUnit:percent"},
			"windChill":{"value":"brisk","unitCode":"wmoUnit:degC"}}}`)
	}))
	defer srv.Close()

	obs, err := testClient(srv.URL).LatestObservations(context.Background(), "KNYC")
	require.NoError(t, err, "one bad field must not fail the observation")

	// The valid fields survive the malformed one.
	require.NotNil(t, obs.Temperature.Float())
	assert.Equal(t, 21.7, *obs.Temperature.Float())
	require.NotNil(t, obs.RelativeHumidity.Float(), "numeric strings parse")
	assert.Equal(t, 55.2, *obs.RelativeHumidity.Float())
	assert.Nil(t, obs.WindChill.Float(), "junk degrades to absent")
	assert.Equal(t, "wmoUnit:degC", obs.WindChill.UnitCode)
}

func TestActiveAlerts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alerts/active", r.URL.Path)
		assert.Equal(t, "40.7128,-74.0060", r.URL.Query().Get("point"))
		fmt.Fprint(w, `{"features":[{"properties":{
			"event":"Winter Storm Warning","severity":"Severe","urgency":"Immediate",
			"headline":"Winter Storm Warning in effect",
			"description":"Heavy snow expected.","instruction":"Stay home."}}]}`)
	}))
	defer srv.Close()

	alerts, err := testClient(srv.URL).ActiveAlerts(context.Background(), 40.7128, -74.0060)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Winter Storm Warning", alerts[0].Event)
	assert.Equal(t, "Severe", alerts[0].Severity)
	assert.Equal(t, "Stay home.", alerts[0].Instruction)
}

func TestDegreesMarshalRoundTrip(t *testing.T) {
	v := 72.0
	b, err := json.Marshal(Degrees{Value: &v})
	require.NoError(t, err)
	assert.Equal(t, "72", string(b))

	b, err = json.Marshal(Degrees{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
