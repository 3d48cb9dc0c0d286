package weather

import (
	"time"

	"github.com/tempesttoday/tempest/internal/astro"
	"github.com/tempesttoday/tempest/internal/geo"
	"github.com/tempesttoday/tempest/internal/nws"
	"github.com/tempesttoday/tempest/internal/units"
)

// CurrentConditions is the normalized, display-ready observation
// bundle. Every pointer field is independently present-or-absent; nil
// is the one and only "no data" encoding, distinct from a legitimate
// zero. Absence of one field never blocks the others.
type CurrentConditions struct {
	Temp        *int    `json:"temp"`
	Description *string `json:"description"`

	Station         *string `json:"station"`
	StationFullName *string `json:"stationFullName"`

	WindSpeedMPH  *int    `json:"windSpeedMph"`
	WindLabel     *string `json:"windLabel"`
	WindDirection *string `json:"windDirection"`

	Humidity  *int `json:"humidity"`
	HeatIndex *int `json:"heatIndex"`
	WindChill *int `json:"windChill"`

	MaxTemp24h *int `json:"maxTemp24h"`
	MinTemp24h *int `json:"minTemp24h"`

	Precip1hIn *float64 `json:"precip1hIn"`
	Precip1hMM *float64 `json:"precip1hMm"`
}

// ForecastPeriod is one display forecast entry with its temperature
// already converted to the requested unit.
type ForecastPeriod struct {
	Name             string    `json:"name"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	IsDaytime        bool      `json:"isDaytime"`
	Temperature      *int      `json:"temperature"`
	TemperatureUnit  string    `json:"temperatureUnit"`
	WindSpeed        string    `json:"windSpeed"`
	WindDirection    string    `json:"windDirection"`
	Icon             string    `json:"icon"`
	ShortForecast    string    `json:"shortForecast"`
	DetailedForecast string    `json:"detailedForecast"`
}

// Report is the merged display record for one request.
type Report struct {
	Address  string         `json:"address"`
	Unit     units.TempUnit `json:"unit"`
	Location geo.Place      `json:"location"`

	Current   CurrentConditions `json:"current"`
	Astronomy *astro.Record     `json:"astronomy,omitempty"`
	IsNight   bool              `json:"isNight"`

	Forecast         []ForecastPeriod `json:"forecast"`
	DetailedForecast string           `json:"detailedForecast"`
	Alerts           []nws.Alert      `json:"activeAlerts"`

	FetchedAt time.Time `json:"fetchedAt"`
}
