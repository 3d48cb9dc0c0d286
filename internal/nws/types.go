package nws

import (
	"encoding/json"
	"strconv"
	"time"
)

// Measurement is the nested value/unitCode object NWS attaches to
// every observation field. Value is nil when the station did not
// report the field, which is routine and not an error.
type Measurement struct {
	Value    *float64 `json:"value"`
	UnitCode string   `json:"unitCode"`
}

// One malformed measurement must not fail the whole observation, so
// the value is decoded with the same tolerance as Degrees.
func (m *Measurement) UnmarshalJSON(b []byte) error {
	var raw struct {
		Value    json.RawMessage `json:"value"`
		UnitCode string          `json:"unitCode"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	m.Value = numericValue(raw.Value)
	m.UnitCode = raw.UnitCode
	return nil
}

// Float is the single extraction point for measurement values. A nil
// result means the field is absent, distinct from a reported zero.
func (m Measurement) Float() *float64 {
	return m.Value
}

// Metadata is the slice of the /points response the service needs.
type Metadata struct {
	ForecastURL string
	StationsURL string
}

// Station identifies the observation station nearest a point. A zero
// ID means no station was found.
type Station struct {
	ID   string
	Name string
}

// Observation is the latest station observation. Every field can be
// missing independently.
type Observation struct {
	Timestamp                 time.Time   `json:"timestamp"`
	TextDescription           string      `json:"textDescription"`
	Temperature               Measurement `json:"temperature"`
	WindSpeed                 Measurement `json:"windSpeed"`
	WindDirection             Measurement `json:"windDirection"`
	RelativeHumidity          Measurement `json:"relativeHumidity"`
	HeatIndex                 Measurement `json:"heatIndex"`
	WindChill                 Measurement `json:"windChill"`
	MaxTemperatureLast24Hours Measurement `json:"maxTemperatureLast24Hours"`
	MinTemperatureLast24Hours Measurement `json:"minTemperatureLast24Hours"`
	PrecipitationLastHour     Measurement `json:"precipitationLastHour"`
}

// Degrees is a forecast temperature that tolerates malformed upstream
// values: JSON numbers and numeric strings parse, anything else
// degrades to absent.
type Degrees struct {
	Value *float64
}

func (d *Degrees) UnmarshalJSON(b []byte) error {
	d.Value = numericValue(b)
	return nil
}

// numericValue parses a JSON number or numeric string. null, missing,
// and non-numeric input are all absent, never a reported zero.
func numericValue(b []byte) *float64 {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		return &n
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, perr := strconv.ParseFloat(s, 64); perr == nil {
			return &f
		}
	}
	return nil
}

func (d Degrees) MarshalJSON() ([]byte, error) {
	if d.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*d.Value)
}

// ForecastPeriod is one entry of the NWS forecast.
type ForecastPeriod struct {
	Number           int       `json:"number"`
	Name             string    `json:"name"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	IsDaytime        bool      `json:"isDaytime"`
	Temperature      Degrees   `json:"temperature"`
	TemperatureUnit  string    `json:"temperatureUnit"`
	WindSpeed        string    `json:"windSpeed"`
	WindDirection    string    `json:"windDirection"`
	Icon             string    `json:"icon"`
	ShortForecast    string    `json:"shortForecast"`
	DetailedForecast string    `json:"detailedForecast"`
}

// Alert is one active alert for a point.
type Alert struct {
	Event       string `json:"event"`
	Severity    string `json:"severity"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Instruction string `json:"instruction"`
	Urgency     string `json:"urgency"`
}
