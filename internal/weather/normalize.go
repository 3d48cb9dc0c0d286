package weather

import (
	"github.com/tempesttoday/tempest/internal/nws"
	"github.com/tempesttoday/tempest/internal/units"
)

// NormalizeObservations turns a raw station observation into display
// conditions in the requested unit. Each field is processed on its
// own: a missing or malformed value collapses to nil for that field
// without touching the rest.
//
// Without a station there is no observation to normalize; the record
// still carries the station full name when a fallback produced one,
// so the caller can render a page.
func NormalizeObservations(obs nws.Observation, unit units.TempUnit, station nws.Station) CurrentConditions {
	cc := CurrentConditions{
		StationFullName: presentString(station.Name),
	}
	if station.ID == "" {
		return cc
	}
	cc.Station = presentString(station.ID)

	// NWS reports Celsius. The documented path is C to F always,
	// then F back to C when Celsius display was requested.
	tempF := units.CelsiusToFahrenheit(obs.Temperature.Float())
	cc.Temp = units.Round(units.Convert(tempF, units.Fahrenheit, unit))

	if desc := obs.TextDescription; desc != "" && desc != "Unknown" {
		cc.Description = &desc
	}

	speed, label := units.ConvertWindSpeed(obs.WindSpeed.Float(), obs.WindSpeed.UnitCode)
	cc.WindSpeedMPH = speed
	if label != "" && label != units.WindLabelNone {
		cc.WindLabel = &label
	}
	if dir := units.DegreesToCardinal(obs.WindDirection.Float()); dir != "" {
		cc.WindDirection = &dir
	}

	cc.Humidity = units.Round(obs.RelativeHumidity.Float())

	cc.HeatIndex = displayCelsiusReading(obs.HeatIndex.Float(), unit)
	cc.WindChill = displayCelsiusReading(obs.WindChill.Float(), unit)
	cc.MaxTemp24h = displayCelsiusReading(obs.MaxTemperatureLast24Hours.Float(), unit)
	cc.MinTemp24h = displayCelsiusReading(obs.MinTemperatureLast24Hours.Float(), unit)

	if mm := obs.PrecipitationLastHour.Float(); mm != nil && *mm >= 0 {
		inches := units.MillimetersToInches(*mm)
		raw := *mm
		cc.Precip1hIn = &inches
		cc.Precip1hMM = &raw
	}

	return cc
}

// displayCelsiusReading handles the heat index / wind chill / 24h
// extrema path: availability is decided by converting to Fahrenheit,
// but Celsius display rounds the original Celsius value instead of
// re-deriving it from Fahrenheit. This deliberately differs from the
// main temperature path and is kept as documented.
func displayCelsiusReading(c *float64, unit units.TempUnit) *int {
	f := units.CelsiusToFahrenheit(c)
	if f == nil {
		return nil
	}
	if unit == units.Celsius {
		return units.Round(c)
	}
	return units.Round(f)
}

func presentString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
