// Package units converts raw NWS measurements into display units.
//
// Every helper treats a nil input as "no data" and propagates nil
// instead of returning an error: malformed or missing upstream values
// must degrade to an absent field, never abort a request. All rounding
// is round-half-away-from-zero via math.Round.
package units

import (
	"math"
	"strconv"

	"github.com/tempesttoday/tempest/internal/common"
)

// TempUnit identifies a display temperature unit.
type TempUnit string

const (
	Fahrenheit TempUnit = "F"
	Celsius    TempUnit = "C"
)

// Wind speed labels returned by ConvertWindSpeed.
const (
	WindLabelMPH  = "mph"
	WindLabelNone = "no wind data available"
)

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CelsiusToFahrenheit converts c to whole degrees Fahrenheit.
func CelsiusToFahrenheit(c *float64) *float64 {
	if c == nil {
		return nil
	}
	f := math.Round(*c*9/5 + 32)
	return &f
}

// FahrenheitToCelsius converts f to whole degrees Celsius.
func FahrenheitToCelsius(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := math.Round((*f - 32) * 5 / 9)
	return &c
}

// Convert translates v between Fahrenheit and Celsius. Equal units are
// an identity (including nil), and unit pairs with no conversion rule
// return the value unchanged.
func Convert(v *float64, from, to TempUnit) *float64 {
	if v == nil || from == to {
		return v
	}
	switch {
	case from == Fahrenheit && to == Celsius:
		return FahrenheitToCelsius(v)
	case from == Celsius && to == Fahrenheit:
		return CelsiusToFahrenheit(v)
	}
	return v
}

// parseTemp parses a raw temperature string and converts it between
// units. Non-numeric input is absent, not an error.
func parseTemp(raw string, from, to TempUnit) *float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return Convert(&v, from, to)
}

// ConvertWindSpeed converts a raw wind speed into whole mph using the
// WMO unit code embedded in the observation. Unknown codes are treated
// as missing data rather than guessed at.
func ConvertWindSpeed(raw *float64, unitCode string) (*int, string) {
	if raw == nil {
		return nil, WindLabelNone
	}
	var mph float64
	switch {
	case common.HasAny(unitCode, "m_s"):
		mph = math.Round(*raw * 2.23694)
	case common.HasAny(unitCode, "km_h"):
		mph = math.Round(*raw * 0.621371)
	default:
		return nil, WindLabelNone
	}
	speed := int(mph)
	return &speed, WindLabelMPH
}

// DegreesToCardinal buckets a wind heading into one of 16 compass
// points. Headings at or past 348.75 wrap back to N.
func DegreesToCardinal(degrees *float64) string {
	if degrees == nil {
		return ""
	}
	idx := int(math.Floor((*degrees+11.25)/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return compassPoints[idx]
}

// MillimetersToInches converts mm to inches rounded to 2 decimals.
func MillimetersToInches(mm float64) float64 {
	return math.Round(mm/25.4*100) / 100
}

// Round converts a float to a whole-number display value, keeping nil
// absent.
func Round(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(math.Round(*v))
	return &n
}
