package astro

import (
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// sunEphemeris is the production Ephemeris, backed by go-sunrise for
// sun times and the package phase math for the moon.
type sunEphemeris struct{}

// NewEphemeris returns the production ephemeris.
func NewEphemeris() Ephemeris {
	return sunEphemeris{}
}

func (sunEphemeris) SunTimes(lat, lon float64, date time.Time) (time.Time, time.Time) {
	return sunrise.SunriseSunset(lat, lon, date.Year(), date.Month(), date.Day())
}

func (sunEphemeris) PhaseIndex(date time.Time) float64 {
	return PhaseIndex(date)
}
