// Package astro computes the astronomical slice of a weather report:
// sunrise/sunset for a coordinate's local day, the moon phase, and the
// projected next full and new moons.
package astro

import (
	"fmt"
	"time"
)

// Record is the astronomy bundle for one request. It is built once per
// coordinate and never mutated afterwards.
type Record struct {
	Sunrise   string    `json:"sunrise"`
	Sunset    string    `json:"sunset"`
	SunriseAt time.Time `json:"sunriseAt"`
	SunsetAt  time.Time `json:"sunsetAt"`

	MoonPhase        string `json:"moonPhase"`
	MoonSymbol       string `json:"moonSymbol"`
	MoonIllumination int    `json:"moonIlluminationPercent"`
	NextFullMoon     string `json:"nextFullMoon"`
	NextNewMoon      string `json:"nextNewMoon"`

	Timezone string `json:"timezone"`
}

// IsNight reports whether now falls outside the record's daylight
// window.
func (r Record) IsNight(now time.Time) bool {
	return now.Before(r.SunriseAt) || now.After(r.SunsetAt)
}

// Ephemeris abstracts the sun/moon calculation source.
type Ephemeris interface {
	// SunTimes returns sunrise and sunset instants for the calendar
	// date of the given local time.
	SunTimes(lat, lon float64, date time.Time) (rise, set time.Time)
	// PhaseIndex returns the moon phase index in [0, 28) for a date.
	PhaseIndex(date time.Time) float64
}

// TimezoneResolver maps a coordinate to an IANA zone name.
type TimezoneResolver interface {
	Resolve(lat, lon float64) (string, error)
}

// Adapter composes the timezone resolver, the ephemeris, and the moon
// phase classifier into a single Record per request.
type Adapter struct {
	eph Ephemeris
	tz  TimezoneResolver
}

func NewAdapter(eph Ephemeris, tz TimezoneResolver) *Adapter {
	return &Adapter{eph: eph, tz: tz}
}

// Compute builds the astronomy record for a coordinate. A timezone
// resolution failure is returned as an error rather than silently
// defaulting to UTC: the caller's night/day decision depends on the
// zone being right.
func (a *Adapter) Compute(lat, lon float64) (Record, error) {
	zone, err := a.tz.Resolve(lat, lon)
	if err != nil {
		return Record{}, fmt.Errorf("resolve timezone for %.4f,%.4f: %w", lat, lon, err)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return Record{}, fmt.Errorf("load timezone %q: %w", zone, err)
	}

	now := clock.Now().In(loc)
	rise, set := a.eph.SunTimes(lat, lon, now)

	idx := a.eph.PhaseIndex(now)
	name, symbol := PhaseDetails(idx)

	return Record{
		Sunrise:          formatClockTime(rise.In(loc)),
		Sunset:           formatClockTime(set.In(loc)),
		SunriseAt:        rise,
		SunsetAt:         set,
		MoonPhase:        name,
		MoonSymbol:       symbol,
		MoonIllumination: IlluminationPercent(idx),
		NextFullMoon:     NextOccurrence(FullMoon, now, DefaultHorizonDays, a.eph.PhaseIndex),
		NextNewMoon:      NextOccurrence(NewMoon, now, DefaultHorizonDays, a.eph.PhaseIndex),
		Timezone:         zone,
	}, nil
}

func formatClockTime(t time.Time) string {
	return t.Format("3:04 PM")
}
