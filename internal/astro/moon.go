package astro

import (
	"fmt"
	"math"
	"time"
)

// The moon phase index is a position within the synodic month on a
// 0-28 scale: 0 is new, 14 is full, and the value wraps back to 0 at
// 28. PhaseIndex computes it from the date's Julian day using a short
// solar/lunar elongation series.

// Classifier boundaries for the 0-28 phase index. Each phase covers a
// half-open interval ending at its boundary.
var moonPhases = []struct {
	upTo   float64
	name   string
	symbol string
}{
	{1.84, "New Moon", "🌑"},
	{5.53, "Waxing Crescent", "🌒"},
	{9.22, "First Quarter", "🌓"},
	{12.91, "Waxing Gibbous", "🌔"},
	{16.61, "Full Moon", "🌕"},
	{20.30, "Waning Gibbous", "🌖"},
	{23.99, "Last Quarter", "🌗"},
	{28.00, "Waning Crescent", "🌘"},
}

// PhaseKind selects the target of a NextOccurrence scan.
type PhaseKind string

const (
	FullMoon PhaseKind = "full"
	NewMoon  PhaseKind = "new"
)

// PhaseFunc returns the phase index for a date. Production code uses
// PhaseIndex; tests substitute synthetic cycles.
type PhaseFunc func(time.Time) float64

// DefaultHorizonDays bounds the NextOccurrence scan. A synodic month
// is ~29.5 days, so 40 always contains the next full and new moon.
const DefaultHorizonDays = 40

// PhaseIndex returns the moon phase index in [0, 28) for the given
// date. Only the calendar date matters; time of day is ignored.
func PhaseIndex(date time.Time) float64 {
	jd := julianDay(date)
	dt := math.Pow(jd-2382148, 2) / (41048480 * 86400)
	t := (jd + dt - 2451545.0) / 36525
	t2 := t * t
	t3 := t2 * t

	d := properAngle(297.85 + 445267.1115*t - 0.0016300*t2 + t3/545868)
	dRad := d * math.Pi / 180
	m := properAngle(357.53+35999.0503*t) * math.Pi / 180
	m1 := properAngle(134.96+477198.8676*t+0.0089970*t2+t3/69699) * math.Pi / 180

	elong := d + 6.29*math.Sin(m1)
	elong -= 2.10 * math.Sin(m)
	elong += 1.27 * math.Sin(2*dRad-m1)
	elong += 0.66 * math.Sin(2*dRad)
	elong = math.Round(properAngle(elong))

	idx := ((elong + 6.43) / 360) * 28
	if idx >= 28 {
		idx -= 28
	}
	return idx
}

// PhaseDetails maps a phase index to its display name and symbol.
func PhaseDetails(idx float64) (name, symbol string) {
	for _, p := range moonPhases {
		if idx < p.upTo {
			return p.name, p.symbol
		}
	}
	last := moonPhases[len(moonPhases)-1]
	return last.name, last.symbol
}

// IlluminationPercent approximates the illuminated fraction of the
// moon from its phase index: 100 at full (14), 0 at new (0 or 28).
func IlluminationPercent(idx float64) int {
	return int(math.Round((1 - math.Abs(idx-14)/14) * 100))
}

// NextOccurrence scans forward from start, one day at a time and
// excluding today, for the next full or new moon within horizonDays.
// It describes the hit as "tomorrow" or "in N days"; if the horizon is
// exhausted it reports "unavailable" rather than failing.
func NextOccurrence(kind PhaseKind, start time.Time, horizonDays int, phase PhaseFunc) string {
	for offset := 1; offset <= horizonDays; offset++ {
		idx := phase(start.AddDate(0, 0, offset))

		var hit bool
		switch kind {
		case FullMoon:
			hit = math.Abs(idx-14) < 1.0
		case NewMoon:
			hit = idx < 1.0 || idx > 27.0
		}
		if !hit {
			continue
		}

		if offset == 1 {
			return "tomorrow"
		}
		return fmt.Sprintf("in %d days", offset)
	}
	return "unavailable"
}

func julianDay(date time.Time) float64 {
	y, m, d := date.Year(), int(date.Month()), date.Day()
	if m <= 2 {
		m += 12
		y--
	}
	a := math.Floor(float64(y) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*float64(y+4716)) + math.Floor(30.6001*float64(m+1)) + float64(d) + b - 1524.5
}

func properAngle(v float64) float64 {
	v = math.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	return v
}
