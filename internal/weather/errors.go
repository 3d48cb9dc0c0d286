package weather

import (
	"errors"
	"fmt"
)

// Request-terminating errors. Per-field conversion problems never
// surface here; they collapse to absent fields inside the normalizer
// and the astronomy adapter.
var (
	// ErrLocationNotFound: the geocoder resolved nothing.
	ErrLocationNotFound = errors.New("location not found")
	// ErrGeocoderUnavailable: the geocoder timed out or failed.
	ErrGeocoderUnavailable = errors.New("geocoding service unavailable")
	// ErrUpstreamUnavailable: NWS metadata could not be fetched, so
	// there is nothing to display.
	ErrUpstreamUnavailable = errors.New("weather service unavailable")
)

// OutsideUSError means the address resolved to a supported coordinate
// in an unsupported country.
type OutsideUSError struct {
	Country string
}

func (e *OutsideUSError) Error() string {
	country := e.Country
	if country == "" {
		country = "another country"
	}
	return fmt.Sprintf("location is in %s; only USA weather is supported", country)
}
