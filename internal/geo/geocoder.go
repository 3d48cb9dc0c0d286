// Package geo resolves free-form US addresses and ZIP codes to
// coordinates plus country/state metadata.
package geo

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means the geocoder resolved nothing for the query.
	ErrNotFound = errors.New("location not found")
	// ErrUnavailable means the geocoding service failed or timed out.
	ErrUnavailable = errors.New("geocoding service unavailable")
)

// Place is a resolved location. It is constructed once per request and
// read-only afterwards.
type Place struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// CountryCode is the ISO alpha-2 code when the backend provides
	// one, or a best-effort uppercase name otherwise. Empty when the
	// backend reported no country at all.
	CountryCode string `json:"countryCode,omitempty"`
	Country     string `json:"country,omitempty"`
	State       string `json:"state,omitempty"`

	DisplayName string `json:"displayName,omitempty"`
}

// InUS reports whether the place is inside US coverage. A missing
// country code passes, matching the original behavior of rejecting
// only when the geocoder positively names another country.
func (p Place) InUS() bool {
	return p.CountryCode == "" || p.CountryCode == "US"
}

// Geocoder resolves a query string to a Place.
type Geocoder interface {
	Locate(ctx context.Context, query string) (Place, error)
}
