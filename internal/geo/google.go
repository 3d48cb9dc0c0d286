package geo

import (
	"context"
	"strings"

	"github.com/kelvins/geocoder"
)

// GoogleGeocoder resolves addresses through the Google Maps geocoding
// API via the kelvins/geocoder library. Enabled when an API key is
// configured; the library manages its own HTTP transport, so the
// context is not threaded through.
type GoogleGeocoder struct{}

func NewGoogle(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{}
}

func (g *GoogleGeocoder) Locate(_ context.Context, query string) (Place, error) {
	loc, err := geocoder.Geocoding(geocoder.Address{Street: query, Country: "USA"})
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "no results") {
			return Place{}, ErrNotFound
		}
		return Place{}, ErrUnavailable
	}

	place := Place{
		Lat:         loc.Latitude,
		Lon:         loc.Longitude,
		DisplayName: query,
	}

	// Reverse geocode to recover country/state; best effort, the
	// coordinate alone is enough to continue.
	if addresses, err := geocoder.GeocodingReverse(loc); err == nil && len(addresses) > 0 {
		addr := addresses[0]
		place.Country = addr.Country
		place.State = addr.State
		if formatted := addr.FormatAddress(); formatted != "" {
			place.DisplayName = formatted
		}
		place.CountryCode = countryCode(addr.Country)
	}

	return place, nil
}

// countryCode normalizes the country names Google returns into the
// alpha-2 form Place expects for the US, and an uppercase name for
// everything else so out-of-coverage checks still trip.
func countryCode(country string) string {
	switch strings.ToLower(country) {
	case "":
		return ""
	case "united states", "united states of america", "usa", "us":
		return "US"
	}
	return strings.ToUpper(country)
}
