package astro

import (
	"fmt"

	"github.com/ringsaturn/tzf"
)

// tzfResolver resolves IANA zone names from coordinates using the
// embedded tzf dataset, so no network call is needed per request.
type tzfResolver struct {
	finder tzf.F
}

// NewTimezoneResolver builds the production resolver. The underlying
// finder is expensive to construct; build it once and share it.
func NewTimezoneResolver() (TimezoneResolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("init timezone finder: %w", err)
	}
	return &tzfResolver{finder: finder}, nil
}

func (r *tzfResolver) Resolve(lat, lon float64) (string, error) {
	name := r.finder.GetTimezoneName(lon, lat)
	if name == "" {
		return "", fmt.Errorf("no timezone found for %.4f,%.4f", lat, lon)
	}
	return name, nil
}
