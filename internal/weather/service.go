package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tempesttoday/tempest/internal/astro"
	"github.com/tempesttoday/tempest/internal/geo"
	"github.com/tempesttoday/tempest/internal/nws"
	"github.com/tempesttoday/tempest/internal/units"
)

// Cache stores merged reports keyed by rounded coordinate and unit.
// Implementations decide TTL and eviction.
type Cache interface {
	Get(key string) (Report, bool)
	Put(key string, report Report)
}

// Service resolves an address and assembles one merged weather report
// from the geocoder, the NWS client, and the astronomy adapter.
type Service struct {
	geocoder geo.Geocoder
	nws      *nws.Client
	astro    *astro.Adapter
	cache    Cache
	clock    clockwork.Clock
}

func NewService(geocoder geo.Geocoder, client *nws.Client, adapter *astro.Adapter, cache Cache) *Service {
	return &Service{
		geocoder: geocoder,
		nws:      client,
		astro:    adapter,
		cache:    cache,
		clock:    clockwork.NewRealClock(),
	}
}

// SetClock swaps the time source; tests freeze it.
func (s *Service) SetClock(c clockwork.Clock) {
	s.clock = c
}

// Report builds the display record for an address. Geocoding failures
// and unreachable NWS metadata terminate the request; everything
// downstream degrades per slice, with the failed slice absent from
// the merged record.
func (s *Service) Report(ctx context.Context, address string, unit units.TempUnit) (Report, error) {
	place, err := s.geocoder.Locate(ctx, address)
	if err != nil {
		if errors.Is(err, geo.ErrNotFound) {
			return Report{}, ErrLocationNotFound
		}
		return Report{}, fmt.Errorf("%w: %v", ErrGeocoderUnavailable, err)
	}
	if !place.InUS() {
		return Report{}, &OutsideUSError{Country: place.Country}
	}

	key := cacheKey(place.Lat, place.Lon, unit)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			cached.Address = address
			return cached, nil
		}
	}

	meta, err := s.nws.Points(ctx, place.Lat, place.Lon)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	// Four independent fetches, each writing only its own slot, joined
	// before the merge.
	var (
		wg       sync.WaitGroup
		periods  []nws.ForecastPeriod
		alerts   []nws.Alert
		obs      nws.Observation
		station  nws.Station
		astroRec astro.Record
		astroErr error
	)

	wg.Add(4)

	go func() {
		defer wg.Done()
		var ferr error
		if periods, ferr = s.nws.Forecast(ctx, meta.ForecastURL); ferr != nil {
			log.Printf("forecast fetch failed for %q: %v", address, ferr)
		}
	}()

	go func() {
		defer wg.Done()
		var aerr error
		if alerts, aerr = s.nws.ActiveAlerts(ctx, place.Lat, place.Lon); aerr != nil {
			log.Printf("alerts fetch failed for %q: %v", address, aerr)
		}
	}()

	go func() {
		defer wg.Done()
		var serr error
		if station, serr = s.nws.NearestStation(ctx, meta.StationsURL); serr != nil {
			log.Printf("station lookup failed for %q: %v", address, serr)
			return
		}
		if station.ID == "" {
			return
		}
		var oerr error
		if obs, oerr = s.nws.LatestObservations(ctx, station.ID); oerr != nil {
			log.Printf("observation fetch failed for station %s: %v", station.ID, oerr)
		}
	}()

	go func() {
		defer wg.Done()
		if astroRec, astroErr = s.astro.Compute(place.Lat, place.Lon); astroErr != nil {
			log.Printf("astronomy failed for %q: %v", address, astroErr)
		}
	}()

	wg.Wait()

	report := Report{
		Address:   address,
		Unit:      unit,
		Location:  place,
		Current:   NormalizeObservations(obs, unit, station),
		Forecast:  convertForecast(periods, unit),
		Alerts:    alerts,
		FetchedAt: s.clock.Now().UTC(),
	}

	if astroErr == nil {
		report.Astronomy = &astroRec
		// IsNight stays false when the zone cannot be loaded: daytime
		// is the safe fallback.
		if loc, lerr := time.LoadLocation(astroRec.Timezone); lerr == nil {
			report.IsNight = astroRec.IsNight(s.clock.Now().In(loc))
		}
	}

	if len(report.Forecast) > 0 {
		report.DetailedForecast = report.Forecast[0].DetailedForecast
	}

	if s.cache != nil {
		s.cache.Put(key, report)
	}
	return report, nil
}

// convertForecast maps raw periods into display periods in the
// requested unit. Equal units pass values through unchanged, so
// re-applying the conversion to cached output is a no-op.
func convertForecast(periods []nws.ForecastPeriod, unit units.TempUnit) []ForecastPeriod {
	out := make([]ForecastPeriod, 0, len(periods))
	for _, p := range periods {
		from := units.TempUnit(p.TemperatureUnit)
		out = append(out, ForecastPeriod{
			Name:             p.Name,
			StartTime:        p.StartTime,
			EndTime:          p.EndTime,
			IsDaytime:        p.IsDaytime,
			Temperature:      units.Round(units.Convert(p.Temperature.Value, from, unit)),
			TemperatureUnit:  string(unit),
			WindSpeed:        p.WindSpeed,
			WindDirection:    p.WindDirection,
			Icon:             p.Icon,
			ShortForecast:    p.ShortForecast,
			DetailedForecast: p.DetailedForecast,
		})
	}
	return out
}

// cacheKey rounds the coordinate to two decimals (~1km) so nearby
// addresses share an entry.
func cacheKey(lat, lon float64, unit units.TempUnit) string {
	return fmt.Sprintf("%.2f,%.2f:%s", lat, lon, unit)
}
