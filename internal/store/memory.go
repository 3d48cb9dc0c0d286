package store

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tempesttoday/tempest/internal/weather"
)

// ReportCache is a concurrency-safe in-memory cache of merged weather
// reports, keyed by rounded coordinate and unit. Entries expire after
// the configured TTL; maxEntries bounds memory (0 = unlimited).
type ReportCache struct {
	mu sync.Mutex

	entries map[string]cacheEntry

	ttl        time.Duration
	maxEntries int
	clock      clockwork.Clock
}

type cacheEntry struct {
	report   weather.Report
	storedAt time.Time
}

// NewReportCache creates a ReportCache. A ttl of 0 disables caching
// entirely (every Get misses).
func NewReportCache(ttl time.Duration, maxEntries int) *ReportCache {
	return &ReportCache{
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		clock:      clockwork.NewRealClock(),
	}
}

// SetClock swaps the time source; tests freeze and advance it.
func (c *ReportCache) SetClock(clk clockwork.Clock) {
	c.clock = clk
}

// Get returns the cached report for key if it has not expired.
func (c *ReportCache) Get(key string) (weather.Report, bool) {
	if c.ttl <= 0 {
		return weather.Report{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return weather.Report{}, false
	}
	if c.clock.Now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return weather.Report{}, false
	}
	return entry.report, true
}

// Put stores a report, evicting expired entries first and then the
// oldest entry if the cache is still over capacity.
func (c *ReportCache) Put(key string, report weather.Report) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	for k, e := range c.entries {
		if now.Sub(e.storedAt) > c.ttl {
			delete(c.entries, k)
		}
	}

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		var oldestKey string
		var oldestAt time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.storedAt.Before(oldestAt) {
				oldestKey = k
				oldestAt = e.storedAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = cacheEntry{report: report, storedAt: now}
}

// Len reports the number of cached entries, expired or not.
func (c *ReportCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
