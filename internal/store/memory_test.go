package store

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempesttoday/tempest/internal/weather"
)

func report(address string) weather.Report {
	return weather.Report{Address: address}
}

func TestReportCacheGetPut(t *testing.T) {
	clk := clockwork.NewFakeClock()
	cache := NewReportCache(5*time.Minute, 10)
	cache.SetClock(clk)

	_, ok := cache.Get("40.71,-74.01:F")
	assert.False(t, ok)

	cache.Put("40.71,-74.01:F", report("10007"))
	got, ok := cache.Get("40.71,-74.01:F")
	require.True(t, ok)
	assert.Equal(t, "10007", got.Address)

	// Unit is part of the key.
	_, ok = cache.Get("40.71,-74.01:C")
	assert.False(t, ok)
}

func TestReportCacheExpiry(t *testing.T) {
	clk := clockwork.NewFakeClock()
	cache := NewReportCache(5*time.Minute, 10)
	cache.SetClock(clk)

	cache.Put("k", report("a"))

	clk.Advance(4 * time.Minute)
	_, ok := cache.Get("k")
	assert.True(t, ok)

	clk.Advance(2 * time.Minute)
	_, ok = cache.Get("k")
	assert.False(t, ok)
	assert.Zero(t, cache.Len(), "expired entry is dropped on read")
}

func TestReportCacheEviction(t *testing.T) {
	clk := clockwork.NewFakeClock()
	cache := NewReportCache(time.Hour, 2)
	cache.SetClock(clk)

	cache.Put("a", report("a"))
	clk.Advance(time.Minute)
	cache.Put("b", report("b"))
	clk.Advance(time.Minute)
	cache.Put("c", report("c"))

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get("a")
	assert.False(t, ok, "oldest entry evicted")
	_, ok = cache.Get("c")
	assert.True(t, ok)
}

func TestReportCacheZeroTTLDisables(t *testing.T) {
	cache := NewReportCache(0, 10)
	cache.Put("k", report("a"))
	_, ok := cache.Get("k")
	assert.False(t, ok)
	assert.Zero(t, cache.Len())
}
