package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// NWS API settings. The User-Agent is required by api.weather.gov
	// and should identify the deployment.
	NWSBaseURL   string
	NWSUserAgent string

	// Geocoding. When GeocoderAPIKey is set the Google backend is
	// used; otherwise Nominatim.
	NominatimBaseURL string
	GeocoderAPIKey   string

	// Shared timeout for outbound HTTP calls.
	HTTPTimeout time.Duration

	// Report cache.
	CacheTTL        time.Duration
	CacheMaxEntries int

	// Addresses to prefetch into the cache, and how often.
	PrefetchAddresses []string
	PrefetchInterval  time.Duration
	PrefetchUnit      string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.NWSBaseURL = getenvDefault("NWS_BASE_URL", "https://api.weather.gov")
	cfg.NWSUserAgent = getenvDefault("NWS_USER_AGENT", "tempesttoday.com (tempesttoday@gmail.com)")
	cfg.NominatimBaseURL = getenvDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	ttlStr := getenvDefault("CACHE_TTL", "10m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl
	cfg.CacheMaxEntries = getenvInt("CACHE_MAX_ENTRIES", 256)

	if addresses := os.Getenv("PREFETCH_ADDRESSES"); addresses != "" {
		for _, a := range strings.Split(addresses, ",") {
			if a = strings.TrimSpace(a); a != "" {
				cfg.PrefetchAddresses = append(cfg.PrefetchAddresses, a)
			}
		}
	}

	intervalStr := getenvDefault("PREFETCH_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PREFETCH_INTERVAL: %w", err)
	}
	cfg.PrefetchInterval = interval

	cfg.PrefetchUnit = getenvDefault("PREFETCH_UNIT", "F")
	if cfg.PrefetchUnit != "F" && cfg.PrefetchUnit != "C" {
		return nil, fmt.Errorf("invalid PREFETCH_UNIT: %q (want F or C)", cfg.PrefetchUnit)
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
