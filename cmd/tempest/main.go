package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/tempesttoday/tempest/internal/api/http"
	"github.com/tempesttoday/tempest/internal/astro"
	"github.com/tempesttoday/tempest/internal/config"
	"github.com/tempesttoday/tempest/internal/geo"
	"github.com/tempesttoday/tempest/internal/nws"
	"github.com/tempesttoday/tempest/internal/scheduler"
	"github.com/tempesttoday/tempest/internal/store"
	"github.com/tempesttoday/tempest/internal/units"
	"github.com/tempesttoday/tempest/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Geocoder: Google when a key is configured, Nominatim otherwise.
	var geocoder geo.Geocoder
	if cfg.GeocoderAPIKey != "" {
		geocoder = geo.NewGoogle(cfg.GeocoderAPIKey)
	} else {
		geocoder = geo.NewNominatim(httpClient, cfg.NominatimBaseURL, cfg.NWSUserAgent)
	}

	// Astronomy: timezone finder is expensive, build it once.
	tzResolver, err := astro.NewTimezoneResolver()
	if err != nil {
		log.Fatalf("failed to init timezone resolver: %v", err)
	}
	adapter := astro.NewAdapter(astro.NewEphemeris(), tzResolver)

	nwsClient := nws.NewClient(httpClient, cfg.NWSBaseURL, cfg.NWSUserAgent)
	cache := store.NewReportCache(cfg.CacheTTL, cfg.CacheMaxEntries)

	// Core service assembling one report per request.
	service := weather.NewService(geocoder, nwsClient, adapter, cache)

	// Scheduler that keeps configured addresses warm in the cache.
	sched := scheduler.New(cfg.PrefetchAddresses, units.TempUnit(cfg.PrefetchUnit), cfg.PrefetchInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "tempest",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "tempest",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
