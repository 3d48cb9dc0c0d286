package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/tempesttoday/tempest/internal/units"
	"github.com/tempesttoday/tempest/internal/weather"
)

// Scheduler periodically warms the report cache for configured
// addresses so their first page load after a cache expiry stays fast.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	addresses []string
	unit      units.TempUnit
	interval  time.Duration
}

// New creates a Scheduler.
func New(addresses []string, unit units.TempUnit, interval time.Duration, service *weather.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		addresses: addresses,
		unit:      unit,
		interval:  interval,
	}
}

// Start schedules the periodic prefetch job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	if len(s.addresses) == 0 {
		log.Println("scheduler: no prefetch addresses configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running prefetch job")

		var wg sync.WaitGroup
		for _, address := range s.addresses {
			address := address
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if _, err := s.service.Report(ctx, address, s.unit); err != nil {
					log.Printf("scheduler: prefetch failed for %q: %v", address, err)
				}
			}()
		}
		wg.Wait()
		log.Println("scheduler: completed prefetch job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
