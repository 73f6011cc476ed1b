package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/city-forecast/internal/weather"
)

// refreshTimeout bounds a single city's refresh.
const refreshTimeout = 30 * time.Second

// Refresher recomputes and stores the daily forecast for a city.
type Refresher interface {
	RefreshForecast(ctx context.Context, city string) error
}

// Scheduler periodically refreshes the daily forecast of tracked cities.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	cities    []string
	interval  time.Duration
}

// New creates a new Scheduler.
func New(cities []string, interval time.Duration, service Refresher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		cities:    cities,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 {
		log.Println("INFO: scheduler: no cities configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	_, err := s.scheduler.Every(interval).Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes every tracked city concurrently and waits for all of them.
// Failures are logged; the last stored forecast of a failing city is kept.
func (s *Scheduler) RunOnce() {
	log.Println("INFO: scheduler: running forecast refresh job")

	var wg sync.WaitGroup
	for _, city := range s.cities {
		city := city
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
			defer cancel()

			if err := s.service.RefreshForecast(ctx, city); err != nil {
				log.Printf("ERROR: scheduler: refresh failed for %s: %v", weather.CityKey(city), err)
			}
		}()
	}
	wg.Wait()
	log.Println("INFO: scheduler: completed forecast refresh job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
