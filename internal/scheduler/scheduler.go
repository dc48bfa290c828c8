package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/meteosandra/market-weather/internal/meteo"
	"github.com/meteosandra/market-weather/internal/schedule"
)

// Analyzer is the part of meteo.Service the scheduler drives.
type Analyzer interface {
	Analyze(ctx context.Context, city, day string) (meteo.Analysis, error)
}

// Scheduler periodically warms the analysis cache for every schedule entry.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Analyzer
	entries   []schedule.Entry
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler.
func New(entries []schedule.Entry, interval time.Duration, service Analyzer) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		entries:   entries,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.entries) == 0 {
		log.Println("scheduler: empty schedule; nothing to warm")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 30
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.Warm)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Warm runs one pass over the schedule, one goroutine per entry.
func (s *Scheduler) Warm() {
	log.Println("scheduler: running cache warm job")

	var wg sync.WaitGroup
	for _, e := range s.entries {
		wg.Add(1)
		go func(e schedule.Entry) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			if _, err := s.service.Analyze(ctx, e.APILocation, e.Day); err != nil {
				log.Printf("scheduler: warm failed for %s (%s): %v", e.APILocation, e.Day, err)
			}
		}(e)
	}
	wg.Wait()
	log.Println("scheduler: completed cache warm job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
