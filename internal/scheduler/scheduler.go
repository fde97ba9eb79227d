package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/models"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/report"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/repository"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/weather"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/pkg/logger"
)

// Scheduler periodically refreshes weather snapshots for the locations
// most tasks reference, keeping the observation log warm without waiting
// for user lookups. Disabled when the interval is zero.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     repository.TaskStore
	weather   *weather.Service
	interval  time.Duration
}

func New(store repository.TaskStore, svc *weather.Service, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		store:     store,
		weather:   svc,
		interval:  interval,
	}
}

// Start schedules the periodic refresh and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		logger.Info(context.Background(), "Weather refresh scheduler disabled")
		return nil
	}
	if _, err := s.scheduler.Every(s.interval).Do(s.refresh); err != nil {
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

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tasks, err := s.store.Find(ctx, models.TaskFilter{})
	if err != nil {
		logger.Error(ctx, "Scheduler task query failed", "error", err)
		return
	}
	locations := report.TopLocations(tasks, 5)
	if len(locations) == 0 {
		return
	}
	for _, loc := range locations {
		if _, err := s.weather.Current(ctx, loc.Location); err != nil {
			logger.Warn(ctx, "Scheduled weather refresh failed", "error", err, "city", loc.Location)
		}
	}
	logger.Debug(ctx, "Weather snapshots refreshed", "locations", len(locations))
}
