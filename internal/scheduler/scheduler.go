package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/sunset-scout/internal/scout"
)

// Runner performs one scouting run.
type Runner interface {
	Run(ctx context.Context) (scout.Report, error)
}

// Scheduler runs the scout once a day at a fixed local clock time.
type Scheduler struct {
	scheduler *gocron.Scheduler
	runner    Runner
	runAt     string
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler. runAt is "15:04" in loc.
func New(runner Runner, runAt string, loc *time.Location, timeout time.Duration, logger *slog.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		runner:    runner,
		runAt:     runAt,
		timeout:   timeout,
		logger:    logger,
	}
}

// Start schedules the daily job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	job, err := s.scheduler.Every(1).Day().At(s.runAt).Do(s.runOnce)
	if err != nil {
		return fmt.Errorf("schedule daily run at %s: %w", s.runAt, err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", "run_at", s.runAt, "next_run", job.NextRun())
	return nil
}

func (s *Scheduler) runOnce() {
	s.logger.Info("scheduler: running sunset scout")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.runner.Run(ctx); err != nil {
		s.logger.Error("scheduler: run failed", "error", err)
		return
	}
	s.logger.Info("scheduler: run completed")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
