package app

import (
	"context"
	"fmt"

	"github.com/go-co-op/gocron/v2"

	"hltv-parser/internal/config"
	"hltv-parser/internal/observability"
)

// Scheduler repeats a sync on an interval or cron expression. A run that is
// still going when the next one is due makes the next one wait.
type Scheduler struct {
	cfg       *config.Config
	logger    *observability.Logger
	scheduler gocron.Scheduler
	run       func(ctx context.Context)
}

func NewScheduler(cfg *config.Config, logger *observability.Logger, run func(ctx context.Context)) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Scheduler{cfg: cfg, logger: logger.With("component", "scheduler"), scheduler: s, run: run}, nil
}

func (s *Scheduler) definition() (gocron.JobDefinition, error) {
	switch s.cfg.Scheduler.Mode {
	case "interval":
		return gocron.DurationJob(s.cfg.GetSchedulerInterval()), nil
	case "cron":
		return gocron.CronJob(s.cfg.Scheduler.CronExpr, false), nil
	}
	return nil, fmt.Errorf("scheduler mode %q does not repeat", s.cfg.Scheduler.Mode)
}

// Start registers the job and runs it once right away.
func (s *Scheduler) Start(ctx context.Context) error {
	def, err := s.definition()
	if err != nil {
		return err
	}

	_, err = s.scheduler.NewJob(
		def,
		gocron.NewTask(func() {
			s.run(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("register sync job: %w", err)
	}

	s.scheduler.Start()
	s.logger.Info("Scheduler started", "mode", s.cfg.Scheduler.Mode, "interval_s", s.cfg.Scheduler.IntervalS, "cron", s.cfg.Scheduler.CronExpr)
	return nil
}

func (s *Scheduler) Stop() {
	if err := s.scheduler.Shutdown(); err != nil {
		s.logger.Error("Scheduler shutdown error", "error", err)
	}
}

// RunScheduled runs the orchestrator once for "oneshot" mode, otherwise on
// schedule until ctx is done.
func RunScheduled(ctx context.Context, cfg *config.Config, logger *observability.Logger, o *Orchestrator) error {
	if cfg.Scheduler.Mode == "oneshot" {
		_, err := o.Run(ctx)
		return err
	}

	s, err := NewScheduler(cfg, logger, func(ctx context.Context) {
		if _, err := o.Run(ctx); err != nil {
			logger.Error("Sync run failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	if err := s.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	s.Stop()
	return nil
}
