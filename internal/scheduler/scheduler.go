package scheduler

import (
	"context"
	"log/slog"
	"time"

	"playstore_analyzer/internal/domain"
	"playstore_analyzer/internal/relay"
)

// Runner is the analysis entry point the scheduler drives.
type Runner interface {
	Run(ctx context.Context, appID string, sink relay.Sink) (*domain.AnalysisRun, error)
}

// Scheduler re-runs the analysis for one app identifier on a fixed
// interval (watch mode). Runs are strictly sequential; a slow fetch
// delays the next tick's work rather than overlapping it.
type Scheduler struct {
	runner   Runner
	appID    string
	sink     relay.Sink
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(runner Runner, appID string, sink relay.Sink, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		appID:    appID,
		sink:     sink,
		interval: interval,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "app_id", s.appID, "interval", s.interval)

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.runner.Run(ctx, s.appID, s.sink); err != nil {
		s.logger.Error("analysis failed", "error", err)
	}
}
