package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"card-payoff/repository"
)

// Scheduler runs background maintenance on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Runs      repository.RunRepository
	Retention time.Duration
	Ctx       context.Context

	now func() time.Time
}

// NewScheduler creates a Scheduler. Schedules use the six-field cron format
// with seconds.
func NewScheduler(ctx context.Context, runs repository.RunRepository, retention time.Duration) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Runs:      runs,
		Retention: retention,
		Ctx:       ctx,
		now:       time.Now,
	}
}

// RegisterAll registers the run-history pruning task. A zero retention
// keeps history forever and registers nothing.
func (s *Scheduler) RegisterAll(pruneCron string) error {
	if s.Retention <= 0 {
		slog.Info("run history retention disabled")
		return nil
	}
	if _, err := s.Cron.AddFunc(pruneCron, s.pruneRuns); err != nil {
		return fmt.Errorf("register prune task: %w", err)
	}
	slog.Info("run history pruning scheduled", "cron", pruneCron, "retention", s.Retention.String())
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
}

func (s *Scheduler) pruneRuns() {
	cutoff := s.now().Add(-s.Retention)
	removed, err := s.Runs.Prune(s.Ctx, cutoff)
	if err != nil {
		slog.Error("prune run history", "error", err)
		return
	}
	slog.Info("pruned run history", "removed", removed, "before", cutoff.UTC().Format(time.RFC3339))
}
