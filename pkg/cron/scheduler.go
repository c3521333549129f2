// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dananeer/dananeer-api/internal/domain/capture"
)

// Scheduler manages background scheduled jobs using robfig/cron.
type Scheduler struct {
	cron       *cron.Cron
	captureSvc *capture.Service
	schedule   string
	logger     *slog.Logger
}

// NewScheduler creates a new job scheduler. schedule is a standard 5-field
// cron expression for the keyword-pack reload.
func NewScheduler(captureSvc *capture.Service, schedule string, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:       c,
		captureSvc: captureSvc,
		schedule:   schedule,
		logger:     logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.reloadKeywordPack)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.String("schedule", s.schedule),
		slog.Int("jobs", len(s.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers the keyword-pack reload (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.reloadKeywordPack()
}

// reloadKeywordPack re-reads the configured keyword pack so dialect keyword
// additions reach a running instance without a deploy.
func (s *Scheduler) reloadKeywordPack() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.captureSvc.ReloadPack(ctx); err != nil {
		s.logger.Error("keyword pack reload failed", slog.Any("error", err))
		return
	}
	s.logger.Debug("keyword pack reload completed")
}
