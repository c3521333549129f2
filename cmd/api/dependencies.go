// Package api wires application dependencies for the capture server.
package api

import (
	"fmt"
	"log/slog"

	"github.com/dananeer/dananeer-api/internal/domain/capture"
	capturehandler "github.com/dananeer/dananeer-api/internal/domain/capture/handler"
	"github.com/dananeer/dananeer-api/pkg/config"
	"github.com/dananeer/dananeer-api/pkg/cron"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	// Services
	CaptureService *capture.Service

	// Handlers
	CaptureHandler *capturehandler.CaptureHandler

	// Background jobs
	Scheduler *cron.Scheduler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	if err := deps.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}

	deps.initScheduler()

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initServices initializes all service layer dependencies
func (d *Dependencies) initServices() error {
	var opts []capture.ServiceOption
	if path := d.Config.Capture.KeywordPackPath; path != "" {
		opts = append(opts, capture.WithKeywordPack(path))
	}

	svc, err := capture.NewService(d.Logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to init capture service: %w", err)
	}
	d.CaptureService = svc

	d.Logger.Info("services initialized")
	return nil
}

// initHandlers initializes all handler dependencies
func (d *Dependencies) initHandlers() error {
	d.CaptureHandler = capturehandler.NewCaptureHandler(d.CaptureService, d.Logger)

	d.Logger.Info("handlers initialized")
	return nil
}

// initScheduler wires the keyword-pack reload job. The scheduler is only
// useful when a pack file is configured.
func (d *Dependencies) initScheduler() {
	if d.Config.Capture.KeywordPackPath == "" {
		return
	}
	d.Scheduler = cron.NewScheduler(d.CaptureService, d.Config.Capture.PackReloadSchedule, d.Logger)
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.Scheduler != nil {
		<-d.Scheduler.Stop().Done()
	}
	if d.CaptureService != nil {
		if err := d.CaptureService.Close(); err != nil {
			d.Logger.Error("failed to close capture service", slog.Any("error", err))
		}
	}
	d.Logger.Info("cleanup completed")
}
