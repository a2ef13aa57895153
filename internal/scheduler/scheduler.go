package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/subwatch/subwatch/internal/config"
	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/logger"
	"github.com/subwatch/subwatch/internal/service"
	"github.com/subwatch/subwatch/internal/types"
)

// Scheduler runs the daily reminder scan in-process. Deployments that drive
// the scan through the cron HTTP endpoint instead leave it disabled.
type Scheduler struct {
	cron        *cron.Cron
	cfg         *config.Configuration
	scanService service.ScanService
	logger      *logger.Logger
}

func NewScheduler(cfg *config.Configuration, scanService service.ScanService, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		cfg:         cfg,
		scanService: scanService,
		logger:      log,
	}
}

// Start registers the scan job and starts the cron loop. It is a no-op when
// the scheduler is disabled in config.
func (s *Scheduler) Start() error {
	if !s.cfg.Scheduler.Enabled {
		s.logger.Infow("scheduler disabled, skipping reminder scan job")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Scheduler.Cron, s.runScan)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to register reminder scan job").
			WithReportableDetails(map[string]any{"cron": s.cfg.Scheduler.Cron}).
			Mark(ierr.ErrSystem)
	}

	s.cron.Start()
	s.logger.Infow("scheduler started", "cron", s.cfg.Scheduler.Cron)
	return nil
}

// Stop halts the cron loop and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Infow("scheduler stopped")
}

func (s *Scheduler) runScan() {
	ctx := types.SetUserID(context.Background(), types.DefaultUserID)
	ctx = types.SetRequestID(ctx, types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST))

	stats, err := s.scanService.ScanAll(ctx)
	if err != nil {
		s.logger.Errorw("scheduled reminder scan failed", "error", err)
		return
	}

	s.logger.Infow("scheduled reminder scan completed",
		"run_id", stats.RunID,
		"users_checked", stats.UsersChecked,
		"notifications_created", stats.NotificationsCreated,
		"emails_sent", stats.EmailsSent,
		"partial", stats.Partial,
	)
}
