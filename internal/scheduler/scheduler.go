package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/skinledger/internal/config"
	"github.com/mamadbah2/skinledger/internal/service/pricing"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron       *cron.Cron
	pricingSvc *pricing.Service
	cfg        config.Config
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, pricingSvc *pricing.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour,
	// dom, month, dow).
	c := cron.New()

	return &Scheduler{
		cron:       c,
		pricingSvc: pricingSvc,
		cfg:        cfg,
		logger:     logger,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Pricing.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Pricing.CronSchedule, s.refreshPrices)
	if err != nil {
		s.logger.Error("failed to schedule price refresh", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refreshPrices() {
	// The refresh paces itself between market API calls, so a large ledger
	// takes a while; the bound just keeps a wedged run from overlapping the
	// next one forever.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if err := s.pricingSvc.RefreshAll(ctx); err != nil {
		s.logger.Error("scheduled price refresh failed", zap.Error(err))
	}
}
