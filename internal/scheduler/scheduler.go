package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ousmanedev/boutik/internal/application/service"
	"github.com/ousmanedev/boutik/internal/config"
)

// Scheduler runs the background stock-alert poll. The dashboard reads the
// latest snapshot instead of fetching inventory on every render.
type Scheduler struct {
	cron      *cron.Cron
	dashboard *service.DashboardService
	cfg       *config.Config
	logger    *zap.Logger

	mu     sync.RWMutex
	alerts []service.StockAlert
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg *config.Config, dashboard *service.DashboardService, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:      cron.New(),
		dashboard: dashboard,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start schedules the stock poll and runs it once immediately so the first
// dashboard render has data.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("stock_interval", s.cfg.Poll.StockInterval))

	_, err := s.cron.AddFunc(s.cfg.Poll.StockInterval, s.pollStock)
	if err != nil {
		s.logger.Error("failed to schedule stock poll", zap.Error(err))
	}

	s.pollStock()
	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// StockAlerts returns the snapshot from the latest successful poll.
func (s *Scheduler) StockAlerts() []service.StockAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alerts
}

func (s *Scheduler) pollStock() {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	alerts, err := s.dashboard.FetchStockAlerts(ctx)
	if err != nil {
		// Keep the previous snapshot; the next tick retries on its own.
		s.logger.Warn("stock poll failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.alerts = alerts
	s.mu.Unlock()

	if len(alerts) > 0 {
		s.logger.Info("stock alerts active", zap.Int("count", len(alerts)))
	}
}
