package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/repository"
	"github.com/ousmanedev/boutik/pkg/apperror"
	"github.com/ousmanedev/boutik/pkg/event"
)

// SettingsService caches the shop configuration and keeps it fresh through
// the event bus, mirroring how CurrencyService handles the default currency.
// Reads never fail: until the backend answers, DefaultConfiguration applies.
type SettingsService struct {
	repo   repository.ConfigRepository
	bus    *event.Bus
	logger *zap.Logger

	mu     sync.RWMutex
	cached entity.ShopConfiguration
	loaded bool
}

// NewSettingsService wires the service and subscribes it to configuration
// invalidation events.
func NewSettingsService(repo repository.ConfigRepository, bus *event.Bus, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SettingsService{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
	if bus != nil {
		bus.Subscribe(event.TopicConfigUpdated, func(string) { s.Invalidate() })
	}
	return s
}

// Get returns the shop configuration, fetching and caching on first use.
// Failures fall back to the built-in defaults.
func (s *SettingsService) Get(ctx context.Context) entity.ShopConfiguration {
	s.mu.RLock()
	if s.loaded {
		cfg := s.cached
		s.mu.RUnlock()
		return cfg
	}
	s.mu.RUnlock()

	cfg, err := s.repo.Get(ctx)
	if err != nil || cfg == nil {
		s.logger.Warn("configuration unavailable, using defaults", zap.Error(err))
		return entity.DefaultConfiguration()
	}

	s.mu.Lock()
	s.cached = *cfg
	s.loaded = true
	s.mu.Unlock()
	return *cfg
}

// Invalidate drops the cached configuration so the next read re-fetches.
func (s *SettingsService) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}

// Update validates and persists the configuration, then broadcasts the
// invalidation signal.
func (s *SettingsService) Update(ctx context.Context, cfg entity.ShopConfiguration) error {
	if strings.TrimSpace(cfg.AppName) == "" {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "app_name", Message: "app name is required"},
		})
	}
	if len(cfg.Items) > entity.MaxReceiptItems {
		cfg.Items = cfg.Items[:entity.MaxReceiptItems]
	}
	if err := s.repo.Update(ctx, cfg); err != nil {
		return err
	}
	s.Invalidate()
	if s.bus != nil {
		s.bus.Publish(event.TopicConfigUpdated)
	}
	return nil
}

// VerifyPIN checks a PIN attempt against the backend.
func (s *SettingsService) VerifyPIN(ctx context.Context, pin string) (bool, error) {
	if strings.TrimSpace(pin) == "" {
		return false, apperror.NewValidationError([]apperror.FieldError{
			{Field: "pin", Message: "pin is required"},
		})
	}
	return s.repo.VerifyPIN(ctx, pin)
}
