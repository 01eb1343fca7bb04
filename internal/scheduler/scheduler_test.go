package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ousmanedev/boutik/internal/application/service"
	"github.com/ousmanedev/boutik/internal/config"
	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/repository"
)

type stubInventoryRepo struct {
	items []entity.InventoryItem
	fail  bool
}

func (s *stubInventoryRepo) List(context.Context, repository.ListOptions) ([]entity.InventoryItem, error) {
	if s.fail {
		return nil, assert.AnError
	}
	return s.items, nil
}
func (s *stubInventoryRepo) Create(context.Context, entity.CreateInventoryInput) (*entity.InventoryItem, error) {
	return nil, nil
}
func (s *stubInventoryRepo) Update(context.Context, entity.InventoryItem) error { return nil }
func (s *stubInventoryRepo) Delete(context.Context, int64) error                { return nil }
func (s *stubInventoryRepo) SetThreshold(context.Context, int64, int) error     { return nil }

func newTestScheduler(repo *stubInventoryRepo) *Scheduler {
	dashboard := service.NewDashboardService(nil, nil, repo, nil)
	cfg := &config.Config{}
	cfg.Poll.StockInterval = "@every 1h"
	return NewScheduler(cfg, dashboard, nil)
}

func TestStartPollsImmediately(t *testing.T) {
	repo := &stubInventoryRepo{items: []entity.InventoryItem{
		{Name: "Sandals", AvailableStock: 2, StockDeficiencyThreshold: 10},
		{Name: "Hats", AvailableStock: 50, StockDeficiencyThreshold: 10},
	}}
	s := newTestScheduler(repo)
	s.Start()
	defer s.Stop()

	alerts := s.StockAlerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, "Sandals", alerts[0].Item.Name)
}

func TestFailedPollKeepsPreviousSnapshot(t *testing.T) {
	repo := &stubInventoryRepo{items: []entity.InventoryItem{
		{Name: "Sandals", AvailableStock: 2, StockDeficiencyThreshold: 10},
	}}
	s := newTestScheduler(repo)
	s.pollStock()
	require.Len(t, s.StockAlerts(), 1)

	repo.fail = true
	s.pollStock()
	assert.Len(t, s.StockAlerts(), 1)
}
