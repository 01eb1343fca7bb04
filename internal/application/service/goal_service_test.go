package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/enum"
)

func newGoalFixture(pinProtected bool) (*GoalService, *fakeGoalRepo) {
	cfgRepo := &fakeConfigRepo{
		cfg: entity.ShopConfiguration{AppName: "Boutik", PinProtected: pinProtected},
		pin: "1234",
	}
	goalRepo := &fakeGoalRepo{goals: []entity.GoalRecord{
		{ID: 1, Date: "2024-03-01", Title: "Open second stall"},
	}}
	settings := NewSettingsService(cfgRepo, nil, nil)
	return NewGoalService(goalRepo, settings, NewMemoryUnlockStore(), nil), goalRepo
}

func TestGoalsLockedUntilPIN(t *testing.T) {
	svc, _ := newGoalFixture(true)
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, ErrPINRequired)

	assert.ErrorIs(t, svc.UnlockWithPIN(ctx, ViewGoals, "0000"), ErrPINInvalid)
	require.NoError(t, svc.UnlockWithPIN(ctx, ViewGoals, "1234"))

	goals, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, goals, 1)

	// The unlock sticks for the session; no second PIN prompt.
	require.NoError(t, svc.UnlockWithPIN(ctx, ViewGoals, "wrong-now-ignored"))
}

func TestGoalsOpenWhenUnprotected(t *testing.T) {
	svc, _ := newGoalFixture(false)
	goals, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, goals, 1)
}

func TestUnlockIsPerView(t *testing.T) {
	svc, _ := newGoalFixture(true)
	ctx := context.Background()

	require.NoError(t, svc.UnlockWithPIN(ctx, ViewGains, "1234"))
	assert.True(t, svc.Locked(ctx, ViewGoals))
	assert.False(t, svc.Locked(ctx, ViewGains))
}

func TestUnlockViewGatesGains(t *testing.T) {
	svc, _ := newGoalFixture(true)
	ctx := context.Background()

	assert.ErrorIs(t, svc.UnlockView(ctx, ViewGains, ""), ErrPINRequired)
	assert.ErrorIs(t, svc.UnlockView(ctx, ViewGains, "0000"), ErrPINInvalid)
	require.NoError(t, svc.UnlockView(ctx, ViewGains, "1234"))

	// Unlocked for the session; no PIN needed on later calls.
	require.NoError(t, svc.UnlockView(ctx, ViewGains, ""))
	assert.True(t, svc.Locked(ctx, ViewGoals))
}

func TestUnlockViewOpenWhenUnprotected(t *testing.T) {
	svc, _ := newGoalFixture(false)
	require.NoError(t, svc.UnlockView(context.Background(), ViewGains, ""))
}

func TestGoalStatusTransitions(t *testing.T) {
	svc, repo := newGoalFixture(false)
	ctx := context.Background()

	goal := repo.goals[0]
	require.NoError(t, svc.Accomplish(ctx, goal))
	assert.Equal(t, enum.GoalStatusAccomplished, repo.goals[0].Status)

	require.NoError(t, svc.Trash(ctx, repo.goals[0]))
	assert.Equal(t, enum.GoalStatusTrashed, repo.goals[0].Status)

	require.NoError(t, svc.Restore(ctx, repo.goals[0]))
	assert.Equal(t, enum.GoalStatusActive, repo.goals[0].Status)
}

func TestCreateGoalValidates(t *testing.T) {
	svc, _ := newGoalFixture(false)
	_, err := svc.Create(context.Background(), entity.CreateGoalInput{Title: "No date"})
	require.Error(t, err)
}
