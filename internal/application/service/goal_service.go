package service

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/enum"
	"github.com/ousmanedev/boutik/internal/domain/repository"
	"github.com/ousmanedev/boutik/pkg/apperror"
)

// UnlockStore remembers which PIN-gated views have been unlocked for the
// lifetime of the session. A successful PIN entry unlocks a view once; the
// store is dropped when the session ends.
type UnlockStore interface {
	IsUnlocked(view string) bool
	Unlock(view string)
}

// View keys for the PIN gate.
const (
	ViewGoals = "goals"
	ViewGains = "gains"
)

// MemoryUnlockStore is the default in-process UnlockStore.
type MemoryUnlockStore struct {
	mu    sync.RWMutex
	views map[string]bool
}

func NewMemoryUnlockStore() *MemoryUnlockStore {
	return &MemoryUnlockStore{views: make(map[string]bool)}
}

func (s *MemoryUnlockStore) IsUnlocked(view string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.views[view]
}

func (s *MemoryUnlockStore) Unlock(view string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views[view] = true
}

// ErrPINRequired is returned when a gated view is read while still locked.
var ErrPINRequired = &apperror.AppError{
	Kind:    apperror.KindValidation,
	Message: "PIN required to access this view",
}

// ErrPINInvalid is returned when an unlock attempt carries a wrong PIN.
var ErrPINInvalid = &apperror.AppError{
	Kind:    apperror.KindValidation,
	Message: "Incorrect PIN",
}

// GoalService manages business goals behind the shop PIN gate. When the
// configuration has PIN protection disabled the gate is open for everyone.
type GoalService struct {
	repo     repository.GoalRepository
	settings *SettingsService
	unlocks  UnlockStore
	validate *validator.Validate
	logger   *zap.Logger
}

// NewGoalService creates a new goal service.
func NewGoalService(repo repository.GoalRepository, settings *SettingsService, unlocks UnlockStore, logger *zap.Logger) *GoalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if unlocks == nil {
		unlocks = NewMemoryUnlockStore()
	}
	return &GoalService{
		repo:     repo,
		settings: settings,
		unlocks:  unlocks,
		validate: validator.New(),
		logger:   logger,
	}
}

// Locked reports whether the given view still needs a PIN.
func (s *GoalService) Locked(ctx context.Context, view string) bool {
	cfg := s.settings.Get(ctx)
	if !cfg.PinProtected {
		return false
	}
	return !s.unlocks.IsUnlocked(view)
}

// UnlockWithPIN verifies the PIN against the backend and, on success,
// unlocks the view for the rest of the session.
func (s *GoalService) UnlockWithPIN(ctx context.Context, view, pin string) error {
	if s.unlocks.IsUnlocked(view) {
		return nil
	}
	valid, err := s.settings.VerifyPIN(ctx, pin)
	if err != nil {
		return err
	}
	if !valid {
		return ErrPINInvalid
	}
	s.unlocks.Unlock(view)
	s.logger.Info("view unlocked", zap.String("view", view))
	return nil
}

// UnlockView resolves the gate for one view in a single step: nil when the
// view is not protected or already unlocked, otherwise the given PIN is
// applied. A locked view with no PIN yields ErrPINRequired.
func (s *GoalService) UnlockView(ctx context.Context, view, pin string) error {
	if !s.Locked(ctx, view) {
		return nil
	}
	if pin == "" {
		return ErrPINRequired
	}
	return s.UnlockWithPIN(ctx, view, pin)
}

// List returns all goals, newest first as the backend orders them. The
// caller must have passed the PIN gate.
func (s *GoalService) List(ctx context.Context) ([]entity.GoalRecord, error) {
	if s.Locked(ctx, ViewGoals) {
		return nil, ErrPINRequired
	}
	return s.repo.List(ctx)
}

// Create validates and submits a new goal. New goals start pending.
func (s *GoalService) Create(ctx context.Context, input entity.CreateGoalInput) (*entity.GoalRecord, error) {
	if s.Locked(ctx, ViewGoals) {
		return nil, ErrPINRequired
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, toFieldErrors(err)
	}
	return s.repo.Create(ctx, input)
}

// Accomplish marks a goal accomplished.
func (s *GoalService) Accomplish(ctx context.Context, goal entity.GoalRecord) error {
	return s.setStatus(ctx, goal, enum.GoalStatusAccomplished)
}

// Trash moves a goal to the trash. Trashed goals stay listable until
// deleted for good.
func (s *GoalService) Trash(ctx context.Context, goal entity.GoalRecord) error {
	return s.setStatus(ctx, goal, enum.GoalStatusTrashed)
}

// Restore moves a trashed goal back to active.
func (s *GoalService) Restore(ctx context.Context, goal entity.GoalRecord) error {
	return s.setStatus(ctx, goal, enum.GoalStatusActive)
}

// Delete permanently removes a goal.
func (s *GoalService) Delete(ctx context.Context, id int64) error {
	if s.Locked(ctx, ViewGoals) {
		return ErrPINRequired
	}
	return s.repo.Delete(ctx, id)
}

func (s *GoalService) setStatus(ctx context.Context, goal entity.GoalRecord, status enum.GoalStatus) error {
	if s.Locked(ctx, ViewGoals) {
		return ErrPINRequired
	}
	goal.Status = status
	return s.repo.Update(ctx, goal)
}
