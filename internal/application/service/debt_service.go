package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/repository"
	"github.com/ousmanedev/boutik/pkg/apperror"
)

// DebtService owns debt balances and repayment submission. Repayments are
// validated client-side before they reach the backend: a repayment may
// never exceed the debt's outstanding balance.
type DebtService struct {
	repo     repository.DebtRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewDebtService creates a new debt service.
func NewDebtService(repo repository.DebtRepository, logger *zap.Logger) *DebtService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DebtService{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

// List fetches debts for the given range.
func (s *DebtService) List(ctx context.Context, opts repository.ListOptions) ([]entity.DebtRecord, error) {
	return s.repo.List(ctx, opts)
}

// OutstandingBalance is the debt's balance owed minus everything repaid so
// far. It can reach zero but never goes negative by construction.
func OutstandingBalance(debt *entity.DebtRecord, repayments []entity.DebtRepayment) decimal.Decimal {
	balance := debt.ComputeBalance()
	for _, r := range repayments {
		balance = balance.Sub(r.Amount)
	}
	return balance
}

// TotalPaid is the amount paid at creation plus all repayments.
func TotalPaid(debt *entity.DebtRecord, repayments []entity.DebtRepayment) decimal.Decimal {
	paid := debt.AmountPayableNow
	for _, r := range repayments {
		paid = paid.Add(r.Amount)
	}
	return paid
}

// RecordRepayment validates and submits a repayment against a debt.
func (s *DebtService) RecordRepayment(ctx context.Context, input entity.CreateRepaymentInput) (*entity.DebtRepayment, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, toFieldErrors(err)
	}
	if !input.Amount.IsPositive() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "amount must be greater than zero"},
		})
	}

	debt, err := s.repo.Get(ctx, input.DebtID)
	if err != nil {
		return nil, err
	}
	repayments, err := s.repo.ListRepayments(ctx, input.DebtID)
	if err != nil {
		return nil, err
	}

	outstanding := OutstandingBalance(debt, repayments)
	if input.Amount.GreaterThan(outstanding) {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "amount exceeds the outstanding balance of " + outstanding.String()},
		})
	}

	created, err := s.repo.CreateRepayment(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info("repayment recorded",
		zap.Int64("debt_id", input.DebtID),
		zap.String("amount", input.Amount.String()))
	return created, nil
}

// UpdateDebt recomputes the balance invariant and persists the record.
func (s *DebtService) UpdateDebt(ctx context.Context, debt entity.DebtRecord) error {
	debt.BalanceOwed = debt.ComputeBalance()
	return s.repo.Update(ctx, debt)
}

// toFieldErrors converts validator output into the apperror shape the UI
// renders inline.
func toFieldErrors(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.NewValidationError([]apperror.FieldError{{Message: err.Error()}})
	}
	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   fe.Field(),
			Message: fe.Field() + " failed " + fe.Tag() + " validation",
		})
	}
	return apperror.NewValidationError(fields)
}
