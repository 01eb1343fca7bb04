package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/pkg/apperror"
)

func sampleDebt() entity.DebtRecord {
	debt := entity.DebtRecord{
		ID:         1,
		Date:       "2024-03-05",
		Name:       "Sandals",
		Pcs:        2,
		UnitPrice:  decimal.NewFromInt(500),
		TotalPrice: decimal.NewFromInt(1000),

		AmountPayableNow: decimal.NewFromInt(400),
	}
	debt.BalanceOwed = debt.ComputeBalance()
	return debt
}

func TestComputeBalance(t *testing.T) {
	debt := sampleDebt()
	assert.True(t, debt.BalanceOwed.Equal(decimal.NewFromInt(600)))
}

func TestOutstandingBalanceAfterRepayments(t *testing.T) {
	debt := sampleDebt()
	repayments := []entity.DebtRepayment{
		{Amount: decimal.NewFromInt(100)},
		{Amount: decimal.NewFromInt(200)},
	}
	assert.True(t, OutstandingBalance(&debt, repayments).Equal(decimal.NewFromInt(300)))
	assert.True(t, TotalPaid(&debt, repayments).Equal(decimal.NewFromInt(700)))
}

func TestRecordRepayment(t *testing.T) {
	repo := &fakeDebtRepo{debts: []entity.DebtRecord{sampleDebt()}}
	svc := NewDebtService(repo, nil)

	rep, err := svc.RecordRepayment(context.Background(), entity.CreateRepaymentInput{
		DebtID:      1,
		PaymentDate: "2024-03-10",
		Amount:      decimal.NewFromInt(600),
	})
	require.NoError(t, err)
	assert.True(t, rep.Amount.Equal(decimal.NewFromInt(600)))
}

func TestRecordRepaymentRejectsOverpayment(t *testing.T) {
	repo := &fakeDebtRepo{debts: []entity.DebtRecord{sampleDebt()}}
	svc := NewDebtService(repo, nil)

	_, err := svc.RecordRepayment(context.Background(), entity.CreateRepaymentInput{
		DebtID:      1,
		PaymentDate: "2024-03-10",
		Amount:      decimal.NewFromInt(700),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	// Nothing was submitted.
	assert.Empty(t, repo.repayments[1])
}

func TestRecordRepaymentCountsEarlierRepayments(t *testing.T) {
	repo := &fakeDebtRepo{
		debts: []entity.DebtRecord{sampleDebt()},
		repayments: map[int64][]entity.DebtRepayment{
			1: {{Amount: decimal.NewFromInt(500)}},
		},
	}
	svc := NewDebtService(repo, nil)

	_, err := svc.RecordRepayment(context.Background(), entity.CreateRepaymentInput{
		DebtID:      1,
		PaymentDate: "2024-03-10",
		Amount:      decimal.NewFromInt(200),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestRecordRepaymentRejectsNonPositive(t *testing.T) {
	repo := &fakeDebtRepo{debts: []entity.DebtRecord{sampleDebt()}}
	svc := NewDebtService(repo, nil)

	_, err := svc.RecordRepayment(context.Background(), entity.CreateRepaymentInput{
		DebtID:      1,
		PaymentDate: "2024-03-10",
		Amount:      decimal.Zero,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
