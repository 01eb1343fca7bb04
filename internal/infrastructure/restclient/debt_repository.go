package restclient

import (
	"context"
	"fmt"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/repository"
)

// DebtRepository implements repository.DebtRepository over /debts and
// /debt-repayments.
type DebtRepository struct {
	client *Client
}

// NewDebtRepository creates a debt repository backed by the shared client.
func NewDebtRepository(client *Client) *DebtRepository {
	return &DebtRepository{client: client}
}

var _ repository.DebtRepository = (*DebtRepository)(nil)

type debtListResponse struct {
	apiStatus
	Debts []entity.DebtRecord `json:"debts"`
}

type debtResponse struct {
	apiStatus
	Debt entity.DebtRecord `json:"debt"`
}

type repaymentListResponse struct {
	apiStatus
	Repayments []entity.DebtRepayment `json:"repayments"`
}

type repaymentResponse struct {
	apiStatus
	Repayment entity.DebtRepayment `json:"repayment"`
}

func (r *DebtRepository) List(ctx context.Context, opts repository.ListOptions) ([]entity.DebtRecord, error) {
	out := &debtListResponse{}
	if err := r.client.get(ctx, "/debts", out, listQuery(opts.DateFrom, opts.DateTo, opts.Page)); err != nil {
		return nil, err
	}
	return out.Debts, nil
}

func (r *DebtRepository) Get(ctx context.Context, id int64) (*entity.DebtRecord, error) {
	out := &debtResponse{}
	if err := r.client.get(ctx, fmt.Sprintf("/debts/%d", id), out, nil); err != nil {
		return nil, err
	}
	return &out.Debt, nil
}

func (r *DebtRepository) Update(ctx context.Context, record entity.DebtRecord) error {
	// Keep the invariant regardless of what the caller set.
	record.BalanceOwed = record.ComputeBalance()
	out := &debtResponse{}
	return r.client.put(ctx, fmt.Sprintf("/debts/%d", record.ID), record, out)
}

func (r *DebtRepository) Delete(ctx context.Context, id int64) error {
	return r.client.delete(ctx, fmt.Sprintf("/debts/%d", id))
}

func (r *DebtRepository) ListRepayments(ctx context.Context, debtID int64) ([]entity.DebtRepayment, error) {
	out := &repaymentListResponse{}
	if err := r.client.get(ctx, fmt.Sprintf("/debts/%d/repayments", debtID), out, nil); err != nil {
		return nil, err
	}
	return out.Repayments, nil
}

func (r *DebtRepository) CreateRepayment(ctx context.Context, input entity.CreateRepaymentInput) (*entity.DebtRepayment, error) {
	out := &repaymentResponse{}
	if err := r.client.post(ctx, "/debt-repayments", input, out); err != nil {
		return nil, err
	}
	return &out.Repayment, nil
}
