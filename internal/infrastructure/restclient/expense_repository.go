package restclient

import (
	"context"
	"fmt"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/repository"
)

// ExpenseRepository implements repository.ExpenseRepository over /expenses.
type ExpenseRepository struct {
	client *Client
}

// NewExpenseRepository creates an expense repository backed by the shared
// client.
func NewExpenseRepository(client *Client) *ExpenseRepository {
	return &ExpenseRepository{client: client}
}

var _ repository.ExpenseRepository = (*ExpenseRepository)(nil)

type expenseListResponse struct {
	apiStatus
	Expenses []entity.ExpenseRecord `json:"expenses"`
}

type expenseResponse struct {
	apiStatus
	Expense entity.ExpenseRecord `json:"expense"`
}

func (r *ExpenseRepository) List(ctx context.Context, opts repository.ListOptions) ([]entity.ExpenseRecord, error) {
	out := &expenseListResponse{}
	if err := r.client.get(ctx, "/expenses", out, listQuery(opts.DateFrom, opts.DateTo, opts.Page)); err != nil {
		return nil, err
	}
	return out.Expenses, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, input entity.CreateExpenseInput) (*entity.ExpenseRecord, error) {
	out := &expenseResponse{}
	if err := r.client.post(ctx, "/expenses", input, out); err != nil {
		return nil, err
	}
	return &out.Expense, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	return r.client.delete(ctx, fmt.Sprintf("/expenses/%d", id))
}
