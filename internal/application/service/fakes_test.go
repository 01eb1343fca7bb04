package service

import (
	"context"
	"errors"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/repository"
)

var errUnavailable = errors.New("backend unavailable")

type fakeSaleRepo struct {
	sales []entity.SaleRecord
	fail  bool
}

func (f *fakeSaleRepo) List(context.Context, repository.ListOptions) ([]entity.SaleRecord, error) {
	if f.fail {
		return nil, errUnavailable
	}
	return f.sales, nil
}
func (f *fakeSaleRepo) Create(_ context.Context, in entity.CreateSaleInput) (*entity.SaleRecord, error) {
	rec := entity.SaleRecord{ID: int64(len(f.sales) + 1), Date: in.Date, Name: in.Name, Pcs: in.Pcs, UnitPrice: in.UnitPrice}
	rec.TotalPrice = rec.ComputeTotal()
	f.sales = append(f.sales, rec)
	return &rec, nil
}
func (f *fakeSaleRepo) Update(context.Context, entity.SaleRecord) error { return nil }
func (f *fakeSaleRepo) Delete(context.Context, int64) error            { return nil }

type fakeExpenseRepo struct {
	expenses []entity.ExpenseRecord
	fail     bool
}

func (f *fakeExpenseRepo) List(context.Context, repository.ListOptions) ([]entity.ExpenseRecord, error) {
	if f.fail {
		return nil, errUnavailable
	}
	return f.expenses, nil
}
func (f *fakeExpenseRepo) Create(_ context.Context, in entity.CreateExpenseInput) (*entity.ExpenseRecord, error) {
	rec := entity.ExpenseRecord{ID: int64(len(f.expenses) + 1), Date: in.Date, Name: in.Name, Amount: in.Amount}
	f.expenses = append(f.expenses, rec)
	return &rec, nil
}
func (f *fakeExpenseRepo) Delete(context.Context, int64) error { return nil }

type fakeInventoryRepo struct {
	items []entity.InventoryItem
	fail  bool
}

func (f *fakeInventoryRepo) List(context.Context, repository.ListOptions) ([]entity.InventoryItem, error) {
	if f.fail {
		return nil, errUnavailable
	}
	return f.items, nil
}
func (f *fakeInventoryRepo) Create(_ context.Context, in entity.CreateInventoryInput) (*entity.InventoryItem, error) {
	item := entity.InventoryItem{ID: int64(len(f.items) + 1), Date: in.Date, Name: in.Name, Pcs: in.Pcs, UnitPrice: in.UnitPrice}
	f.items = append(f.items, item)
	return &item, nil
}
func (f *fakeInventoryRepo) Update(context.Context, entity.InventoryItem) error { return nil }
func (f *fakeInventoryRepo) Delete(context.Context, int64) error                { return nil }
func (f *fakeInventoryRepo) SetThreshold(_ context.Context, id int64, threshold int) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].StockDeficiencyThreshold = threshold
		}
	}
	return nil
}

type fakeDebtRepo struct {
	debts      []entity.DebtRecord
	repayments map[int64][]entity.DebtRepayment
	fail       bool
}

func (f *fakeDebtRepo) List(context.Context, repository.ListOptions) ([]entity.DebtRecord, error) {
	if f.fail {
		return nil, errUnavailable
	}
	return f.debts, nil
}
func (f *fakeDebtRepo) Get(_ context.Context, id int64) (*entity.DebtRecord, error) {
	for i := range f.debts {
		if f.debts[i].ID == id {
			return &f.debts[i], nil
		}
	}
	return nil, errUnavailable
}
func (f *fakeDebtRepo) Update(_ context.Context, rec entity.DebtRecord) error {
	for i := range f.debts {
		if f.debts[i].ID == rec.ID {
			f.debts[i] = rec
		}
	}
	return nil
}
func (f *fakeDebtRepo) Delete(context.Context, int64) error { return nil }
func (f *fakeDebtRepo) ListRepayments(_ context.Context, debtID int64) ([]entity.DebtRepayment, error) {
	return f.repayments[debtID], nil
}
func (f *fakeDebtRepo) CreateRepayment(_ context.Context, in entity.CreateRepaymentInput) (*entity.DebtRepayment, error) {
	if f.repayments == nil {
		f.repayments = make(map[int64][]entity.DebtRepayment)
	}
	rep := entity.DebtRepayment{
		ID:          int64(len(f.repayments[in.DebtID]) + 1),
		DebtID:      in.DebtID,
		PaymentDate: in.PaymentDate,
		Amount:      in.Amount,
		SellerName:  in.SellerName,
	}
	f.repayments[in.DebtID] = append(f.repayments[in.DebtID], rep)
	return &rep, nil
}

type fakeCurrencyRepo struct {
	currencies []entity.Currency
	fail       bool
	fetches    int
}

func (f *fakeCurrencyRepo) List(context.Context) ([]entity.Currency, error) {
	if f.fail {
		return nil, errUnavailable
	}
	return f.currencies, nil
}
func (f *fakeCurrencyRepo) GetDefault(context.Context) (*entity.Currency, error) {
	f.fetches++
	if f.fail {
		return nil, errUnavailable
	}
	for i := range f.currencies {
		if f.currencies[i].IsDefault {
			return &f.currencies[i], nil
		}
	}
	return nil, errUnavailable
}
func (f *fakeCurrencyRepo) SetDefault(_ context.Context, code string) error {
	for i := range f.currencies {
		f.currencies[i].IsDefault = f.currencies[i].Code == code
	}
	return nil
}
func (f *fakeCurrencyRepo) Upsert(_ context.Context, cur entity.Currency) error {
	for i := range f.currencies {
		if f.currencies[i].Code == cur.Code {
			f.currencies[i] = cur
			return nil
		}
	}
	f.currencies = append(f.currencies, cur)
	return nil
}
func (f *fakeCurrencyRepo) Delete(_ context.Context, code string) error {
	out := f.currencies[:0]
	for _, c := range f.currencies {
		if c.Code != code {
			out = append(out, c)
		}
	}
	f.currencies = out
	return nil
}

type fakeGoalRepo struct {
	goals []entity.GoalRecord
}

func (f *fakeGoalRepo) List(context.Context) ([]entity.GoalRecord, error) { return f.goals, nil }
func (f *fakeGoalRepo) Create(_ context.Context, in entity.CreateGoalInput) (*entity.GoalRecord, error) {
	g := entity.GoalRecord{ID: int64(len(f.goals) + 1), Date: in.Date, Title: in.Title, Content: in.Content}
	f.goals = append(f.goals, g)
	return &g, nil
}
func (f *fakeGoalRepo) Update(_ context.Context, goal entity.GoalRecord) error {
	for i := range f.goals {
		if f.goals[i].ID == goal.ID {
			f.goals[i] = goal
		}
	}
	return nil
}
func (f *fakeGoalRepo) Delete(context.Context, int64) error { return nil }

type fakeConfigRepo struct {
	cfg entity.ShopConfiguration
	pin string
}

func (f *fakeConfigRepo) Get(context.Context) (*entity.ShopConfiguration, error) {
	cfg := f.cfg
	return &cfg, nil
}
func (f *fakeConfigRepo) Update(_ context.Context, cfg entity.ShopConfiguration) error {
	f.cfg = cfg
	return nil
}
func (f *fakeConfigRepo) VerifyPIN(_ context.Context, pin string) (bool, error) {
	return pin == f.pin, nil
}
