// Package repository declares the data-access contracts consumed by the
// application services. The production implementations live in
// internal/infrastructure/restclient and talk to the shop backend; tests
// substitute in-memory fakes.
package repository

import (
	"context"
	"io"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/pkg/pagination"
)

// ListOptions narrows list fetches. Zero value means "everything".
type ListOptions struct {
	// DateFrom and DateTo are inclusive YYYY-MM-DD bounds.
	DateFrom string
	DateTo   string
	Page     *pagination.Params
}

// SaleRepository accesses income (sales) records.
type SaleRepository interface {
	List(ctx context.Context, opts ListOptions) ([]entity.SaleRecord, error)
	Create(ctx context.Context, input entity.CreateSaleInput) (*entity.SaleRecord, error)
	Update(ctx context.Context, record entity.SaleRecord) error
	Delete(ctx context.Context, id int64) error
}

// DebtRepository accesses debt records and their repayments.
type DebtRepository interface {
	List(ctx context.Context, opts ListOptions) ([]entity.DebtRecord, error)
	Get(ctx context.Context, id int64) (*entity.DebtRecord, error)
	Update(ctx context.Context, record entity.DebtRecord) error
	Delete(ctx context.Context, id int64) error

	ListRepayments(ctx context.Context, debtID int64) ([]entity.DebtRepayment, error)
	CreateRepayment(ctx context.Context, input entity.CreateRepaymentInput) (*entity.DebtRepayment, error)
}

// InventoryRepository accesses purchase (stock) records.
type InventoryRepository interface {
	List(ctx context.Context, opts ListOptions) ([]entity.InventoryItem, error)
	Create(ctx context.Context, input entity.CreateInventoryInput) (*entity.InventoryItem, error)
	Update(ctx context.Context, item entity.InventoryItem) error
	Delete(ctx context.Context, id int64) error
	SetThreshold(ctx context.Context, id int64, threshold int) error
}

// ExpenseRepository accesses expense records.
type ExpenseRepository interface {
	List(ctx context.Context, opts ListOptions) ([]entity.ExpenseRecord, error)
	Create(ctx context.Context, input entity.CreateExpenseInput) (*entity.ExpenseRecord, error)
	Delete(ctx context.Context, id int64) error
}

// CurrencyRepository accesses the currency table.
type CurrencyRepository interface {
	List(ctx context.Context) ([]entity.Currency, error)
	GetDefault(ctx context.Context) (*entity.Currency, error)
	SetDefault(ctx context.Context, code string) error
	Upsert(ctx context.Context, currency entity.Currency) error
	Delete(ctx context.Context, code string) error
}

// GoalRepository accesses goal records.
type GoalRepository interface {
	List(ctx context.Context) ([]entity.GoalRecord, error)
	Create(ctx context.Context, input entity.CreateGoalInput) (*entity.GoalRecord, error)
	Update(ctx context.Context, goal entity.GoalRecord) error
	Delete(ctx context.Context, id int64) error
}

// ConfigRepository accesses the installation configuration.
type ConfigRepository interface {
	Get(ctx context.Context) (*entity.ShopConfiguration, error)
	Update(ctx context.Context, cfg entity.ShopConfiguration) error
	VerifyPIN(ctx context.Context, pin string) (bool, error)
}

// BackupRepository downloads and restores full-database backups.
type BackupRepository interface {
	Download(ctx context.Context, w io.Writer) error
	Restore(ctx context.Context, filename string, r io.Reader) error
}
