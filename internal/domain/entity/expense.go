package entity

import "github.com/shopspring/decimal"

// ExpenseRecord is a shop expense.
type ExpenseRecord struct {
	ID          int64           `json:"id"`
	Date        string          `json:"date"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// CreateExpenseInput is the client-validated payload for a new expense.
type CreateExpenseInput struct {
	Date        string          `json:"date" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}
