package entity

import "github.com/shopspring/decimal"

// DebtRecord is a sale taken partly or fully on credit.
type DebtRecord struct {
	ID               int64           `json:"id"`
	Date             string          `json:"date"`
	Name             string          `json:"name"`
	Pcs              int             `json:"pcs"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	AmountPayableNow decimal.Decimal `json:"amount_payable_now"`
	BalanceOwed      decimal.Decimal `json:"balance_owed"`
	ClientName       string          `json:"client_name,omitempty"`
	ClientPhone      string          `json:"client_phone,omitempty"`
	SellerName       string          `json:"seller_name,omitempty"`
}

// ComputeBalance returns total_price - amount_payable_now. BalanceOwed must
// be recomputed through this whenever either side changes.
func (d *DebtRecord) ComputeBalance() decimal.Decimal {
	return d.TotalPrice.Sub(d.AmountPayableNow)
}

// DebtRepayment is a payment against an existing debt.
type DebtRepayment struct {
	ID            int64           `json:"id"`
	DebtID        int64           `json:"debt_id"`
	ReceiptNumber string          `json:"receipt_number"`
	PaymentDate   string          `json:"payment_date"`
	Amount        decimal.Decimal `json:"amount"`
	SellerName    string          `json:"seller_name,omitempty"`
	// ItemName is denormalized from the debt so repayment receipts do not
	// need a second fetch.
	ItemName string `json:"item_name"`
}

// CreateRepaymentInput is the client-validated payload for a new repayment.
// Amount must not exceed the debt's outstanding balance; that check needs
// the repayment history and lives in the debt service.
type CreateRepaymentInput struct {
	DebtID      int64           `json:"debt_id" validate:"required"`
	PaymentDate string          `json:"payment_date" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	SellerName  string          `json:"seller_name,omitempty"`
}
