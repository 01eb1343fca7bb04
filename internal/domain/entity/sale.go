package entity

import "github.com/shopspring/decimal"

// SaleRecord is a completed sale as returned by the backend. Records are
// immutable value objects on this side; edits go back through the API.
type SaleRecord struct {
	ID          int64           `json:"id"`
	Date        string          `json:"date"`
	Name        string          `json:"name"`
	Pcs         int             `json:"pcs"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	ClientName  string          `json:"client_name,omitempty"`
	ClientPhone string          `json:"client_phone,omitempty"`
	SellerName  string          `json:"seller_name,omitempty"`
}

// ComputeTotal returns pcs * unit_price. The backend stores total_price at
// creation time; this is the rule it was computed with.
func (s *SaleRecord) ComputeTotal() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Pcs)))
}

// CreateSaleInput is the client-validated payload for a new sale.
type CreateSaleInput struct {
	Date        string          `json:"date" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Pcs         int             `json:"pcs" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ClientName  string          `json:"client_name,omitempty"`
	ClientPhone string          `json:"client_phone,omitempty"`
	SellerName  string          `json:"seller_name,omitempty"`
}
