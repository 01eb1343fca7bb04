package entity

import "github.com/shopspring/decimal"

// InventoryItem is a purchase into stock. AvailableStock and PcsSold are
// derived server-side: purchased pcs minus sales matched by item name
// (the item name is the de facto foreign key; there is no numeric join).
type InventoryItem struct {
	ID             int64           `json:"id"`
	Date           string          `json:"date"`
	Name           string          `json:"name"`
	Pcs            int             `json:"pcs"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	AvailableStock int             `json:"available_stock"`
	PcsSold        int             `json:"pcs_sold"`
	// StockDeficiencyThreshold of zero means the item is never alerted.
	StockDeficiencyThreshold int    `json:"stock_deficiency_threshold,omitempty"`
	ImageURL                 string `json:"image_url,omitempty"`
}

// HasThreshold reports whether deficiency alerting applies to this item.
func (i *InventoryItem) HasThreshold() bool {
	return i.StockDeficiencyThreshold > 0
}

// CreateInventoryInput is the client-validated payload for a new purchase.
type CreateInventoryInput struct {
	Date                     string          `json:"date" validate:"required"`
	Name                     string          `json:"name" validate:"required"`
	Pcs                      int             `json:"pcs" validate:"required,gt=0"`
	UnitPrice                decimal.Decimal `json:"unit_price"`
	StockDeficiencyThreshold int             `json:"stock_deficiency_threshold,omitempty" validate:"gte=0"`
}
