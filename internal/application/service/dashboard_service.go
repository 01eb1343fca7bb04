package service

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/enum"
	"github.com/ousmanedev/boutik/internal/domain/repository"
)

// DashboardService derives the dashboard views from raw record collections.
// All computation is client-side and pure; only the fetches do I/O.
type DashboardService struct {
	saleRepo      repository.SaleRepository
	expenseRepo   repository.ExpenseRepository
	inventoryRepo repository.InventoryRepository
	logger        *zap.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
	inventoryRepo repository.InventoryRepository,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		saleRepo:      saleRepo,
		expenseRepo:   expenseRepo,
		inventoryRepo: inventoryRepo,
		logger:        logger,
	}
}

// DashboardStats are the headline money totals.
type DashboardStats struct {
	TotalIncome    decimal.Decimal `json:"total_income"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	NetBalance     decimal.Decimal `json:"net_balance"`
}

// BalanceClass returns the card styling class for the net balance.
func (s *DashboardStats) BalanceClass() string {
	if s.NetBalance.IsNegative() {
		return "negative"
	}
	return "positive"
}

// GetStats fetches the three record sets and computes the totals.
func (s *DashboardService) GetStats(ctx context.Context, opts repository.ListOptions) (*DashboardStats, error) {
	sales, err := s.saleRepo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	purchases, err := s.inventoryRepo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	return ComputeStats(sales, expenses, purchases), nil
}

// ComputeStats sums the raw records. Decimal zero values absorb missing or
// malformed fields, so totals never become NaN.
func ComputeStats(sales []entity.SaleRecord, expenses []entity.ExpenseRecord, purchases []entity.InventoryItem) *DashboardStats {
	stats := &DashboardStats{}
	for _, sale := range sales {
		stats.TotalIncome = stats.TotalIncome.Add(sale.TotalPrice)
	}
	for _, expense := range expenses {
		stats.TotalExpenses = stats.TotalExpenses.Add(expense.Amount)
	}
	for _, purchase := range purchases {
		stats.TotalPurchases = stats.TotalPurchases.Add(purchase.TotalAmount)
	}
	stats.NetBalance = stats.TotalIncome.Sub(stats.TotalExpenses.Add(stats.TotalPurchases))
	return stats
}

// PieSegment is one slice of the allocation chart, carrying the SVG arc
// parameters the view draws with.
type PieSegment struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	// Angles in degrees; the first segment starts at -90 (12 o'clock).
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
	LargeArc   bool    `json:"large_arc"`
	// ShowLabel is false for slivers (<= 5%) to avoid label overlap.
	ShowLabel bool `json:"show_label"`
}

// ArcPath renders the segment as an SVG path around center (cx, cy) with
// radius r.
func (p *PieSegment) ArcPath(cx, cy, r float64) string {
	x1, y1 := arcPoint(cx, cy, r, p.StartAngle)
	x2, y2 := arcPoint(cx, cy, r, p.EndAngle)
	largeArc := 0
	if p.LargeArc {
		largeArc = 1
	}
	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
		cx, cy, x1, y1, r, r, largeArc, x2, y2)
}

func arcPoint(cx, cy, r, angleDeg float64) (float64, float64) {
	rad := angleDeg * math.Pi / 180
	return cx + r*math.Cos(rad), cy + r*math.Sin(rad)
}

// PieSegments lays out the allocation chart for the three totals. Entries
// are kept in {Sales, Expenses, Purchases} order, non-positive values are
// filtered out, and percentages sum to 100 across what remains.
func PieSegments(stats *DashboardStats) []PieSegment {
	type slice struct {
		label string
		value decimal.Decimal
	}
	ordered := []slice{
		{"Sales", stats.TotalIncome},
		{"Expenses", stats.TotalExpenses},
		{"Purchases", stats.TotalPurchases},
	}

	var total float64
	var included []slice
	for _, s := range ordered {
		if s.value.IsPositive() {
			included = append(included, s)
			total += s.value.InexactFloat64()
		}
	}
	if total <= 0 {
		return nil
	}

	segments := make([]PieSegment, 0, len(included))
	start := -90.0
	for _, s := range included {
		value := s.value.InexactFloat64()
		pct := value / total * 100
		angle := pct / 100 * 360
		segments = append(segments, PieSegment{
			Label:      s.label,
			Value:      value,
			Percentage: pct,
			StartAngle: start,
			EndAngle:   start + angle,
			LargeArc:   angle > 180,
			ShowLabel:  pct > 5,
		})
		start += angle
	}
	return segments
}

// StockAlert pairs an inventory item with its deficiency classification.
type StockAlert struct {
	Item  entity.InventoryItem `json:"item"`
	Level enum.StockLevel      `json:"level"`
}

// ClassifyStock applies the threshold rule: items without a threshold are
// never alerted; at or below the threshold is deficient; at or below 1.5x
// the threshold is a warning.
func ClassifyStock(item entity.InventoryItem) enum.StockLevel {
	if !item.HasThreshold() {
		return enum.StockLevelNormal
	}
	t := item.StockDeficiencyThreshold
	switch {
	case item.AvailableStock <= t:
		return enum.StockLevelDeficient
	case 2*item.AvailableStock <= 3*t: // available <= 1.5 * threshold
		return enum.StockLevelWarning
	default:
		return enum.StockLevelNormal
	}
}

// StockAlerts returns the warning and deficient items, deficient first.
func StockAlerts(items []entity.InventoryItem) []StockAlert {
	var deficient, warning []StockAlert
	for _, item := range items {
		switch ClassifyStock(item) {
		case enum.StockLevelDeficient:
			deficient = append(deficient, StockAlert{Item: item, Level: enum.StockLevelDeficient})
		case enum.StockLevelWarning:
			warning = append(warning, StockAlert{Item: item, Level: enum.StockLevelWarning})
		}
	}
	return append(deficient, warning...)
}

// FetchStockAlerts loads the inventory and classifies it. Used by the
// dashboard and by the 30-second poller.
func (s *DashboardService) FetchStockAlerts(ctx context.Context) ([]StockAlert, error) {
	items, err := s.inventoryRepo.List(ctx, repository.ListOptions{})
	if err != nil {
		return nil, err
	}
	return StockAlerts(items), nil
}
