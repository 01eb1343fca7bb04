package service

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ousmanedev/boutik/internal/domain/entity"
)

func TestFindInventoryCost(t *testing.T) {
	items := []entity.InventoryItem{
		{Name: "Sandals", UnitPrice: d(3000)},
		{Name: "Sandals", UnitPrice: d(4000)},
	}
	// First match wins when names repeat.
	assert.True(t, FindInventoryCost(items, "Sandals").Equal(d(3000)))
	// Unmatched names cost zero, they are not excluded.
	assert.True(t, FindInventoryCost(items, "Hat").Equal(decimal.Zero))
	// Matching is case-sensitive.
	assert.True(t, FindInventoryCost(items, "sandals").Equal(decimal.Zero))
}

func TestGainLossPerSale(t *testing.T) {
	items := []entity.InventoryItem{{Name: "Sandals", UnitPrice: d(3000)}}
	sales := []entity.SaleRecord{
		{Name: "Sandals", Pcs: 2, TotalPrice: d(10000)},
		{Name: "Hat", Pcs: 1, TotalPrice: d(2500)},
	}

	gains := GainLossPerSale(sales, items)
	require.Len(t, gains, 2)
	assert.True(t, gains[0].GainLoss.Equal(d(4000)), gains[0].GainLoss.String())
	// The unmatched sale is pure gain under the zero-cost rule.
	assert.True(t, gains[1].GainLoss.Equal(d(2500)))
	assert.True(t, TotalGainLoss(sales, items).Equal(d(6500)))
}

func TestRankSalesDisjointTopAndBottom(t *testing.T) {
	var sales []entity.SaleRecord
	for i := 1; i <= 15; i++ {
		sales = append(sales, entity.SaleRecord{
			Name:       fmt.Sprintf("Item%02d", i),
			Pcs:        i,
			UnitPrice:  d(100),
			TotalPrice: d(int64(i * 100)),
		})
	}

	most, least := RankSales(sales)
	require.Len(t, most, 10)
	require.Len(t, least, 5)

	assert.Equal(t, "Item15", most[0].Name)
	assert.Equal(t, "Item01", least[0].Name)

	inMost := map[string]bool{}
	for _, r := range most {
		inMost[r.Name] = true
	}
	for _, r := range least {
		assert.False(t, inMost[r.Name], "item %s appears in both lists", r.Name)
	}
	// Least is sorted ascending by count.
	for i := 1; i < len(least); i++ {
		assert.LessOrEqual(t, least[i-1].Count, least[i].Count)
	}
}

func TestRankSalesAggregatesByTrimmedName(t *testing.T) {
	sales := []entity.SaleRecord{
		{Name: "Sandals", Pcs: 2, TotalPrice: d(10000)},
		{Name: "  Sandals ", Pcs: 3, TotalPrice: d(15000)},
		{Name: "   ", Pcs: 9, TotalPrice: d(900)},
	}

	most, least := RankSales(sales)
	require.Len(t, most, 1)
	assert.Empty(t, least)
	assert.Equal(t, 5, most[0].Count)
	assert.True(t, most[0].Total.Equal(d(25000)))
}

func TestRankSalesFallsBackToUnitPrice(t *testing.T) {
	sales := []entity.SaleRecord{
		{Name: "Hat", Pcs: 4, UnitPrice: d(500)},
	}
	most, _ := RankSales(sales)
	require.Len(t, most, 1)
	assert.True(t, most[0].Total.Equal(d(2000)))
}
