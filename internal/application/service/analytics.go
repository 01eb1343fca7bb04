package service

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ousmanedev/boutik/internal/domain/entity"
)

// FindInventoryCost returns the unit cost of the first inventory item whose
// name matches exactly, or zero when nothing matches. The name is the only
// join key between inventory and sales, and the zero-cost fallback for
// unmatched sales is deliberate: such a sale counts as pure gain rather
// than being excluded from the computation.
func FindInventoryCost(items []entity.InventoryItem, name string) decimal.Decimal {
	for _, item := range items {
		if item.Name == name {
			return item.UnitPrice
		}
	}
	return decimal.Zero
}

// SaleGain is one sale with its cost-of-goods and gain/loss.
type SaleGain struct {
	Sale     entity.SaleRecord `json:"sale"`
	UnitCost decimal.Decimal   `json:"unit_cost"`
	GainLoss decimal.Decimal   `json:"gain_loss"`
}

// GainLossPerSale computes gain_loss = total_price - unit_cost*pcs for each
// sale, with the cost looked up through FindInventoryCost.
func GainLossPerSale(sales []entity.SaleRecord, items []entity.InventoryItem) []SaleGain {
	out := make([]SaleGain, 0, len(sales))
	for _, sale := range sales {
		cost := FindInventoryCost(items, sale.Name)
		out = append(out, SaleGain{
			Sale:     sale,
			UnitCost: cost,
			GainLoss: sale.TotalPrice.Sub(cost.Mul(decimal.NewFromInt(int64(sale.Pcs)))),
		})
	}
	return out
}

// TotalGainLoss sums GainLossPerSale.
func TotalGainLoss(sales []entity.SaleRecord, items []entity.InventoryItem) decimal.Decimal {
	total := decimal.Zero
	for _, g := range GainLossPerSale(sales, items) {
		total = total.Add(g.GainLoss)
	}
	return total
}

// ItemRank is one entry of the most/least-sold rankings.
type ItemRank struct {
	Name  string          `json:"name"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

const rankingSize = 10

// RankSales groups sales by trimmed item name and produces the most-sold
// and least-sold lists. Matching is exact (case-sensitive) on the trimmed
// name; whitespace-only names are excluded so they cannot fragment the
// rankings. The least list is the bottom ten of the full set minus anything
// already in the most list, so the two never share an item.
func RankSales(sales []entity.SaleRecord) (most, least []ItemRank) {
	type bucket struct {
		rank  ItemRank
		order int
	}
	buckets := make(map[string]*bucket)
	var insertion []string

	for _, sale := range sales {
		name := strings.TrimSpace(sale.Name)
		if name == "" {
			continue
		}
		b, ok := buckets[name]
		if !ok {
			b = &bucket{rank: ItemRank{Name: name}, order: len(insertion)}
			buckets[name] = b
			insertion = append(insertion, name)
		}
		b.rank.Count += sale.Pcs
		if sale.TotalPrice.IsPositive() {
			b.rank.Total = b.rank.Total.Add(sale.TotalPrice)
		} else {
			b.rank.Total = b.rank.Total.Add(sale.UnitPrice.Mul(decimal.NewFromInt(int64(sale.Pcs))))
		}
	}

	all := make([]*bucket, 0, len(buckets))
	for _, name := range insertion {
		all = append(all, buckets[name])
	}

	desc := make([]*bucket, len(all))
	copy(desc, all)
	sort.SliceStable(desc, func(i, j int) bool { return desc[i].rank.Count > desc[j].rank.Count })
	for i := 0; i < len(desc) && i < rankingSize; i++ {
		most = append(most, desc[i].rank)
	}

	inMost := make(map[string]bool, len(most))
	for _, r := range most {
		inMost[r.Name] = true
	}

	asc := make([]*bucket, len(all))
	copy(asc, all)
	sort.SliceStable(asc, func(i, j int) bool { return asc[i].rank.Count < asc[j].rank.Count })
	for i := 0; i < len(asc) && i < rankingSize; i++ {
		if inMost[asc[i].rank.Name] {
			continue
		}
		least = append(least, asc[i].rank)
	}
	sort.SliceStable(least, func(i, j int) bool { return least[i].Count < least[j].Count })
	return most, least
}
