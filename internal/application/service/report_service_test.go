package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/pkg/pdf"
)

func newReportFixture(sales *fakeSaleRepo, expenses *fakeExpenseRepo, inventory *fakeInventoryRepo, debts *fakeDebtRepo) *ReportService {
	cfgRepo := &fakeConfigRepo{cfg: entity.ShopConfiguration{AppName: "Chez Awa"}}
	settings := NewSettingsService(cfgRepo, nil, nil)
	currency := NewCurrencyService(&fakeCurrencyRepo{currencies: []entity.Currency{entity.FallbackCurrency()}}, nil, nil)
	return NewReportService(sales, expenses, inventory, debts, currency, settings, nil)
}

func reportRecords() (*fakeSaleRepo, *fakeExpenseRepo, *fakeInventoryRepo, *fakeDebtRepo) {
	sales := &fakeSaleRepo{sales: []entity.SaleRecord{
		{ID: 1, Date: "2024-03-05", Name: "Sandals", Pcs: 2, UnitPrice: d(5000), TotalPrice: d(10000)},
		{ID: 2, Date: "2024-03-06T00:00:00Z", Name: "Hat", Pcs: 1, UnitPrice: d(2500), TotalPrice: d(2500)},
	}}
	expenses := &fakeExpenseRepo{expenses: []entity.ExpenseRecord{
		{ID: 1, Date: "2024-03-05", Name: "Rent", Amount: d(3000)},
	}}
	inventory := &fakeInventoryRepo{items: []entity.InventoryItem{
		{ID: 1, Date: "2024-03-01", Name: "Sandals", Pcs: 10, UnitPrice: d(3000), TotalAmount: d(30000)},
	}}
	debts := &fakeDebtRepo{debts: []entity.DebtRecord{
		{ID: 1, Date: "2024-03-05", Name: "Sandals", TotalPrice: d(1000), AmountPayableNow: d(400), BalanceOwed: d(600)},
		{ID: 2, Date: "2024-03-06", Name: "Hat", TotalPrice: d(2000), AmountPayableNow: d(0), BalanceOwed: d(2000)},
	}}
	return sales, expenses, inventory, debts
}

func TestFetchKeepsStaleSectionsOnError(t *testing.T) {
	sales, expenses, inventory, debts := reportRecords()
	svc := newReportFixture(sales, expenses, inventory, debts)
	ctx := context.Background()

	first := svc.Fetch(ctx, ReportOptions{Type: ReportExecutive})
	require.Empty(t, first.Stale)
	require.Len(t, first.Sales, 2)

	sales.fail = true
	second := svc.Fetch(ctx, ReportOptions{Type: ReportExecutive})
	assert.Equal(t, []string{"sales"}, second.Stale)
	// The previous sales records survive the failed refresh.
	assert.Len(t, second.Sales, 2)
	assert.Len(t, second.Expenses, 1)
}

func TestFilterDayComparesNormalizedDates(t *testing.T) {
	sales, expenses, inventory, debts := reportRecords()
	svc := newReportFixture(sales, expenses, inventory, debts)
	data := svc.Fetch(context.Background(), ReportOptions{Type: ReportDaily, Date: "2024-03-06"})

	day := FilterDay(data, "2024-03-06")
	// The ISO timestamp record still matches by truncated date.
	require.Len(t, day.Sales, 1)
	assert.Equal(t, "Hat", day.Sales[0].Name)
	assert.Empty(t, day.Expenses)
	require.Len(t, day.Debts, 1)
}

func TestComputeDailySummary(t *testing.T) {
	sales, expenses, inventory, debts := reportRecords()
	svc := newReportFixture(sales, expenses, inventory, debts)
	data := svc.Fetch(context.Background(), ReportOptions{Type: ReportDaily, Date: "2024-03-05"})

	day := FilterDay(data, "2024-03-05")
	sum := ComputeDailySummary(day, data.Purchases, "2024-03-05")

	assert.True(t, sum.SalesTotal.Equal(d(10000)))
	assert.True(t, sum.ExpensesTotal.Equal(d(3000)))
	// Sandals cost 3000 each: 10000 - 2*3000.
	assert.True(t, sum.GainLoss.Equal(d(4000)))
	// Only the debt dated that day counts.
	assert.True(t, sum.DebtsOwed.Equal(d(600)))
}

func TestRenderPDFAllReportTypes(t *testing.T) {
	for _, typ := range []ReportType{ReportExecutive, ReportDaily, ReportStocks} {
		for _, format := range []pdf.Format{pdf.FormatA4, pdf.FormatThermal} {
			sales, expenses, inventory, debts := reportRecords()
			svc := newReportFixture(sales, expenses, inventory, debts)

			var buf bytes.Buffer
			err := svc.RenderPDF(context.Background(), ReportOptions{
				Type: typ, Date: "2024-03-05", Format: format, Currency: CurrencySingle,
			}, &buf)
			require.NoError(t, err, "type %s format %s", typ, format)
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
		}
	}
}

func TestExportXLSX(t *testing.T) {
	sales, expenses, inventory, debts := reportRecords()
	svc := newReportFixture(sales, expenses, inventory, debts)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportXLSX(context.Background(), ReportOptions{Type: ReportExecutive}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Sales", "Expenses", "Purchases", "Debts"}, f.GetSheetList())
	name, err := f.GetCellValue("Sales", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Sandals", name)
}

func TestReportFilename(t *testing.T) {
	sales, expenses, inventory, debts := reportRecords()
	svc := newReportFixture(sales, expenses, inventory, debts)

	got := svc.Filename(context.Background(), ReportOptions{Type: ReportDaily, Date: "2024-03-05"}, "pdf")
	assert.Equal(t, "Chez-Awa-daily-report-2024-03-05.pdf", got)
}
