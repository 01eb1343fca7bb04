package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/enum"
	"github.com/ousmanedev/boutik/internal/domain/repository"
	"github.com/ousmanedev/boutik/pkg/dateutil"
	"github.com/ousmanedev/boutik/pkg/pdf"
)

// ReportType selects which report to build.
type ReportType string

const (
	ReportExecutive ReportType = "executive"
	ReportDaily     ReportType = "daily"
	ReportStocks    ReportType = "stocks"
)

// CurrencyMode is a report-local display choice, independent of the live
// default currency used everywhere else.
type CurrencyMode string

const (
	// CurrencySingle renders money in the default display currency.
	CurrencySingle CurrencyMode = "single"
	// CurrencyAll renders money as "base / USD x.xx / EUR x.xx".
	CurrencyAll CurrencyMode = "all"
)

// ReportOptions selects and parameterizes a report build.
type ReportOptions struct {
	Type ReportType
	// DateFrom and DateTo bound the executive report. The daily report uses
	// Date; the stocks report ignores all three.
	DateFrom string
	DateTo   string
	Date     string
	Format   pdf.Format
	Currency CurrencyMode
}

// ReportData is everything a report build reads. Sections that failed to
// refresh keep their previously loaded records; Stale lists their names.
type ReportData struct {
	Sales     []entity.SaleRecord
	Expenses  []entity.ExpenseRecord
	Purchases []entity.InventoryItem
	Debts     []entity.DebtRecord
	Stale     []string
}

// ReportService fetches record sets and renders them as PDF and XLSX
// reports. Fetch failures degrade per section: the last successfully
// loaded records stay on screen and in the report, marked stale. There is
// no automatic retry; the next build re-fetches everything.
type ReportService struct {
	saleRepo      repository.SaleRepository
	expenseRepo   repository.ExpenseRepository
	inventoryRepo repository.InventoryRepository
	debtRepo      repository.DebtRepository
	currency      *CurrencyService
	settings      *SettingsService
	logger        *zap.Logger

	mu   sync.Mutex
	last ReportData
}

// NewReportService creates a new report service.
func NewReportService(
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
	inventoryRepo repository.InventoryRepository,
	debtRepo repository.DebtRepository,
	currency *CurrencyService,
	settings *SettingsService,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		saleRepo:      saleRepo,
		expenseRepo:   expenseRepo,
		inventoryRepo: inventoryRepo,
		debtRepo:      debtRepo,
		currency:      currency,
		settings:      settings,
		logger:        logger,
	}
}

// Fetch loads the four record sets for the report range. A failed section
// falls back to its previous records and is listed in Stale.
func (s *ReportService) Fetch(ctx context.Context, opts ReportOptions) ReportData {
	listOpts := repository.ListOptions{DateFrom: opts.DateFrom, DateTo: opts.DateTo}
	if opts.Type == ReportDaily && opts.Date != "" {
		listOpts = repository.ListOptions{DateFrom: opts.Date, DateTo: opts.Date}
	}
	if opts.Type == ReportStocks {
		// Stocks reflect the whole inventory, not a range.
		listOpts = repository.ListOptions{}
	}

	s.mu.Lock()
	data := ReportData{
		Sales:     s.last.Sales,
		Expenses:  s.last.Expenses,
		Purchases: s.last.Purchases,
		Debts:     s.last.Debts,
	}
	s.mu.Unlock()
	data.Stale = nil

	if sales, err := s.saleRepo.List(ctx, listOpts); err != nil {
		s.logger.Warn("sales fetch failed, keeping previous records", zap.Error(err))
		data.Stale = append(data.Stale, "sales")
	} else {
		data.Sales = sales
	}
	if expenses, err := s.expenseRepo.List(ctx, listOpts); err != nil {
		s.logger.Warn("expenses fetch failed, keeping previous records", zap.Error(err))
		data.Stale = append(data.Stale, "expenses")
	} else {
		data.Expenses = expenses
	}
	if purchases, err := s.inventoryRepo.List(ctx, listOpts); err != nil {
		s.logger.Warn("purchases fetch failed, keeping previous records", zap.Error(err))
		data.Stale = append(data.Stale, "purchases")
	} else {
		data.Purchases = purchases
	}
	if debts, err := s.debtRepo.List(ctx, listOpts); err != nil {
		s.logger.Warn("debts fetch failed, keeping previous records", zap.Error(err))
		data.Stale = append(data.Stale, "debts")
	} else {
		data.Debts = debts
	}

	s.mu.Lock()
	s.last = data
	s.mu.Unlock()
	return data
}

// money renders an amount under the report's currency mode.
func (s *ReportService) money(ctx context.Context, mode CurrencyMode, amount decimal.Decimal) string {
	if mode == CurrencyAll {
		return s.currency.AllCurrenciesLine(ctx, amount)
	}
	return s.currency.Format(ctx, amount, FormatOptions{MaxFractionDigits: 2})
}

// DailySummary are the extra lines the daily report carries.
type DailySummary struct {
	Date          string
	SalesTotal    decimal.Decimal
	ExpensesTotal decimal.Decimal
	GainLoss      decimal.Decimal
	// DebtsOwed sums balance_owed strictly over debts dated that day.
	DebtsOwed decimal.Decimal
}

// FilterDay keeps only the records dated on the given day, comparing
// normalized date strings.
func FilterDay(data ReportData, day string) ReportData {
	out := ReportData{Stale: data.Stale}
	for _, r := range data.Sales {
		if dateutil.SameDay(r.Date, day) {
			out.Sales = append(out.Sales, r)
		}
	}
	for _, r := range data.Expenses {
		if dateutil.SameDay(r.Date, day) {
			out.Expenses = append(out.Expenses, r)
		}
	}
	for _, r := range data.Purchases {
		if dateutil.SameDay(r.Date, day) {
			out.Purchases = append(out.Purchases, r)
		}
	}
	for _, r := range data.Debts {
		if dateutil.SameDay(r.Date, day) {
			out.Debts = append(out.Debts, r)
		}
	}
	return out
}

// ComputeDailySummary derives the daily figures from a day-filtered data
// set. The gain/loss rule is the shared one: cost by exact item-name match,
// zero cost for unmatched names.
func ComputeDailySummary(day ReportData, inventory []entity.InventoryItem, date string) DailySummary {
	sum := DailySummary{Date: date}
	for _, r := range day.Sales {
		sum.SalesTotal = sum.SalesTotal.Add(r.TotalPrice)
	}
	for _, r := range day.Expenses {
		sum.ExpensesTotal = sum.ExpensesTotal.Add(r.Amount)
	}
	sum.GainLoss = TotalGainLoss(day.Sales, inventory)
	for _, d := range day.Debts {
		sum.DebtsOwed = sum.DebtsOwed.Add(d.BalanceOwed)
	}
	return sum
}

// RenderPDF builds the selected report and writes the PDF to w.
func (s *ReportService) RenderPDF(ctx context.Context, opts ReportOptions, w io.Writer) error {
	data := s.Fetch(ctx, opts)
	doc := pdf.NewDoc(opts.Format)
	cfg := s.settings.Get(ctx)

	switch opts.Type {
	case ReportDaily:
		s.renderDaily(ctx, doc, cfg, data, opts)
	case ReportStocks:
		s.renderStocks(doc, cfg, data)
	default:
		s.renderExecutive(ctx, doc, cfg, data, opts)
	}
	return doc.Output(w)
}

// Filename builds the report download name.
func (s *ReportService) Filename(ctx context.Context, opts ReportOptions, ext string) string {
	cfg := s.settings.Get(ctx)
	app := strings.ReplaceAll(strings.TrimSpace(cfg.AppName), " ", "-")
	if app == "" {
		app = "Boutik"
	}
	date := opts.Date
	if date == "" {
		date = dateutil.Today()
	}
	return fmt.Sprintf("%s-%s-report-%s.%s", app, opts.Type, date, ext)
}

func (s *ReportService) header(doc *pdf.Doc, cfg entity.ShopConfiguration, subtitle string) {
	f := doc.F
	f.SetXY(doc.Margin(), doc.Margin())
	f.SetFont("Helvetica", "B", doc.TitleFontSize())
	f.CellFormat(doc.UsableWidth(), doc.TitleFontSize()/2, cfg.AppName, "", 1, "C", false, 0, "")
	f.SetFont("Helvetica", "", doc.BaseFontSize())
	if cfg.Location != "" {
		f.SetX(doc.Margin())
		f.CellFormat(doc.UsableWidth(), doc.BaseFontSize()/2, cfg.Location, "", 1, "C", false, 0, "")
	}
	f.SetX(doc.Margin())
	f.CellFormat(doc.UsableWidth(), doc.BaseFontSize()/2, subtitle, "", 1, "C", false, 0, "")
	f.SetX(doc.Margin())
	f.CellFormat(doc.UsableWidth(), doc.BaseFontSize()/2,
		"Generated "+time.Now().Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	f.Ln(2)
}

func (s *ReportService) staleNotice(doc *pdf.Doc, data ReportData) {
	if len(data.Stale) == 0 {
		return
	}
	f := doc.F
	f.SetFont("Helvetica", "I", doc.BaseFontSize()-1)
	f.SetX(doc.Margin())
	f.CellFormat(doc.UsableWidth(), doc.BaseFontSize()/2,
		"Showing previously loaded data for: "+strings.Join(data.Stale, ", "), "", 1, "L", false, 0, "")
	f.Ln(1)
}

func (s *ReportService) summaryLine(doc *pdf.Doc, label, value string) {
	f := doc.F
	f.SetFont("Helvetica", "B", doc.BaseFontSize())
	f.SetX(doc.Margin())
	f.CellFormat(doc.UsableWidth()*0.45, doc.BaseFontSize()/2+1, label, "", 0, "L", false, 0, "")
	f.SetFont("Helvetica", "", doc.BaseFontSize())
	f.CellFormat(doc.UsableWidth()*0.55, doc.BaseFontSize()/2+1, value, "", 1, "R", false, 0, "")
}

func (s *ReportService) renderExecutive(ctx context.Context, doc *pdf.Doc, cfg entity.ShopConfiguration, data ReportData, opts ReportOptions) {
	subtitle := "Executive Report"
	if opts.DateFrom != "" || opts.DateTo != "" {
		subtitle += " " + opts.DateFrom + " to " + opts.DateTo
	}
	s.header(doc, cfg, subtitle)
	s.staleNotice(doc, data)

	stats := ComputeStats(data.Sales, data.Expenses, data.Purchases)
	mode := opts.Currency
	s.summaryLine(doc, "Total sales", s.money(ctx, mode, stats.TotalIncome))
	s.summaryLine(doc, "Total expenses", s.money(ctx, mode, stats.TotalExpenses))
	s.summaryLine(doc, "Total purchases", s.money(ctx, mode, stats.TotalPurchases))
	s.summaryLine(doc, "Net balance", s.money(ctx, mode, stats.NetBalance))
	s.summaryLine(doc, "Gain / loss on sales", s.money(ctx, mode, TotalGainLoss(data.Sales, data.Purchases)))
	doc.F.Ln(2)

	doc.SetFooter(func(d *pdf.Doc, page int) { pdf.PageFooter(d, cfg.AppName, page) })
	pageHeader := func(d *pdf.Doc) { s.header(d, cfg, subtitle) }

	salesRows := make([][]string, 0, len(data.Sales))
	for _, r := range data.Sales {
		salesRows = append(salesRows, []string{
			dateutil.ExtractYMD(r.Date), r.Name, fmt.Sprintf("%d", r.Pcs),
			s.money(ctx, mode, r.UnitPrice), s.money(ctx, mode, r.TotalPrice),
		})
	}
	(&pdf.Table{
		Title: "Sales",
		Columns: []pdf.Column{
			{Header: "Date", Weight: 2, MaxChars: 10},
			{Header: "Item", Weight: 3, MaxChars: 12},
			{Header: "Pcs", Weight: 1, MaxChars: 4, Align: "R"},
			{Header: "Unit", Weight: 2, MaxChars: 9, Align: "R"},
			{Header: "Total", Weight: 2, MaxChars: 9, Align: "R"},
		},
		PageHeader: pageHeader,
	}).Render(doc, salesRows)
	doc.F.Ln(2)

	expenseRows := make([][]string, 0, len(data.Expenses))
	for _, r := range data.Expenses {
		expenseRows = append(expenseRows, []string{
			dateutil.ExtractYMD(r.Date), r.Name, s.money(ctx, mode, r.Amount),
		})
	}
	(&pdf.Table{
		Title: "Expenses",
		Columns: []pdf.Column{
			{Header: "Date", Weight: 2, MaxChars: 10},
			{Header: "Name", Weight: 4, MaxChars: 16},
			{Header: "Amount", Weight: 2, MaxChars: 9, Align: "R"},
		},
		PageHeader: pageHeader,
	}).Render(doc, expenseRows)
	doc.F.Ln(2)

	purchaseRows := make([][]string, 0, len(data.Purchases))
	for _, r := range data.Purchases {
		purchaseRows = append(purchaseRows, []string{
			dateutil.ExtractYMD(r.Date), r.Name, fmt.Sprintf("%d", r.Pcs),
			s.money(ctx, mode, r.UnitPrice), s.money(ctx, mode, r.TotalAmount),
		})
	}
	(&pdf.Table{
		Title: "Purchases",
		Columns: []pdf.Column{
			{Header: "Date", Weight: 2, MaxChars: 10},
			{Header: "Item", Weight: 3, MaxChars: 12},
			{Header: "Pcs", Weight: 1, MaxChars: 4, Align: "R"},
			{Header: "Unit", Weight: 2, MaxChars: 9, Align: "R"},
			{Header: "Total", Weight: 2, MaxChars: 9, Align: "R"},
		},
		PageHeader: pageHeader,
	}).Render(doc, purchaseRows)
	doc.F.Ln(2)

	debtRows := make([][]string, 0, len(data.Debts))
	for _, r := range data.Debts {
		debtRows = append(debtRows, []string{
			dateutil.ExtractYMD(r.Date), r.Name, r.ClientName,
			s.money(ctx, mode, r.TotalPrice), s.money(ctx, mode, r.BalanceOwed),
		})
	}
	(&pdf.Table{
		Title: "Debts",
		Columns: []pdf.Column{
			{Header: "Date", Weight: 2, MaxChars: 10},
			{Header: "Item", Weight: 3, MaxChars: 10},
			{Header: "Client", Weight: 3, MaxChars: 10},
			{Header: "Total", Weight: 2, MaxChars: 8, Align: "R"},
			{Header: "Owed", Weight: 2, MaxChars: 8, Align: "R"},
		},
		PageHeader: pageHeader,
	}).Render(doc, debtRows)
	doc.F.Ln(2)

	most, least := RankSales(data.Sales)
	rankRows := func(ranks []ItemRank) [][]string {
		rows := make([][]string, 0, len(ranks))
		for _, r := range ranks {
			rows = append(rows, []string{r.Name, fmt.Sprintf("%d", r.Count), s.money(ctx, mode, r.Total)})
		}
		return rows
	}
	rankColumns := []pdf.Column{
		{Header: "Item", Weight: 4, MaxChars: 16},
		{Header: "Pcs", Weight: 1, MaxChars: 5, Align: "R"},
		{Header: "Total", Weight: 2, MaxChars: 9, Align: "R"},
	}
	(&pdf.Table{Title: "Most sold items", Columns: rankColumns, PageHeader: pageHeader}).Render(doc, rankRows(most))
	doc.F.Ln(2)
	(&pdf.Table{Title: "Least sold items", Columns: rankColumns, PageHeader: pageHeader}).Render(doc, rankRows(least))
}

func (s *ReportService) renderDaily(ctx context.Context, doc *pdf.Doc, cfg entity.ShopConfiguration, data ReportData, opts ReportOptions) {
	date := opts.Date
	if date == "" {
		date = dateutil.Today()
	}
	s.header(doc, cfg, "Daily Report "+date)
	s.staleNotice(doc, data)

	day := FilterDay(data, date)
	sum := ComputeDailySummary(day, data.Purchases, date)
	mode := opts.Currency

	s.summaryLine(doc, "Sales", s.money(ctx, mode, sum.SalesTotal))
	s.summaryLine(doc, "Expenses", s.money(ctx, mode, sum.ExpensesTotal))
	s.summaryLine(doc, "Gain / loss", s.money(ctx, mode, sum.GainLoss))
	s.summaryLine(doc, "Debts owed today", s.money(ctx, mode, sum.DebtsOwed))
	doc.F.Ln(2)

	doc.SetFooter(func(d *pdf.Doc, page int) { pdf.PageFooter(d, cfg.AppName, page) })
	pageHeader := func(d *pdf.Doc) { s.header(d, cfg, "Daily Report "+date) }

	salesRows := make([][]string, 0, len(day.Sales))
	for _, r := range day.Sales {
		salesRows = append(salesRows, []string{
			r.Name, fmt.Sprintf("%d", r.Pcs),
			s.money(ctx, mode, r.UnitPrice), s.money(ctx, mode, r.TotalPrice),
		})
	}
	(&pdf.Table{
		Title: "Sales of the day",
		Columns: []pdf.Column{
			{Header: "Item", Weight: 4, MaxChars: 14},
			{Header: "Pcs", Weight: 1, MaxChars: 4, Align: "R"},
			{Header: "Unit", Weight: 2, MaxChars: 9, Align: "R"},
			{Header: "Total", Weight: 2, MaxChars: 9, Align: "R"},
		},
		PageHeader: pageHeader,
	}).Render(doc, salesRows)
	doc.F.Ln(2)

	expenseRows := make([][]string, 0, len(day.Expenses))
	for _, r := range day.Expenses {
		expenseRows = append(expenseRows, []string{r.Name, s.money(ctx, mode, r.Amount)})
	}
	(&pdf.Table{
		Title: "Expenses of the day",
		Columns: []pdf.Column{
			{Header: "Name", Weight: 5, MaxChars: 18},
			{Header: "Amount", Weight: 2, MaxChars: 9, Align: "R"},
		},
		PageHeader: pageHeader,
	}).Render(doc, expenseRows)
}

func (s *ReportService) renderStocks(doc *pdf.Doc, cfg entity.ShopConfiguration, data ReportData) {
	s.header(doc, cfg, "Stocks Report")
	s.staleNotice(doc, data)

	doc.SetFooter(func(d *pdf.Doc, page int) { pdf.PageFooter(d, cfg.AppName, page) })
	pageHeader := func(d *pdf.Doc) { s.header(d, cfg, "Stocks Report") }

	rows := make([][]string, 0, len(data.Purchases))
	for _, item := range data.Purchases {
		level := ""
		switch ClassifyStock(item) {
		case enum.StockLevelDeficient:
			level = "DEFICIENT"
		case enum.StockLevelWarning:
			level = "LOW"
		}
		rows = append(rows, []string{
			item.Name,
			fmt.Sprintf("%d", item.Pcs),
			fmt.Sprintf("%d", item.PcsSold),
			fmt.Sprintf("%d", item.AvailableStock),
			level,
		})
	}
	(&pdf.Table{
		Title: "Inventory",
		Columns: []pdf.Column{
			{Header: "Item", Weight: 4, MaxChars: 14},
			{Header: "Bought", Weight: 1.5, MaxChars: 6, Align: "R"},
			{Header: "Sold", Weight: 1.5, MaxChars: 6, Align: "R"},
			{Header: "Left", Weight: 1.5, MaxChars: 6, Align: "R"},
			{Header: "Status", Weight: 2, MaxChars: 9},
		},
		PageHeader: pageHeader,
	}).Render(doc, rows)
}

// ExportXLSX writes the selected report as an xlsx workbook, one sheet per
// section. Money columns carry raw base-currency numbers so spreadsheet
// formulas keep working.
func (s *ReportService) ExportXLSX(ctx context.Context, opts ReportOptions, w io.Writer) error {
	data := s.Fetch(ctx, opts)
	if opts.Type == ReportDaily {
		date := opts.Date
		if date == "" {
			date = dateutil.Today()
		}
		filtered := FilterDay(data, date)
		filtered.Purchases = data.Purchases
		data = filtered
	}

	f := excelize.NewFile()
	defer f.Close()

	writeSheet := func(name string, header []string, rows [][]any) error {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
		for col, h := range header {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(name, cell, h); err != nil {
				return err
			}
		}
		for i, row := range rows {
			for col, v := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
				if err := f.SetCellValue(name, cell, v); err != nil {
					return err
				}
			}
		}
		return nil
	}

	salesRows := make([][]any, 0, len(data.Sales))
	for _, r := range data.Sales {
		salesRows = append(salesRows, []any{
			dateutil.ExtractYMD(r.Date), r.Name, r.Pcs,
			r.UnitPrice.InexactFloat64(), r.TotalPrice.InexactFloat64(),
		})
	}
	if err := writeSheet("Sales", []string{"Date", "Item", "Pcs", "Unit Price", "Total Price"}, salesRows); err != nil {
		return err
	}

	expenseRows := make([][]any, 0, len(data.Expenses))
	for _, r := range data.Expenses {
		expenseRows = append(expenseRows, []any{dateutil.ExtractYMD(r.Date), r.Name, r.Amount.InexactFloat64()})
	}
	if err := writeSheet("Expenses", []string{"Date", "Name", "Amount"}, expenseRows); err != nil {
		return err
	}

	purchaseRows := make([][]any, 0, len(data.Purchases))
	for _, r := range data.Purchases {
		purchaseRows = append(purchaseRows, []any{
			dateutil.ExtractYMD(r.Date), r.Name, r.Pcs,
			r.UnitPrice.InexactFloat64(), r.TotalAmount.InexactFloat64(),
			r.PcsSold, r.AvailableStock,
		})
	}
	if err := writeSheet("Purchases", []string{"Date", "Item", "Pcs", "Unit Price", "Total", "Sold", "Available"}, purchaseRows); err != nil {
		return err
	}

	debtRows := make([][]any, 0, len(data.Debts))
	for _, r := range data.Debts {
		debtRows = append(debtRows, []any{
			dateutil.ExtractYMD(r.Date), r.Name, r.ClientName,
			r.TotalPrice.InexactFloat64(), r.AmountPayableNow.InexactFloat64(), r.BalanceOwed.InexactFloat64(),
		})
	}
	if err := writeSheet("Debts", []string{"Date", "Item", "Client", "Total", "Paid Now", "Balance Owed"}, debtRows); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	return f.Write(w)
}
