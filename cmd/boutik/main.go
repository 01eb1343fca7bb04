package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ousmanedev/boutik/internal/application/service"
	"github.com/ousmanedev/boutik/internal/config"
	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/repository"
	"github.com/ousmanedev/boutik/internal/infrastructure/restclient"
	"github.com/ousmanedev/boutik/internal/scheduler"
	"github.com/ousmanedev/boutik/pkg/dateutil"
	"github.com/ousmanedev/boutik/pkg/event"
	"github.com/ousmanedev/boutik/pkg/logger"
	"github.com/ousmanedev/boutik/pkg/pdf"
	"github.com/ousmanedev/boutik/pkg/printer"
)

type app struct {
	cfg       *config.Config
	log       *zap.Logger
	debts     repository.DebtRepository
	sales     repository.SaleRepository
	backups   repository.BackupRepository
	dashboard *service.DashboardService
	currency  *service.CurrencyService
	reports   *service.ReportService
	receipts  *service.ReceiptService
	debtSvc   *service.DebtService
	goals     *service.GoalService
	poller    *scheduler.Scheduler
}

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.Must(logger.New())
	defer log.Sync()

	// Initialize the API client
	client := restclient.New(restclient.Config{
		BaseURL: cfg.API.BaseURL,
		Token:   cfg.API.Token,
		Timeout: cfg.API.Timeout,
	}, log)

	// Initialize repositories
	saleRepo := restclient.NewSaleRepository(client)
	debtRepo := restclient.NewDebtRepository(client)
	inventoryRepo := restclient.NewInventoryRepository(client)
	expenseRepo := restclient.NewExpenseRepository(client)
	currencyRepo := restclient.NewCurrencyRepository(client)
	goalRepo := restclient.NewGoalRepository(client)
	configRepo := restclient.NewConfigRepository(client)
	backupRepo := restclient.NewBackupRepository(client)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	bus := event.NewBus()
	settingsService := service.NewSettingsService(configRepo, bus, log)
	currencyService := service.NewCurrencyService(currencyRepo, bus, log)
	dashboardService := service.NewDashboardService(saleRepo, expenseRepo, inventoryRepo, log)
	debtService := service.NewDebtService(debtRepo, log)
	reportService := service.NewReportService(saleRepo, expenseRepo, inventoryRepo, debtRepo, currencyService, settingsService, log)
	receiptService := service.NewReceiptService(settingsService, currencyService, thermalPrinter, log)
	goalService := service.NewGoalService(goalRepo, settingsService, service.NewMemoryUnlockStore(), log)

	a := &app{
		cfg:       cfg,
		log:       log,
		debts:     debtRepo,
		sales:     saleRepo,
		backups:   backupRepo,
		dashboard: dashboardService,
		currency:  currencyService,
		reports:   reportService,
		receipts:  receiptService,
		debtSvc:   debtService,
		goals:     goalService,
		poller:    scheduler.NewScheduler(cfg, dashboardService, log),
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "stats":
		err = a.runStats(ctx, os.Args[2:])
	case "report":
		err = a.runReport(ctx, os.Args[2:])
	case "receipt":
		err = a.runReceipt(ctx, os.Args[2:])
	case "repay":
		err = a.runRepay(ctx, os.Args[2:])
	case "goals":
		err = a.runGoals(ctx, os.Args[2:])
	case "watch":
		err = a.runWatch()
	case "backup":
		err = a.runBackup(ctx, os.Args[2:])
	case "restore":
		err = a.runRestore(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Error("command failed", zap.String("command", os.Args[1]), zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: boutik <command> [flags]

commands:
  stats    show income/expense/purchase totals and stock alerts
  report   generate a PDF or XLSX report (executive, daily, stocks)
  receipt  generate and optionally print a receipt
  repay    record a repayment against a debt
  goals    list business goals (PIN-gated when configured)
  watch    poll stock levels and log alerts until interrupted
  backup   download a database backup
  restore  restore a database backup`)
}

func (a *app) runStats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	from := fs.String("from", dateutil.FirstOfMonth(time.Now()), "range start (YYYY-MM-DD)")
	to := fs.String("to", dateutil.Today(), "range end (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stats, err := a.dashboard.GetStats(ctx, repository.ListOptions{DateFrom: *from, DateTo: *to})
	if err != nil {
		return err
	}
	money := func(v decimal.Decimal) string {
		return a.currency.Format(ctx, v, service.FormatOptions{MaxFractionDigits: 2})
	}
	fmt.Printf("Period %s to %s\n", *from, *to)
	fmt.Printf("  Sales:      %s\n", money(stats.TotalIncome))
	fmt.Printf("  Expenses:   %s\n", money(stats.TotalExpenses))
	fmt.Printf("  Purchases:  %s\n", money(stats.TotalPurchases))
	fmt.Printf("  Net (%s): %s\n", stats.BalanceClass(), money(stats.NetBalance))

	alerts, err := a.dashboard.FetchStockAlerts(ctx)
	if err != nil {
		return err
	}
	for _, alert := range alerts {
		fmt.Printf("  stock %-9s %s (%d left, threshold %d)\n",
			alert.Level, alert.Item.Name, alert.Item.AvailableStock, alert.Item.StockDeficiencyThreshold)
	}
	return nil
}

func (a *app) runReport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	typ := fs.String("type", "executive", "report type: executive, daily or stocks")
	date := fs.String("date", "", "daily report date (YYYY-MM-DD, default today)")
	from := fs.String("from", "", "range start (YYYY-MM-DD)")
	to := fs.String("to", "", "range end (YYYY-MM-DD)")
	format := fs.String("format", "a4", "page format: a4 or thermal")
	currencies := fs.String("currencies", "single", "money display: single or all")
	xlsx := fs.Bool("xlsx", false, "export xlsx instead of pdf")
	pin := fs.String("pin", "", "shop PIN, unlocks gain figures when PIN protection is enabled")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Executive and daily reports carry gain/loss figures, which sit behind
	// the same PIN gate as the gain view.
	if t := service.ReportType(*typ); t == service.ReportExecutive || t == service.ReportDaily {
		if err := a.goals.UnlockView(ctx, service.ViewGains, *pin); err != nil {
			if errors.Is(err, service.ErrPINRequired) {
				return fmt.Errorf("report: gain figures are PIN protected, pass -pin")
			}
			return err
		}
	}

	opts := service.ReportOptions{
		Type:     service.ReportType(*typ),
		Date:     *date,
		DateFrom: *from,
		DateTo:   *to,
		Format:   pageFormat(*format),
		Currency: service.CurrencyMode(*currencies),
	}

	ext := "pdf"
	if *xlsx {
		ext = "xlsx"
	}
	path := filepath.Join(a.cfg.Output.Dir, a.reports.Filename(ctx, opts, ext))
	f, err := createOutput(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if *xlsx {
		err = a.reports.ExportXLSX(ctx, opts, f)
	} else {
		err = a.reports.RenderPDF(ctx, opts, f)
	}
	if err != nil {
		return err
	}
	a.log.Info("report written", zap.String("path", path))
	fmt.Println(path)
	return nil
}

func (a *app) runReceipt(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("receipt", flag.ExitOnError)
	typ := fs.String("type", "sale", "receipt type: sale, debt or repayment")
	id := fs.Int64("id", 0, "record id (repayment id for -type repayment)")
	debtID := fs.Int64("debt", 0, "debt id, required for -type repayment")
	format := fs.String("format", "a4", "page format: a4 or thermal")
	doPrint := fs.Bool("print", false, "also send to the thermal printer")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("receipt: -id is required")
	}

	receipt, err := a.buildReceipt(ctx, *typ, *id, *debtID)
	if err != nil {
		return err
	}

	path := filepath.Join(a.cfg.Output.Dir, a.receipts.Filename(ctx, receipt))
	f, err := createOutput(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := a.receipts.RenderPDF(ctx, receipt, pageFormat(*format), f); err != nil {
		return err
	}
	a.log.Info("receipt written", zap.String("path", path), zap.String("number", receipt.Number))
	fmt.Println(path)

	if *doPrint {
		return a.receipts.Print(ctx, receipt)
	}
	return nil
}

func (a *app) buildReceipt(ctx context.Context, typ string, id, debtID int64) (service.Receipt, error) {
	switch typ {
	case "sale":
		sales, err := a.sales.List(ctx, repository.ListOptions{})
		if err != nil {
			return service.Receipt{}, err
		}
		for _, sale := range sales {
			if sale.ID == id {
				return service.SaleReceipt(sale), nil
			}
		}
		return service.Receipt{}, fmt.Errorf("receipt: sale %d not found", id)
	case "debt":
		debt, err := a.debts.Get(ctx, id)
		if err != nil {
			return service.Receipt{}, err
		}
		return service.DebtReceipt(*debt), nil
	case "repayment":
		if debtID == 0 {
			return service.Receipt{}, fmt.Errorf("receipt: -debt is required for repayment receipts")
		}
		debt, err := a.debts.Get(ctx, debtID)
		if err != nil {
			return service.Receipt{}, err
		}
		repayments, err := a.debts.ListRepayments(ctx, debtID)
		if err != nil {
			return service.Receipt{}, err
		}
		for _, rep := range repayments {
			if rep.ID == id {
				return service.RepaymentReceipt(rep, debt, repayments), nil
			}
		}
		return service.Receipt{}, fmt.Errorf("receipt: repayment %d not found on debt %d", id, debtID)
	default:
		return service.Receipt{}, fmt.Errorf("receipt: unknown type %q", typ)
	}
}

func (a *app) runRepay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("repay", flag.ExitOnError)
	debtID := fs.Int64("debt", 0, "debt id")
	amount := fs.String("amount", "", "amount in FCFA")
	date := fs.String("date", "", "payment date (YYYY-MM-DD, default today)")
	seller := fs.String("seller", "", "seller name printed on the receipt")
	doPrint := fs.Bool("print", false, "print the repayment receipt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *debtID == 0 || *amount == "" {
		return fmt.Errorf("repay: -debt and -amount are required")
	}
	value, err := decimal.NewFromString(*amount)
	if err != nil {
		return fmt.Errorf("repay: invalid amount %q", *amount)
	}
	when := *date
	if when == "" {
		when = dateutil.Today()
	}

	rep, err := a.debtSvc.RecordRepayment(ctx, entity.CreateRepaymentInput{
		DebtID:      *debtID,
		PaymentDate: when,
		Amount:      value,
		SellerName:  *seller,
	})
	if err != nil {
		return err
	}
	fmt.Printf("repayment %d recorded, receipt %s\n", rep.ID, rep.ReceiptNumber)

	if *doPrint {
		debt, err := a.debts.Get(ctx, *debtID)
		if err != nil {
			return err
		}
		repayments, err := a.debts.ListRepayments(ctx, *debtID)
		if err != nil {
			return err
		}
		return a.receipts.Print(ctx, service.RepaymentReceipt(*rep, debt, repayments))
	}
	return nil
}

func (a *app) runGoals(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("goals", flag.ExitOnError)
	pin := fs.String("pin", "", "shop PIN, required when PIN protection is enabled")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.goals.UnlockView(ctx, service.ViewGoals, *pin); err != nil {
		if errors.Is(err, service.ErrPINRequired) {
			return fmt.Errorf("goals: this view is PIN protected, pass -pin")
		}
		return err
	}

	goals, err := a.goals.List(ctx)
	if err != nil {
		return err
	}
	for _, g := range goals {
		fmt.Printf("%-4d %-10s %-12s %s\n", g.ID, g.Date, g.Status, g.Title)
	}
	return nil
}

func (a *app) runWatch() error {
	a.poller.Start()
	defer a.poller.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("shutting down")
	return nil
}

func (a *app) runBackup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	out := fs.String("out", "", "output path (default <output dir>/backup-<date>.db)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = filepath.Join(a.cfg.Output.Dir, fmt.Sprintf("backup-%s.db", time.Now().Format("2006-01-02")))
	}
	f, err := createOutput(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := a.backups.Download(ctx, f); err != nil {
		return err
	}
	a.log.Info("backup written", zap.String("path", path))
	fmt.Println(path)
	return nil
}

func (a *app) runRestore(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	file := fs.String("file", "", "backup file to restore")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("restore: -file is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := a.backups.Restore(ctx, filepath.Base(*file), f); err != nil {
		return err
	}
	a.log.Info("backup restored", zap.String("file", *file))
	return nil
}

func pageFormat(name string) pdf.Format {
	if name == string(pdf.FormatThermal) {
		return pdf.FormatThermal
	}
	return pdf.FormatA4
}

func createOutput(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}
