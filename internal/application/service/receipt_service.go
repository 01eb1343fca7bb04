package service

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/pkg/dateutil"
	"github.com/ousmanedev/boutik/pkg/pdf"
	"github.com/ousmanedev/boutik/pkg/printer"
)

// ReceiptType distinguishes the three receipt kinds.
type ReceiptType string

const (
	ReceiptSale      ReceiptType = "Sale"
	ReceiptDebt      ReceiptType = "Debt"
	ReceiptRepayment ReceiptType = "Repayment"
)

// Receipt is a renderable receipt, shaped once and drawn by any of the
// output paths (A4 PDF, 58mm PDF, thermal printer).
type Receipt struct {
	Type       ReceiptType
	Number     string
	Date       string
	ItemName   string
	Pcs        int
	UnitPrice  decimal.Decimal
	Total      decimal.Decimal
	AmountPaid decimal.Decimal
	// BalanceOwed is only meaningful on debt and repayment receipts.
	BalanceOwed decimal.Decimal
	ClientName  string
	SellerName  string
}

// SaleReceipt shapes a receipt from a sale. The number is derived from the
// record id; sales carry no stored receipt number.
func SaleReceipt(sale entity.SaleRecord) Receipt {
	return Receipt{
		Type:       ReceiptSale,
		Number:     fmt.Sprintf("SALE-%06d", sale.ID),
		Date:       dateutil.ExtractYMD(sale.Date),
		ItemName:   sale.Name,
		Pcs:        sale.Pcs,
		UnitPrice:  sale.UnitPrice,
		Total:      sale.TotalPrice,
		AmountPaid: sale.TotalPrice,
		ClientName: sale.ClientName,
		SellerName: sale.SellerName,
	}
}

// DebtReceipt shapes a receipt from a debt.
func DebtReceipt(debt entity.DebtRecord) Receipt {
	return Receipt{
		Type:        ReceiptDebt,
		Number:      fmt.Sprintf("DEBT-%06d", debt.ID),
		Date:        dateutil.ExtractYMD(debt.Date),
		ItemName:    debt.Name,
		Pcs:         debt.Pcs,
		UnitPrice:   debt.UnitPrice,
		Total:       debt.TotalPrice,
		AmountPaid:  debt.AmountPayableNow,
		BalanceOwed: debt.BalanceOwed,
		ClientName:  debt.ClientName,
		SellerName:  debt.SellerName,
	}
}

// RepaymentReceipt shapes a receipt from a repayment. The stored receipt
// number is preferred; records predating numbering fall back to the
// zero-padded id. The remaining balance comes from the debt when provided.
func RepaymentReceipt(rep entity.DebtRepayment, debt *entity.DebtRecord, repayments []entity.DebtRepayment) Receipt {
	number := rep.ReceiptNumber
	if number == "" {
		number = fmt.Sprintf("%06d", rep.ID)
	}
	r := Receipt{
		Type:       ReceiptRepayment,
		Number:     number,
		Date:       dateutil.ExtractYMD(rep.PaymentDate),
		ItemName:   rep.ItemName,
		AmountPaid: rep.Amount,
		SellerName: rep.SellerName,
	}
	if debt != nil {
		r.ClientName = debt.ClientName
		r.Total = debt.TotalPrice
		r.BalanceOwed = OutstandingBalance(debt, repayments)
	}
	return r
}

var customerToken = regexp.MustCompile(`(?i)\{customer\}`)

// RenderItemsReceivedMessage substitutes the client name into the
// configured template. The {customer} token matches case-insensitively;
// an empty client name substitutes "Customer".
func RenderItemsReceivedMessage(template, clientName string) string {
	if strings.TrimSpace(template) == "" {
		return ""
	}
	name := strings.TrimSpace(clientName)
	if name == "" {
		name = "Customer"
	}
	return customerToken.ReplaceAllString(template, name)
}

// ReceiptService renders receipts as PDFs and sends them to the thermal
// printer. PDF output always works; the printer path is best-effort and
// depends on configured hardware.
type ReceiptService struct {
	settings *SettingsService
	currency *CurrencyService
	device   printer.Printer
	logger   *zap.Logger
	// fetch retrieves the configured logo; swappable in tests.
	fetch *http.Client
}

// NewReceiptService creates a new receipt service. A nil device disables
// the thermal print path.
func NewReceiptService(settings *SettingsService, currency *CurrencyService, device printer.Printer, logger *zap.Logger) *ReceiptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if device == nil {
		device = printer.NewNullPrinter()
	}
	return &ReceiptService{
		settings: settings,
		currency: currency,
		device:   device,
		logger:   logger,
		fetch:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Filename builds the receipt download name:
// {appName}-{Type}-{number}-{date}.pdf with spaces dashed out.
func (s *ReceiptService) Filename(ctx context.Context, r Receipt) string {
	cfg := s.settings.Get(ctx)
	app := strings.ReplaceAll(strings.TrimSpace(cfg.AppName), " ", "-")
	if app == "" {
		app = "Boutik"
	}
	name := fmt.Sprintf("%s-%s-%s", app, r.Type, r.Number)
	if r.Date != "" {
		name += "-" + r.Date
	}
	return name + ".pdf"
}

// RenderPDF draws the receipt on the requested template and writes the PDF.
func (s *ReceiptService) RenderPDF(ctx context.Context, r Receipt, format pdf.Format, w io.Writer) error {
	doc := pdf.NewDoc(format)
	cfg := s.settings.Get(ctx)
	f := doc.F

	line := doc.BaseFontSize() / 2
	if format == pdf.FormatThermal {
		line = doc.BaseFontSize()*0.5 + 1
	}

	f.SetXY(doc.Margin(), doc.Margin())
	s.embedLogo(ctx, doc, cfg.LogoURL)
	f.SetFont("Helvetica", "B", doc.TitleFontSize())
	f.SetX(doc.Margin())
	f.CellFormat(doc.UsableWidth(), doc.TitleFontSize()/2, cfg.AppName, "", 1, "C", false, 0, "")
	f.SetFont("Helvetica", "", doc.BaseFontSize())
	if cfg.Location != "" {
		f.SetX(doc.Margin())
		f.CellFormat(doc.UsableWidth(), line, cfg.Location, "", 1, "C", false, 0, "")
	}
	f.SetX(doc.Margin())
	f.CellFormat(doc.UsableWidth(), line, string(r.Type)+" Receipt", "", 1, "C", false, 0, "")
	f.SetX(doc.Margin())
	f.CellFormat(doc.UsableWidth(), line, "No "+r.Number+"  "+r.Date, "", 1, "C", false, 0, "")
	f.Ln(line)

	kv := func(key string, value string) {
		if value == "" {
			return
		}
		f.SetX(doc.Margin())
		f.SetFont("Helvetica", "B", doc.BaseFontSize())
		f.CellFormat(doc.UsableWidth()*0.45, line, key, "", 0, "L", false, 0, "")
		f.SetFont("Helvetica", "", doc.BaseFontSize())
		f.CellFormat(doc.UsableWidth()*0.55, line, doc.ClipLine(value, doc.UsableWidth()*0.55), "", 1, "R", false, 0, "")
	}

	money := func(v decimal.Decimal) string {
		return s.currency.Format(ctx, v, FormatOptions{MaxFractionDigits: 2})
	}

	kv("Item", r.ItemName)
	if r.Pcs > 0 {
		kv("Quantity", fmt.Sprintf("%d", r.Pcs))
		kv("Unit price", money(r.UnitPrice))
	}
	if r.Total.IsPositive() {
		kv("Total", money(r.Total))
	}
	kv("Amount paid", money(r.AmountPaid))
	if r.Type != ReceiptSale {
		kv("Balance owed", money(r.BalanceOwed))
	}
	kv("Client", r.ClientName)
	kv("Served by", r.SellerName)
	f.Ln(line)

	if msg := RenderItemsReceivedMessage(cfg.ReceiptItemsReceivedMessage, r.ClientName); msg != "" {
		s.wrapped(doc, msg, line)
	}
	for _, item := range cfg.Items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		s.wrapped(doc, "- "+item, line)
	}
	if cfg.ReceiptThankYouMessage != "" {
		f.Ln(line / 2)
		f.SetFont("Helvetica", "I", doc.BaseFontSize())
		f.SetX(doc.Margin())
		f.CellFormat(doc.UsableWidth(), line, doc.ClipLine(cfg.ReceiptThankYouMessage, doc.UsableWidth()), "", 1, "C", false, 0, "")
	}

	s.embedBarcode(doc, r.Number, line)
	return doc.Output(w)
}

func (s *ReceiptService) wrapped(doc *pdf.Doc, text string, line float64) {
	f := doc.F
	f.SetFont("Helvetica", "", doc.BaseFontSize())
	for _, part := range f.SplitText(text, doc.UsableWidth()) {
		f.SetX(doc.Margin())
		f.CellFormat(doc.UsableWidth(), line, part, "", 1, "L", false, 0, "")
	}
}

// embedLogo draws the configured shop logo centered above the header. Any
// failure is logged and skipped: a receipt without a logo is still a valid
// receipt.
func (s *ReceiptService) embedLogo(ctx context.Context, doc *pdf.Doc, logoURL string) {
	if logoURL == "" {
		return
	}
	imageType := ""
	switch {
	case strings.HasSuffix(strings.ToLower(logoURL), ".png"):
		imageType = "PNG"
	case strings.HasSuffix(strings.ToLower(logoURL), ".jpg"),
		strings.HasSuffix(strings.ToLower(logoURL), ".jpeg"):
		imageType = "JPG"
	default:
		s.logger.Warn("unsupported logo format, skipping", zap.String("url", logoURL))
		return
	}

	data, err := s.loadLogo(ctx, logoURL)
	if err != nil {
		s.logger.Warn("logo load failed, skipping", zap.String("url", logoURL), zap.Error(err))
		return
	}

	f := doc.F
	opts := fpdf.ImageOptions{ImageType: imageType}
	f.RegisterImageOptionsReader("shop-logo", opts, bytes.NewReader(data))
	if f.Err() {
		s.logger.Warn("logo embed failed, skipping", zap.String("url", logoURL))
		f.ClearError()
		return
	}

	w := doc.UsableWidth() * 0.3
	x := doc.Margin() + (doc.UsableWidth()-w)/2
	f.ImageOptions("shop-logo", x, f.GetY(), w, 0, false, opts, 0, "")
	info := f.GetImageInfo("shop-logo")
	if info != nil && info.Width() > 0 {
		f.SetY(f.GetY() + w*info.Height()/info.Width() + 1)
	}
}

func (s *ReceiptService) loadLogo(ctx context.Context, logoURL string) ([]byte, error) {
	if strings.HasPrefix(logoURL, "http://") || strings.HasPrefix(logoURL, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, logoURL, nil)
		if err != nil {
			return nil, err
		}
		resp, err := s.fetch.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("logo fetch returned status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(logoURL)
}

// embedBarcode draws a CODE128 barcode for the receipt number. Any encoding
// failure is logged and skipped: a receipt without a barcode is still a
// valid receipt.
func (s *ReceiptService) embedBarcode(doc *pdf.Doc, number string, line float64) {
	if number == "" {
		return
	}
	code, err := code128.Encode(number)
	if err != nil {
		s.logger.Warn("barcode encode failed", zap.String("number", number), zap.Error(err))
		return
	}
	scaled, err := barcode.Scale(code, 400, 80)
	if err != nil {
		s.logger.Warn("barcode scale failed", zap.String("number", number), zap.Error(err))
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		s.logger.Warn("barcode render failed", zap.String("number", number), zap.Error(err))
		return
	}

	f := doc.F
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	name := "barcode-" + number
	f.RegisterImageOptionsReader(name, opts, &buf)

	w := doc.UsableWidth() * 0.6
	h := w / 5
	x := doc.Margin() + (doc.UsableWidth()-w)/2
	f.Ln(line)
	f.ImageOptions(name, x, f.GetY(), w, h, false, opts, 0, "")
	f.SetY(f.GetY() + h)
	f.SetFont("Helvetica", "", doc.BaseFontSize()-1)
	f.SetX(doc.Margin())
	f.CellFormat(doc.UsableWidth(), line, number, "", 1, "C", false, 0, "")
}

// BuildThermal builds the ESC/POS byte stream for a receipt.
func (s *ReceiptService) BuildThermal(ctx context.Context, r Receipt) []byte {
	cfg := s.settings.Get(ctx)
	money := func(v decimal.Decimal) string {
		return s.currency.Format(ctx, v, FormatOptions{MaxFractionDigits: 0, HideSymbol: true})
	}

	d := printer.NewDocument(32)
	d.SetAlign(printer.AlignCenter).
		SetBold(true).SetFontSize(printer.FontDouble).
		Text(cfg.AppName).
		SetFontSize(printer.FontNormal).SetBold(false)
	if cfg.Location != "" {
		d.Text(cfg.Location)
	}
	d.Text(string(r.Type) + " Receipt").
		Text("No " + r.Number).
		Text(r.Date).
		SetAlign(printer.AlignLeft).
		Separator('-')

	if r.Pcs > 0 {
		d.ItemLine(r.Pcs, r.ItemName, money(r.Total))
	} else if r.ItemName != "" {
		d.KeyValue("Item", r.ItemName)
	}
	d.KeyValue("Paid", money(r.AmountPaid))
	if r.Type != ReceiptSale {
		d.KeyValue("Balance owed", money(r.BalanceOwed))
	}
	if r.ClientName != "" {
		d.KeyValue("Client", r.ClientName)
	}
	if r.SellerName != "" {
		d.KeyValue("Served by", r.SellerName)
	}
	d.Separator('-')

	if msg := RenderItemsReceivedMessage(cfg.ReceiptItemsReceivedMessage, r.ClientName); msg != "" {
		d.Text(msg)
	}
	for _, item := range cfg.Items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		d.Text("- " + item)
	}
	if cfg.ReceiptThankYouMessage != "" {
		d.SetAlign(printer.AlignCenter).Text(cfg.ReceiptThankYouMessage)
	}

	d.SetAlign(printer.AlignCenter).
		LineFeed().
		Barcode(r.Number).
		FeedLines(3).
		Cut()
	return d.Bytes()
}

// Print sends the receipt to the configured thermal printer.
func (s *ReceiptService) Print(ctx context.Context, r Receipt) error {
	data := s.BuildThermal(ctx, r)
	if err := s.device.Print(data); err != nil {
		s.logger.Error("thermal print failed", zap.String("number", r.Number), zap.Error(err))
		return err
	}
	s.logger.Info("receipt printed", zap.String("number", r.Number), zap.String("type", string(r.Type)))
	return nil
}
