// Package pdf implements the two physical page templates every report and
// receipt is rendered on: A4 (210x297mm) and a 58mm thermal roll. All
// drawing is black and white.
package pdf

import (
	"io"

	"github.com/go-pdf/fpdf"
)

// Format selects the physical page template.
type Format string

const (
	// FormatA4 is the normal-printer template, 210x297mm portrait.
	FormatA4 Format = "a4"
	// FormatThermal is the small-printer template, a 58x297mm roll that
	// grows by whole continuation pages when content overflows.
	FormatThermal Format = "thermal"
)

// ThermalWidth and ThermalHeight are the roll page dimensions in mm.
const (
	ThermalWidth  = 58.0
	ThermalHeight = 297.0
)

// Doc wraps an fpdf document configured for one of the two templates.
// Page breaks are managed by the table renderer, not by fpdf.
type Doc struct {
	F      *fpdf.Fpdf
	format Format

	pageW, pageH  float64
	margin        float64
	footerReserve float64

	footer    func(d *Doc, page int)
	finalized bool
}

// NewDoc creates a document on the requested template.
func NewDoc(format Format) *Doc {
	d := &Doc{format: format}

	switch format {
	case FormatThermal:
		d.F = fpdf.NewCustom(&fpdf.InitType{
			OrientationStr: "P",
			UnitStr:        "mm",
			Size:           fpdf.SizeType{Wd: ThermalWidth, Ht: ThermalHeight},
		})
		d.pageW, d.pageH = ThermalWidth, ThermalHeight
		d.margin = 2
		d.footerReserve = 6
	default:
		d.F = fpdf.New("P", "mm", "A4", "")
		d.pageW, d.pageH = 210, 297
		d.margin = 12
		d.footerReserve = 14
	}

	d.F.SetMargins(d.margin, d.margin, d.margin)
	d.F.SetAutoPageBreak(false, 0)
	d.F.SetDrawColor(0, 0, 0)
	d.F.SetTextColor(0, 0, 0)
	d.F.AddPage()
	return d
}

// Format returns the template the document was created on.
func (d *Doc) Format() Format { return d.format }

// Margin returns the page margin in mm.
func (d *Doc) Margin() float64 { return d.margin }

// UsableWidth returns the printable width between margins.
func (d *Doc) UsableWidth() float64 { return d.pageW - 2*d.margin }

// MaxY returns the vertical cursor limit: past it a page break is due.
func (d *Doc) MaxY() float64 { return d.pageH - d.margin - d.footerReserve }

// BaseFontSize returns the body font size: thermal runs at a third of A4.
func (d *Doc) BaseFontSize() float64 {
	if d.format == FormatThermal {
		return 3
	}
	return 9
}

// TitleFontSize returns the heading font size for the template.
func (d *Doc) TitleFontSize() float64 {
	if d.format == FormatThermal {
		return 4.5
	}
	return 14
}

// SetFooter installs the footer drawn in the reserved strip of every
// finished page. It receives the document page number. A page finishes on
// page break and, for the last one, when the document is written out, so
// the footer appears exactly once per page no matter how many tables the
// page holds.
func (d *Doc) SetFooter(fn func(d *Doc, page int)) {
	d.footer = fn
}

func (d *Doc) finishPage() {
	if d.footer != nil {
		d.footer(d, d.F.PageNo())
	}
}

func (d *Doc) finalize() {
	if d.finalized {
		return
	}
	d.finalized = true
	d.finishPage()
}

// NextPage finishes the current page and starts a new one on the same
// template, resetting the cursor to the top margin.
func (d *Doc) NextPage() {
	d.finishPage()
	if d.format == FormatThermal {
		d.F.AddPageFormat("P", fpdf.SizeType{Wd: ThermalWidth, Ht: ThermalHeight})
	} else {
		d.F.AddPage()
	}
	d.F.SetXY(d.margin, d.margin)
}

// ClipLine reduces text to what fits on a single line of width w, in the
// currently selected font. Overflow is truncated, never wrapped: rows keep
// a fixed height.
func (d *Doc) ClipLine(text string, w float64) string {
	if text == "" {
		return ""
	}
	lines := d.F.SplitText(text, w)
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

// Output finishes the last page and writes the PDF.
func (d *Doc) Output(w io.Writer) error {
	d.finalize()
	return d.F.Output(w)
}

// Save finishes the last page, writes the PDF to a file and closes the
// document.
func (d *Doc) Save(path string) error {
	d.finalize()
	return d.F.OutputFileAndClose(path)
}
