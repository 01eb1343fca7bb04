package pdf

import "fmt"

// Column describes one table column.
type Column struct {
	Header string
	// Weight is the column's relative width; absolute widths are derived
	// proportionally from the total table width.
	Weight float64
	// MaxChars caps cell text length on the thermal template. Zero means
	// no cap; A4 relies on measured clipping instead.
	MaxChars int
	// Align is fpdf alignment: "L", "C" or "R". Empty means left.
	Align string
}

// Table renders rows with automatic page breaks. The break policy is shared
// by every report and receipt: before drawing a row, if the cursor plus one
// row height would cross MaxY, a new page is started, the page header is
// redrawn, and the column header row reappears marked "(continued)". Page
// footers belong to the document (Doc.SetFooter), not to the table, so a
// page holding pieces of several tables still gets one footer.
type Table struct {
	Title   string
	Columns []Column
	// RowHeight in mm. Zero picks a template default.
	RowHeight float64
	// PageHeader, when set, is redrawn at the top of every page the table
	// spills onto.
	PageHeader func(d *Doc)
}

// Widths converts the relative column weights into absolute widths that
// sum to totalWidth.
func Widths(columns []Column, totalWidth float64) []float64 {
	var sum float64
	for _, c := range columns {
		sum += c.Weight
	}
	widths := make([]float64, len(columns))
	if sum <= 0 {
		return widths
	}
	for i, c := range columns {
		widths[i] = c.Weight / sum * totalWidth
	}
	return widths
}

// FitsOnPage reports whether a row of height rowHeight starting at y still
// fits above maxY.
func FitsOnPage(y, rowHeight, maxY float64) bool {
	return y+rowHeight <= maxY
}

// Render draws the table starting at the document's current Y position.
func (t *Table) Render(d *Doc, rows [][]string) {
	rowH := t.RowHeight
	if rowH <= 0 {
		if d.Format() == FormatThermal {
			rowH = 3.2
		} else {
			rowH = 7
		}
	}

	widths := Widths(t.Columns, d.UsableWidth())

	// The title, header row and first data row move to the next page as a
	// block when the cursor is already too low to fit them.
	lead := 2 * rowH
	if t.Title != "" {
		lead += rowH
	}
	if !FitsOnPage(d.F.GetY(), lead, d.MaxY()) {
		d.NextPage()
		if t.PageHeader != nil {
			t.PageHeader(d)
		}
	}

	t.drawTitle(d, rowH, false)
	t.drawHeaderRow(d, widths, rowH)

	for _, row := range rows {
		if !FitsOnPage(d.F.GetY(), rowH, d.MaxY()) {
			d.NextPage()
			if t.PageHeader != nil {
				t.PageHeader(d)
			}
			t.drawTitle(d, rowH, true)
			t.drawHeaderRow(d, widths, rowH)
		}
		t.drawRow(d, widths, rowH, row)
	}
}

func (t *Table) drawTitle(d *Doc, rowH float64, continued bool) {
	if t.Title == "" {
		return
	}
	title := t.Title
	if continued {
		title += " (continued)"
	}
	d.F.SetFont("Helvetica", "B", d.BaseFontSize()+1)
	d.F.SetX(d.Margin())
	d.F.CellFormat(d.UsableWidth(), rowH, title, "", 1, "L", false, 0, "")
}

func (t *Table) drawHeaderRow(d *Doc, widths []float64, rowH float64) {
	d.F.SetFont("Helvetica", "B", d.BaseFontSize())
	d.F.SetFillColor(230, 230, 230)
	d.F.SetX(d.Margin())
	for i, c := range t.Columns {
		d.F.CellFormat(widths[i], rowH, t.cellText(d, c, c.Header, widths[i]), "1", 0, align(c), true, 0, "")
	}
	d.F.Ln(rowH)
}

func (t *Table) drawRow(d *Doc, widths []float64, rowH float64, row []string) {
	d.F.SetFont("Helvetica", "", d.BaseFontSize())
	d.F.SetX(d.Margin())
	for i, c := range t.Columns {
		text := ""
		if i < len(row) {
			text = row[i]
		}
		d.F.CellFormat(widths[i], rowH, t.cellText(d, c, text, widths[i]), "1", 0, align(c), false, 0, "")
	}
	d.F.Ln(rowH)
}

// cellText applies the template's truncation rule: explicit character caps
// on thermal, measured single-line clipping on A4.
func (t *Table) cellText(d *Doc, c Column, text string, w float64) string {
	if d.Format() == FormatThermal && c.MaxChars > 0 {
		runes := []rune(text)
		if len(runes) > c.MaxChars {
			return string(runes[:c.MaxChars])
		}
		return text
	}
	// Leave a hair of padding so borders do not swallow the glyphs.
	return d.ClipLine(text, w-1)
}

func align(c Column) string {
	if c.Align == "" {
		return "L"
	}
	return c.Align
}

// PageFooter draws the standard report footer: a rule and a centered page
// marker inside the reserved strip. Install it with Doc.SetFooter.
func PageFooter(d *Doc, appName string, page int) {
	y := d.MaxY() + 1
	d.F.Line(d.Margin(), y, d.Margin()+d.UsableWidth(), y)
	d.F.SetFont("Helvetica", "I", d.BaseFontSize()-1)
	d.F.SetXY(d.Margin(), y+1)
	d.F.CellFormat(d.UsableWidth(), 4, fmt.Sprintf("%s - page %d", appName, page), "", 0, "C", false, 0, "")
}
