// Package layout turns invoice data and computed totals into an
// ordered sequence of positioned drawing instructions for a single A4
// portrait page. It is pure: same input, same ops, no I/O.
package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dr-data/bolt-generated-invoice-app/internal/invoice/domain"
	"github.com/dr-data/bolt-generated-invoice-app/internal/totals"
)

// Page geometry in millimetres.
const (
	PageWidth  = 210.0
	PageHeight = 297.0
	MarginLeft = 25.0

	rightEdge = PageWidth - 20

	// LogoBox is the square the logo is scaled into, anchored top-left.
	LogoBox = 40.0
	logoX   = MarginLeft
	logoY   = 12.0

	titleY       = 20.0
	numberY      = 27.0
	companyTop   = 40.0
	metaTop      = 45.0
	metaStep     = 5.0
	lineStep     = 4.0
	headingGap   = 6.0
	blockGap     = 10.0
	totalGap     = 6.0
	sectionBlock = 20.0

	tableRowHeight = 8.0
	qtyColWidth    = 20.0
	rateColWidth   = 27.0
	amountColWidth = 28.0

	metaLabelX = 160.0
)

var (
	tableHeaderFill = RGB{R: 41, G: 37, B: 36}
	tableHeaderText = RGB{R: 250, G: 250, B: 249}
)

// Logo is a decoded logo image ready for embedding: re-encoded PNG
// bytes plus the intrinsic pixel size used for aspect-ratio fitting.
type Logo struct {
	PNG    []byte
	Width  int
	Height int
}

// Input is everything one layout pass consumes. Totals are computed by
// the caller from the same invoice; the engine never recomputes them.
type Input struct {
	Invoice domain.InvoiceData
	Totals  totals.Breakdown
	Labels  domain.LabelSet
	Logo    *Logo
}

// FitBox scales (w, h) to fit a maxW×maxH box preserving aspect ratio.
func FitBox(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	scale := maxW / w
	if s := maxH / h; s < scale {
		scale = s
	}
	return w * scale, h * scale
}

// Build runs the layout pass and returns the ordered draw operations.
func Build(in Input) Document {
	b := &builder{in: in}
	b.run()
	return Document{Width: PageWidth, Height: PageHeight, Ops: b.ops}
}

type builder struct {
	in  Input
	ops []Op
}

func (b *builder) emit(op Op) { b.ops = append(b.ops, op) }

func (b *builder) money(v float64) string {
	return fmt.Sprintf("%s%.2f", b.in.Invoice.Currency.Symbol, v)
}

func (b *builder) label(key string) string { return b.in.Labels.Get(key) }

func (b *builder) run() {
	b.logo()
	b.title()
	leftEnd := b.companyBlock()
	metaEnd := b.metaBlock()
	leftEnd = b.billToBlock(leftEnd)

	cursor := leftEnd
	if metaEnd > cursor {
		cursor = metaEnd
	}
	cursor = b.table(cursor + blockGap)
	cursor = b.totalsBlock(cursor + blockGap)
	b.sections(cursor + blockGap)
}

// Rule 1: optional logo, fitted into a fixed top-left box.
func (b *builder) logo() {
	if b.in.Logo == nil {
		return
	}
	w, h := FitBox(float64(b.in.Logo.Width), float64(b.in.Logo.Height), LogoBox, LogoBox)
	b.emit(ImageOp{X: logoX, Y: logoY, Width: w, Height: h, PNG: b.in.Logo.PNG})
}

// Rule 2: title and invoice number, right-aligned near the top-right.
func (b *builder) title() {
	b.emit(TextOp{X: rightEdge, Y: titleY, Text: b.label(domain.LabelTitle), Size: 20, Align: AlignRight})
	b.emit(TextOp{X: rightEdge, Y: numberY, Text: "# " + b.in.Invoice.InvoiceNumber, Size: 10, Align: AlignRight})
}

// Rule 3: company name and address, left-aligned below the title row.
func (b *builder) companyBlock() float64 {
	y := companyTop
	b.emit(TextOp{X: MarginLeft, Y: y, Text: b.in.Invoice.CompanyName, Size: 10, Bold: true, Align: AlignLeft})
	for _, line := range splitLines(b.in.Invoice.CompanyAddress) {
		y += lineStep
		b.emit(TextOp{X: MarginLeft, Y: y, Text: line, Size: 10, Align: AlignLeft})
	}
	return y
}

// Rule 4: right-aligned label/value rows ending in a bold balance due.
func (b *builder) metaBlock() float64 {
	inv := b.in.Invoice
	rows := []struct {
		label string
		value string
		bold  bool
	}{
		{b.label(domain.LabelDate), inv.InvoiceDate.String(), false},
		{b.label(domain.LabelPaymentTerms), inv.PaymentTerms, false},
		{b.label(domain.LabelDueDate), inv.DueDate.String(), false},
		{b.label(domain.LabelBalanceDue), b.money(b.in.Totals.Total), true},
	}

	y := metaTop
	for i, row := range rows {
		if i > 0 {
			y += metaStep
		}
		b.emit(TextOp{X: metaLabelX, Y: y, Text: row.label + ":", Size: 10, Bold: row.bold, Align: AlignRight})
		b.emit(TextOp{X: rightEdge, Y: y, Text: row.value, Size: 10, Bold: row.bold, Align: AlignRight})
	}
	return y
}

// Rule 5: Bill To block, only when the text is non-empty.
func (b *builder) billToBlock(leftEnd float64) float64 {
	lines := splitLines(b.in.Invoice.BillTo)
	if len(lines) == 0 {
		return leftEnd
	}
	y := leftEnd + blockGap
	b.emit(TextOp{X: MarginLeft, Y: y, Text: b.label(domain.LabelBillTo), Size: 10, Bold: true, Align: AlignLeft})
	y += headingGap
	for i, line := range lines {
		if i > 0 {
			y += lineStep
		}
		b.emit(TextOp{X: MarginLeft, Y: y, Text: line, Size: 10, Align: AlignLeft})
	}
	return y
}

// Rule 6: line-item table; fully blank rows are excluded and an empty
// table is not emitted at all.
func (b *builder) table(top float64) float64 {
	var rows [][]string
	for _, item := range b.in.Invoice.Items {
		if item.Blank() {
			continue
		}
		rows = append(rows, []string{
			item.Description,
			formatQuantity(item.Quantity),
			b.money(item.Rate),
			b.money(item.Amount()),
		})
	}
	if len(rows) == 0 {
		return top - blockGap
	}

	tableWidth := rightEdge - MarginLeft
	descWidth := tableWidth - qtyColWidth - rateColWidth - amountColWidth
	b.emit(TableOp{
		X:         MarginLeft,
		Y:         top,
		RowHeight: tableRowHeight,
		Columns: []Column{
			{Title: b.label(domain.LabelItem), Width: descWidth, Align: AlignLeft},
			{Title: b.label(domain.LabelQuantity), Width: qtyColWidth, Align: AlignRight},
			{Title: b.label(domain.LabelRate), Width: rateColWidth, Align: AlignRight},
			{Title: b.label(domain.LabelAmount), Width: amountColWidth, Align: AlignRight},
		},
		Rows:       rows,
		HeaderFill: tableHeaderFill,
		HeaderText: tableHeaderText,
	})
	return top + tableRowHeight*float64(len(rows)+1)
}

// Rule 7: totals block. Subtotal and total always; the adjustment lines
// only when they contribute.
func (b *builder) totalsBlock(top float64) float64 {
	t := b.in.Totals
	inv := b.in.Invoice

	y := top
	b.totalsLine(y, b.label(domain.LabelSubtotal), b.money(t.Subtotal), false)
	if t.Discount > 0 {
		y += lineStep
		b.totalsLine(y, b.label(domain.LabelDiscount), b.money(t.Discount), false)
	}
	if inv.Tax.Enabled && t.Tax > 0 {
		y += lineStep
		b.totalsLine(y, b.label(domain.LabelTax), b.money(t.Tax), false)
	}
	if inv.Shipping.Enabled && inv.Shipping.Amount > 0 {
		y += lineStep
		b.totalsLine(y, b.label(domain.LabelShipping), b.money(t.Shipping), false)
	}
	y += totalGap
	b.totalsLine(y, b.label(domain.LabelTotal), b.money(t.Total), true)
	return y
}

func (b *builder) totalsLine(y float64, label, value string, bold bool) {
	b.emit(TextOp{X: metaLabelX, Y: y, Text: label + ":", Size: 10, Bold: bold, Align: AlignRight})
	b.emit(TextOp{X: rightEdge, Y: y, Text: value, Size: 10, Bold: bold, Align: AlignRight})
}

// Rule 8: free-text sections in fixed order, each advancing the cursor
// by a fixed block height.
func (b *builder) sections(top float64) {
	inv := b.in.Invoice
	sections := []struct {
		labelKey string
		text     string
	}{
		{domain.LabelNotes, inv.Notes},
		{domain.LabelTerms, inv.Terms},
		{domain.LabelPaymentDetails, inv.PaymentDetails},
	}

	y := top
	for _, s := range sections {
		lines := splitLines(s.text)
		if len(lines) == 0 {
			continue
		}
		b.emit(TextOp{X: MarginLeft, Y: y, Text: b.label(s.labelKey), Size: 10, Bold: true, Align: AlignLeft})
		lineY := y + headingGap
		for i, line := range lines {
			if i > 0 {
				lineY += lineStep
			}
			b.emit(TextOp{X: MarginLeft, Y: lineY, Text: line, Size: 9, Align: AlignLeft})
		}
		y += sectionBlock
	}
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func splitLines(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(trimmed, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, strings.TrimRight(line, " \t"))
	}
	return lines
}
