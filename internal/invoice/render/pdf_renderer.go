package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/dr-data/bolt-generated-invoice-app/internal/invoice/layout"
)

const fontFamily = "Helvetica"

// PDFRenderer draws layout ops onto a single A4 portrait page.
type PDFRenderer struct{}

// NewRenderer constructs the PDF renderer.
func NewRenderer() Renderer { return &PDFRenderer{} }

// Render executes the ops in order and returns the PDF bytes. A
// failure anywhere (malformed image, font issue) fails the whole
// export; no partial document is returned.
func (r *PDFRenderer) Render(doc layout.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	// Core fonts are cp1252; currency symbols need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	imageCount := 0
	for _, op := range doc.Ops {
		switch op := op.(type) {
		case layout.TextOp:
			drawText(pdf, tr, op)
		case layout.ImageOp:
			imageCount++
			drawImage(pdf, op, fmt.Sprintf("img-%d", imageCount))
		case layout.TableOp:
			drawTable(pdf, tr, op)
		default:
			return nil, fmt.Errorf("render: unknown op %T", op)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}

func drawText(pdf *gofpdf.Fpdf, tr func(string) string, op layout.TextOp) {
	pdf.SetFont(fontFamily, fontStyle(op.Bold), op.Size)
	pdf.SetTextColor(0, 0, 0)
	text := tr(op.Text)
	x := op.X
	if op.Align == layout.AlignRight {
		x -= pdf.GetStringWidth(text)
	}
	pdf.Text(x, op.Y, text)
}

func drawImage(pdf *gofpdf.Fpdf, op layout.ImageOp, name string) {
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(op.PNG))
	pdf.ImageOptions(name, op.X, op.Y, op.Width, op.Height, false, opts, 0, "")
}

func drawTable(pdf *gofpdf.Fpdf, tr func(string) string, op layout.TableOp) {
	pdf.SetXY(op.X, op.Y)
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(op.HeaderFill.R, op.HeaderFill.G, op.HeaderFill.B)
	pdf.SetTextColor(op.HeaderText.R, op.HeaderText.G, op.HeaderText.B)
	for _, col := range op.Columns {
		pdf.CellFormat(col.Width, op.RowHeight, tr(col.Title), "", 0, cellAlign(col.Align), true, 0, "")
	}
	pdf.Ln(op.RowHeight)

	pdf.SetFont(fontFamily, "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range op.Rows {
		pdf.SetX(op.X)
		for i, col := range op.Columns {
			var cell string
			if i < len(row) {
				cell = tr(row[i])
			}
			pdf.CellFormat(col.Width, op.RowHeight, cell, "B", 0, cellAlign(col.Align), false, 0, "")
		}
		pdf.Ln(op.RowHeight)
	}
}

func cellAlign(a layout.Align) string {
	if a == layout.AlignRight {
		return "R"
	}
	return "L"
}
