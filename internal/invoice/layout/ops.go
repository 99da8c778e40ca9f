package layout

// Align positions a text run relative to its anchor X.
type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// RGB is a plain 8-bit color triple.
type RGB struct {
	R, G, B int
}

// Op is one positioned drawing instruction. Executing the ops of a
// Document in order reproduces the page exactly.
type Op interface {
	isOp()
}

// TextOp places a single text run.
type TextOp struct {
	X, Y  float64
	Text  string
	Size  float64
	Bold  bool
	Align Align
}

func (TextOp) isOp() {}

// ImageOp places an already-encoded PNG image.
type ImageOp struct {
	X, Y          float64
	Width, Height float64
	PNG           []byte
}

func (ImageOp) isOp() {}

// Column describes one table column.
type Column struct {
	Title string
	Width float64
	Align Align
}

// TableOp draws the line-item table: a filled header row followed by
// the data rows, all with a fixed row height.
type TableOp struct {
	X, Y       float64
	RowHeight  float64
	Columns    []Column
	Rows       [][]string
	HeaderFill RGB
	HeaderText RGB
}

func (TableOp) isOp() {}

// Document is the ordered result of a layout pass for one fixed-size
// portrait page.
type Document struct {
	Width  float64
	Height float64
	Ops    []Op
}
