// Package render executes layout draw operations into a finished
// document.
package render

import (
	"github.com/dr-data/bolt-generated-invoice-app/internal/invoice/layout"
)

// Renderer turns a laid-out document into its binary representation.
type Renderer interface {
	Render(doc layout.Document) ([]byte, error)
}
