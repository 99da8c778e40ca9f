package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"

	"github.com/dr-data/bolt-generated-invoice-app/internal/totals"
)

// LineItem is one billable row of an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
}

// Amount is the derived line total. It is never stored.
func (li LineItem) Amount() float64 { return li.Quantity * li.Rate }

// Blank reports whether the row carries no data at all. Blank rows are
// tolerated in the input and excluded from both the rendered table and
// validation.
func (li LineItem) Blank() bool {
	return strings.TrimSpace(li.Description) == "" && li.Quantity == 0 && li.Rate == 0
}

// Currency identifies the display currency. It is presentation-only;
// no arithmetic conversion happens anywhere.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// InvoiceData is the complete, validated input for a single export.
// It is treated as immutable once handed to the layout engine.
type InvoiceData struct {
	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	BillTo         string `json:"billTo"`
	InvoiceNumber  string `json:"invoiceNumber"`
	InvoiceDate    Date   `json:"invoiceDate"`
	PaymentTerms   string `json:"paymentTerms"`
	DueDate        Date   `json:"dueDate"`

	Items []LineItem `json:"items"`

	Notes          string `json:"notes"`
	Terms          string `json:"terms"`
	PaymentDetails string `json:"paymentDetails"`

	Discount totals.Adjustment `json:"discount"`
	Tax      totals.Optional   `json:"tax"`
	Shipping totals.Optional   `json:"shipping"`

	Currency Currency `json:"currency"`
}

// Lines converts the items into totals-engine lines.
func (d InvoiceData) Lines() []totals.Line {
	lines := make([]totals.Line, 0, len(d.Items))
	for _, item := range d.Items {
		lines = append(lines, totals.Line{Quantity: item.Quantity, Rate: item.Rate})
	}
	return lines
}

// Breakdown recomputes the full totals breakdown from current state.
func (d InvoiceData) Breakdown() totals.Breakdown {
	return totals.Compute(d.Lines(), d.Discount, d.Tax, d.Shipping)
}

// InvoiceRecord is the persisted history entry appended after a
// successful export. The flat columns cover listing and lookup; Data
// keeps the complete invoice input so a past export can be reproduced.
type InvoiceRecord struct {
	ID            snowflake.ID   `gorm:"primaryKey" json:"id"`
	InvoiceNumber string         `gorm:"type:text;not null;index" json:"invoiceNumber"`
	CompanyName   string         `gorm:"type:text;not null" json:"companyName"`
	BillTo        string         `gorm:"type:text;not null" json:"billTo"`
	InvoiceDate   time.Time      `gorm:"not null" json:"invoiceDate"`
	DueDate       time.Time      `gorm:"not null" json:"dueDate"`
	Total         float64        `gorm:"not null" json:"total"`
	CurrencyCode  string         `gorm:"type:text;not null" json:"currencyCode"`
	Data          datatypes.JSON `gorm:"not null" json:"data"`
	CreatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// TableName sets the database table name.
func (InvoiceRecord) TableName() string { return "invoices" }

// Invoice decodes the full invoice input stored with the record.
func (r InvoiceRecord) Invoice() (InvoiceData, error) {
	var d InvoiceData
	if err := json.Unmarshal(r.Data, &d); err != nil {
		return InvoiceData{}, fmt.Errorf("decode invoice record %d: %w", r.ID, err)
	}
	return d, nil
}
