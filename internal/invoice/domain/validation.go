package domain

import (
	"fmt"
	"strings"
)

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError aggregates per-field failures so the form layer can
// report them next to their inputs.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid_invoice"
	}
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "invalid_invoice: " + strings.Join(names, ", ")
}

func (e *ValidationError) add(field, code, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
}

// Validate enforces the export input contract. Fully blank item rows
// are tolerated (the layout engine drops them); partially filled rows
// must be complete.
func Validate(d InvoiceData) error {
	verr := &ValidationError{}

	requireText(verr, "companyName", d.CompanyName)
	requireText(verr, "companyAddress", d.CompanyAddress)
	requireText(verr, "billTo", d.BillTo)
	requireText(verr, "invoiceNumber", d.InvoiceNumber)
	requireText(verr, "paymentTerms", d.PaymentTerms)

	if d.InvoiceDate.IsZero() {
		verr.add("invoiceDate", "required", "invoice date is required")
	}
	if d.DueDate.IsZero() {
		verr.add("dueDate", "required", "due date is required")
	}

	for i, item := range d.Items {
		if item.Blank() {
			continue
		}
		prefix := fmt.Sprintf("items[%d].", i)
		if strings.TrimSpace(item.Description) == "" {
			verr.add(prefix+"description", "required", "item description is required")
		}
		if item.Quantity <= 0 {
			verr.add(prefix+"quantity", "invalid", "quantity must be greater than zero")
		}
		if item.Rate <= 0 {
			verr.add(prefix+"rate", "invalid", "rate must be greater than zero")
		}
	}

	if d.Discount.Amount < 0 {
		verr.add("discount.amount", "invalid", "discount amount must not be negative")
	}
	if d.Tax.Amount < 0 {
		verr.add("tax.amount", "invalid", "tax amount must not be negative")
	}
	if d.Shipping.Amount < 0 {
		verr.add("shipping.amount", "invalid", "shipping amount must not be negative")
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func requireText(verr *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		verr.add(field, "required", field+" is required")
	}
}
