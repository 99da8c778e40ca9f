package domain

// Label keys understood by the layout engine. Every on-document label
// can be renamed by the user through a LabelSet override.
const (
	LabelTitle          = "title"
	LabelBillTo         = "billTo"
	LabelDate           = "date"
	LabelPaymentTerms   = "paymentTerms"
	LabelDueDate        = "dueDate"
	LabelBalanceDue     = "balanceDue"
	LabelItem           = "item"
	LabelQuantity       = "quantity"
	LabelRate           = "rate"
	LabelAmount         = "amount"
	LabelSubtotal       = "subtotalLabel"
	LabelDiscount       = "discountLabel"
	LabelTax            = "taxLabel"
	LabelShipping       = "shippingLabel"
	LabelTotal          = "totalLabel"
	LabelNotes          = "notes"
	LabelTerms          = "terms"
	LabelPaymentDetails = "paymentDetails"
)

// LabelSet maps label keys to display text. Missing keys fall back to
// the defaults, so a client only sends the labels it renamed.
type LabelSet map[string]string

var defaultLabels = LabelSet{
	LabelTitle:          "INVOICE",
	LabelBillTo:         "Bill To",
	LabelDate:           "Date",
	LabelPaymentTerms:   "Payment Terms",
	LabelDueDate:        "Due Date",
	LabelBalanceDue:     "Balance Due",
	LabelItem:           "Item",
	LabelQuantity:       "Quantity",
	LabelRate:           "Rate",
	LabelAmount:         "Amount",
	LabelSubtotal:       "Subtotal",
	LabelDiscount:       "Discount",
	LabelTax:            "Tax",
	LabelShipping:       "Shipping",
	LabelTotal:          "Total",
	LabelNotes:          "Notes",
	LabelTerms:          "Terms",
	LabelPaymentDetails: "Payment Details",
}

// DefaultLabels returns a copy of the default label table.
func DefaultLabels() LabelSet {
	out := make(LabelSet, len(defaultLabels))
	for k, v := range defaultLabels {
		out[k] = v
	}
	return out
}

// Get resolves a label key, falling back to the default text for
// unknown or empty overrides.
func (ls LabelSet) Get(key string) string {
	if ls != nil {
		if v, ok := ls[key]; ok && v != "" {
			return v
		}
	}
	return defaultLabels[key]
}
