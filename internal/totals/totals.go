// Package totals computes invoice money breakdowns. It is a pure leaf
// package: no I/O, no rounding, no state. Formatting to two decimal
// places happens at render time, never here.
package totals

// AdjustmentKind selects how an adjustment amount is interpreted.
type AdjustmentKind string

const (
	// KindPercentage applies the amount as a percentage of its base.
	KindPercentage AdjustmentKind = "percentage"
	// KindFixed applies the amount verbatim.
	KindFixed AdjustmentKind = "fixed"
)

// Line is the minimal billable row used for totals computation.
type Line struct {
	Quantity float64
	Rate     float64
}

// Adjustment is a discount, tax, or shipping modifier.
type Adjustment struct {
	Kind   AdjustmentKind `json:"kind"`
	Amount float64        `json:"amount"`
}

// Optional is an adjustment that can be switched off entirely. A
// disabled adjustment contributes zero regardless of its stored amount.
type Optional struct {
	Adjustment
	Enabled bool `json:"enabled"`
}

// Breakdown aggregates every computed component of an invoice total.
type Breakdown struct {
	Subtotal float64
	Discount float64
	Tax      float64
	Shipping float64
	Total    float64
}

// Subtotal sums quantity×rate over all lines. Zero or blank lines
// contribute zero; no filtering is applied.
func Subtotal(lines []Line) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Quantity * l.Rate
	}
	return sum
}

// DiscountAmount resolves a discount against the subtotal. Fixed
// discounts are taken verbatim and are deliberately not capped at the
// subtotal, so a large discount can drive the total negative.
func DiscountAmount(subtotal float64, discount Adjustment) float64 {
	if discount.Kind == KindPercentage {
		return subtotal * discount.Amount / 100
	}
	return discount.Amount
}

// TaxAmount resolves tax against the taxable base (subtotal minus
// discount). Disabled tax contributes zero.
func TaxAmount(subtotal, discountAmount float64, tax Optional) float64 {
	if !tax.Enabled {
		return 0
	}
	base := subtotal - discountAmount
	if tax.Kind == KindPercentage {
		return base * tax.Amount / 100
	}
	return tax.Amount
}

// Total combines the computed components with the shipping adjustment.
func Total(subtotal, discountAmount, taxAmount float64, shipping Optional) float64 {
	total := subtotal - discountAmount + taxAmount
	if shipping.Enabled {
		total += shipping.Amount
	}
	return total
}

// Compute derives the full breakdown in one pass. Each call recomputes
// from scratch; nothing is cached between calls.
func Compute(lines []Line, discount Adjustment, tax, shipping Optional) Breakdown {
	subtotal := Subtotal(lines)
	discountAmount := DiscountAmount(subtotal, discount)
	taxAmount := TaxAmount(subtotal, discountAmount, tax)

	var shippingAmount float64
	if shipping.Enabled {
		shippingAmount = shipping.Amount
	}

	return Breakdown{
		Subtotal: subtotal,
		Discount: discountAmount,
		Tax:      taxAmount,
		Shipping: shippingAmount,
		Total:    Total(subtotal, discountAmount, taxAmount, shipping),
	}
}
