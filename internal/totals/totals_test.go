package totals

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSubtotalEmpty(t *testing.T) {
	if got := Subtotal(nil); got != 0 {
		t.Fatalf("expected 0 subtotal for empty lines, got %v", got)
	}
}

func TestSubtotalSumsQuantityTimesRate(t *testing.T) {
	lines := []Line{
		{Quantity: 2, Rate: 10},
		{Quantity: 1.5, Rate: 4},
		{Quantity: 0, Rate: 99},
	}
	if got := Subtotal(lines); !almostEqual(got, 26) {
		t.Fatalf("expected subtotal 26, got %v", got)
	}
}

func TestDiscountPercentage(t *testing.T) {
	got := DiscountAmount(200, Adjustment{Kind: KindPercentage, Amount: 10})
	if !almostEqual(got, 20) {
		t.Fatalf("expected discount 20, got %v", got)
	}
}

func TestDiscountZeroPercentage(t *testing.T) {
	got := DiscountAmount(12345.67, Adjustment{Kind: KindPercentage, Amount: 0})
	if got != 0 {
		t.Fatalf("expected 0 discount, got %v", got)
	}
}

func TestDiscountFixedNotCapped(t *testing.T) {
	got := DiscountAmount(10, Adjustment{Kind: KindFixed, Amount: 50})
	if !almostEqual(got, 50) {
		t.Fatalf("expected fixed discount taken verbatim, got %v", got)
	}
}

func TestTaxDisabledContributesZero(t *testing.T) {
	tax := Optional{Adjustment: Adjustment{Kind: KindFixed, Amount: 500}, Enabled: false}
	if got := TaxAmount(100, 0, tax); got != 0 {
		t.Fatalf("expected 0 tax when disabled, got %v", got)
	}
}

func TestTaxUsesTaxableBase(t *testing.T) {
	tax := Optional{Adjustment: Adjustment{Kind: KindPercentage, Amount: 5}, Enabled: true}
	got := TaxAmount(20, 2, tax)
	if !almostEqual(got, 0.9) {
		t.Fatalf("expected tax 0.9 on base 18, got %v", got)
	}
}

func TestTotalShippingDisabled(t *testing.T) {
	shipping := Optional{Adjustment: Adjustment{Kind: KindFixed, Amount: 25}, Enabled: false}
	if got := Total(100, 0, 0, shipping); !almostEqual(got, 100) {
		t.Fatalf("expected shipping ignored when disabled, got %v", got)
	}
}

func TestTotalLinearInShipping(t *testing.T) {
	base := Optional{Adjustment: Adjustment{Kind: KindFixed, Amount: 7}, Enabled: true}
	doubled := Optional{Adjustment: Adjustment{Kind: KindFixed, Amount: 14}, Enabled: true}
	delta1 := Total(100, 0, 0, base) - Total(100, 0, 0, Optional{})
	delta2 := Total(100, 0, 0, doubled) - Total(100, 0, 0, Optional{})
	if !almostEqual(delta2, 2*delta1) {
		t.Fatalf("expected total linear in shipping: delta1=%v delta2=%v", delta1, delta2)
	}
}

func TestNegativeTotalAllowed(t *testing.T) {
	lines := []Line{{Quantity: 1, Rate: 10}}
	b := Compute(lines, Adjustment{Kind: KindFixed, Amount: 50}, Optional{}, Optional{})
	if !almostEqual(b.Total, -40) {
		t.Fatalf("expected total -40 (no clamping), got %v", b.Total)
	}
}

func TestComputeWorkedExample(t *testing.T) {
	lines := []Line{{Quantity: 2, Rate: 10}}
	discount := Adjustment{Kind: KindPercentage, Amount: 10}
	tax := Optional{Adjustment: Adjustment{Kind: KindPercentage, Amount: 5}, Enabled: true}
	shipping := Optional{Adjustment: Adjustment{Kind: KindFixed, Amount: 0}, Enabled: false}

	b := Compute(lines, discount, tax, shipping)
	if !almostEqual(b.Subtotal, 20) {
		t.Fatalf("expected subtotal 20, got %v", b.Subtotal)
	}
	if !almostEqual(b.Discount, 2) {
		t.Fatalf("expected discount 2, got %v", b.Discount)
	}
	if !almostEqual(b.Tax, 0.9) {
		t.Fatalf("expected tax 0.9, got %v", b.Tax)
	}
	if b.Shipping != 0 {
		t.Fatalf("expected shipping 0, got %v", b.Shipping)
	}
	if !almostEqual(b.Total, 18.9) {
		t.Fatalf("expected total 18.9, got %v", b.Total)
	}
}

func TestComputeNoAdjustments(t *testing.T) {
	b := Compute([]Line{{Quantity: 1, Rate: 99.99}}, Adjustment{Kind: KindPercentage}, Optional{}, Optional{})
	if !almostEqual(b.Subtotal, 99.99) || !almostEqual(b.Total, 99.99) {
		t.Fatalf("expected subtotal and total 99.99, got %v and %v", b.Subtotal, b.Total)
	}
	if b.Discount != 0 || b.Tax != 0 || b.Shipping != 0 {
		t.Fatalf("expected zero adjustments, got %+v", b)
	}
}
