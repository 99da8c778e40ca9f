package domain

import "testing"

func TestLabelDefaults(t *testing.T) {
	var ls LabelSet
	if got := ls.Get(LabelSubtotal); got != "Subtotal" {
		t.Fatalf("expected default subtotal label, got %q", got)
	}
}

func TestLabelOverride(t *testing.T) {
	ls := LabelSet{LabelTotal: "Amount Due"}
	if got := ls.Get(LabelTotal); got != "Amount Due" {
		t.Fatalf("expected override, got %q", got)
	}
	if got := ls.Get(LabelTax); got != "Tax" {
		t.Fatalf("expected fallback for untouched key, got %q", got)
	}
}

func TestEmptyOverrideFallsBack(t *testing.T) {
	ls := LabelSet{LabelTitle: ""}
	if got := ls.Get(LabelTitle); got != "INVOICE" {
		t.Fatalf("expected empty override ignored, got %q", got)
	}
}

func TestDefaultLabelsIsACopy(t *testing.T) {
	a := DefaultLabels()
	a[LabelTitle] = "RECEIPT"
	if defaultLabels[LabelTitle] != "INVOICE" {
		t.Fatalf("expected defaults untouched by caller mutation")
	}
}
