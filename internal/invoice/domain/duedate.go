package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// PaymentTermsDays extracts a day count from free-text payment terms,
// e.g. "Net 30" or "due in 14 days". The first run of digits wins.
func PaymentTermsDays(terms string) (int, bool) {
	var digits strings.Builder
	for _, r := range terms {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
			continue
		}
		if digits.Len() > 0 {
			break
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	days, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return days, true
}

// DeriveDueDate recomputes the due date from the invoice date and the
// payment terms. This is the explicit derived-field recalculation the
// caller triggers whenever either input changes; it reports false when
// the terms carry no day count or the invoice date is missing.
func DeriveDueDate(invoiceDate Date, terms string) (Date, bool) {
	if invoiceDate.IsZero() {
		return Date{}, false
	}
	days, ok := PaymentTermsDays(terms)
	if !ok {
		return Date{}, false
	}
	return invoiceDate.AddDays(days), true
}
