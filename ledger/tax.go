package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// VAT is fixed at 15% of the selling price.
var vatRate = decimal.NewFromFloat(0.15)

// ComputeTax derives the VAT amount and VAT-inclusive total from a selling
// price, both rounded half-up to 2 decimal places and returned with exactly
// 2 fraction digits. The price is sanitized first; empty or unparseable
// input is treated as 0 and never produces an error.
func ComputeTax(sellingPrice string) (vatAmount, totalPrice string) {
	price, err := decimal.NewFromString(SanitizePrice(sellingPrice))
	if err != nil {
		price = decimal.Zero
	}
	vat := price.Mul(vatRate).Round(2)
	total := price.Add(vat).Round(2)
	return vat.StringFixed(2), total.StringFixed(2)
}

// SanitizePrice strips everything except digits and the first decimal
// point, the same silent cleanup the form applies as the user types.
func SanitizePrice(s string) string {
	var b strings.Builder
	seenPoint := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenPoint:
			b.WriteRune(r)
			seenPoint = true
		}
	}
	return b.String()
}

// SanitizeDigits keeps digits only (kilometers, year).
func SanitizeDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizePhone keeps digits, '+', '-' and spaces.
func SanitizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '+' || r == '-' || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
