package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeTax(t *testing.T) {
	tests := []struct {
		name          string
		sellingPrice  string
		expectedVAT   string
		expectedTotal string
	}{
		{
			name:          "Typical Vehicle Price",
			sellingPrice:  "104347.83",
			expectedVAT:   "15652.17",
			expectedTotal: "120000.00",
		},
		{
			name:          "Whole Number",
			sellingPrice:  "100000",
			expectedVAT:   "15000.00",
			expectedTotal: "115000.00",
		},
		{
			name:          "Half Up Rounding",
			sellingPrice:  "0.10",
			expectedVAT:   "0.02",
			expectedTotal: "0.12",
		},
		{
			name:          "Zero",
			sellingPrice:  "0",
			expectedVAT:   "0.00",
			expectedTotal: "0.00",
		},
		{
			name:          "Empty Input",
			sellingPrice:  "",
			expectedVAT:   "0.00",
			expectedTotal: "0.00",
		},
		{
			name:          "Non Numeric Input",
			sellingPrice:  "abc",
			expectedVAT:   "0.00",
			expectedTotal: "0.00",
		},
		{
			name:          "Input With Stray Characters",
			sellingPrice:  "R 1,000.50",
			expectedVAT:   "150.08",
			expectedTotal: "1150.58",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vat, total := ComputeTax(tt.sellingPrice)
			assert.Equal(t, tt.expectedVAT, vat)
			assert.Equal(t, tt.expectedTotal, total)
		})
	}
}

func TestSanitizers(t *testing.T) {
	assert.Equal(t, "1234.56", SanitizePrice("1a2b34.5.6"))
	assert.Equal(t, "0.15", SanitizePrice("0.15"))
	assert.Equal(t, "", SanitizePrice("no digits"))

	assert.Equal(t, "314596", SanitizeDigits("314,596 km"))
	assert.Equal(t, "2007", SanitizeDigits("2007"))

	assert.Equal(t, "+27 61 100-4801", SanitizePhone("+27 61 100-4801 (cell)"))
}

func TestInvoiceNumber(t *testing.T) {
	tests := []struct {
		name     string
		at       time.Time
		expected string
	}{
		{
			name:     "Last Six Digits Of Millis",
			at:       time.UnixMilli(1724918523456),
			expected: "INV-523456",
		},
		{
			name:     "Zero Padded",
			at:       time.UnixMilli(1724918000042),
			expected: "INV-000042",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InvoiceNumber(tt.at))
		})
	}
}
