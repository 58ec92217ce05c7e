// Package export renders a filtered invoice sequence as CSV. The writer is
// hand-rolled rather than encoding/csv because the export format always
// quotes the free-text columns (customer name, address, notes) regardless
// of content, which encoding/csv cannot be told to do per column.
package export

import (
	"strings"

	"github.com/tskauto/dealership-api/models"
)

var header = []string{
	"Invoice Number", "Date", "Customer Name", "Email", "Phone",
	"Make", "Model", "Year", "Color", "Condition", "Kilometers",
	"Selling Price", "VAT Amount", "Total Price",
	"Chassis No", "License No", "Address", "Notes",
}

// Columns holding arbitrary free text are quoted on every row.
var alwaysQuoted = map[int]bool{
	2:  true, // Customer Name
	16: true, // Address
	17: true, // Notes
}

// CSV renders one header row plus one row per record, in the order given.
func CSV(recs []models.InvoiceRecord) []byte {
	var b strings.Builder
	writeRow(&b, header, nil)
	for _, rec := range recs {
		writeRow(&b, []string{
			rec.InvoiceNumber,
			rec.Date,
			rec.CustomerName,
			rec.CustomerEmail,
			rec.CustomerPhone,
			rec.Make,
			rec.Model,
			rec.Year,
			rec.Color,
			rec.Condition,
			rec.Kilometers,
			rec.SellingPrice,
			rec.VATAmount,
			rec.TotalSellingPrice,
			rec.ChassisNo,
			rec.LicenseNo,
			rec.Address,
			rec.Notes,
		}, alwaysQuoted)
	}
	return []byte(b.String())
}

func writeRow(b *strings.Builder, fields []string, forceQuote map[int]bool) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		if forceQuote[i] || strings.ContainsAny(f, ",\"\n\r") {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
		} else {
			b.WriteString(f)
		}
	}
	b.WriteString("\r\n")
}
