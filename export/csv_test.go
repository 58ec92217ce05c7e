package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tskauto/dealership-api/models"
)

func TestCSV(t *testing.T) {
	recs := []models.InvoiceRecord{
		{
			InvoiceNumber:     "INV-523456",
			Date:              "2025/06/15",
			CustomerName:      "John Smith",
			CustomerEmail:     "john@example.com",
			CustomerPhone:     "+27 61 100 4801",
			Make:              "TOYOTA",
			Model:             "FORTUNER 4.0 V6 AVT 4X4",
			Year:              "2007",
			Color:             "Silver",
			Condition:         "USED",
			Kilometers:        "314596",
			SellingPrice:      "104347.83",
			VATAmount:         "15652.17",
			TotalSellingPrice: "120000.00",
			ChassisNo:         "AHTYUS9GX04002340",
			LicenseNo:         "DSK65GM",
			Address:           "12 Main Road, Johannesburg",
			Notes:             `Trade-in accepted, "as-is"`,
		},
	}

	out := string(CSV(recs))
	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	assert.Len(t, lines, 2)

	t.Run("Header Row", func(t *testing.T) {
		assert.Equal(t,
			"Invoice Number,Date,Customer Name,Email,Phone,Make,Model,Year,Color,Condition,Kilometers,Selling Price,VAT Amount,Total Price,Chassis No,License No,Address,Notes",
			lines[0])
	})

	t.Run("Free Text Columns Always Quoted", func(t *testing.T) {
		assert.Contains(t, lines[1], `"John Smith"`)
		assert.Contains(t, lines[1], `"12 Main Road, Johannesburg"`)
	})

	t.Run("Embedded Quotes Doubled", func(t *testing.T) {
		assert.Contains(t, lines[1], `"Trade-in accepted, ""as-is"""`)
	})

	t.Run("Plain Fields Unquoted", func(t *testing.T) {
		assert.Contains(t, lines[1], "INV-523456,2025/06/15,")
		assert.Contains(t, lines[1], ",TOYOTA,")
	})
}

func TestCSVEmpty(t *testing.T) {
	out := string(CSV(nil))
	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	assert.Len(t, lines, 1, "header only")
}

func TestCSVFieldWithComma(t *testing.T) {
	recs := []models.InvoiceRecord{{Model: "FORTUNER, 4X4", CustomerName: ""}}
	out := string(CSV(recs))
	assert.Contains(t, out, `"FORTUNER, 4X4"`)
	assert.Contains(t, out, `,"",`)
}
