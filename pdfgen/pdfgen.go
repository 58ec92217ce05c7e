// Package pdfgen assembles downloadable invoice PDFs. The full document
// rebuilds the on-screen invoice layout natively; Fallback produces the
// minimal text-only document used when the full render fails.
package pdfgen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/tskauto/dealership-api/config"
	"github.com/tskauto/dealership-api/models"
)

type Renderer interface {
	Render(rec models.InvoiceRecord) ([]byte, error)
	Fallback(rec models.InvoiceRecord) ([]byte, error)
}

type InvoiceRenderer struct {
	company config.CompanyInfo
	bank    config.BankInfo
}

func NewInvoiceRenderer(company config.CompanyInfo, bank config.BankInfo) *InvoiceRenderer {
	return &InvoiceRenderer{company: company, bank: bank}
}

// Render produces the full A4 tax invoice: company header, invoice meta,
// bill-to and vehicle blocks, pricing table, banking details and footer.
func (r *InvoiceRenderer) Render(rec models.InvoiceRecord) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Tax Invoice "+rec.InvoiceNumber, false)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(17, 24, 39)
	pdf.CellFormat(120, 10, r.company.Name, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(37, 99, 235)
	pdf.CellFormat(60, 10, "TAX INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(75, 85, 99)
	pdf.CellFormat(120, 5, r.company.Tagline, "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 5, "Invoice #: "+rec.InvoiceNumber, "", 1, "R", false, 0, "")
	pdf.CellFormat(120, 5, r.company.Address1, "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 5, "Date: "+rec.Date, "", 1, "R", false, 0, "")
	pdf.CellFormat(120, 5, r.company.Address2, "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 5, "VAT No: "+r.company.VATNo, "", 1, "R", false, 0, "")
	pdf.CellFormat(120, 5, "Phone: "+r.company.Phone, "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 5, "", "", 1, "R", false, 0, "")
	pdf.CellFormat(120, 5, "Email: "+r.company.Email, "", 1, "L", false, 0, "")

	pdf.SetDrawColor(37, 99, 235)
	pdf.SetLineWidth(0.6)
	pdf.Line(15, pdf.GetY()+3, 195, pdf.GetY()+3)
	pdf.Ln(8)

	// Bill To / Vehicle Information
	top := pdf.GetY()
	r.sectionTitle(pdf, "BILL TO")
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(17, 24, 39)
	pdf.CellFormat(90, 5, orPlaceholder(rec.CustomerName, "[Customer Name]"), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(55, 65, 81)
	pdf.CellFormat(90, 5, orPlaceholder(rec.CustomerEmail, "[Email Address]"), "", 1, "L", false, 0, "")
	pdf.CellFormat(90, 5, orPlaceholder(rec.CustomerPhone, "[Phone Number]"), "", 1, "L", false, 0, "")
	pdf.MultiCell(90, 5, orPlaceholder(rec.Address, "[Customer Address]"), "", "L", false)

	pdf.SetXY(110, top)
	r.sectionTitle(pdf, "VEHICLE INFORMATION")
	r.vehicleLine(pdf, "Make & Model", strings.TrimSpace(rec.Make+" "+rec.Model))
	r.vehicleLine(pdf, "Year", rec.Year)
	r.vehicleLine(pdf, "Color", orPlaceholder(rec.Color, "N/A"))
	r.vehicleLine(pdf, "Condition", rec.Condition)
	r.vehicleLine(pdf, "Kilometers", kilometersLabel(rec.Kilometers))
	r.vehicleLine(pdf, "Chassis No", orPlaceholder(rec.ChassisNo, "N/A"))
	r.vehicleLine(pdf, "Engine No", orPlaceholder(rec.EngineNo, "N/A"))
	pdf.Ln(8)
	pdf.SetX(15)

	// Pricing table
	r.sectionTitle(pdf, "PRICING DETAILS")
	pdf.SetFillColor(239, 246, 255)
	pdf.SetTextColor(37, 99, 235)
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(90, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Amount (ZAR)", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(17, 24, 39)
	desc := fmt.Sprintf("%s %s - %s %s", rec.Make, rec.Model, rec.Year, rec.Condition)
	pdf.CellFormat(90, 7, strings.TrimSpace(desc), "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "1", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 7, "R "+FormatCurrency(rec.SellingPrice), "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "R "+FormatCurrency(rec.SellingPrice), "1", 1, "R", false, 0, "")

	pdf.CellFormat(145, 7, "Subtotal", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "R "+FormatCurrency(rec.SellingPrice), "1", 1, "R", false, 0, "")
	pdf.CellFormat(145, 7, "VAT (15%)", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "R "+FormatCurrency(rec.VATAmount), "1", 1, "R", false, 0, "")

	pdf.SetFillColor(37, 99, 235)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(145, 9, "TOTAL AMOUNT DUE (incl 15% VAT)", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 9, "R "+FormatCurrency(rec.TotalSellingPrice), "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(75, 85, 99)
	pdf.CellFormat(180, 5, "All prices are in South African Rand (ZAR)", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Banking details
	r.sectionTitle(pdf, "BANKING DETAILS")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(17, 24, 39)
	pdf.CellFormat(180, 5, "Bank: "+r.bank.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(180, 5, "Account Holder: "+r.bank.HolderName, "", 1, "L", false, 0, "")
	pdf.CellFormat(180, 5, "Account Number: "+r.bank.AccountNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(180, 5, "Branch Code: "+r.bank.BranchNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(180, 5, "Swift Code: "+r.bank.SwiftCode, "", 1, "L", false, 0, "")
	pdf.CellFormat(180, 5, "Payment Reference: "+rec.InvoiceNumber, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if rec.Notes != "" {
		r.sectionTitle(pdf, "ADDITIONAL NOTES")
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(55, 65, 81)
		pdf.MultiCell(180, 5, rec.Notes, "", "L", false)
		pdf.Ln(4)
	}

	// Footer
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(180, 5, "Payment due within 7 days of invoice date. Vehicle released upon payment confirmation.", "", 1, "C", false, 0, "")
	pdf.CellFormat(180, 5, "This is a computer-generated tax invoice. No physical signature required.", "", 1, "C", false, 0, "")

	return output(pdf)
}

// Fallback is the degraded document: a handful of text lines with the
// essentials, used when the full layout fails to render.
func (r *InvoiceRenderer) Fallback(rec models.InvoiceRecord) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(180, 12, r.company.Name+" INVOICE", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	for _, line := range []string{
		"Invoice: " + rec.InvoiceNumber,
		"Date: " + rec.Date,
		"Customer: " + orPlaceholder(rec.CustomerName, "N/A"),
		"Vehicle: " + strings.TrimSpace(rec.Make+" "+rec.Model),
		"Total: R " + FormatCurrency(rec.TotalSellingPrice),
		"",
		"Bank Details:",
		r.bank.Name + " - " + r.bank.AccountNumber,
		"Account Holder: " + r.bank.HolderName,
		"Reference: " + rec.InvoiceNumber,
	} {
		pdf.CellFormat(180, 8, line, "", 1, "L", false, 0, "")
	}

	return output(pdf)
}

func (r *InvoiceRenderer) sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(17, 24, 39)
	pdf.CellFormat(90, 7, title, "", 1, "L", false, 0, "")
}

func (r *InvoiceRenderer) vehicleLine(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetX(110)
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(75, 85, 99)
	pdf.CellFormat(30, 5, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 9)
	pdf.SetTextColor(17, 24, 39)
	pdf.CellFormat(55, 5, value, "", 1, "L", false, 0, "")
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func kilometersLabel(km string) string {
	if km == "" {
		return "N/A"
	}
	return groupThousands(km) + " km"
}

// FormatCurrency renders an amount with 2 fraction digits and space
// thousand separators, the en-ZA display convention. Unparseable input
// formats as 0.00.
func FormatCurrency(amount string) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		d = decimal.Zero
	}
	fixed := d.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	return groupThousands(intPart) + "." + fracPart
}

func groupThousands(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	out := strings.Join(groups, " ")
	if neg {
		out = "-" + out
	}
	return out
}
