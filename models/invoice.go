package models

// InvoiceRecord is one historical invoice snapshot as stored in the ledger
// blob. Every field is a string: the record is a frozen copy of the form
// state at submit time, including the already-computed financial fields.
// Records are never updated in place; loading one back into a form copies
// its fields into a fresh draft.
type InvoiceRecord struct {
	ID                string `json:"id"`
	Make              string `json:"make"`
	Model             string `json:"model"`
	MMCode            string `json:"mmCode"`
	ChassisNo         string `json:"chassisNo"`
	EngineNo          string `json:"engineNo"`
	RegisterNo        string `json:"registerNo"`
	Kilometers        string `json:"kilometers"`
	Year              string `json:"year"`
	Condition         string `json:"condition"`
	Color             string `json:"color"`
	LicenseNo         string `json:"licenseNo"`
	SellingPrice      string `json:"sellingPrice"`
	VATAmount         string `json:"vatAmount"`
	TotalSellingPrice string `json:"totalSellingPrice"`
	CustomerName      string `json:"customerName"`
	CustomerEmail     string `json:"customerEmail"`
	CustomerPhone     string `json:"customerPhone"`
	Address           string `json:"address"`
	Notes             string `json:"notes"`
	InvoiceNumber     string `json:"invoiceNumber"`
	Date              string `json:"date"`
	// CreatedAt is RFC3339 with millisecond precision. It is authoritative
	// for date-range filtering and the default sort; insertion order is
	// authoritative for the ledger cap.
	CreatedAt string `json:"createdAt"`
}
