package ledger

import (
	"fmt"
	"time"
)

// InvoiceNumber formats the human-facing reference for an invoice created
// at t: "INV-" plus the last 6 digits of the epoch-millisecond timestamp.
// Two invoices created within the same millisecond-modulo-1,000,000 window
// share a number; the record ID, not this reference, is the unique key.
func InvoiceNumber(t time.Time) string {
	return fmt.Sprintf("INV-%06d", t.UnixMilli()%1_000_000)
}
