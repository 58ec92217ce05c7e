package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tskauto/dealership-api/models"
)

type DateRange string

const (
	RangeAll     DateRange = "all"
	RangeToday   DateRange = "today"
	Range7Days   DateRange = "7days"
	Range30Days  DateRange = "30days"
	Range365Days DateRange = "365days"
)

type SortKey string

const (
	SortByDate  SortKey = "date"
	SortByTotal SortKey = "total"
	SortByName  SortKey = "name"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Query returns a filtered, sorted copy of the history. The search text
// matches case-insensitively as a substring of invoice number, customer
// name, make, model, chassis number, license number or customer email;
// empty search matches everything. The range filter compares whole days
// between now and createdAt, truncated toward zero. The underlying
// ledger is never mutated.
func (l *Ledger) Query(search string, rng DateRange, key SortKey, order SortOrder) []models.InvoiceRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	now := l.Now()
	q := strings.ToLower(strings.TrimSpace(search))

	out := make([]models.InvoiceRecord, 0, len(l.records))
	for _, rec := range l.records {
		if q != "" && !matches(rec, q) {
			continue
		}
		if !inRange(rec, rng, now) {
			continue
		}
		out = append(out, rec)
	}

	sortRecords(out, key, order)
	return out
}

func matches(rec models.InvoiceRecord, q string) bool {
	for _, field := range []string{
		rec.InvoiceNumber,
		rec.CustomerName,
		rec.Make,
		rec.Model,
		rec.ChassisNo,
		rec.LicenseNo,
		rec.CustomerEmail,
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func inRange(rec models.InvoiceRecord, rng DateRange, now time.Time) bool {
	if rng == "" || rng == RangeAll {
		return true
	}
	created, err := time.Parse(time.RFC3339, rec.CreatedAt)
	if err != nil {
		return false
	}
	days := int(now.Sub(created).Hours() / 24)
	switch rng {
	case RangeToday:
		return days == 0
	case Range7Days:
		return days <= 7
	case Range30Days:
		return days <= 30
	case Range365Days:
		return days <= 365
	default:
		return true
	}
}

func sortRecords(recs []models.InvoiceRecord, key SortKey, order SortOrder) {
	var less func(a, b models.InvoiceRecord) bool
	switch key {
	case SortByTotal:
		less = func(a, b models.InvoiceRecord) bool {
			return parseAmount(a.TotalSellingPrice).LessThan(parseAmount(b.TotalSellingPrice))
		}
	case SortByName:
		less = func(a, b models.InvoiceRecord) bool {
			return strings.ToLower(a.CustomerName) < strings.ToLower(b.CustomerName)
		}
	default: // SortByDate
		less = func(a, b models.InvoiceRecord) bool {
			return parseCreatedAt(a).Before(parseCreatedAt(b))
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if order == OrderAsc {
			return less(recs[i], recs[j])
		}
		return less(recs[j], recs[i])
	})
}

func parseCreatedAt(rec models.InvoiceRecord) time.Time {
	t, err := time.Parse(time.RFC3339, rec.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseAmount treats unparseable stored amounts as 0, both for sorting
// and for the aggregate extremes.
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Paginate slices out page (1-based) of pageSize records, clamped to the
// sequence bounds, and reports the total page count.
func Paginate(recs []models.InvoiceRecord, pageSize, page int) ([]models.InvoiceRecord, int) {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (len(recs) + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start > len(recs) {
		start = len(recs)
	}
	end := start + pageSize
	if end > len(recs) {
		end = len(recs)
	}
	return recs[start:end], totalPages
}

// Stats is the derived view shown above the history table.
type Stats struct {
	Count       int                   `json:"count"`
	TotalSales  string                `json:"totalSales"`
	TotalVAT    string                `json:"totalVAT"`
	AverageSale string                `json:"averageSale"`
	Highest     *models.InvoiceRecord `json:"highest,omitempty"`
	Lowest      *models.InvoiceRecord `json:"lowest,omitempty"`
}

// Aggregate computes record count, summed totals and VAT, the average
// total (0 when empty) and the records with the highest and lowest total
// price. Ties keep the first record encountered.
func Aggregate(recs []models.InvoiceRecord) Stats {
	stats := Stats{
		Count:       len(recs),
		TotalSales:  decimal.Zero.StringFixed(2),
		TotalVAT:    decimal.Zero.StringFixed(2),
		AverageSale: decimal.Zero.StringFixed(2),
	}
	if len(recs) == 0 {
		return stats
	}

	totalSales := decimal.Zero
	totalVAT := decimal.Zero
	var hi, lo int
	hiAmount := parseAmount(recs[0].TotalSellingPrice)
	loAmount := hiAmount

	for i, rec := range recs {
		total := parseAmount(rec.TotalSellingPrice)
		totalSales = totalSales.Add(total)
		totalVAT = totalVAT.Add(parseAmount(rec.VATAmount))

		if total.GreaterThan(hiAmount) {
			hi, hiAmount = i, total
		}
		if total.LessThan(loAmount) {
			lo, loAmount = i, total
		}
	}

	stats.TotalSales = totalSales.StringFixed(2)
	stats.TotalVAT = totalVAT.StringFixed(2)
	stats.AverageSale = totalSales.Div(decimal.NewFromInt(int64(len(recs)))).Round(2).StringFixed(2)
	stats.Highest = &recs[hi]
	stats.Lowest = &recs[lo]
	return stats
}
