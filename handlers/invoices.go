package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tskauto/dealership-api/config"
	"github.com/tskauto/dealership-api/export"
	"github.com/tskauto/dealership-api/ledger"
	"github.com/tskauto/dealership-api/logger"
	"github.com/tskauto/dealership-api/models"
	"github.com/tskauto/dealership-api/pdfgen"
)

// createdAtLayout is RFC3339 with millisecond precision.
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type InvoiceHandler struct {
	ledger   *ledger.Ledger
	renderer pdfgen.Renderer
	cfg      *config.Config
	log      zerolog.Logger
	now      func() time.Time
}

func NewInvoiceHandler(l *ledger.Ledger, renderer pdfgen.Renderer, cfg *config.Config) *InvoiceHandler {
	return &InvoiceHandler{
		ledger:   l,
		renderer: renderer,
		cfg:      cfg,
		log:      logger.WithComponent("invoices"),
		now:      time.Now,
	}
}

type CreateInvoiceRequest struct {
	Make          string `json:"make" binding:"required"`
	Model         string `json:"model" binding:"required"`
	MMCode        string `json:"mmCode"`
	ChassisNo     string `json:"chassisNo"`
	EngineNo      string `json:"engineNo"`
	RegisterNo    string `json:"registerNo"`
	Kilometers    string `json:"kilometers"`
	Year          string `json:"year" binding:"required"`
	Condition     string `json:"condition"`
	Color         string `json:"color"`
	LicenseNo     string `json:"licenseNo"`
	SellingPrice  string `json:"sellingPrice" binding:"required"`
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerEmail string `json:"customerEmail" binding:"required,email"`
	CustomerPhone string `json:"customerPhone" binding:"required"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// Create computes the financial fields server-side, stamps the record
// identifiers and appends it to the ledger.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := h.now()
	sellingPrice := ledger.SanitizePrice(req.SellingPrice)
	vatAmount, totalPrice := ledger.ComputeTax(sellingPrice)

	condition := req.Condition
	if condition == "" {
		condition = "USED"
	}

	rec := models.InvoiceRecord{
		ID:                uuid.NewString(),
		Make:              req.Make,
		Model:             req.Model,
		MMCode:            req.MMCode,
		ChassisNo:         req.ChassisNo,
		EngineNo:          req.EngineNo,
		RegisterNo:        req.RegisterNo,
		Kilometers:        ledger.SanitizeDigits(req.Kilometers),
		Year:              ledger.SanitizeDigits(req.Year),
		Condition:         condition,
		Color:             req.Color,
		LicenseNo:         req.LicenseNo,
		SellingPrice:      sellingPrice,
		VATAmount:         vatAmount,
		TotalSellingPrice: totalPrice,
		CustomerName:      req.CustomerName,
		CustomerEmail:     req.CustomerEmail,
		CustomerPhone:     ledger.SanitizePhone(req.CustomerPhone),
		Address:           req.Address,
		Notes:             req.Notes,
		InvoiceNumber:     ledger.InvoiceNumber(now),
		Date:              now.Format("2006/01/02"),
		CreatedAt:         now.UTC().Format(createdAtLayout),
	}

	if err := h.ledger.Append(rec); err != nil {
		h.log.Error().Err(err).Msg("failed to append invoice")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save invoice"})
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// List answers the history view: filtered, sorted, paginated records plus
// aggregate statistics over the whole filtered set.
func (h *InvoiceHandler) List(c *gin.Context) {
	recs := h.queryFromParams(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	pageRecs, totalPages := ledger.Paginate(recs, pageSize, page)

	c.JSON(http.StatusOK, gin.H{
		"invoices": pageRecs,
		"pagination": gin.H{
			"page":         page,
			"pageSize":     pageSize,
			"totalPages":   totalPages,
			"totalRecords": len(recs),
		},
		"stats": ledger.Aggregate(recs),
	})
}

// Delete removes one record. Deleting an id that is not present is not an
// error.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	if err := h.ledger.Remove(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Clear wipes the whole history.
func (h *InvoiceHandler) Clear(c *gin.Context) {
	if err := h.ledger.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear invoice history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// ExportCSV streams the current filtered view, unpaginated, in the
// current sort order.
func (h *InvoiceHandler) ExportCSV(c *gin.Context) {
	recs := h.queryFromParams(c)

	c.Header("Content-Disposition", `attachment; filename="invoice-history.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", export.CSV(recs))
}

// DownloadPDF renders the invoice document. A failed full render degrades
// to the minimal text-only document instead of failing outright.
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	rec, ok := h.ledger.Find(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	data, err := h.renderer.Render(rec)
	if err != nil {
		h.log.Warn().Err(err).Str("invoice", rec.InvoiceNumber).
			Msg("full invoice render failed, using fallback document")
		data, err = h.renderer.Fallback(rec)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
			return
		}
	}

	filename := fmt.Sprintf("%s-Invoice-%s.pdf",
		strings.ReplaceAll(h.cfg.Company.Name, " ", "-"), rec.InvoiceNumber)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// Email composes the customer email for an invoice and the matching
// mailto link.
func (h *InvoiceHandler) Email(c *gin.Context) {
	rec, ok := h.ledger.Find(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	if rec.CustomerEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer email is required to send the invoice"})
		return
	}

	company := h.cfg.Company
	bank := h.cfg.Bank

	subject := fmt.Sprintf("%s Invoice %s - %s %s", company.Name, rec.InvoiceNumber, rec.Make, rec.Model)

	customerName := rec.CustomerName
	if customerName == "" {
		customerName = "Customer"
	}
	body := fmt.Sprintf(`Dear %s,

Thank you for your business with %s.

Invoice: %s
Date: %s

Vehicle Details:
%s %s
Year: %s
Color: %s
Chassis: %s

Total Amount: R %s

Payment Details:
Bank: %s
Account Holder: %s
Account Number: %s
Branch Code: %s
Swift Code: %s

Please find the attached invoice PDF.

Best regards,
%s Team`,
		customerName, company.Name,
		rec.InvoiceNumber, rec.Date,
		rec.Make, rec.Model, rec.Year, rec.Color, rec.ChassisNo,
		pdfgen.FormatCurrency(rec.TotalSellingPrice),
		bank.Name, bank.HolderName, bank.AccountNumber, bank.BranchNumber, bank.SwiftCode,
		company.Name)

	mailto := fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		rec.CustomerEmail, url.QueryEscape(subject), url.QueryEscape(body))

	c.JSON(http.StatusOK, gin.H{
		"to":      rec.CustomerEmail,
		"subject": subject,
		"body":    body,
		"mailto":  mailto,
	})
}

func (h *InvoiceHandler) queryFromParams(c *gin.Context) []models.InvoiceRecord {
	return h.ledger.Query(
		c.Query("q"),
		ledger.DateRange(c.DefaultQuery("range", string(ledger.RangeAll))),
		ledger.SortKey(c.DefaultQuery("sort", string(ledger.SortByDate))),
		ledger.SortOrder(c.DefaultQuery("order", string(ledger.OrderDesc))),
	)
}
