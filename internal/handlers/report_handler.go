package handlers

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"sirekap-dgn/internal/ai"
	"sirekap-dgn/internal/database"
	"sirekap-dgn/internal/documents"
	"sirekap-dgn/internal/finance"
	"sirekap-dgn/internal/models"
	"sirekap-dgn/internal/utils"

	"github.com/gin-gonic/gin"
)

// reportPeriod reads ?year= and ?month= with the current month as default
func reportPeriod(c *gin.Context) (int, time.Month, bool) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tahun tidak valid."})
			return 0, 0, false
		}
		year = parsed
	}
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bulan tidak valid."})
			return 0, 0, false
		}
		month = time.Month(parsed)
	}
	return year, month, true
}

// --- GET: Monthly report as JSON ---
func GetMonthlyReport(c *gin.Context) {
	year, month, ok := reportPeriod(c)
	if !ok {
		return
	}

	var transactions []models.Transaction
	if err := database.DB.Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, finance.BuildMonthlyReport(transactions, year, month))
}

// --- GET: Monthly report as a PDF download ---
func DownloadMonthlyReportPDF(c *gin.Context) {
	year, month, ok := reportPeriod(c)
	if !ok {
		return
	}

	var transactions []models.Transaction
	if err := database.DB.Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	report := finance.BuildMonthlyReport(transactions, year, month)
	data, err := documents.RenderMonthlyReportPDF(report, database.GetCompanyProfile())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report PDF"})
		return
	}

	filename := documents.ReportFileName(year, month)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

type InvoiceRequest struct {
	CustomerID string                  `json:"customerId" binding:"required"`
	DueDate    string                  `json:"dueDate"`
	Items      []documents.InvoiceItem `json:"items"`
	Notes      string                  `json:"notes"`
}

// --- POST: Build a one-off invoice PDF for a customer ---
// The invoice number is minted here (INV-<millis>), never reused.
func DownloadInvoicePDF(c *gin.Context) {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", req.CustomerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	today := time.Now().Format("2006-01-02")
	items := req.Items
	if len(items) == 0 {
		// Default to the customer's monthly fee as the single line item
		items = []documents.InvoiceItem{{
			Description: "Iuran Bulanan Internet",
			Quantity:    1,
			Price:       customer.Fee,
		}}
	}
	dueDate := req.DueDate
	if dueDate == "" {
		dueDate = time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	}

	invoice := documents.Invoice{
		Number:   "INV-" + utils.NewID(),
		Date:     today,
		DueDate:  dueDate,
		Customer: customer,
		Company:  database.GetCompanyProfile(),
		Items:    items,
		Notes:    req.Notes,
	}

	data, err := documents.RenderInvoicePDF(invoice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build invoice PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoice.FileName()))
	c.Data(http.StatusOK, "application/pdf", data)
}

// --- POST: Ask Gemini what to do with this month's profit ---
func GetProfitSuggestion(c *gin.Context) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Fitur AI belum dikonfigurasi (GEMINI_API_KEY)."})
		return
	}

	year, month, ok := reportPeriod(c)
	if !ok {
		return
	}

	var transactions []models.Transaction
	if err := database.DB.Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	report := finance.BuildMonthlyReport(transactions, year, month)
	if report.Balance <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tidak ada laba untuk dianalisis bulan ini."})
		return
	}

	suggestion, err := ai.GenerateProfitSuggestion(c.Request.Context(), apiKey, report.Balance)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gagal mendapatkan saran dari AI."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}
