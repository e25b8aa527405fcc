package handlers

import (
	"fmt"
	"net/http"
	"time"

	"sirekap-dgn/internal/database"
	"sirekap-dgn/internal/documents"
	"sirekap-dgn/internal/format"
	"sirekap-dgn/internal/models"
	"sirekap-dgn/internal/notify"
	"sirekap-dgn/internal/utils"
	"sirekap-dgn/internal/wa"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- GET: List all customers ---
func GetCustomers(c *gin.Context) {
	var customers []models.Customer

	if err := database.DB.Order("name asc").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, customers)
}

// --- POST: Add a new customer ---
func AddCustomer(c *gin.Context) {
	var customer models.Customer

	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if customer.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nama pelanggan harus diisi."})
		return
	}
	if customer.Fee < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Iuran tidak boleh negatif."})
		return
	}

	// New customers always start as unpaid for the current month
	customer.ID = utils.NewID()
	customer.Paid = false
	customer.LastPaymentDate = ""
	customer.LastPaymentMode = ""

	if err := database.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// --- PUT: Update a customer ---
func UpdateCustomer(c *gin.Context) {
	id := c.Param("id")

	var existing models.Customer
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if customer.Fee < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Iuran tidak boleh negatif."})
		return
	}

	// The edit form never touches the payment status, so keep it
	customer.ID = existing.ID
	customer.Paid = existing.Paid
	customer.LastPaymentDate = existing.LastPaymentDate
	customer.LastPaymentMode = existing.LastPaymentMode

	if err := database.DB.Save(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// --- DELETE: Remove a customer ---
func DeleteCustomer(c *gin.Context) {
	id := c.Param("id")

	if err := database.DB.Delete(&models.Customer{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

type MarkPaidRequest struct {
	Mode models.TransactionMode `json:"mode"`
}

// --- POST /customers/:id/pay ---
// Marks the customer paid and books the matching income transaction in one
// go. Calling it twice is harmless: an already-paid customer stays paid and
// no duplicate transaction appears.
func MarkCustomerPaid(c *gin.Context) {
	id := c.Param("id")

	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	if customer.Paid {
		c.JSON(http.StatusOK, gin.H{"customer": customer})
		return
	}

	var req MarkPaidRequest
	// Body is optional; no mode means the money came in by transfer
	_ = c.ShouldBindJSON(&req)
	mode := req.Mode
	if mode != models.ModeCash {
		mode = models.ModeTransfer
	}

	today := time.Now().Format("2006-01-02")

	customer.Paid = true
	customer.LastPaymentDate = today
	customer.LastPaymentMode = mode

	t := models.Transaction{
		ID:          utils.NewID(),
		Date:        today,
		Description: "Iuran Bulanan - " + customer.Name,
		Amount:      customer.Fee,
		Type:        models.TransactionIncome,
		Mode:        mode,
		Category:    "Iuran",
	}

	// The paid flag and the booked income must land together or not at all:
	// a half-applied payment would be unrecoverable behind the paid guard
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&customer).Error; err != nil {
			return err
		}
		return tx.Create(&t).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	notifyTransaction(t, notify.ActionAdd)

	c.JSON(http.StatusOK, gin.H{
		"customer":    customer,
		"transaction": t,
	})
}

// --- POST /customers/reset-payments ---
// The start-of-month button: everyone back to unpaid, payment history cleared.
func ResetAllPayments(c *gin.Context) {
	result := database.DB.Model(&models.Customer{}).Where("1 = 1").Updates(map[string]interface{}{
		"paid":              false,
		"last_payment_date": "",
		"last_payment_mode": "",
	})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Semua status pembayaran telah direset.",
		"updated": result.RowsAffected,
	})
}

// --- GET /customers/export ---
// Streams the customer list as an XLSX download.
func ExportCustomersXLSX(c *gin.Context) {
	var customers []models.Customer
	if err := database.DB.Order("name asc").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	data, err := documents.RenderCustomersXLSX(customers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build spreadsheet"})
		return
	}

	filename := documents.CustomersXLSXFileName(time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

type BillingLinksRequest struct {
	Template     string `json:"template"`
	BillingMonth string `json:"billingMonth"`
}

type BillingLink struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Link       string `json:"link"`
}

// --- POST /customers/billing-links ---
// Builds one wa.me reminder link per unpaid customer that has a phone
// number. The client opens them in order with delayMillis between tabs so
// the popup blocker doesn't eat them.
func GetBillingLinks(c *gin.Context) {
	var req BillingLinksRequest
	_ = c.ShouldBindJSON(&req)

	template := req.Template
	if template == "" {
		template = wa.DefaultBillingTemplate
	}
	now := time.Now()
	billingMonth := req.BillingMonth
	if billingMonth == "" {
		billingMonth = format.MonthYear(now.Year(), now.Month())
	}

	var customers []models.Customer
	if err := database.DB.Where("paid = ? AND phone <> ''", false).Order("name asc").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	companyName := database.GetCompanyProfile().Name

	links := make([]BillingLink, 0, len(customers))
	for _, customer := range customers {
		text := wa.RenderBillingTemplate(template, customer, companyName, billingMonth)
		links = append(links, BillingLink{
			CustomerID: customer.ID,
			Name:       customer.Name,
			Phone:      wa.FormatPhone(customer.Phone),
			Link:       wa.Link(customer.Phone, text),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"links":       links,
		"delayMillis": wa.SendDelayMillis,
	})
}
