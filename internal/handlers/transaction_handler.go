package handlers

import (
	"net/http"
	"time"

	"sirekap-dgn/internal/database"
	"sirekap-dgn/internal/finance"
	"sirekap-dgn/internal/models"
	"sirekap-dgn/internal/notify"
	"sirekap-dgn/internal/utils"

	"github.com/gin-gonic/gin"
)

// --- GET: List all transactions ---
func GetTransactions(c *gin.Context) {
	var transactions []models.Transaction

	if err := database.DB.Order("date desc, id desc").Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// --- POST: Add a new transaction ---
func AddTransaction(c *gin.Context) {
	var t models.Transaction

	// 1. Parse JSON Input
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if msg, ok := validateTransaction(&t); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	// 2. Fill server-side fields
	t.ID = utils.NewID()
	if t.Date == "" {
		t.Date = time.Now().Format("2006-01-02")
	}

	// 3. Save to DB
	if err := database.DB.Create(&t).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	// 4. Telegram runs after the commit and never blocks the response
	notifyTransaction(t, notify.ActionAdd)

	c.JSON(http.StatusCreated, t)
}

// --- PUT: Update a transaction ---
func UpdateTransaction(c *gin.Context) {
	id := c.Param("id")

	// 1. Find existing transaction
	var existing models.Transaction
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	// 2. Parse the replacement; the form always submits the full record
	var t models.Transaction
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if msg, ok := validateTransaction(&t); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	// 3. The URL id wins over whatever the body carries
	t.ID = existing.ID
	if t.Date == "" {
		t.Date = existing.Date
	}

	if err := database.DB.Save(&t).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}

	notifyTransaction(t, notify.ActionUpdate)

	c.JSON(http.StatusOK, t)
}

// --- DELETE: Remove a transaction ---
func DeleteTransaction(c *gin.Context) {
	id := c.Param("id")

	// Load the record first: the Telegram message needs its details
	var t models.Transaction
	if err := database.DB.First(&t, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	if err := database.DB.Delete(&t).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}

	notifyTransaction(t, notify.ActionDelete)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// --- GET: Dashboard summary (cash / transfer / total buckets) ---
func GetFinanceSummary(c *gin.Context) {
	var transactions []models.Transaction
	if err := database.DB.Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, finance.CalculateSummary(transactions))
}

// --- GET: Expense category donut data ---
func GetCategoryBreakdown(c *gin.Context) {
	var transactions []models.Transaction
	if err := database.DB.Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, finance.CategoryBreakdown(transactions))
}

// --- GET: Category options for the transaction form ---
func GetCategoryOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"income":  finance.IncomeCategories,
		"expense": finance.ExpenseCategories,
	})
}

// --- GET: Daily income/expense bar chart (last 30 active days) ---
func GetDailyChart(c *gin.Context) {
	var transactions []models.Transaction
	if err := database.DB.Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	points := finance.DailySeries(transactions)
	c.JSON(http.StatusOK, gin.H{
		"points": points,
		"max":    finance.SeriesMax(points),
	})
}

func validateTransaction(t *models.Transaction) (string, bool) {
	if t.Description == "" {
		return "Deskripsi harus diisi.", false
	}
	if t.Amount < 0 {
		return "Jumlah tidak boleh negatif.", false
	}
	if t.Type != models.TransactionIncome && t.Type != models.TransactionExpense {
		return "Jenis transaksi tidak valid.", false
	}
	return "", true
}

// notifyTransaction reloads the list so the Telegram summary reflects the
// state after the mutation, then fires the send in the background.
func notifyTransaction(t models.Transaction, action notify.TransactionAction) {
	settings := database.GetDashboardSettings()
	if !settings.EnableTelegramNotifications {
		return
	}

	var all []models.Transaction
	if err := database.DB.Find(&all).Error; err != nil {
		return
	}

	go notify.TransactionChanged(settings, t, all, action)
}
