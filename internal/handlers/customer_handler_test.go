package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sirekap-dgn/internal/database"
	"sirekap-dgn/internal/models"
)

func seedCustomer(t *testing.T, c models.Customer) models.Customer {
	t.Helper()
	require.NoError(t, database.DB.Create(&c).Error)
	return c
}

func TestMarkCustomerPaidBooksIncomeTransaction(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	r.POST("/customers/:id/pay", MarkCustomerPaid)

	customer := seedCustomer(t, models.Customer{ID: "c1", Name: "Budi", Phone: "0812", Fee: 150000})

	w := doJSON(r, http.MethodPost, "/customers/c1/pay", gin.H{"mode": "cash"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Customer
	require.NoError(t, database.DB.First(&updated, "id = ?", customer.ID).Error)
	assert.True(t, updated.Paid)
	assert.Equal(t, models.ModeCash, updated.LastPaymentMode)
	assert.Equal(t, time.Now().Format("2006-01-02"), updated.LastPaymentDate)

	var transactions []models.Transaction
	require.NoError(t, database.DB.Find(&transactions).Error)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Iuran Bulanan - Budi", transactions[0].Description)
	assert.Equal(t, "Iuran", transactions[0].Category)
	assert.Equal(t, models.TransactionIncome, transactions[0].Type)
	assert.Equal(t, 150000.0, transactions[0].Amount)
}

func TestMarkCustomerPaidIsIdempotent(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	r.POST("/customers/:id/pay", MarkCustomerPaid)

	seedCustomer(t, models.Customer{ID: "c1", Name: "Budi", Fee: 150000})

	first := doJSON(r, http.MethodPost, "/customers/c1/pay", nil)
	require.Equal(t, http.StatusOK, first.Code)
	second := doJSON(r, http.MethodPost, "/customers/c1/pay", nil)
	require.Equal(t, http.StatusOK, second.Code)

	// Paying twice must not book a second transaction
	var count int64
	database.DB.Model(&models.Transaction{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMarkCustomerPaidRollsBackWhenBookingFails(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	r.POST("/customers/:id/pay", MarkCustomerPaid)

	seedCustomer(t, models.Customer{ID: "c1", Name: "Budi", Fee: 150000})

	// Make the income insert impossible so the whole payment must roll back
	require.NoError(t, database.DB.Migrator().DropTable(&models.Transaction{}))

	w := doJSON(r, http.MethodPost, "/customers/c1/pay", gin.H{"mode": "cash"})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	// The customer must not be stuck paid without the booked income
	var reloaded models.Customer
	require.NoError(t, database.DB.First(&reloaded, "id = ?", "c1").Error)
	assert.False(t, reloaded.Paid)
	assert.Empty(t, reloaded.LastPaymentDate)
	assert.Empty(t, reloaded.LastPaymentMode)
}

func TestMarkCustomerPaidDefaultsToTransfer(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	r.POST("/customers/:id/pay", MarkCustomerPaid)

	seedCustomer(t, models.Customer{ID: "c1", Name: "Budi", Fee: 100000})

	w := doJSON(r, http.MethodPost, "/customers/c1/pay", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Customer
	require.NoError(t, database.DB.First(&updated, "id = ?", "c1").Error)
	assert.Equal(t, models.ModeTransfer, updated.LastPaymentMode)
}

func TestResetAllPaymentsClearsEveryCustomer(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	r.POST("/customers/reset-payments", ResetAllPayments)

	seedCustomer(t, models.Customer{ID: "c1", Name: "Budi", Paid: true, LastPaymentDate: "2026-08-05", LastPaymentMode: models.ModeCash})
	seedCustomer(t, models.Customer{ID: "c2", Name: "Siti", Paid: true, LastPaymentDate: "2026-08-10", LastPaymentMode: models.ModeTransfer})
	seedCustomer(t, models.Customer{ID: "c3", Name: "Andi", Paid: false})

	w := doJSON(r, http.MethodPost, "/customers/reset-payments", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var customers []models.Customer
	require.NoError(t, database.DB.Find(&customers).Error)
	for _, customer := range customers {
		assert.False(t, customer.Paid)
		assert.Empty(t, customer.LastPaymentDate)
		assert.Empty(t, customer.LastPaymentMode)
	}
}

func TestBillingLinksOnlyUnpaidWithPhone(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	r.POST("/customers/billing-links", GetBillingLinks)

	seedCustomer(t, models.Customer{ID: "c1", Name: "Budi", Phone: "081234567890", Fee: 150000, Paid: false})
	seedCustomer(t, models.Customer{ID: "c2", Name: "Siti", Phone: "6281111111111", Fee: 200000, Paid: true})
	seedCustomer(t, models.Customer{ID: "c3", Name: "Andi", Phone: "", Fee: 100000, Paid: false})

	w := doJSON(r, http.MethodPost, "/customers/billing-links", gin.H{})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Links       []BillingLink `json:"links"`
		DelayMillis int           `json:"delayMillis"`
	}
	decodeBody(t, w, &resp)

	require.Len(t, resp.Links, 1)
	assert.Equal(t, "c1", resp.Links[0].CustomerID)
	assert.Equal(t, "6281234567890", resp.Links[0].Phone)
	assert.Contains(t, resp.Links[0].Link, "https://wa.me/6281234567890?text=")
	assert.Equal(t, 500, resp.DelayMillis)
}

func TestUpdateCustomerKeepsPaymentStatus(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	r.PUT("/customers/:id", UpdateCustomer)

	seedCustomer(t, models.Customer{ID: "c1", Name: "Budi", Fee: 150000, Paid: true, LastPaymentDate: "2026-08-05", LastPaymentMode: models.ModeCash})

	w := doJSON(r, http.MethodPut, "/customers/c1", gin.H{"name": "Budi Santoso", "fee": 175000})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Customer
	require.NoError(t, database.DB.First(&updated, "id = ?", "c1").Error)
	assert.Equal(t, "Budi Santoso", updated.Name)
	assert.Equal(t, 175000.0, updated.Fee)
	assert.True(t, updated.Paid)
	assert.Equal(t, "2026-08-05", updated.LastPaymentDate)
}
