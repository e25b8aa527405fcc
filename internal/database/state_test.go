package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sirekap-dgn/internal/models"
)

func openTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection only: every new :memory: connection would be a
	// fresh empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Transaction{},
		&models.RepairTicket{},
		&models.ChatConversation{},
		&models.Message{},
		&models.VpnAccount{},
		&models.CompanyProfile{},
		&models.DashboardSettings{},
	))

	DB = db
}

func TestExportImportRoundTrip(t *testing.T) {
	openTestDB(t)

	require.NoError(t, DB.Create(&models.Customer{ID: "c1", Name: "Budi", Fee: 150000, Paid: true}).Error)
	require.NoError(t, DB.Create(&models.Transaction{ID: "t1", Date: "2026-08-01", Description: "Iuran", Amount: 150000, Type: models.TransactionIncome}).Error)
	require.NoError(t, DB.Create(&models.ChatConversation{
		ID: "ch1", CustomerName: "Budi", CustomerPhone: "0812", Status: models.ChatOpen, LastUpdate: "2026-08-01T00:00:00Z",
		Messages: []models.Message{{ID: "m1", Text: "halo", Sender: "customer", Timestamp: "2026-08-01T00:00:00Z"}},
	}).Error)

	state, err := ExportState()
	require.NoError(t, err)
	require.Len(t, state.Customers, 1)
	require.Len(t, state.Transactions, 1)
	require.Len(t, state.ChatConversations, 1)
	require.Len(t, state.ChatConversations[0].Messages, 1, "export must carry nested messages")

	// Wipe and restore into a second empty database
	openTestDB(t)
	require.NoError(t, ImportState(state))

	restored, err := ExportState()
	require.NoError(t, err)
	assert.Equal(t, state.Customers, restored.Customers)
	assert.Equal(t, state.Transactions, restored.Transactions)
	require.Len(t, restored.ChatConversations, 1)
	assert.Len(t, restored.ChatConversations[0].Messages, 1)
}

func TestImportStateOverwritesExistingData(t *testing.T) {
	openTestDB(t)

	require.NoError(t, DB.Create(&models.Customer{ID: "old", Name: "Lama"}).Error)
	require.NoError(t, DB.Create(&models.Transaction{ID: "told", Date: "2020-01-01", Description: "lama", Amount: 1, Type: models.TransactionExpense}).Error)

	state := StatePayload{
		Customers:         []models.Customer{{ID: "new", Name: "Baru"}},
		CompanyProfile:    models.DefaultCompanyProfile(),
		DashboardSettings: models.DefaultDashboardSettings(),
	}
	require.NoError(t, ImportState(state))

	var customers []models.Customer
	require.NoError(t, DB.Find(&customers).Error)
	require.Len(t, customers, 1)
	assert.Equal(t, "new", customers[0].ID)

	// Restore means full overwrite: nothing old survives
	var txCount int64
	DB.Model(&models.Transaction{}).Count(&txCount)
	assert.Zero(t, txCount)
}

func TestSingletonFallbacks(t *testing.T) {
	openTestDB(t)

	profile := GetCompanyProfile()
	assert.Equal(t, "Sirekap DGN", profile.Name)

	settings := GetDashboardSettings()
	assert.True(t, settings.ShowSummary)
	assert.Equal(t, "light", settings.Theme)
	assert.False(t, settings.EnableTelegramNotifications)
}
