package database

import (
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sirekap-dgn/internal/models"
)

var DB *gorm.DB

// Connect opens the local data file (or MySQL when DB_DRIVER=mysql),
// syncs the schema and seeds the default admin account.
func Connect() {
	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DB_DSN")

	var err error

	switch driver {
	case "mysql":
		if dsn == "" {
			log.Fatal("❌ Error: DB_DRIVER=mysql requires DB_DSN in .env")
		}
		// Wait for MySQL to be ready
		for i := 0; i < 5; i++ {
			DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
				Logger: logger.Default.LogMode(logger.Warn),
			})
			if err == nil {
				break
			}
			log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
			time.Sleep(2 * time.Second)
		}
	default:
		// Single-machine install: everything lives in one local file,
		// the same way the old dashboard kept everything in the browser.
		if dsn == "" {
			dsn = "sirekap.db"
		}
		DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}

	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("✅ Successfully connected to the database!")

	err = DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Transaction{},
		&models.RepairTicket{},
		&models.ChatConversation{},
		&models.Message{},
		&models.VpnAccount{},
		&models.CompanyProfile{},
		&models.DashboardSettings{},
	)
	if err != nil {
		log.Fatal("Failed to sync database schema:", err)
	}

	log.Println("✅ Database Schema Synced!")

	seedDefaultAdmin()
}

// seedDefaultAdmin creates the admin/admin account a fresh install logs in
// with, matching what first-run installs have always done.
func seedDefaultAdmin() {
	var count int64
	DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Warning: could not hash default admin password:", err)
		return
	}

	admin := models.User{
		ID:           "1",
		Username:     "admin",
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Println("Warning: could not seed default admin user:", err)
		return
	}
	log.Println("⚠️ Default user 'admin' created with password 'admin'. Change it after first login!")
}
