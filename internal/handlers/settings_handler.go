package handlers

import (
	"net/http"

	"sirekap-dgn/internal/database"
	"sirekap-dgn/internal/models"
	"sirekap-dgn/internal/notify"

	"github.com/gin-gonic/gin"
)

// --- GET: The company profile singleton ---
func GetCompanyProfile(c *gin.Context) {
	c.JSON(http.StatusOK, database.GetCompanyProfile())
}

// --- PUT: Replace the company profile ---
func UpdateCompanyProfile(c *gin.Context) {
	var profile models.CompanyProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	// There is exactly one profile row, whatever id the body carried
	profile.ID = 1
	if err := database.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save company profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// --- GET: Dashboard settings singleton ---
func GetDashboardSettings(c *gin.Context) {
	c.JSON(http.StatusOK, database.GetDashboardSettings())
}

// --- PUT: Replace the dashboard settings ---
func UpdateDashboardSettings(c *gin.Context) {
	var settings models.DashboardSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if settings.Theme != "dark" {
		settings.Theme = "light"
	}

	// The backup timestamp is maintained by the backup flow, not the form
	settings.ID = 1
	settings.LastBackupTimestamp = database.GetDashboardSettings().LastBackupTimestamp

	if err := database.DB.Save(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

type TelegramTestRequest struct {
	BotToken string `json:"botToken" binding:"required"`
	ChatID   string `json:"chatId" binding:"required"`
}

// --- POST: Save Telegram credentials and send a test message ---
// The settings page wants one button that proves the bot token and chat id
// actually work before notifications are trusted.
func TestTelegram(c *gin.Context) {
	var req TelegramTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := notify.Send(req.BotToken, req.ChatID, "✅ Notifikasi Telegram dari dasbor Anda sudah aktif!"); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gagal mengirim pesan uji. Periksa token dan chat ID."})
		return
	}

	// The credentials work, keep them
	settings := database.GetDashboardSettings()
	settings.TelegramBotToken = req.BotToken
	settings.TelegramChatID = req.ChatID
	settings.ID = 1
	if err := database.DB.Save(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pesan uji terkirim!"})
}
