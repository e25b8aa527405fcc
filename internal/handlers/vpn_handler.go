package handlers

import (
	"net/http"
	"time"

	"sirekap-dgn/internal/database"
	"sirekap-dgn/internal/models"
	"sirekap-dgn/internal/utils"

	"github.com/gin-gonic/gin"
)

// VPN account lifecycle labels, derived from the expiry date on every read
const (
	VpnStatusActive       = "Aktif"
	VpnStatusExpiringSoon = "Segera Berakhir"
	VpnStatusExpired      = "Kadaluarsa"
)

// VpnAccountView is an account plus its derived lifecycle status
type VpnAccountView struct {
	models.VpnAccount
	Status string `json:"status"`
}

// VpnStatusOf classifies an account: expired once the expiry date has
// passed, expiring-soon inside the last 7 days, active otherwise. An
// unparseable expiry date counts as active rather than scaring the user.
func VpnStatusOf(account models.VpnAccount, now time.Time) string {
	expiry, err := time.Parse("2006-01-02", account.ExpiryDate)
	if err != nil {
		return VpnStatusActive
	}

	today, _ := time.Parse("2006-01-02", now.Format("2006-01-02"))
	switch {
	case expiry.Before(today):
		return VpnStatusExpired
	case !expiry.After(today.AddDate(0, 0, 7)):
		return VpnStatusExpiringSoon
	default:
		return VpnStatusActive
	}
}

// --- GET: List all VPN accounts (with derived status) ---
func GetVpnAccounts(c *gin.Context) {
	var accounts []models.VpnAccount

	if err := database.DB.Order("expiry_date asc").Find(&accounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch VPN accounts"})
		return
	}

	now := time.Now()
	views := make([]VpnAccountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, VpnAccountView{VpnAccount: account, Status: VpnStatusOf(account, now)})
	}

	c.JSON(http.StatusOK, views)
}

// --- POST: Provision a new VPN account ---
func AddVpnAccount(c *gin.Context) {
	var account models.VpnAccount

	if err := c.ShouldBindJSON(&account); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if account.Username == "" || account.Server == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username dan server harus diisi."})
		return
	}

	account.ID = utils.NewID()
	// Empty password means "make me one"
	if account.Password == "" {
		account.Password = utils.GeneratePassword(8)
	}
	if account.CreationDate == "" {
		account.CreationDate = time.Now().Format("2006-01-02")
	}
	if account.Protocol == "" {
		account.Protocol = models.ProtocolOpenVPN
	}

	if err := database.DB.Create(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create VPN account"})
		return
	}

	c.JSON(http.StatusCreated, VpnAccountView{VpnAccount: account, Status: VpnStatusOf(account, time.Now())})
}

// --- PUT: Update a VPN account ---
func UpdateVpnAccount(c *gin.Context) {
	id := c.Param("id")

	var existing models.VpnAccount
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "VPN account not found"})
		return
	}

	var account models.VpnAccount
	if err := c.ShouldBindJSON(&account); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	account.ID = existing.ID
	if account.CreationDate == "" {
		account.CreationDate = existing.CreationDate
	}
	if account.Password == "" {
		account.Password = existing.Password
	}

	if err := database.DB.Save(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update VPN account"})
		return
	}

	c.JSON(http.StatusOK, VpnAccountView{VpnAccount: account, Status: VpnStatusOf(account, time.Now())})
}

// --- DELETE: Remove a VPN account ---
func DeleteVpnAccount(c *gin.Context) {
	id := c.Param("id")

	if err := database.DB.Delete(&models.VpnAccount{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete VPN account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "VPN account deleted successfully"})
}

// --- GET: A fresh random password for the account form ---
func GenerateVpnPassword(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"password": utils.GeneratePassword(8)})
}
