package handlers

import (
	"net/http"

	"sirekap-dgn/internal/database"
	"sirekap-dgn/internal/models"
	"sirekap-dgn/internal/utils"

	"github.com/gin-gonic/gin"
)

const appVersion = "1.0.0"

// GetSystemStatus feeds the settings page its about box: version, the
// device fingerprint and how much data lives in each table.
func GetSystemStatus(c *gin.Context) {
	counts := gin.H{}
	for name, model := range map[string]interface{}{
		"customers":     &models.Customer{},
		"transactions":  &models.Transaction{},
		"repairTickets": &models.RepairTicket{},
		"chats":         &models.ChatConversation{},
		"vpnAccounts":   &models.VpnAccount{},
	} {
		var count int64
		database.DB.Model(model).Count(&count)
		counts[name] = count
	}

	c.JSON(http.StatusOK, gin.H{
		"version":  appVersion,
		"deviceId": utils.GetDeviceID(),
		"counts":   counts,
	})
}
