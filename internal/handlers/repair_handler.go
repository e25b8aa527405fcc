package handlers

import (
	"net/http"
	"time"

	"sirekap-dgn/internal/database"
	"sirekap-dgn/internal/models"
	"sirekap-dgn/internal/utils"

	"github.com/gin-gonic/gin"
)

// --- GET: List all repair tickets ---
func GetRepairTickets(c *gin.Context) {
	var tickets []models.RepairTicket

	if err := database.DB.Order("received_date desc, id desc").Find(&tickets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch repair tickets"})
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// --- POST: Intake a new repair job ---
func AddRepairTicket(c *gin.Context) {
	var ticket models.RepairTicket

	if err := c.ShouldBindJSON(&ticket); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if ticket.CustomerName == "" || ticket.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nama pelanggan dan deskripsi harus diisi."})
		return
	}

	// Intake always starts the ticket fresh, whatever the form sent
	ticket.ID = utils.NewID()
	ticket.ReceivedDate = time.Now().Format("2006-01-02")
	ticket.Status = models.RepairNew
	ticket.CompletedDate = ""

	if err := database.DB.Create(&ticket).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create repair ticket"})
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// --- PUT: Update a repair ticket ---
func UpdateRepairTicket(c *gin.Context) {
	id := c.Param("id")

	var existing models.RepairTicket
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Repair ticket not found"})
		return
	}

	var ticket models.RepairTicket
	if err := c.ShouldBindJSON(&ticket); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	switch ticket.Status {
	case models.RepairNew, models.RepairInProgress, models.RepairCompleted:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status tidak valid."})
		return
	}

	ticket.ID = existing.ID
	ticket.ReceivedDate = existing.ReceivedDate

	// A completion date exists exactly while the ticket is "Selesai".
	// Reopening the ticket clears it again.
	if ticket.Status == models.RepairCompleted {
		if ticket.CompletedDate == "" {
			ticket.CompletedDate = time.Now().Format("2006-01-02")
		}
	} else {
		ticket.CompletedDate = ""
	}

	if err := database.DB.Save(&ticket).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update repair ticket"})
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// --- DELETE: Remove a repair ticket ---
func DeleteRepairTicket(c *gin.Context) {
	id := c.Param("id")

	if err := database.DB.Delete(&models.RepairTicket{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete repair ticket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Repair ticket deleted successfully"})
}
