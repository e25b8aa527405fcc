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

func TestAddRepairTicketStartsFresh(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	r.POST("/repairs", AddRepairTicket)

	// The form tries to smuggle in a finished ticket; intake overrides it
	w := doJSON(r, http.MethodPost, "/repairs", gin.H{
		"customerName":  "Budi",
		"description":   "WiFi mati total",
		"status":        "Selesai",
		"completedDate": "2026-01-01",
		"receivedDate":  "2020-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var ticket models.RepairTicket
	decodeBody(t, w, &ticket)
	assert.Equal(t, models.RepairNew, ticket.Status)
	assert.Empty(t, ticket.CompletedDate)
	assert.Equal(t, time.Now().Format("2006-01-02"), ticket.ReceivedDate)
}

func TestCompletedDateFollowsStatus(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	r.PUT("/repairs/:id", UpdateRepairTicket)

	ticket := models.RepairTicket{
		ID:           "r1",
		ReceivedDate: "2026-08-01",
		CustomerName: "Budi",
		Description:  "WiFi mati total",
		Status:       models.RepairInProgress,
	}
	require.NoError(t, database.DB.Create(&ticket).Error)

	// Completing the job stamps today's date
	w := doJSON(r, http.MethodPut, "/repairs/r1", gin.H{
		"customerName": "Budi", "description": "WiFi mati total", "status": "Selesai",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.RepairTicket
	require.NoError(t, database.DB.First(&updated, "id = ?", "r1").Error)
	assert.Equal(t, models.RepairCompleted, updated.Status)
	assert.Equal(t, time.Now().Format("2006-01-02"), updated.CompletedDate)

	// Reopening the job clears the date again
	w = doJSON(r, http.MethodPut, "/repairs/r1", gin.H{
		"customerName": "Budi", "description": "WiFi mati total", "status": "Dalam Pengerjaan",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, database.DB.First(&updated, "id = ?", "r1").Error)
	assert.Empty(t, updated.CompletedDate)
}

func TestUpdateRepairTicketRejectsUnknownStatus(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	r.PUT("/repairs/:id", UpdateRepairTicket)

	require.NoError(t, database.DB.Create(&models.RepairTicket{
		ID: "r1", ReceivedDate: "2026-08-01", CustomerName: "Budi", Description: "x", Status: models.RepairNew,
	}).Error)

	w := doJSON(r, http.MethodPut, "/repairs/r1", gin.H{
		"customerName": "Budi", "description": "x", "status": "Menunggu",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
