package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sirekap-dgn/internal/database"
	"sirekap-dgn/internal/models"
)

func TestAddChatConversationWithFirstMessage(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	r.POST("/chats", AddChatConversation)

	w := doJSON(r, http.MethodPost, "/chats", gin.H{
		"customerName":  "Budi",
		"customerPhone": "081234567890",
		"message":       "Internet saya lambat",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var conversation models.ChatConversation
	decodeBody(t, w, &conversation)
	assert.Equal(t, models.ChatOpen, conversation.Status)
	assert.NotEmpty(t, conversation.LastUpdate)
	require.Len(t, conversation.Messages, 1)
	assert.Equal(t, "customer", conversation.Messages[0].Sender)
}

func TestAddChatMessageBumpsLastUpdate(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	r.POST("/chats/:id/messages", AddChatMessage)

	conversation := models.ChatConversation{
		ID: "ch1", CustomerName: "Budi", CustomerPhone: "0812",
		Status: models.ChatOpen, LastUpdate: "2026-01-01T00:00:00Z",
	}
	require.NoError(t, database.DB.Create(&conversation).Error)

	w := doJSON(r, http.MethodPost, "/chats/ch1/messages", gin.H{
		"text": "Sudah dicoba restart router?", "sender": "assistant",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var reloaded models.ChatConversation
	require.NoError(t, database.DB.Preload("Messages").First(&reloaded, "id = ?", "ch1").Error)
	require.Len(t, reloaded.Messages, 1)
	assert.NotEqual(t, "2026-01-01T00:00:00Z", reloaded.LastUpdate)

	// Unknown senders are rejected
	w = doJSON(r, http.MethodPost, "/chats/ch1/messages", gin.H{"text": "hi", "sender": "bot"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateChatConversationCreatesWhenMissing(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	r.PUT("/chats/:id", UpdateChatConversation)

	w := doJSON(r, http.MethodPut, "/chats/ch-baru", gin.H{
		"customerName": "Budi", "customerPhone": "081234567890", "status": "Buka",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.ChatConversation
	require.NoError(t, database.DB.First(&created, "id = ?", "ch-baru").Error)
	assert.Equal(t, "Budi", created.CustomerName)
	assert.Equal(t, models.ChatOpen, created.Status)
	assert.NotEmpty(t, created.LastUpdate)
}

func TestUpdateChatConversationRefreshesLastUpdate(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	r.PUT("/chats/:id", UpdateChatConversation)

	conversation := models.ChatConversation{
		ID: "ch1", CustomerName: "Budi", CustomerPhone: "0812",
		Status: models.ChatOpen, LastUpdate: "2026-01-01T00:00:00Z",
	}
	require.NoError(t, database.DB.Create(&conversation).Error)

	w := doJSON(r, http.MethodPut, "/chats/ch1", gin.H{"status": "Selesai"})
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.ChatConversation
	require.NoError(t, database.DB.First(&reloaded, "id = ?", "ch1").Error)
	assert.Equal(t, models.ChatClosed, reloaded.Status)
	assert.NotEqual(t, "2026-01-01T00:00:00Z", reloaded.LastUpdate)

	// Unknown statuses are still rejected
	w = doJSON(r, http.MethodPut, "/chats/ch1", gin.H{"status": "Ditunda"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatMessagesOrderedByAppendTime(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	r.GET("/chats", GetChatConversations)

	conversation := models.ChatConversation{
		ID: "ch1", CustomerName: "Budi", CustomerPhone: "0812",
		Status: models.ChatOpen, LastUpdate: "2026-01-01T00:00:00Z",
	}
	require.NoError(t, database.DB.Create(&conversation).Error)

	// Insert out of chronological order on purpose
	require.NoError(t, database.DB.Create(&models.Message{
		ID: "m2", ConversationID: "ch1", Text: "kedua", Sender: "assistant", Timestamp: "2026-01-01T00:02:00Z",
	}).Error)
	require.NoError(t, database.DB.Create(&models.Message{
		ID: "m1", ConversationID: "ch1", Text: "pertama", Sender: "customer", Timestamp: "2026-01-01T00:01:00Z",
	}).Error)

	w := doJSON(r, http.MethodGet, "/chats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var conversations []models.ChatConversation
	decodeBody(t, w, &conversations)
	require.Len(t, conversations, 1)
	require.Len(t, conversations[0].Messages, 2)
	assert.Equal(t, "pertama", conversations[0].Messages[0].Text)
	assert.Equal(t, "kedua", conversations[0].Messages[1].Text)
}

func TestSendChatReplyReturnsWhatsAppLink(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	r.POST("/chats/:id/send", SendChatReply)

	conversation := models.ChatConversation{
		ID: "ch1", CustomerName: "Budi", CustomerPhone: "081234567890",
		Status: models.ChatOpen, LastUpdate: "2026-01-01T00:00:00Z",
	}
	require.NoError(t, database.DB.Create(&conversation).Error)

	w := doJSON(r, http.MethodPost, "/chats/ch1/send", gin.H{"text": "Baik, teknisi segera ke lokasi."})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message models.Message `json:"message"`
		Link    string         `json:"link"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "assistant", resp.Message.Sender)
	assert.Contains(t, resp.Link, "https://wa.me/6281234567890?text=")
}

func TestDeleteChatConversationRemovesMessages(t *testing.T) {
	setupTestDB(t)
	r := testRouter()
	r.DELETE("/chats/:id", DeleteChatConversation)

	conversation := models.ChatConversation{
		ID: "ch1", CustomerName: "Budi", CustomerPhone: "0812",
		Status: models.ChatOpen, LastUpdate: "2026-01-01T00:00:00Z",
		Messages: []models.Message{
			{ID: "m1", Text: "halo", Sender: "customer", Timestamp: "2026-01-01T00:00:00Z"},
			{ID: "m2", Text: "siap", Sender: "assistant", Timestamp: "2026-01-01T00:01:00Z"},
		},
	}
	require.NoError(t, database.DB.Create(&conversation).Error)

	w := doJSON(r, http.MethodDelete, "/chats/ch1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var messageCount int64
	database.DB.Model(&models.Message{}).Count(&messageCount)
	assert.Zero(t, messageCount)
}

func TestDraftChatReplyNeedsConfiguration(t *testing.T) {
	setupTestDB(t)
	t.Setenv("GEMINI_API_KEY", "")

	r := testRouter()
	r.POST("/chats/:id/ai-reply", DraftChatReply)

	w := doJSON(r, http.MethodPost, "/chats/ch1/ai-reply", gin.H{"customerMessage": "halo"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
