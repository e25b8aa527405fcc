package handlers

import (
	"net/http"
	"os"
	"time"

	"sirekap-dgn/internal/ai"
	"sirekap-dgn/internal/database"
	"sirekap-dgn/internal/models"
	"sirekap-dgn/internal/utils"
	"sirekap-dgn/internal/wa"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// orderedMessages pins message order to append time; two messages inside
// the same second fall back to their monotonic ids
func orderedMessages(db *gorm.DB) *gorm.DB {
	return db.Order("timestamp asc, id asc")
}

// --- GET: All conversations, newest activity first ---
func GetChatConversations(c *gin.Context) {
	var conversations []models.ChatConversation

	if err := database.DB.Preload("Messages", orderedMessages).Order("last_update desc").Find(&conversations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}

	c.JSON(http.StatusOK, conversations)
}

type NewConversationRequest struct {
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerPhone string `json:"customerPhone" binding:"required"`
	Message       string `json:"message"`
}

// --- POST: Open a new conversation (optionally with a first message) ---
func AddChatConversation(c *gin.Context) {
	var req NewConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	now := time.Now().Format(time.RFC3339)
	conversation := models.ChatConversation{
		ID:            utils.NewID(),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Status:        models.ChatOpen,
		LastUpdate:    now,
		Messages:      []models.Message{},
	}
	if req.Message != "" {
		conversation.Messages = append(conversation.Messages, models.Message{
			ID:        utils.NewID(),
			Text:      req.Message,
			Sender:    "customer",
			Timestamp: now,
		})
	}

	if err := database.DB.Create(&conversation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation"})
		return
	}

	c.JSON(http.StatusCreated, conversation)
}

type ConversationUpdateRequest struct {
	CustomerName  string            `json:"customerName"`
	CustomerPhone string            `json:"customerPhone"`
	Status        models.ChatStatus `json:"status"`
}

// --- PUT: Upsert a conversation by id ---
// An unknown id creates the conversation instead of failing, and every
// call refreshes lastUpdate.
func UpdateChatConversation(c *gin.Context) {
	id := c.Param("id")

	var req ConversationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	switch req.Status {
	case models.ChatOpen, models.ChatInProgress, models.ChatClosed, "":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status tidak valid."})
		return
	}

	now := time.Now().Format(time.RFC3339)

	var conversation models.ChatConversation
	if err := database.DB.Preload("Messages", orderedMessages).First(&conversation, "id = ?", id).Error; err != nil {
		conversation = models.ChatConversation{
			ID:            id,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Status:        req.Status,
			LastUpdate:    now,
			Messages:      []models.Message{},
		}
		if conversation.Status == "" {
			conversation.Status = models.ChatOpen
		}
		if err := database.DB.Create(&conversation).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation"})
			return
		}
		c.JSON(http.StatusCreated, conversation)
		return
	}

	if req.CustomerName != "" {
		conversation.CustomerName = req.CustomerName
	}
	if req.CustomerPhone != "" {
		conversation.CustomerPhone = req.CustomerPhone
	}
	if req.Status != "" {
		conversation.Status = req.Status
	}
	conversation.LastUpdate = now
	if err := database.DB.Save(&conversation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update conversation"})
		return
	}

	c.JSON(http.StatusOK, conversation)
}

// --- DELETE: Remove a conversation and its messages ---
func DeleteChatConversation(c *gin.Context) {
	id := c.Param("id")

	if err := database.DB.Where("conversation_id = ?", id).Delete(&models.Message{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete messages"})
		return
	}
	if err := database.DB.Delete(&models.ChatConversation{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete conversation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Conversation deleted successfully"})
}

type NewMessageRequest struct {
	Text   string `json:"text" binding:"required"`
	Sender string `json:"sender" binding:"required"`
}

// --- POST: Append one message to a conversation ---
// Messages are append-only: there is no edit or delete for a single entry.
func AddChatMessage(c *gin.Context) {
	id := c.Param("id")

	var conversation models.ChatConversation
	if err := database.DB.First(&conversation, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	var req NewMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if req.Sender != "customer" && req.Sender != "assistant" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pengirim tidak valid."})
		return
	}

	now := time.Now().Format(time.RFC3339)
	message := models.Message{
		ID:             utils.NewID(),
		ConversationID: conversation.ID,
		Text:           req.Text,
		Sender:         req.Sender,
		Timestamp:      now,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
		return
	}

	conversation.LastUpdate = now
	if err := database.DB.Save(&conversation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update conversation"})
		return
	}

	c.JSON(http.StatusCreated, message)
}

type AIDraftRequest struct {
	CustomerMessage string `json:"customerMessage" binding:"required"`
}

// --- POST: Ask Gemini for a draft reply ---
// The draft lands in an editable textbox; nothing is stored until the
// operator actually sends it.
func DraftChatReply(c *gin.Context) {
	id := c.Param("id")

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Fitur AI belum dikonfigurasi (GEMINI_API_KEY)."})
		return
	}

	var conversation models.ChatConversation
	if err := database.DB.Preload("Messages", orderedMessages).First(&conversation, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	var req AIDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	companyName := database.GetCompanyProfile().Name
	draft, err := ai.GenerateChatReply(c.Request.Context(), apiKey, companyName, conversation.Messages, req.CustomerMessage)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gagal membuat draf balasan AI."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

type SendReplyRequest struct {
	Text string `json:"text" binding:"required"`
}

// --- POST: Record the reply and hand back the WhatsApp link ---
func SendChatReply(c *gin.Context) {
	id := c.Param("id")

	var conversation models.ChatConversation
	if err := database.DB.First(&conversation, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	var req SendReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	now := time.Now().Format(time.RFC3339)
	message := models.Message{
		ID:             utils.NewID(),
		ConversationID: conversation.ID,
		Text:           req.Text,
		Sender:         "assistant",
		Timestamp:      now,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
		return
	}

	conversation.LastUpdate = now
	if err := database.DB.Save(&conversation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update conversation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"link":    wa.Link(conversation.CustomerPhone, req.Text),
	})
}
