package messageControllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luxemarket/storefront-api/models"
)

type createMessageRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// CreateMessage stores a contact-form submission. Public. Ids are
// generated server-side when the form did not send one.
func CreateMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message payload"})
			return
		}
		if req.Email == "" || req.Subject == "" || req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message payload"})
			return
		}

		id := req.ID
		if id == "" {
			id = fmt.Sprintf("MSG-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
		}

		msg := models.Message{
			ID:      id,
			Name:    req.Name,
			Email:   req.Email,
			Subject: req.Subject,
			Message: req.Message,
			Status:  "new",
		}
		if err := db.Create(&msg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "messageId": msg.ID})
	}
}

// GetAllMessages lists contact messages newest first. Admin only.
func GetAllMessages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var messages []models.Message
		if err := db.Order("created_at DESC").Find(&messages).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": messages})
	}
}
