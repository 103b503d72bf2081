package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	clientControllers "github.com/luxemarket/storefront-api/controllers/client"
	messageControllers "github.com/luxemarket/storefront-api/controllers/message"
)

// SetupMessageRoutes wires the contact form plus the admin-only message and
// client listings.
func SetupMessageRoutes(api *gin.RouterGroup, db *gorm.DB, requireAdmin gin.HandlerFunc) {
	api.POST("/messages", messageControllers.CreateMessage(db))
	api.GET("/messages", requireAdmin, messageControllers.GetAllMessages(db))
	api.GET("/clients", requireAdmin, clientControllers.GetAllClients(db))
}
