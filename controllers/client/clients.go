package clientControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luxemarket/storefront-api/models"
)

// GetAllClients lists the per-customer rollups, most recent buyer first.
// Admin only.
func GetAllClients(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var clients []models.Client
		if err := db.Order("last_order_at DESC").Find(&clients).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load clients"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"clients": clients})
	}
}
