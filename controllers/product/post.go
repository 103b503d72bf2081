package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luxemarket/storefront-api/models"
)

type productPayload struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Icon        string  `json:"icon"`
	ImageURL    string  `json:"imageUrl"`
	Description string  `json:"description"`
}

func (p *productPayload) validate() string {
	if p.Name == "" || p.Category == "" || p.Icon == "" || p.Description == "" {
		return "Missing required fields"
	}
	if p.Price <= 0 {
		return "Invalid price"
	}
	return ""
}

// CreateProduct adds a catalog row. Admin only.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload productPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product data"})
			return
		}
		if msg := payload.validate(); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		product := models.Product{
			Name:        payload.Name,
			Price:       payload.Price,
			Category:    payload.Category,
			Icon:        payload.Icon,
			ImageURL:    payload.ImageURL,
			Description: payload.Description,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"product": product})
	}
}
