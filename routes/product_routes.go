package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/luxemarket/storefront-api/controllers/product"
)

// SetupProductRoutes exposes the catalog. Reads are public, writes require
// an admin token.
func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB, requireAdmin gin.HandlerFunc) {
	products := api.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.POST("", requireAdmin, productcontroller.CreateProduct(db))
		products.PUT("/:id", requireAdmin, productcontroller.UpdateProduct(db))
		products.DELETE("/:id", requireAdmin, productcontroller.DeleteProduct(db))
	}
}
