package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luxemarket/storefront-api/auth"
	"github.com/luxemarket/storefront-api/config"
	orderControllers "github.com/luxemarket/storefront-api/controllers/order"
	"github.com/luxemarket/storefront-api/middleware"
	"github.com/luxemarket/storefront-api/payments"
)

// SetupOrderRoutes wires checkout, order lookup, admin login and the admin
// order surface (list, status updates, export, live feed).
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config, stripeGW payments.StripeGateway, requireAdmin gin.HandlerFunc) {
	orders := api.Group("/orders")
	{
		orders.POST("", middleware.PaymentLimiter(), orderControllers.CreateOrder(db, stripeGW))
		orders.GET("/:orderID", orderControllers.GetOrder(db))
	}

	admin := api.Group("/admin")
	{
		admin.POST("/login", middleware.AuthLimiter(), auth.LoginHandler(db, cfg))
		admin.GET("/orders", requireAdmin, orderControllers.GetAllOrders(db))
		admin.PUT("/orders/:orderID/status", requireAdmin, orderControllers.UpdateOrderStatus(db))
		admin.GET("/orders/export", requireAdmin, orderControllers.ExportOrdersToExcel(db))
		// Browsers cannot set an Authorization header on a websocket
		// handshake, so RequireAdmin also accepts ?token=.
		admin.GET("/orders/ws", requireAdmin, orderControllers.OrderFeed)
	}
}
