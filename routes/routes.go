package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luxemarket/storefront-api/config"
	"github.com/luxemarket/storefront-api/mailer"
	"github.com/luxemarket/storefront-api/middleware"
	"github.com/luxemarket/storefront-api/payments"
)

// SetupRoutes wires every API group onto the engine: catalog, checkout,
// payments, webhooks, and the admin surface.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, stripeGW payments.StripeGateway, paypalGW payments.PayPalGateway, mail *mailer.Mailer) {
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	api := r.Group("/api")
	api.Use(middleware.GeneralLimiter())

	requireAdmin := middleware.RequireAdmin(db, cfg)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": cfg.Env,
		})
	})

	SetupProductRoutes(api, db, requireAdmin)
	SetupOrderRoutes(api, db, cfg, stripeGW, requireAdmin)
	SetupPaymentRoutes(api, db, cfg, stripeGW, paypalGW, mail)
	SetupMessageRoutes(api, db, requireAdmin)
}
