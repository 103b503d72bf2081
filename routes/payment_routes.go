package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luxemarket/storefront-api/config"
	paymentControllers "github.com/luxemarket/storefront-api/controllers/payment"
	"github.com/luxemarket/storefront-api/mailer"
	"github.com/luxemarket/storefront-api/middleware"
	"github.com/luxemarket/storefront-api/payments"
)

// SetupPaymentRoutes wires the gateway endpoints and the inbound webhooks.
// Webhooks are signature-verified, not rate limited.
func SetupPaymentRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config, stripeGW payments.StripeGateway, paypalGW payments.PayPalGateway, mail *mailer.Mailer) {
	api.GET("/config/stripe", paymentControllers.StripeConfig(cfg))

	pay := api.Group("/payments")
	pay.Use(middleware.PaymentLimiter())
	{
		pay.POST("/stripe/create-intent", paymentControllers.CreateStripeIntent(stripeGW))
		pay.POST("/stripe/confirm", paymentControllers.ConfirmStripePayment(stripeGW))
		pay.POST("/paypal/create", paymentControllers.CreatePayPalPayment(paypalGW, cfg))
		pay.POST("/paypal/execute", paymentControllers.ExecutePayPalPayment(paypalGW))
	}

	hooks := api.Group("/webhooks")
	{
		hooks.POST("/stripe", paymentControllers.StripeWebhook(db, stripeGW, mail))
		hooks.POST("/paypal", paymentControllers.PayPalWebhook(db, paypalGW))
	}
}
