package paymentControllers

import (
	"log"
	"math"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"

	"github.com/luxemarket/storefront-api/config"
	"github.com/luxemarket/storefront-api/payments"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type createIntentRequest struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	OrderID       string  `json:"orderId"`
	CustomerEmail string  `json:"customerEmail"`
	Description   string  `json:"description"`
}

// CreateStripeIntent opens a PaymentIntent for the cart total and hands the
// client secret back to the storefront.
func CreateStripeIntent(gw payments.StripeGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		if req.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		if !emailPattern.MatchString(req.CustomerEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
			return
		}

		orderID := req.OrderID
		if orderID == "" {
			orderID = uuid.NewString()
		}
		description := req.Description
		if description == "" {
			description = "Order " + orderID
		}

		pi, err := gw.CreateIntent(int64(math.Round(req.Amount*100)), req.Currency, description, req.CustomerEmail, orderID)
		if err != nil {
			log.Printf("❌ Stripe error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"clientSecret":    pi.ClientSecret,
			"paymentIntentId": pi.ID,
		})
	}
}

// ConfirmStripePayment reports the state of a PaymentIntent to the
// storefront after the redirect back from Stripe.
func ConfirmStripePayment(gw payments.StripeGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PaymentIntentID string `json:"paymentIntentId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.PaymentIntentID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment intent ID required"})
			return
		}

		pi, err := gw.GetIntent(req.PaymentIntentID)
		if err != nil {
			log.Printf("❌ Stripe confirmation error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm payment"})
			return
		}

		if pi.Status != stripe.PaymentIntentStatusSucceeded {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Payment " + string(pi.Status),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"transactionId": pi.ID,
			"amount":        float64(pi.Amount) / 100,
			"currency":      pi.Currency,
			"message":       "Payment successful",
		})
	}
}

// StripeConfig exposes the publishable key the browser needs to mount
// Stripe Elements.
func StripeConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.StripePublishableKey == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe publishable key not configured"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"publishableKey": cfg.StripePublishableKey})
	}
}
