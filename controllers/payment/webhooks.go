package paymentControllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v81"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	orderControllers "github.com/luxemarket/storefront-api/controllers/order"
	"github.com/luxemarket/storefront-api/mailer"
	"github.com/luxemarket/storefront-api/models"
	"github.com/luxemarket/storefront-api/payments"
)

// recordWebhookEvent inserts the event id into the idempotency ledger.
// Returns false when the event was already seen.
func recordWebhookEvent(db *gorm.DB, eventID, eventType string) (bool, error) {
	if eventID == "" {
		return true, nil
	}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.WebhookEvent{
		EventID:     eventID,
		EventType:   eventType,
		ProcessedAt: time.Now().UTC(),
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// StripeWebhook verifies the signature over the raw body, dedupes the
// delivery, and applies the order-status side effect for the event type.
func StripeWebhook(db *gorm.DB, gw payments.StripeGateway, mail *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}

		event, err := gw.ConstructEvent(payload, c.GetHeader("Stripe-Signature"))
		if err != nil {
			log.Printf("❌ Stripe webhook signature error: %v", err)
			c.Status(http.StatusBadRequest)
			return
		}

		fresh, err := recordWebhookEvent(db, event.ID, string(event.Type))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
			return
		}
		if !fresh {
			c.JSON(http.StatusOK, gin.H{"received": true, "duplicate": true})
			return
		}

		switch event.Type {
		case "payment_intent.succeeded":
			var pi stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event data"})
				return
			}
			log.Printf("✅ Payment Intent Succeeded: %s", pi.ID)
			orders, err := orderControllers.MarkOrderStatusByIntent(db, pi.ID, models.OrderStatusPaid)
			if err != nil {
				log.Printf("❌ Failed to update orders for intent %s: %v", pi.ID, err)
			}
			for _, o := range orders {
				if email := o.Customer().Email; email != "" {
					// Best effort; a mail failure never fails the webhook.
					_ = mail.SendOrderConfirmation(email, o.ID)
				}
			}

		case "payment_intent.payment_failed":
			var pi stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event data"})
				return
			}
			log.Printf("❌ Payment Intent Failed: %s", pi.ID)
			if _, err := orderControllers.MarkOrderStatusByIntent(db, pi.ID, models.OrderStatusFailed); err != nil {
				log.Printf("❌ Failed to update orders for intent %s: %v", pi.ID, err)
			}

		case "charge.refunded":
			var ch stripe.Charge
			if err := json.Unmarshal(event.Data.Raw, &ch); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event data"})
				return
			}
			intentID := ""
			if ch.PaymentIntent != nil {
				intentID = ch.PaymentIntent.ID
			}
			log.Printf("💰 Refund processed for charge %s", ch.ID)
			if _, err := orderControllers.MarkOrderStatusByIntent(db, intentID, models.OrderStatusRefunded); err != nil {
				log.Printf("❌ Failed to update orders for intent %s: %v", intentID, err)
			}

		default:
			log.Printf("Unhandled Stripe event type: %s", event.Type)
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

type payPalWebhookEvent struct {
	ID        string `json:"id"`
	EventType string `json:"event_type"`
	Resource  struct {
		ID        string `json:"id"`
		InvoiceID string `json:"invoice_id"`
		Status    string `json:"status"`
	} `json:"resource"`
}

// PayPalWebhook verifies the transmission signature with the gateway, then
// moves the referenced order along its lifecycle.
func PayPalWebhook(db *gorm.DB, gw payments.PayPalGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		verified, err := gw.VerifyWebhook(c.Request.Context(), c.Request)
		if err != nil {
			log.Printf("❌ PayPal webhook verification error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
			return
		}
		if !verified {
			log.Printf("❌ PayPal webhook signature verification failed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var event payPalWebhookEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}

		fresh, err := recordWebhookEvent(db, event.ID, event.EventType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
			return
		}
		if !fresh {
			c.JSON(http.StatusOK, gin.H{"received": true, "duplicate": true})
			return
		}

		var status models.OrderStatus
		switch event.EventType {
		case "PAYMENT.CAPTURE.COMPLETED", "PAYMENT.SALE.COMPLETED":
			status = models.OrderStatusPaid
		case "PAYMENT.CAPTURE.DENIED", "PAYMENT.SALE.DENIED":
			status = models.OrderStatusFailed
		case "PAYMENT.CAPTURE.REFUNDED", "PAYMENT.SALE.REFUNDED":
			status = models.OrderStatusRefunded
		default:
			log.Printf("Unhandled PayPal event: %s", event.EventType)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		if orderID := event.Resource.InvoiceID; orderID != "" {
			res := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
			if res.Error != nil {
				log.Printf("❌ Failed to update order %s: %v", orderID, res.Error)
			}
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
