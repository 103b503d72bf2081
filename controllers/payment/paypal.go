package paymentControllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luxemarket/storefront-api/config"
	"github.com/luxemarket/storefront-api/payments"
)

type createPayPalRequest struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	OrderID       string  `json:"orderId"`
	CustomerEmail string  `json:"customerEmail"`
	ReturnURL     string  `json:"returnUrl"`
	CancelURL     string  `json:"cancelUrl"`
}

// CreatePayPalPayment opens a PayPal order and returns the approval URL
// the storefront redirects the buyer to.
func CreatePayPalPayment(gw payments.PayPalGateway, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createPayPalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		if req.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}

		baseURL := cfg.ClientURL
		if baseURL == "" {
			scheme := "http"
			if c.Request.TLS != nil {
				scheme = "https"
			}
			baseURL = scheme + "://" + c.Request.Host
		}
		returnURL := req.ReturnURL
		if returnURL == "" {
			returnURL = baseURL + "/checkout?status=success"
		}
		cancelURL := req.CancelURL
		if cancelURL == "" {
			cancelURL = baseURL + "/checkout?status=cancelled"
		}

		id, approvalURL, err := gw.CreateOrder(c.Request.Context(), req.Amount, req.Currency, req.OrderID, returnURL, cancelURL)
		if err != nil {
			log.Printf("❌ PayPal error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create PayPal payment"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"paymentId":   id,
			"approvalUrl": approvalURL,
		})
	}
}

// ExecutePayPalPayment captures an approved PayPal order. The legacy
// payerId field is still accepted but the capture only needs the order id.
func ExecutePayPalPayment(gw payments.PayPalGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PaymentID string `json:"paymentId"`
			PayerID   string `json:"payerId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.PaymentID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment ID required"})
			return
		}

		capture, err := gw.CaptureOrder(c.Request.Context(), req.PaymentID)
		if err != nil {
			log.Printf("❌ PayPal execution error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to execute payment"})
			return
		}

		if capture.Status != "COMPLETED" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment " + capture.Status})
			return
		}

		resp := gin.H{
			"success":       true,
			"transactionId": capture.ID,
			"message":       "Payment successful",
		}
		if len(capture.PurchaseUnits) > 0 {
			if pu := capture.PurchaseUnits[0].Payments; pu != nil && len(pu.Captures) > 0 && pu.Captures[0].Amount != nil {
				resp["amount"] = pu.Captures[0].Amount.Value
				resp["currency"] = pu.Captures[0].Amount.Currency
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}
