package orderControllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/luxemarket/storefront-api/models"
	"github.com/luxemarket/storefront-api/payments"
)

// -------- Request Structs --------

type CreateOrderRequest struct {
	Items           []models.OrderItem `json:"items"`
	Total           float64            `json:"total"`
	Customer        models.Customer    `json:"customer"`
	PaymentMethod   string             `json:"paymentMethod"`
	PaymentIntentID string             `json:"paymentIntentId"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Helpers --------

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusPlaced):
		return models.OrderStatusPlaced, nil
	case string(models.OrderStatusPaid):
		return models.OrderStatusPaid, nil
	case string(models.OrderStatusFailed):
		return models.OrderStatusFailed, nil
	case string(models.OrderStatusRefunded):
		return models.OrderStatusRefunded, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// generateOrderID produces ids like ORDER-1735689600000-a1b2c3d4,
// the format the storefront has always shown customers.
func generateOrderID() string {
	return fmt.Sprintf("ORDER-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

func orderView(o models.Order) gin.H {
	return gin.H{
		"id":              o.ID,
		"items":           o.Items(),
		"total":           o.Total,
		"customer":        o.Customer(),
		"paymentMethod":   o.PaymentMethod,
		"paymentIntentId": o.PaymentIntentID,
		"status":          o.Status,
		"createdAt":       o.CreatedAt,
	}
}

func orderSummary(o models.Order) gin.H {
	return gin.H{
		"id":            o.ID,
		"total":         o.Total,
		"customer":      o.Customer(),
		"paymentMethod": o.PaymentMethod,
		"status":        o.Status,
		"createdAt":     o.CreatedAt,
	}
}

// -------- Core Logic --------

// insertOrder writes the order row and bumps the client rollup in one
// transaction; a failure on either side rolls both back.
func insertOrder(db *gorm.DB, order *models.Order, customer models.Customer) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		email := strings.ToLower(strings.TrimSpace(customer.Email))
		if email == "" {
			return nil
		}

		client := models.Client{
			Email:       email,
			Name:        customer.Name,
			Address:     customer.Address,
			TotalOrders: 1,
			TotalSpend:  order.Total,
			LastOrderID: order.ID,
			LastOrderAt: order.CreatedAt,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "email"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"name":          customer.Name,
				"address":       customer.Address,
				"total_orders":  gorm.Expr("total_orders + 1"),
				"total_spend":   gorm.Expr("total_spend + ?", order.Total),
				"last_order_id": order.ID,
				"last_order_at": order.CreatedAt,
			}),
		}).Create(&client).Error
	})
}

// -------- Handlers --------

// CreateOrder validates the cart payload, verifies the Stripe charge when
// one is claimed, and persists the order plus the client rollup.
func CreateOrder(db *gorm.DB, stripeGW payments.StripeGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order payload"})
			return
		}

		if len(req.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order must contain items"})
			return
		}
		if req.Total <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order total"})
			return
		}
		if req.Customer.Email == "" || req.Customer.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Customer information required"})
			return
		}
		if req.PaymentMethod == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment method required"})
			return
		}

		if req.PaymentMethod == string(models.PaymentMethodStripe) {
			if req.PaymentIntentID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Payment intent ID required"})
				return
			}
			reason, err := payments.VerifyPayment(stripeGW, req.PaymentIntentID, req.Total)
			if err != nil {
				log.Printf("❌ Stripe verification error: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
				return
			}
			if reason != "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": reason})
				return
			}
		}

		itemsJSON, err := json.Marshal(req.Items)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order payload"})
			return
		}
		customerJSON, err := json.Marshal(req.Customer)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order payload"})
			return
		}

		order := models.Order{
			ID:              generateOrderID(),
			ItemsJSON:       string(itemsJSON),
			Total:           req.Total,
			CustomerJSON:    string(customerJSON),
			PaymentMethod:   models.PaymentMethod(req.PaymentMethod),
			PaymentIntentID: req.PaymentIntentID,
			Status:          models.OrderStatusPending,
			CreatedAt:       time.Now().UTC(),
		}

		if err := insertOrder(db, &order, req.Customer); err != nil {
			log.Printf("❌ Order creation error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		broadcastNewOrder(order)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"orderId": order.ID,
			"message": "Order created successfully",
			"order":   orderView(order),
		})
	}
}

// GetOrder returns a single order by its public id.
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order ID required"})
			return
		}

		var order models.Order
		if err := db.Where("id = ?", id).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": orderView(order)})
	}
}

// GetAllOrders lists every order newest first. Admin only.
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
			return
		}

		out := make([]gin.H, 0, len(orders))
		for _, o := range orders {
			out = append(out, orderSummary(o))
		}
		c.JSON(http.StatusOK, gin.H{"orders": out})
	}
}

// UpdateOrderStatus moves an order along its lifecycle. Admin only.
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order ID required"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", newStatus)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// MarkOrderStatusByIntent updates every order referencing a payment intent.
// Used by webhook handlers; best effort.
func MarkOrderStatusByIntent(db *gorm.DB, paymentIntentID string, status models.OrderStatus) ([]models.Order, error) {
	if paymentIntentID == "" {
		return nil, nil
	}
	var orders []models.Order
	if err := db.Where("payment_intent_id = ?", paymentIntentID).Find(&orders).Error; err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	if err := db.Model(&models.Order{}).
		Where("payment_intent_id = ?", paymentIntentID).
		Update("status", status).Error; err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Status = status
	}
	return orders, nil
}
