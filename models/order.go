package models

import (
	"encoding/json"
	"time"
)

type OrderStatus string
type PaymentMethod string

const (
	OrderStatusPending  OrderStatus = "pending"  // Created, awaiting gateway confirmation
	OrderStatusPlaced   OrderStatus = "placed"   // Accepted without online payment (manual)
	OrderStatusPaid     OrderStatus = "paid"     // Gateway confirmed the charge
	OrderStatusFailed   OrderStatus = "failed"   // Charge attempt failed
	OrderStatusRefunded OrderStatus = "refunded" // Money returned to customer

	PaymentMethodStripe PaymentMethod = "stripe"
	PaymentMethodPayPal PaymentMethod = "paypal"
	PaymentMethodManual PaymentMethod = "manual"
)

// Order rows are immutable once written except for Status, which webhook
// and admin handlers advance. Items and customer are stored as JSON text,
// matching what the storefront submits.
type Order struct {
	ID              string        `gorm:"primaryKey;type:VARCHAR(64)" json:"id"`
	ItemsJSON       string        `gorm:"column:items_json;not null" json:"-"`
	Total           float64       `gorm:"not null" json:"total"`
	CustomerJSON    string        `gorm:"column:customer_json;not null" json:"-"`
	PaymentMethod   PaymentMethod `gorm:"type:VARCHAR(20);not null" json:"paymentMethod"`
	PaymentIntentID string        `gorm:"type:VARCHAR(255);index" json:"paymentIntentId,omitempty"`
	Status          OrderStatus   `gorm:"type:VARCHAR(32);not null;default:'pending'" json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// OrderItem is the wire shape of a cart line; it is serialized into
// Order.ItemsJSON rather than stored as its own table.
type OrderItem struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Customer is the checkout contact block serialized into Order.CustomerJSON.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
}

// Items decodes the serialized cart lines. A broken payload decodes to an
// empty slice rather than failing a read path.
func (o *Order) Items() []OrderItem {
	var items []OrderItem
	if err := json.Unmarshal([]byte(o.ItemsJSON), &items); err != nil {
		return []OrderItem{}
	}
	return items
}

func (o *Order) Customer() Customer {
	var cust Customer
	_ = json.Unmarshal([]byte(o.CustomerJSON), &cust)
	return cust
}
