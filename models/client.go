package models

import "time"

// Client is the denormalized per-customer rollup, keyed by lower-cased
// email. Aggregates are incremented inside the order transaction and never
// recomputed.
type Client struct {
	Email       string    `gorm:"primaryKey;type:VARCHAR(255)" json:"email"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	TotalOrders int       `gorm:"not null;default:0" json:"totalOrders"`
	TotalSpend  float64   `gorm:"not null;default:0" json:"totalSpend"`
	LastOrderID string    `gorm:"type:VARCHAR(64)" json:"lastOrderId,omitempty"`
	LastOrderAt time.Time `json:"lastOrderAt"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
