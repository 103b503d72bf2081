package models

import "time"

// WebhookEvent is the idempotency ledger for gateway webhooks. A delivery
// whose event id is already recorded is acknowledged but not reprocessed.
type WebhookEvent struct {
	EventID     string    `gorm:"primaryKey;type:VARCHAR(128)" json:"eventId"`
	EventType   string    `gorm:"type:VARCHAR(64);index" json:"eventType"`
	ProcessedAt time.Time `json:"processedAt"`
	CreatedAt   time.Time `json:"-"`
}
