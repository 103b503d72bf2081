package models

import "time"

// Message is a contact-form submission. Append-only.
type Message struct {
	ID        string    `gorm:"primaryKey;type:VARCHAR(64)" json:"id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"type:VARCHAR(255);not null" json:"email"`
	Subject   string    `gorm:"not null" json:"subject"`
	Message   string    `gorm:"not null" json:"message"`
	Status    string    `gorm:"type:VARCHAR(32);not null;default:'new'" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
