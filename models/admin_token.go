package models

import "time"

// AdminToken is a revocable bearer credential issued at login. Expired rows
// are deleted lazily on first use.
type AdminToken struct {
	Token     string    `gorm:"primaryKey;type:CHAR(64)" json:"token"`
	Username  string    `gorm:"type:VARCHAR(255);not null" json:"username"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t *AdminToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
