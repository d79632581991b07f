package models

import "time"

// GuestSession identifies an anonymous shopper. Its token keys the guest's
// cart until a login merges it into the user's cart.
type GuestSession struct {
	Token     string    `gorm:"primaryKey" json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
