package models

import (
	"time"
)

// RevokedToken blacklists JWTs that were logged out before expiry.
// Rows past ExpiresAt are garbage; the token itself is stored hashed.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TokenHash string    `gorm:"type:varchar(64);unique;not null" json:"-"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
