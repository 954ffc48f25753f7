package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent    = "STUDENT"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER-ADMIN" // seeded distinguished admin, exempt from approval
)

type User struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string    `gorm:"unique;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	FirstName  string    `gorm:"default:''" json:"firstName"`
	LastName   string    `gorm:"default:''" json:"lastName"`
	Role       string    `gorm:"default:'STUDENT'" json:"role"`
	IsApproved bool      `gorm:"default:false" json:"isApproved"` // only meaningful for ADMIN accounts
	Avatar     string    `gorm:"default:''" json:"avatar"`
	LastLogin  time.Time `gorm:"default:NULL" json:"lastLogin"`
	IsDeleted  bool      `gorm:"default:false" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
