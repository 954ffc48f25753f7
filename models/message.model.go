package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	FromUserID string    `gorm:"type:uuid;index;not null" json:"fromUserId"`
	ToUserID   string    `gorm:"type:uuid;index;not null" json:"toUserId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Read       bool      `gorm:"default:false" json:"read"`
	IsDeleted  bool      `gorm:"default:false" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (Message) TableName() string {
	return "messages"
}
