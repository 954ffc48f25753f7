package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course difficulty levels
const (
	LevelBeginner     = "BEGINNER"
	LevelIntermediate = "INTERMEDIATE"
	LevelAdvanced     = "ADVANCED"
)

// Course represents a learning course
type Course struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Instructor  string    `json:"instructor"`
	Price       float64   `gorm:"default:0" json:"price"`
	Duration    string    `json:"duration"` // e.g. "8 weeks"
	Level       string    `gorm:"type:varchar(20);default:'BEGINNER'" json:"level"`
	ImageURL    string    `json:"image_url"`
	IsDeleted   bool      `gorm:"default:false" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
