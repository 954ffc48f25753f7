package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Certificate is issued when a user passes a course test
type Certificate struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"type:uuid;index;not null" json:"user_id"`
	CourseID    string    `gorm:"type:uuid;index;not null" json:"course_id"`
	Number      string    `gorm:"unique" json:"certificate_number"`
	FileName    string    `json:"file_name"`
	DownloadURL string    `json:"download_url"`
	IssuedAt    time.Time `gorm:"not null" json:"issued_at"`
	IsDeleted   bool      `gorm:"default:false" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
