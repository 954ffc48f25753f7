package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentPaused    = "PAUSED"
)

// Enrollment tracks a user's enrollment in a course with progress
type Enrollment struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string     `gorm:"type:uuid;index;not null" json:"user_id"`
	CourseID    string     `gorm:"type:uuid;index;not null" json:"course_id"`
	Status      string     `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"`
	Progress    float64    `gorm:"default:0" json:"progress"` // completion percentage, 0-100
	EnrolledAt  time.Time  `gorm:"not null" json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false" json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
