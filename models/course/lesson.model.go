package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lesson represents a video lesson within a course
type Lesson struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    string    `gorm:"type:uuid;index;not null" json:"course_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	VideoURL    string    `json:"video_url"`
	Duration    string    `json:"duration"`
	OrderIndex  int       `gorm:"default:0" json:"order_index"` // display rank within the course, not unique
	IsDeleted   bool      `gorm:"default:false" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// LessonCompletion tracks which lessons a user has watched in a course
type LessonCompletion struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"user_id"`
	CourseID  string    `gorm:"type:uuid;index;not null" json:"course_id"`
	LessonID  string    `gorm:"type:uuid;index;not null" json:"lesson_id"`
	IsDeleted bool      `gorm:"default:false" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (lc *LessonCompletion) BeforeCreate(tx *gorm.DB) error {
	if lc.ID == "" {
		lc.ID = uuid.NewString()
	}
	return nil
}
