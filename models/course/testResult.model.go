package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestResult records one quiz attempt. Retakes append new rows.
type TestResult struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string         `gorm:"type:uuid;index;not null" json:"user_id"`
	TestID     string         `gorm:"type:uuid;index;not null" json:"test_id"`
	CourseID   string         `gorm:"type:uuid;index;not null" json:"course_id"`
	Score      int            `gorm:"not null" json:"score"` // percent, 0-100
	Passed     bool           `gorm:"default:false" json:"passed"`
	Answers    datatypes.JSON `json:"answers"` // submitted option indices, null = unanswered
	AnsweredAt time.Time      `gorm:"not null" json:"answered_at"`
	IsDeleted  bool           `gorm:"default:false" json:"-"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func (r *TestResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
