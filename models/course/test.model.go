package course

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Test is a course quiz with an ordered list of questions
type Test struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID     string     `gorm:"type:uuid;index;not null" json:"course_id"`
	Title        string     `gorm:"not null" json:"title"`
	PassingScore int        `gorm:"default:70" json:"passing_score"` // percent, 0-100
	Questions    []Question `gorm:"foreignKey:TestID" json:"questions"`
	IsDeleted    bool       `gorm:"default:false" json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (t *Test) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Question is a multiple-choice question; CorrectAnswer indexes into Options.
type Question struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	TestID        string         `gorm:"type:uuid;index;not null" json:"test_id"`
	Prompt        string         `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSON `gorm:"not null" json:"options"` // JSON array of strings
	CorrectAnswer int            `gorm:"not null" json:"correct_answer"`
	OrderIndex    int            `gorm:"default:0" json:"order_index"`
	IsDeleted     bool           `gorm:"default:false" json:"-"`
	CreatedAt     time.Time      `json:"createdAt"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// Score grades submitted answers against the test's questions, in order.
// Each entry is the chosen option index; nil means unanswered and never
// matches. score is the rounded percentage of correct answers.
func (t *Test) Score(answers []*int) (score int, passed bool) {
	total := len(t.Questions)
	if total == 0 {
		return 0, false
	}

	correct := 0
	for i, q := range t.Questions {
		if i < len(answers) && answers[i] != nil && *answers[i] == q.CorrectAnswer {
			correct++
		}
	}

	score = int(math.Round(float64(correct) / float64(total) * 100))
	passed = score >= t.PassingScore
	return score, passed
}
