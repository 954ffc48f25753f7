package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentStatus defines the state of a course payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPartial   PaymentStatus = "PARTIAL"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
)

// Payment tracks what a student owes and has paid for a course.
// Invariant: Paid + Remaining == Amount.
type Payment struct {
	ID           string        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string        `gorm:"type:uuid;index;not null" json:"userId"`
	CourseID     string        `gorm:"type:uuid;index;not null" json:"courseId"`
	Amount       float64       `gorm:"not null" json:"amount"`
	Paid         float64       `gorm:"default:0" json:"paid"`
	Remaining    float64       `gorm:"not null" json:"remaining"`
	Status       PaymentStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	ReminderSent bool          `gorm:"default:false" json:"-"`
	IsDeleted    bool          `gorm:"default:false" json:"-"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// RoundMoney snaps an amount to cents. Installment arithmetic on
// float64 leaves sub-cent residue otherwise.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// DeriveStatus snaps Paid and Remaining to cents and recomputes
// Status from Remaining.
func (p *Payment) DeriveStatus() {
	p.Paid = RoundMoney(p.Paid)
	p.Remaining = RoundMoney(p.Remaining)
	switch {
	case p.Remaining <= 0:
		p.Status = PaymentStatusCompleted
	case p.Remaining < p.Amount:
		p.Status = PaymentStatusPartial
	default:
		p.Status = PaymentStatusPending
	}
}

func (Payment) TableName() string {
	return "payments"
}
