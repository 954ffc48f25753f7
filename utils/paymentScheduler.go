package utils

import (
	"log"
	"time"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/robfig/cron/v3"
)

// InitializePaymentScheduler sets up the outstanding-payment reminder job
func InitializePaymentScheduler() {
	log.Println("[PAYMENT-SCHEDULER] Initializing payment scheduler...")

	c := cron.New()

	// Run daily at 9 AM to remind students with outstanding balances
	c.AddFunc("0 9 * * *", func() {
		log.Println("[PAYMENT-SCHEDULER] Running daily payment check...")
		ProcessOutstandingPayments()
	})

	c.Start()
	log.Println("[PAYMENT-SCHEDULER] Payment scheduler started - runs daily at 9 AM")
}

// ProcessOutstandingPayments sends one reminder email per payment that has
// been pending or partial for more than 3 days.
func ProcessOutstandingPayments() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -3)

	var outstanding []models.Payment
	if err := db.
		Where("status IN ? AND reminder_sent = false AND is_deleted = false", []models.PaymentStatus{models.PaymentStatusPending, models.PaymentStatusPartial}).
		Where("created_at < ?", cutoff).
		Find(&outstanding).Error; err != nil {
		log.Printf("[PAYMENT-SCHEDULER] Error fetching outstanding payments: %v", err)
		return
	}

	log.Printf("[PAYMENT-SCHEDULER] Found %d outstanding payments", len(outstanding))

	for _, payment := range outstanding {
		var user models.User
		if err := db.Where("id = ?", payment.UserID).First(&user).Error; err != nil {
			log.Printf("[PAYMENT-SCHEDULER] Error fetching user %s: %v", payment.UserID, err)
			continue
		}

		var course courseModels.Course
		if err := db.Where("id = ?", payment.CourseID).First(&course).Error; err != nil {
			log.Printf("[PAYMENT-SCHEDULER] Error fetching course %s: %v", payment.CourseID, err)
			continue
		}

		SendPaymentReminderEmail(user.Email, user.FirstName, course.Title, payment.Remaining)

		db.Model(&payment).Update("reminder_sent", true)
		log.Printf("[PAYMENT-SCHEDULER] Sent payment reminder for payment %s to %s", payment.ID, user.Email)
	}
}
