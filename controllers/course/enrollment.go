package courseController

import (
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnrollInCourse enrolls the user and opens a payment record for the
// course price in one transaction. Nothing is paid up front.
func EnrollInCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user session!", nil)
	}
	courseId := c.Params("id")

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseId, false).First(&course).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	// One enrollment per user per course
	var existing courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseId, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}

	enrollment := courseModels.Enrollment{
		UserID:     userId,
		CourseID:   courseId,
		Status:     courseModels.EnrollmentActive,
		EnrolledAt: time.Now(),
	}

	payment := models.Payment{
		UserID:    userId,
		CourseID:  courseId,
		Amount:    course.Price,
		Paid:      0,
		Remaining: course.Price,
		Status:    models.PaymentStatusPending,
	}
	payment.DeriveStatus()

	// Enrollment and its payment are created together or not at all
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		log.Printf("Error enrolling user %s in course %s: %v", userId, courseId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	utils.SendEnrollmentEmail(user.Email, user.FirstName, course.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully.", fiber.Map{
		"enrollment": enrollment,
		"payment":    payment,
	})
}

func GetUserEnrollmentsList(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user session!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("enrolled_at DESC").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	// Attach course summaries
	type enrollmentWithCourse struct {
		courseModels.Enrollment
		Course *courseModels.Course `json:"course"`
	}

	response := make([]enrollmentWithCourse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		entry := enrollmentWithCourse{Enrollment: enrollment}
		var course courseModels.Course
		if err := database.Database.Db.
			Where("id = ?", enrollment.CourseID).
			First(&course).Error; err == nil {
			entry.Course = &course
		}
		response = append(response, entry)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment List.", response)
}
