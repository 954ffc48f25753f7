package courseController

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

func GetUserCertificates(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user session!", nil)
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("issued_at DESC").
		Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	type certificateWithCourse struct {
		courseModels.Certificate
		CourseTitle string `json:"course_title"`
	}

	response := make([]certificateWithCourse, 0, len(certificates))
	for _, cert := range certificates {
		entry := certificateWithCourse{Certificate: cert}
		var course courseModels.Course
		if err := database.Database.Db.Where("id = ?", cert.CourseID).First(&course).Error; err == nil {
			entry.CourseTitle = course.Title
		}
		response = append(response, entry)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate List.", response)
}

// GetUserResults lists all quiz attempts, newest first.
func GetUserResults(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user session!", nil)
	}

	var results []courseModels.TestResult
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("answered_at DESC").
		Find(&results).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch test results!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test Result List.", results)
}
