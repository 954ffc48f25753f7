package courseController

import (
	"log"
	"math"
	"time"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MarkLessonComplete records a watched lesson and refreshes enrollment
// progress. Marking the same lesson twice is a no-op.
func MarkLessonComplete(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user session!", nil)
	}
	courseId := c.Params("course_id")
	lessonId := c.Params("lesson_id")

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseId, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.
		Where("id = ? AND course_id = ? AND is_deleted = ?", lessonId, courseId, false).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	// Idempotent: already completed lessons are acknowledged, not duplicated
	var existing courseModels.LessonCompletion
	err := database.Database.Db.
		Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userId, lessonId, false).
		First(&existing).Error
	if err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson already completed.", fiber.Map{
			"progress": enrollment.Progress,
		})
	}

	completion := courseModels.LessonCompletion{
		UserID:   userId,
		CourseID: courseId,
		LessonID: lessonId,
	}
	if err := database.Database.Db.Create(&completion).Error; err != nil {
		log.Printf("Error saving lesson completion: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson complete!", nil)
	}

	progress := recomputeProgress(database.Database.Db, &enrollment)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked complete.", fiber.Map{
		"progress": progress,
		"status":   enrollment.Status,
	})
}

// recomputeProgress rereads completion counts and updates the enrollment.
// Hitting 100 percent flips the enrollment to COMPLETED.
func recomputeProgress(db *gorm.DB, enrollment *courseModels.Enrollment) float64 {
	var totalLessons int64
	db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", enrollment.CourseID, false).
		Count(&totalLessons)

	if totalLessons == 0 {
		return enrollment.Progress
	}

	var completed int64
	db.Model(&courseModels.LessonCompletion{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", enrollment.UserID, enrollment.CourseID, false).
		Count(&completed)

	progress := math.Round(float64(completed) / float64(totalLessons) * 100)
	if progress > 100 {
		progress = 100
	}

	enrollment.Progress = progress
	if progress >= 100 && enrollment.Status != courseModels.EnrollmentCompleted {
		now := time.Now()
		enrollment.Status = courseModels.EnrollmentCompleted
		enrollment.CompletedAt = &now
	}

	if err := db.Save(enrollment).Error; err != nil {
		log.Printf("Error updating enrollment progress: %v", err)
	}

	return progress
}

func GetUserProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user session!", nil)
	}
	courseId := c.Params("id")

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseId, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	var completions []courseModels.LessonCompletion
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseId, false).
		Find(&completions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	completedLessonIds := make([]string, 0, len(completions))
	for _, completion := range completions {
		completedLessonIds = append(completedLessonIds, completion.LessonID)
	}

	var totalLessons int64
	database.Database.Db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", courseId, false).
		Count(&totalLessons)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course Progress.", fiber.Map{
		"enrollment":       enrollment,
		"completedLessons": completedLessonIds,
		"totalLessons":     totalLessons,
	})
}
