package courseController

import (
	"log"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AdminCreateLesson(c *fiber.Ctx) error {
	courseId := c.Params("id")

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title       string `json:"title" validate:"required,min=3"`
		Description string `json:"description"`
		VideoURL    string `json:"video_url" validate:"omitempty,url"`
		Duration    string `json:"duration"`
		OrderIndex  *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseId, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Append at the end when no rank is given
	orderIndex := 0
	if reqData.OrderIndex != nil {
		orderIndex = *reqData.OrderIndex
	} else {
		var maxIndex int
		database.Database.Db.Model(&courseModels.Lesson{}).
			Where("course_id = ? AND is_deleted = ?", courseId, false).
			Select("COALESCE(MAX(order_index), 0)").
			Scan(&maxIndex)
		orderIndex = maxIndex + 1
	}

	newLesson := courseModels.Lesson{
		CourseID:    courseId,
		Title:       reqData.Title,
		Description: reqData.Description,
		VideoURL:    reqData.VideoURL,
		Duration:    reqData.Duration,
		OrderIndex:  orderIndex,
	}

	if err := database.Database.Db.Create(&newLesson).Error; err != nil {
		log.Printf("Error creating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	go utils.VerifyVideoURL(newLesson.Title, newLesson.VideoURL)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully.", newLesson)
}

func AdminUpdateLesson(c *fiber.Ctx) error {
	lessonId := c.Params("id")

	reqData, ok := c.Locals("validatedLessonUpdate").(*struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		VideoURL    *string `json:"video_url"`
		Duration    *string `json:"duration"`
		OrderIndex  *int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonId, false).First(&lesson).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson!", nil)
	}

	if reqData.Title != nil {
		lesson.Title = *reqData.Title
	}
	if reqData.Description != nil {
		lesson.Description = *reqData.Description
	}
	if reqData.VideoURL != nil {
		lesson.VideoURL = *reqData.VideoURL
	}
	if reqData.Duration != nil {
		lesson.Duration = *reqData.Duration
	}
	if reqData.OrderIndex != nil {
		lesson.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		log.Printf("Error updating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	if reqData.VideoURL != nil {
		go utils.VerifyVideoURL(lesson.Title, lesson.VideoURL)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully.", lesson)
}

// AdminDeleteLesson removes a single lesson. Completion rows for it are
// soft deleted too so course progress is recomputed without it.
func AdminDeleteLesson(c *fiber.Ctx) error {
	lessonId := c.Params("id")

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonId, false).First(&lesson).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&lesson).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&courseModels.LessonCompletion{}).
			Where("lesson_id = ?", lessonId).
			Update("is_deleted", true).Error
	})
	if err != nil {
		log.Printf("Error deleting lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully.", nil)
}
