package courseController

import (
	"log"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminCourseList is the back-office catalog view. Unlike the public
// list it includes soft deleted courses and per-course counts.
func AdminCourseList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseList").(*struct {
		Page  *int   `query:"page"`
		Limit *int   `query:"limit"`
		Level string `query:"level"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (*reqData.Page - 1) * (*reqData.Limit)

	query := database.Database.Db
	if reqData.Level != "" {
		query = query.Where("level = ?", reqData.Level)
	}

	var courses []courseModels.Course
	var total int64

	if err := query.Order("created_at ASC").
		Offset(offset).
		Limit(*reqData.Limit).
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	countQuery := database.Database.Db.Model(&courseModels.Course{})
	if reqData.Level != "" {
		countQuery = countQuery.Where("level = ?", reqData.Level)
	}
	countQuery.Count(&total)

	entries := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		var lessonCount, enrollmentCount int64
		database.Database.Db.Model(&courseModels.Lesson{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Count(&lessonCount)
		database.Database.Db.Model(&courseModels.Enrollment{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Count(&enrollmentCount)

		entries = append(entries, fiber.Map{
			"course":      course,
			"isDeleted":   course.IsDeleted,
			"lessons":     lessonCount,
			"enrollments": enrollmentCount,
		})
	}

	response := map[string]interface{}{
		"courses": entries,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course List.", response)
}

// AdminCourseLessons lists the active lessons of a course for the
// back office. The course itself may already be soft deleted.
func AdminCourseLessons(c *fiber.Ctx) error {
	courseId := c.Params("id")

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", courseId).First(&course).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	var lessons []courseModels.Lesson
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseId, false).
		Order("order_index ASC").
		Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson List.", fiber.Map{
		"course":  course,
		"lessons": lessons,
	})
}

func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string  `json:"title" validate:"required,min=3"`
		Description string  `json:"description"`
		Instructor  string  `json:"instructor"`
		Price       float64 `json:"price" validate:"gte=0"`
		Duration    string  `json:"duration"`
		Level       string  `json:"level"`
		ImageURL    string  `json:"image_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	level := reqData.Level
	if level == "" {
		level = courseModels.LevelBeginner
	}

	newCourse := courseModels.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		Instructor:  reqData.Instructor,
		Price:       reqData.Price,
		Duration:    reqData.Duration,
		Level:       level,
		ImageURL:    reqData.ImageURL,
	}

	if err := database.Database.Db.Create(&newCourse).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully.", newCourse)
}

func AdminUpdateCourse(c *fiber.Ctx) error {
	courseId := c.Params("id")

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Instructor  *string  `json:"instructor"`
		Price       *float64 `json:"price"`
		Duration    *string  `json:"duration"`
		Level       *string  `json:"level"`
		ImageURL    *string  `json:"image_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseId, false).First(&course).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Instructor != nil {
		course.Instructor = *reqData.Instructor
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.Duration != nil {
		course.Duration = *reqData.Duration
	}
	if reqData.Level != nil {
		course.Level = *reqData.Level
	}
	if reqData.ImageURL != nil {
		course.ImageURL = *reqData.ImageURL
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully.", course)
}

// AdminDeleteCourse soft deletes a course along with its lessons and test.
// Enrollments and payments are kept for bookkeeping.
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseId := c.Params("id")

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseId, false).First(&course).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&course).Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Lesson{}).
			Where("course_id = ?", courseId).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&courseModels.Test{}).
			Where("course_id = ?", courseId).
			Update("is_deleted", true).Error
	})
	if err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully.", nil)
}
