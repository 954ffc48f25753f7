package courseController

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAllCourses lists the catalog. Open to unauthenticated visitors.
func GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseList").(*struct {
		Page  *int   `query:"page"`
		Limit *int   `query:"limit"`
		Level string `query:"level"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (*reqData.Page - 1) * (*reqData.Limit)

	query := database.Database.Db.Where("is_deleted = ?", false)
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

	countQuery := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)
	if reqData.Level != "" {
		countQuery = countQuery.Where("level = ?", reqData.Level)
	}
	countQuery.Count(&total)

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course List.", response)
}

// GetCourseDetails returns a course with its lessons and test. Correct
// answers are stripped from the questions so students cannot scrape them.
func GetCourseDetails(c *fiber.Ctx) error {
	courseId := c.Params("id")

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseId, false).First(&course).Error; err != nil {
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

	var testData interface{}
	var test courseModels.Test
	err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseId, false).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index ASC")
		}).
		First(&test).Error
	if err == nil {
		questions := make([]fiber.Map, 0, len(test.Questions))
		for _, q := range test.Questions {
			questions = append(questions, fiber.Map{
				"id":          q.ID,
				"question":    q.Prompt,
				"options":     q.Options,
				"order_index": q.OrderIndex,
			})
		}
		testData = fiber.Map{
			"id":            test.ID,
			"title":         test.Title,
			"passing_score": test.PassingScore,
			"questions":     questions,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course Details.", fiber.Map{
		"course":  course,
		"lessons": lessons,
		"test":    testData,
	})
}
