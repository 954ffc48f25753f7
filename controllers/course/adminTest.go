package courseController

import (
	"encoding/json"
	"log"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AdminCreateTest creates or replaces the test for a course. A course
// carries at most one test, so an existing one is soft deleted first.
func AdminCreateTest(c *fiber.Ctx) error {
	courseId := c.Params("id")

	reqData, ok := c.Locals("validatedTest").(*struct {
		Title        string `json:"title" validate:"required,min=3"`
		PassingScore *int   `json:"passing_score" validate:"omitempty,gte=0,lte=100"`
		Questions    []struct {
			Prompt        string   `json:"question" validate:"required"`
			Options       []string `json:"options" validate:"required,min=2"`
			CorrectAnswer int      `json:"correct_answer" validate:"gte=0"`
		} `json:"questions" validate:"required,min=1,dive"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseId, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	passingScore := 70
	if reqData.PassingScore != nil {
		passingScore = *reqData.PassingScore
	}

	newTest := courseModels.Test{
		CourseID:     courseId,
		Title:        reqData.Title,
		PassingScore: passingScore,
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		// Retire the previous test, if any
		if err := tx.Model(&courseModels.Test{}).
			Where("course_id = ? AND is_deleted = ?", courseId, false).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		if err := tx.Create(&newTest).Error; err != nil {
			return err
		}

		for i, q := range reqData.Questions {
			optionsJSON, err := json.Marshal(q.Options)
			if err != nil {
				return err
			}
			question := courseModels.Question{
				TestID:        newTest.ID,
				Prompt:        q.Prompt,
				Options:       datatypes.JSON(optionsJSON),
				CorrectAnswer: q.CorrectAnswer,
				OrderIndex:    i + 1,
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error creating test: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create test!", nil)
	}

	database.Database.Db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index ASC")
		}).
		First(&newTest, "id = ?", newTest.ID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Test created successfully.", newTest)
}

// AdminGetTest returns the course test with correct answers included.
func AdminGetTest(c *fiber.Ctx) error {
	courseId := c.Params("id")

	var test courseModels.Test
	err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseId, false).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index ASC")
		}).
		First(&test).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch test!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test Details.", test)
}
