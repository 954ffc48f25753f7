package courseController

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmitTest grades a quiz attempt. Every attempt is stored; a passing
// attempt issues a certificate unless one already exists for the course.
func SubmitTest(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user session!", nil)
	}
	courseId := c.Params("id")

	reqData, ok := c.Locals("validatedTestSubmission").(*struct {
		Answers []*int `json:"answers"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseId, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

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

	score, passed := test.Score(reqData.Answers)

	answersJSON, err := json.Marshal(reqData.Answers)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process answers!", nil)
	}

	result := courseModels.TestResult{
		UserID:     userId,
		TestID:     test.ID,
		CourseID:   courseId,
		Score:      score,
		Passed:     passed,
		Answers:    datatypes.JSON(answersJSON),
		AnsweredAt: time.Now(),
	}

	var certificate *courseModels.Certificate

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&result).Error; err != nil {
			return err
		}

		if !passed {
			return nil
		}

		// One certificate per user per course, even across retakes
		var existing courseModels.Certificate
		if err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseId, false).
			First(&existing).Error; err == nil {
			return nil
		}

		newCert := courseModels.Certificate{
			UserID:   userId,
			CourseID: courseId,
			Number:   generateCertificateNumber(),
			IssuedAt: time.Now(),
		}
		newCert.FileName = fmt.Sprintf("certificate-%s.pdf", newCert.Number)
		newCert.DownloadURL = "/certificates/" + newCert.FileName

		if err := tx.Create(&newCert).Error; err != nil {
			return err
		}
		certificate = &newCert
		return nil
	})
	if err != nil {
		log.Printf("Error saving test result: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit test!", nil)
	}

	if certificate != nil {
		var course courseModels.Course
		if err := database.Database.Db.Where("id = ?", courseId).First(&course).Error; err == nil {
			utils.SendCertificateEmail(user.Email, user.FirstName, course.Title, certificate.Number)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test submitted.", fiber.Map{
		"result":      result,
		"certificate": certificate,
	})
}

func generateCertificateNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("CERT-%d-%s", time.Now().Year(), suffix)
}
