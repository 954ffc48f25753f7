package courseValidator

import (
	"fmt"
	"strings"

	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// validationErrors flattens validator.v10 errors into a field->message map.
func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range verrs {
			field := strings.ToLower(fieldErr.Field()[:1]) + fieldErr.Field()[1:]
			errors[field] = fmt.Sprintf("Field failed on the '%s' rule!", fieldErr.Tag())
		}
	} else {
		errors["request"] = "Invalid request data!"
	}
	return errors
}

func isValidLevel(level string) bool {
	switch level {
	case courseModels.LevelBeginner, courseModels.LevelIntermediate, courseModels.LevelAdvanced:
		return true
	}
	return false
}

// CourseList validator middleware
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int   `query:"page"`
			Limit *int   `query:"limit"`
			Level string `query:"level"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Page == nil {
			page := 1
			reqData.Page = &page
		}
		if reqData.Limit == nil {
			limit := 20
			reqData.Limit = &limit
		}

		errors := make(map[string]string)

		if *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		if reqData.Level != "" && !isValidLevel(reqData.Level) {
			errors["level"] = "Level must be BEGINNER, INTERMEDIATE or ADVANCED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string  `json:"title" validate:"required,min=3"`
			Description string  `json:"description"`
			Instructor  string  `json:"instructor"`
			Price       float64 `json:"price" validate:"gte=0"`
			Duration    string  `json:"duration"`
			Level       string  `json:"level"`
			ImageURL    string  `json:"image_url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		if reqData.Level != "" && !isValidLevel(reqData.Level) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"level": "Level must be BEGINNER, INTERMEDIATE or ADVANCED!",
			})
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validator middleware
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string  `json:"title"`
			Description *string  `json:"description"`
			Instructor  *string  `json:"instructor"`
			Price       *float64 `json:"price"`
			Duration    *string  `json:"duration"`
			Level       *string  `json:"level"`
			ImageURL    *string  `json:"image_url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if reqData.Level != nil && !isValidLevel(*reqData.Level) {
			errors["level"] = "Level must be BEGINNER, INTERMEDIATE or ADVANCED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CreateLesson validator middleware
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=3"`
			Description string `json:"description"`
			VideoURL    string `json:"video_url" validate:"omitempty,url"`
			Duration    string `json:"duration"`
			OrderIndex  *int   `json:"order_index"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// UpdateLesson validator middleware
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			VideoURL    *string `json:"video_url"`
			Duration    *string `json:"duration"`
			OrderIndex  *int    `json:"order_index"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

// CreateTest validator middleware
func CreateTest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title" validate:"required,min=3"`
			PassingScore *int   `json:"passing_score" validate:"omitempty,gte=0,lte=100"`
			Questions    []struct {
				Prompt        string   `json:"question" validate:"required"`
				Options       []string `json:"options" validate:"required,min=2"`
				CorrectAnswer int      `json:"correct_answer" validate:"gte=0"`
			} `json:"questions" validate:"required,min=1,dive"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		// Correct answer must point at one of the options
		errors := make(map[string]string)
		for i, q := range reqData.Questions {
			if q.CorrectAnswer >= len(q.Options) {
				errors[fmt.Sprintf("questions[%d].correct_answer", i)] = "Correct answer index is out of range!"
			}
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTest", reqData)
		return c.Next()
	}
}

// SubmitTest validator middleware
func SubmitTest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Answers []*int `json:"answers"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Answers == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"answers": "Answers are required!",
			})
		}

		c.Locals("validatedTestSubmission", reqData)
		return c.Next()
	}
}
