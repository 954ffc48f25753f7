package chatValidator

import (
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SendMessage validator middleware
func SendMessage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ToUserID string `json:"toUserId"`
			Content  string `json:"content"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ToUserID == "" {
			errors["toUserId"] = "Recipient is required!"
		}
		if len(strings.TrimSpace(reqData.Content)) == 0 {
			errors["content"] = "Message content is required!"
		}
		if len(reqData.Content) > 5000 {
			errors["content"] = "Message is too long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMessage", reqData)
		return c.Next()
	}
}
