package superAdminValidator

import (
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// UserList validator middleware
func UserList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int   `query:"page"`
			Limit *int   `query:"limit"`
			Role  string `query:"role"`
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
		if reqData.Role != "" && reqData.Role != models.RoleStudent && reqData.Role != models.RoleAdmin {
			errors["role"] = "Role must be STUDENT or ADMIN!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUserList", reqData)
		return c.Next()
	}
}
