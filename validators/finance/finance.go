package financeValidator

import (
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// RecordPayment validator middleware
func RecordPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Amount float64 `json:"amount"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Amount <= 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"amount": "Amount must be greater than 0!",
			})
		}

		c.Locals("validatedPayment", reqData)
		return c.Next()
	}
}

// PaymentList validator middleware
func PaymentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page   *int   `query:"page"`
			Limit  *int   `query:"limit"`
			Status string `query:"status"`
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

		if reqData.Status != "" {
			switch models.PaymentStatus(reqData.Status) {
			case models.PaymentStatusPending, models.PaymentStatusPartial, models.PaymentStatusCompleted:
			default:
				errors["status"] = "Status must be PENDING, PARTIAL or COMPLETED!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPaymentList", reqData)
		return c.Next()
	}
}
