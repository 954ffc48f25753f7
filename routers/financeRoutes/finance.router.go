package financeRoutes

import (
	financeControllers "lms/controllers/finance"
	"lms/middleware"
	"lms/models"
	financeValidators "lms/validators/finance"

	"github.com/gofiber/fiber/v2"
)

func SetupFinanceRoutes(app *fiber.App) {
	financeGroup := app.Group("/finance")

	financeGroup.Post("/payment/:id/pay", middleware.JWTMiddleware, financeValidators.RecordPayment(), financeControllers.RecordPayment)
	financeGroup.Get("/payments", middleware.JWTMiddleware, financeControllers.GetUserPayments)

	adminOnly := middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)

	adminGroup := app.Group("/admin/finance")
	adminGroup.Get("/list", middleware.JWTMiddleware, adminOnly, financeValidators.PaymentList(), financeControllers.AdminGetAllPayments)
	adminGroup.Get("/stats", middleware.JWTMiddleware, adminOnly, financeControllers.FinanceStats)
}
