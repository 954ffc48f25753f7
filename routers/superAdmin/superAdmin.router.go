package superAdminRoutes

import (
	superAdminControllers "lms/controllers/superAdmin"
	"lms/middleware"
	"lms/models"
	superAdminValidators "lms/validators/superAdmin"

	"github.com/gofiber/fiber/v2"
)

func SetupSuperAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/users")

	// Listing is open to admins; approval is super admin only
	adminOnly := middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)
	superAdminOnly := middleware.RequireRole(models.RoleSuperAdmin)

	adminGroup.Get("/list", middleware.JWTMiddleware, adminOnly, superAdminValidators.UserList(), superAdminControllers.UserList)
	adminGroup.Get("/pending", middleware.JWTMiddleware, superAdminOnly, superAdminControllers.PendingAdmins)
	adminGroup.Post("/:id/approve", middleware.JWTMiddleware, superAdminOnly, superAdminControllers.ApproveAdmin)
}
