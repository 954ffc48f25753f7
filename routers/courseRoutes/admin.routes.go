package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminOnly := middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)

	adminGroup := app.Group("/admin/course")

	// Course CRUD
	adminGroup.Get("/list", middleware.JWTMiddleware, adminOnly, validators.CourseList(), controllers.AdminCourseList)
	adminGroup.Post("/create", middleware.JWTMiddleware, adminOnly, validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", middleware.JWTMiddleware, adminOnly, validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, adminOnly, controllers.AdminDeleteCourse)

	// Lesson management
	adminGroup.Get("/:id/lessons", middleware.JWTMiddleware, adminOnly, controllers.AdminCourseLessons)
	adminGroup.Post("/:id/lesson", middleware.JWTMiddleware, adminOnly, validators.CreateLesson(), controllers.AdminCreateLesson)

	lessonGroup := app.Group("/admin/lesson")
	lessonGroup.Put("/:id", middleware.JWTMiddleware, adminOnly, validators.UpdateLesson(), controllers.AdminUpdateLesson)
	lessonGroup.Delete("/:id", middleware.JWTMiddleware, adminOnly, controllers.AdminDeleteLesson)

	// Test management
	adminGroup.Post("/:id/test", middleware.JWTMiddleware, adminOnly, validators.CreateTest(), controllers.AdminCreateTest)
	adminGroup.Get("/:id/test", middleware.JWTMiddleware, adminOnly, controllers.AdminGetTest)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard")
	dashGroup.Get("/stats", middleware.JWTMiddleware, adminOnly, controllers.AdminDashboardStats)
}
