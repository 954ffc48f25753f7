package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Catalog is public
	userGroup.Get("/list", validators.CourseList(), controllers.GetAllCourses)
	userGroup.Get("/:id", controllers.GetCourseDetails)

	// Enrollment
	userGroup.Post("/:id/enroll", middleware.JWTMiddleware, controllers.EnrollInCourse)

	// Lesson completion and progress
	userGroup.Post("/:course_id/lesson/:lesson_id/complete", middleware.JWTMiddleware, controllers.MarkLessonComplete)
	userGroup.Get("/:id/progress", middleware.JWTMiddleware, controllers.GetUserProgress)

	// Test submission
	userGroup.Post("/:id/test/submit", middleware.JWTMiddleware, validators.SubmitTest(), controllers.SubmitTest)
}
