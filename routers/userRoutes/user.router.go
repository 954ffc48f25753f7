package userRoutes

import (
	courseControllers "lms/controllers/course"
	userControllers "lms/controllers/userControllers"
	"lms/middleware"
	userValidators "lms/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userControllers.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, userValidators.UpdateProfile(), userControllers.UpdateProfile)
	userGroup.Put("/change/password", middleware.JWTMiddleware, userValidators.ChangePassword(), userControllers.ChangePassword)

	// Learning history
	userGroup.Get("/enrollments", middleware.JWTMiddleware, courseControllers.GetUserEnrollmentsList)
	userGroup.Get("/certificates", middleware.JWTMiddleware, courseControllers.GetUserCertificates)
	userGroup.Get("/results", middleware.JWTMiddleware, courseControllers.GetUserResults)
}
