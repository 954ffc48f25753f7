package chatRoutes

import (
	chatControllers "lms/controllers/chat"
	"lms/middleware"
	chatValidators "lms/validators/chat"

	"github.com/gofiber/fiber/v2"
)

func SetupChatRoutes(app *fiber.App) {
	chatGroup := app.Group("/chat")

	chatGroup.Post("/send", middleware.JWTMiddleware, chatValidators.SendMessage(), chatControllers.SendMessage)
	chatGroup.Get("/conversation/:user_id", middleware.JWTMiddleware, chatControllers.GetConversation)
	chatGroup.Get("/contacts", middleware.JWTMiddleware, chatControllers.GetContacts)
	chatGroup.Get("/unread", middleware.JWTMiddleware, chatControllers.UnreadCount)
}
