package chatController

import (
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

func SendMessage(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user session!", nil)
	}

	reqData, ok := c.Locals("validatedMessage").(*struct {
		ToUserID string `json:"toUserId"`
		Content  string `json:"content"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.ToUserID == userId {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot message yourself!", nil)
	}

	var sender models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&sender).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var recipient models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.ToUserID, false).First(&recipient).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Recipient not found!", nil)
	}

	message := models.Message{
		FromUserID: userId,
		ToUserID:   recipient.ID,
		Content:    reqData.Content,
	}

	if err := database.Database.Db.Create(&message).Error; err != nil {
		log.Printf("Error saving message: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send message!", nil)
	}

	utils.SendNewMessageEmail(recipient.Email, recipient.FirstName, sender.FirstName)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message sent.", message)
}

// GetConversation returns the two-way history with another user, oldest
// first, and marks their messages to the caller as read.
func GetConversation(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user session!", nil)
	}
	otherUserId := c.Params("user_id")

	var messages []models.Message
	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Where(
			database.Database.Db.
				Where("from_user_id = ? AND to_user_id = ?", userId, otherUserId).
				Or("from_user_id = ? AND to_user_id = ?", otherUserId, userId),
		).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch conversation!", nil)
	}

	// Reading the thread marks the other side's messages as read
	if err := database.Database.Db.Model(&models.Message{}).
		Where("from_user_id = ? AND to_user_id = ? AND read = ? AND is_deleted = ?", otherUserId, userId, false, false).
		Update("read", true).Error; err != nil {
		log.Printf("Error marking messages read: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Conversation.", messages)
}

// GetContacts lists everyone the caller has exchanged messages with,
// with unread counts per contact.
func GetContacts(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user session!", nil)
	}

	var messages []models.Message
	if err := database.Database.Db.
		Where("(from_user_id = ? OR to_user_id = ?) AND is_deleted = ?", userId, userId, false).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch contacts!", nil)
	}

	type contactEntry struct {
		User          fiber.Map `json:"user"`
		LastMessage   string    `json:"lastMessage"`
		LastMessageAt time.Time `json:"lastMessageAt"`
		Unread        int64     `json:"unread"`
	}

	seen := make(map[string]bool)
	contacts := make([]contactEntry, 0)

	for _, message := range messages {
		contactId := message.FromUserID
		if contactId == userId {
			contactId = message.ToUserID
		}
		if seen[contactId] {
			continue
		}
		seen[contactId] = true

		var contact models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contactId, false).First(&contact).Error; err != nil {
			continue
		}

		var unread int64
		database.Database.Db.Model(&models.Message{}).
			Where("from_user_id = ? AND to_user_id = ? AND read = ? AND is_deleted = ?", contactId, userId, false, false).
			Count(&unread)

		contacts = append(contacts, contactEntry{
			User: fiber.Map{
				"id":        contact.ID,
				"firstName": contact.FirstName,
				"lastName":  contact.LastName,
				"avatar":    contact.Avatar,
				"role":      contact.Role,
			},
			LastMessage:   message.Content,
			LastMessageAt: message.CreatedAt,
			Unread:        unread,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Contact List.", contacts)
}

func UnreadCount(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user session!", nil)
	}

	var unread int64
	if err := database.Database.Db.Model(&models.Message{}).
		Where("to_user_id = ? AND read = ? AND is_deleted = ?", userId, false, false).
		Count(&unread).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to count unread messages!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unread Count.", fiber.Map{
		"unread": unread,
	})
}
