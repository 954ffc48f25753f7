package superAdminController

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserList returns all students and admins, paginated. The super admin
// account itself is never listed.
func UserList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUserList").(*struct {
		Page  *int   `query:"page"`
		Limit *int   `query:"limit"`
		Role  string `query:"role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (*reqData.Page - 1) * (*reqData.Limit)

	query := database.Database.Db.
		Where("role <> ? AND is_deleted = ?", models.RoleSuperAdmin, false)
	if reqData.Role != "" {
		query = query.Where("role = ?", reqData.Role)
	}

	var users []models.User
	var total int64

	if err := query.Order("created_at DESC").
		Offset(offset).
		Limit(*reqData.Limit).
		Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	countQuery := database.Database.Db.Model(&models.User{}).
		Where("role <> ? AND is_deleted = ?", models.RoleSuperAdmin, false)
	if reqData.Role != "" {
		countQuery = countQuery.Where("role = ?", reqData.Role)
	}
	countQuery.Count(&total)

	for i := range users {
		users[i].Password = ""
	}

	response := map[string]interface{}{
		"users": users,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User List.", response)
}

// PendingAdmins lists admin accounts waiting for approval.
func PendingAdmins(c *fiber.Ctx) error {
	var admins []models.User
	if err := database.Database.Db.
		Where("role = ? AND is_approved = ? AND is_deleted = ?", models.RoleAdmin, false, false).
		Order("created_at ASC").
		Find(&admins).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending admins!", nil)
	}

	for i := range admins {
		admins[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending Admin List.", admins)
}

// ApproveAdmin unlocks a pending admin account so it can log in.
func ApproveAdmin(c *fiber.Ctx) error {
	adminId := c.Params("id")

	var admin models.User
	err := database.Database.Db.
		Where("id = ? AND role = ? AND is_deleted = ?", adminId, models.RoleAdmin, false).
		First(&admin).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Admin not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch admin!", nil)
	}

	if admin.IsApproved {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Admin is already approved!", nil)
	}

	if err := database.Database.Db.Model(&admin).Update("is_approved", true).Error; err != nil {
		log.Printf("Error approving admin: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve admin!", nil)
	}

	admin.IsApproved = true
	admin.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Admin approved successfully.", admin)
}
