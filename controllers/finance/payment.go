package financeController

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// RecordPayment applies an installment to the user's payment record.
// The amount must be positive and never exceed the remaining balance.
func RecordPayment(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user session!", nil)
	}
	paymentId := c.Params("id")

	reqData, ok := c.Locals("validatedPayment").(*struct {
		Amount float64 `json:"amount"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var payment models.Payment
	if err := database.Database.Db.
		Where("id = ? AND user_id = ? AND is_deleted = ?", paymentId, userId, false).
		First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payment!", nil)
	}

	if payment.Status == models.PaymentStatusCompleted {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Payment is already completed!", nil)
	}

	amount := models.RoundMoney(reqData.Amount)
	if amount > payment.Remaining {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Amount exceeds remaining balance!", nil)
	}

	payment.Paid += amount
	payment.Remaining -= amount
	payment.DeriveStatus()

	if err := database.Database.Db.Save(&payment).Error; err != nil {
		log.Printf("Error recording payment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record payment!", nil)
	}

	var user models.User
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", userId).First(&user).Error; err == nil {
		if err := database.Database.Db.Where("id = ?", payment.CourseID).First(&course).Error; err == nil {
			utils.SendPaymentReceiptEmail(user.Email, user.FirstName, course.Title, amount, payment.Remaining)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment recorded successfully.", payment)
}

func GetUserPayments(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user session!", nil)
	}

	var payments []models.Payment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment List.", payments)
}

func AdminGetAllPayments(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPaymentList").(*struct {
		Page   *int   `query:"page"`
		Limit  *int   `query:"limit"`
		Status string `query:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (*reqData.Page - 1) * (*reqData.Limit)

	query := database.Database.Db.Where("is_deleted = ?", false)
	if reqData.Status != "" {
		query = query.Where("status = ?", reqData.Status)
	}

	var payments []models.Payment
	var total int64

	if err := query.Order("created_at DESC").
		Offset(offset).
		Limit(*reqData.Limit).
		Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	countQuery := database.Database.Db.Model(&models.Payment{}).Where("is_deleted = ?", false)
	if reqData.Status != "" {
		countQuery = countQuery.Where("status = ?", reqData.Status)
	}
	countQuery.Count(&total)

	response := map[string]interface{}{
		"payments": payments,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment List.", response)
}

// FinanceStats aggregates revenue and outstanding balances, including a
// breakdown for the current calendar month.
func FinanceStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalRevenue, totalOutstanding float64
	db.Model(&models.Payment{}).Where("is_deleted = ?", false).Select("COALESCE(SUM(paid), 0)").Scan(&totalRevenue)
	db.Model(&models.Payment{}).Where("is_deleted = ?", false).Select("COALESCE(SUM(remaining), 0)").Scan(&totalOutstanding)

	var pendingCount, partialCount, completedCount int64
	db.Model(&models.Payment{}).Where("status = ? AND is_deleted = ?", models.PaymentStatusPending, false).Count(&pendingCount)
	db.Model(&models.Payment{}).Where("status = ? AND is_deleted = ?", models.PaymentStatusPartial, false).Count(&partialCount)
	db.Model(&models.Payment{}).Where("status = ? AND is_deleted = ?", models.PaymentStatusCompleted, false).Count(&completedCount)

	// Current month window
	monthStart := now.BeginningOfMonth()
	monthEnd := now.EndOfMonth()

	var monthRevenue float64
	db.Model(&models.Payment{}).
		Where("is_deleted = ? AND updated_at BETWEEN ? AND ?", false, monthStart, monthEnd).
		Select("COALESCE(SUM(paid), 0)").
		Scan(&monthRevenue)

	stats := fiber.Map{
		"revenue":     totalRevenue,
		"outstanding": totalOutstanding,
		"byStatus": fiber.Map{
			"pending":   pendingCount,
			"partial":   partialCount,
			"completed": completedCount,
		},
		"currentMonth": fiber.Map{
			"revenue": monthRevenue,
			"from":    monthStart,
			"to":      monthEnd,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Finance Stats.", stats)
}
