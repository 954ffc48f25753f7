package courseController

import (
	"math"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboardStats aggregates platform-wide counts for the admin panel.
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalStudents, totalAdmins, pendingAdmins int64
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleStudent, false).Count(&totalStudents)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleAdmin, false).Count(&totalAdmins)
	db.Model(&models.User{}).Where("role = ? AND is_approved = ? AND is_deleted = ?", models.RoleAdmin, false, false).Count(&pendingAdmins)

	var totalCourses, totalLessons int64
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Lesson{}).Where("is_deleted = ?", false).Count(&totalLessons)

	var totalEnrollments, activeEnrollments, completedEnrollments int64
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&courseModels.Enrollment{}).Where("status = ? AND is_deleted = ?", courseModels.EnrollmentActive, false).Count(&activeEnrollments)
	db.Model(&courseModels.Enrollment{}).Where("status = ? AND is_deleted = ?", courseModels.EnrollmentCompleted, false).Count(&completedEnrollments)

	var certificatesIssued, testAttempts, testsPassed int64
	db.Model(&courseModels.Certificate{}).Where("is_deleted = ?", false).Count(&certificatesIssued)
	db.Model(&courseModels.TestResult{}).Where("is_deleted = ?", false).Count(&testAttempts)
	db.Model(&courseModels.TestResult{}).Where("passed = ? AND is_deleted = ?", true, false).Count(&testsPassed)

	var passRate float64
	if testAttempts > 0 {
		passRate = math.Round(float64(testsPassed) / float64(testAttempts) * 100)
	}

	var totalRevenue, totalOutstanding float64
	db.Model(&models.Payment{}).Where("is_deleted = ?", false).Select("COALESCE(SUM(paid), 0)").Scan(&totalRevenue)
	db.Model(&models.Payment{}).Where("is_deleted = ?", false).Select("COALESCE(SUM(remaining), 0)").Scan(&totalOutstanding)

	stats := fiber.Map{
		"users": fiber.Map{
			"students":      totalStudents,
			"admins":        totalAdmins,
			"pendingAdmins": pendingAdmins,
		},
		"catalog": fiber.Map{
			"courses": totalCourses,
			"lessons": totalLessons,
		},
		"enrollments": fiber.Map{
			"total":     totalEnrollments,
			"active":    activeEnrollments,
			"completed": completedEnrollments,
		},
		"learning": fiber.Map{
			"certificatesIssued": certificatesIssued,
			"testAttempts":       testAttempts,
			"testsPassed":        testsPassed,
			"passRate":           passRate,
		},
		"finance": fiber.Map{
			"revenue":     totalRevenue,
			"outstanding": totalOutstanding,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard Stats.", stats)
}
