package courseController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	courseRoutes "lms/routers/courseRoutes"
	userRoutes "lms/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

func TestMain(m *testing.M) {
	config.LoadConfig()
	database.ConnectTestDb()
	os.Exit(m.Run())
}

func setupApp() *fiber.App {
	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	userRoutes.SetupUserRoutes(app)
	return app
}

func jsonRequest(method, target string, body interface{}, token string) *http.Request {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return parsed
}

// newUser inserts an approved user and returns it with a valid token.
func newUser(t *testing.T, email, role string) (models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("pass1234"), config.AppConfig.SaltRound)
	require.NoError(t, err)

	user := models.User{
		Email:      email,
		Password:   string(hashed),
		FirstName:  "Test",
		LastName:   "User",
		Role:       role,
		IsApproved: true,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.FirstName, user.Role, user.Email)
	require.NoError(t, err)

	return user, token
}

func mustJSON(t *testing.T, v interface{}) datatypes.JSON {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return datatypes.JSON(b)
}

// newCourseWithContent seeds a priced course with two lessons and a
// three-question test whose correct answers are 1, 0, 2.
func newCourseWithContent(t *testing.T, title string, price float64) courseModels.Course {
	t.Helper()
	db := database.Database.Db

	course := courseModels.Course{Title: title, Price: price, Level: courseModels.LevelBeginner}
	require.NoError(t, db.Create(&course).Error)

	lessons := []courseModels.Lesson{
		{CourseID: course.ID, Title: title + " lesson 1", OrderIndex: 1},
		{CourseID: course.ID, Title: title + " lesson 2", OrderIndex: 2},
	}
	require.NoError(t, db.Create(&lessons).Error)

	test := courseModels.Test{
		CourseID:     course.ID,
		Title:        title + " final test",
		PassingScore: 70,
		Questions: []courseModels.Question{
			{Prompt: "q1", Options: mustJSON(t, []string{"a", "b", "c", "d"}), CorrectAnswer: 1, OrderIndex: 1},
			{Prompt: "q2", Options: mustJSON(t, []string{"a", "b", "c", "d"}), CorrectAnswer: 0, OrderIndex: 2},
			{Prompt: "q3", Options: mustJSON(t, []string{"a", "b", "c", "d"}), CorrectAnswer: 2, OrderIndex: 3},
		},
	}
	require.NoError(t, db.Create(&test).Error)

	return course
}

func TestEnrollCreatesPairedPayment(t *testing.T) {
	app := setupApp()
	_, token := newUser(t, "enroll1@example.com", models.RoleStudent)
	course := newCourseWithContent(t, "Enroll Course", 25000)

	resp, err := app.Test(jsonRequest("POST", "/course/"+course.ID+"/enroll", nil, token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	payment := data["payment"].(map[string]interface{})

	assert.Equal(t, float64(25000), payment["amount"])
	assert.Equal(t, float64(0), payment["paid"])
	assert.Equal(t, float64(25000), payment["remaining"])
	assert.Equal(t, "PENDING", payment["status"])

	// Double enrollment is rejected
	resp, err = app.Test(jsonRequest("POST", "/course/"+course.ID+"/enroll", nil, token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestLessonCompletionDrivesProgress(t *testing.T) {
	app := setupApp()
	user, token := newUser(t, "progress@example.com", models.RoleStudent)
	course := newCourseWithContent(t, "Progress Course", 1000)

	resp, err := app.Test(jsonRequest("POST", "/course/"+course.ID+"/enroll", nil, token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var lessons []courseModels.Lesson
	require.NoError(t, database.Database.Db.
		Where("course_id = ?", course.ID).Order("order_index ASC").Find(&lessons).Error)
	require.Len(t, lessons, 2)

	completeURL := fmt.Sprintf("/course/%s/lesson/%s/complete", course.ID, lessons[0].ID)
	resp, err = app.Test(jsonRequest("POST", completeURL, nil, token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(50), body["data"].(map[string]interface{})["progress"])

	// Completing the same lesson again changes nothing
	resp, err = app.Test(jsonRequest("POST", completeURL, nil, token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var completions int64
	database.Database.Db.Model(&courseModels.LessonCompletion{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).
		Count(&completions)
	assert.Equal(t, int64(1), completions)

	// Finishing the last lesson completes the enrollment
	resp, err = app.Test(jsonRequest("POST", fmt.Sprintf("/course/%s/lesson/%s/complete", course.ID, lessons[1].ID), nil, token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error)
	assert.Equal(t, float64(100), enrollment.Progress)
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)
	assert.NotNil(t, enrollment.CompletedAt)
}

func TestSubmitTestPassIssuesCertificate(t *testing.T) {
	app := setupApp()
	user, token := newUser(t, "passer@example.com", models.RoleStudent)
	course := newCourseWithContent(t, "Pass Course", 1000)

	resp, err := app.Test(jsonRequest("POST", "/course/"+course.ID+"/enroll", nil, token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/course/"+course.ID+"/test/submit", fiber.Map{
		"answers": []int{1, 0, 2},
	}, token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	result := data["result"].(map[string]interface{})
	assert.Equal(t, float64(100), result["score"])
	assert.Equal(t, true, result["passed"])
	assert.NotNil(t, data["certificate"])

	// Retake appends a new result but never a second certificate
	resp, err = app.Test(jsonRequest("POST", "/course/"+course.ID+"/test/submit", fiber.Map{
		"answers": []int{1, 0, 2},
	}, token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var results int64
	database.Database.Db.Model(&courseModels.TestResult{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&results)
	assert.Equal(t, int64(2), results)

	var certificates int64
	database.Database.Db.Model(&courseModels.Certificate{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&certificates)
	assert.Equal(t, int64(1), certificates)
}

func TestSubmitTestFailNoCertificate(t *testing.T) {
	app := setupApp()
	user, token := newUser(t, "failer@example.com", models.RoleStudent)
	course := newCourseWithContent(t, "Fail Course", 1000)

	resp, err := app.Test(jsonRequest("POST", "/course/"+course.ID+"/enroll", nil, token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/course/"+course.ID+"/test/submit", fiber.Map{
		"answers": []int{1, 0, 3},
	}, token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	result := data["result"].(map[string]interface{})
	assert.Equal(t, float64(67), result["score"])
	assert.Equal(t, false, result["passed"])
	assert.Nil(t, data["certificate"])

	var certificates int64
	database.Database.Db.Model(&courseModels.Certificate{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&certificates)
	assert.Equal(t, int64(0), certificates)
}

func TestSubmitTestRequiresEnrollment(t *testing.T) {
	app := setupApp()
	_, token := newUser(t, "outsider@example.com", models.RoleStudent)
	course := newCourseWithContent(t, "Locked Course", 1000)

	resp, err := app.Test(jsonRequest("POST", "/course/"+course.ID+"/test/submit", fiber.Map{
		"answers": []int{1, 0, 2},
	}, token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminCourseCrud(t *testing.T) {
	app := setupApp()
	_, adminToken := newUser(t, "courseadmin@example.com", models.RoleAdmin)
	_, studentToken := newUser(t, "coursestudent@example.com", models.RoleStudent)

	// Students cannot create courses
	resp, err := app.Test(jsonRequest("POST", "/admin/course/create", fiber.Map{
		"title": "Sneaky Course",
	}, studentToken))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/admin/course/create", fiber.Map{
		"title":      "Go Basics",
		"instructor": "Elena Smirnova",
		"price":      15000,
		"duration":   "6 weeks",
		"level":      courseModels.LevelIntermediate,
	}, adminToken))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	courseId := body["data"].(map[string]interface{})["id"].(string)

	// Update a single field
	resp, err = app.Test(jsonRequest("PUT", "/admin/course/"+courseId, fiber.Map{
		"price": 18000,
	}, adminToken))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var course courseModels.Course
	require.NoError(t, database.Database.Db.Where("id = ?", courseId).First(&course).Error)
	assert.Equal(t, float64(18000), course.Price)
	assert.Equal(t, "Go Basics", course.Title)

	// Delete hides the course from the catalog
	resp, err = app.Test(jsonRequest("DELETE", "/admin/course/"+courseId, nil, adminToken))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest("GET", "/course/"+courseId, nil, ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminLessonDeleteLeavesSiblings(t *testing.T) {
	app := setupApp()
	_, adminToken := newUser(t, "lessonadmin@example.com", models.RoleAdmin)
	course := newCourseWithContent(t, "Trim Course", 1000)

	var lessons []courseModels.Lesson
	require.NoError(t, database.Database.Db.
		Where("course_id = ?", course.ID).Order("order_index ASC").Find(&lessons).Error)
	require.Len(t, lessons, 2)

	resp, err := app.Test(jsonRequest("DELETE", "/admin/lesson/"+lessons[0].ID, nil, adminToken))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var remaining []courseModels.Lesson
	require.NoError(t, database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", course.ID, false).Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, lessons[1].ID, remaining[0].ID)
}

func TestPublicCourseDetailsHideAnswers(t *testing.T) {
	app := setupApp()
	course := newCourseWithContent(t, "Public Course", 1000)

	resp, err := app.Test(jsonRequest("GET", "/course/"+course.ID, nil, ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})

	lessons := data["lessons"].([]interface{})
	assert.Len(t, lessons, 2)

	test := data["test"].(map[string]interface{})
	questions := test["questions"].([]interface{})
	require.Len(t, questions, 3)
	for _, q := range questions {
		_, leaked := q.(map[string]interface{})["correct_answer"]
		assert.False(t, leaked, "correct answers must not be exposed to students")
	}
}

func TestAdminTestEndpointIncludesAnswers(t *testing.T) {
	app := setupApp()
	_, adminToken := newUser(t, "testadmin@example.com", models.RoleAdmin)
	course := newCourseWithContent(t, "Answer Course", 1000)

	resp, err := app.Test(jsonRequest("GET", "/admin/course/"+course.ID+"/test", nil, adminToken))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	questions := body["data"].(map[string]interface{})["questions"].([]interface{})
	require.Len(t, questions, 3)
	_, present := questions[0].(map[string]interface{})["correct_answer"]
	assert.True(t, present)
}

func TestAdminCreateTestReplacesExisting(t *testing.T) {
	app := setupApp()
	_, adminToken := newUser(t, "quizadmin@example.com", models.RoleAdmin)
	course := newCourseWithContent(t, "Replace Course", 1000)

	resp, err := app.Test(jsonRequest("POST", "/admin/course/"+course.ID+"/test", fiber.Map{
		"title":         "Replacement Test",
		"passing_score": 80,
		"questions": []fiber.Map{
			{"question": "new q1", "options": []string{"a", "b"}, "correct_answer": 0},
			{"question": "new q2", "options": []string{"a", "b", "c"}, "correct_answer": 2},
		},
	}, adminToken))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Only the replacement remains active
	var active []courseModels.Test
	require.NoError(t, database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", course.ID, false).Find(&active).Error)
	require.Len(t, active, 1)
	assert.Equal(t, "Replacement Test", active[0].Title)
	assert.Equal(t, 80, active[0].PassingScore)

	var questions int64
	database.Database.Db.Model(&courseModels.Question{}).
		Where("test_id = ? AND is_deleted = ?", active[0].ID, false).Count(&questions)
	assert.Equal(t, int64(2), questions)
}

func TestAdminCatalogListAndLessons(t *testing.T) {
	app := setupApp()
	_, adminToken := newUser(t, "catalogadmin@example.com", models.RoleAdmin)
	_, studentToken := newUser(t, "catalogstudent@example.com", models.RoleStudent)
	course := newCourseWithContent(t, "Backoffice Course", 1000)

	// Students cannot read the back office catalog
	resp, err := app.Test(jsonRequest("GET", "/admin/course/list", nil, studentToken))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	findEntry := func(t *testing.T) map[string]interface{} {
		t.Helper()
		resp, err := app.Test(jsonRequest("GET", "/admin/course/list?limit=100", nil, adminToken))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		entries := body["data"].(map[string]interface{})["courses"].([]interface{})
		for _, raw := range entries {
			entry := raw.(map[string]interface{})
			if entry["course"].(map[string]interface{})["id"] == course.ID {
				return entry
			}
		}
		t.Fatal("course missing from admin catalog")
		return nil
	}

	entry := findEntry(t)
	assert.Equal(t, false, entry["isDeleted"])
	assert.Equal(t, float64(2), entry["lessons"])

	// Lesson listing for the back office
	resp, err = app.Test(jsonRequest("GET", "/admin/course/"+course.ID+"/lessons", nil, adminToken))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	lessons := body["data"].(map[string]interface{})["lessons"].([]interface{})
	require.Len(t, lessons, 2)
	assert.Equal(t, float64(1), lessons[0].(map[string]interface{})["order_index"])
	assert.Equal(t, float64(2), lessons[1].(map[string]interface{})["order_index"])

	// A deleted course leaves the public catalog but stays visible here
	resp, err = app.Test(jsonRequest("DELETE", "/admin/course/"+course.ID, nil, adminToken))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest("GET", "/course/"+course.ID, nil, ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	entry = findEntry(t)
	assert.Equal(t, true, entry["isDeleted"])
}

func TestDashboardStatsIncludePassRate(t *testing.T) {
	app := setupApp()
	_, adminToken := newUser(t, "dashadmin@example.com", models.RoleAdmin)
	_, passerToken := newUser(t, "dashpasser@example.com", models.RoleStudent)
	_, failerToken := newUser(t, "dashfailer@example.com", models.RoleStudent)
	course := newCourseWithContent(t, "Dashboard Course", 1000)

	for token, answers := range map[string][]int{
		passerToken: {1, 0, 2},
		failerToken: {1, 0, 3},
	} {
		resp, err := app.Test(jsonRequest("POST", "/course/"+course.ID+"/enroll", nil, token))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		resp, err = app.Test(jsonRequest("POST", "/course/"+course.ID+"/test/submit", fiber.Map{
			"answers": answers,
		}, token))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(jsonRequest("GET", "/admin/dashboard/stats", nil, adminToken))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	learning := body["data"].(map[string]interface{})["learning"].(map[string]interface{})

	attempts := learning["testAttempts"].(float64)
	passed := learning["testsPassed"].(float64)
	require.GreaterOrEqual(t, attempts, float64(2))
	require.GreaterOrEqual(t, passed, float64(1))
	assert.Greater(t, attempts, passed)
	assert.Equal(t, math.Round(passed/attempts*100), learning["passRate"])
}

func TestAdminCreateTestRejectsBadAnswerIndex(t *testing.T) {
	app := setupApp()
	_, adminToken := newUser(t, "badquizadmin@example.com", models.RoleAdmin)
	course := newCourseWithContent(t, "Bad Quiz Course", 1000)

	resp, err := app.Test(jsonRequest("POST", "/admin/course/"+course.ID+"/test", fiber.Map{
		"title": "Broken Test",
		"questions": []fiber.Map{
			{"question": "q", "options": []string{"a", "b"}, "correct_answer": 5},
		},
	}, adminToken))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
