package financeController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	financeRoutes "lms/routers/financeRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	config.LoadConfig()
	database.ConnectTestDb()
	os.Exit(m.Run())
}

func setupApp() *fiber.App {
	app := fiber.New()
	financeRoutes.SetupFinanceRoutes(app)
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

// newPayment opens an unpaid payment for the user against a fresh course.
func newPayment(t *testing.T, userId string, amount float64) models.Payment {
	t.Helper()

	course := courseModels.Course{Title: "Billing Course", Price: amount}
	require.NoError(t, database.Database.Db.Create(&course).Error)

	payment := models.Payment{
		UserID:    userId,
		CourseID:  course.ID,
		Amount:    amount,
		Paid:      0,
		Remaining: amount,
		Status:    models.PaymentStatusPending,
	}
	require.NoError(t, database.Database.Db.Create(&payment).Error)
	return payment
}

func TestInstallmentsKeepInvariant(t *testing.T) {
	app := setupApp()
	user, token := newUser(t, "payer@example.com", models.RoleStudent)
	payment := newPayment(t, user.ID, 1000)

	// First installment moves the payment to PARTIAL
	resp, err := app.Test(jsonRequest("POST", "/finance/payment/"+payment.ID+"/pay", fiber.Map{
		"amount": 400,
	}, token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(400), data["paid"])
	assert.Equal(t, float64(600), data["remaining"])
	assert.Equal(t, "PARTIAL", data["status"])

	// Second installment settles it
	resp, err = app.Test(jsonRequest("POST", "/finance/payment/"+payment.ID+"/pay", fiber.Map{
		"amount": 600,
	}, token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored models.Payment
	require.NoError(t, database.Database.Db.Where("id = ?", payment.ID).First(&stored).Error)
	assert.Equal(t, float64(1000), stored.Paid)
	assert.Equal(t, float64(0), stored.Remaining)
	assert.Equal(t, models.PaymentStatusCompleted, stored.Status)
	assert.Equal(t, stored.Amount, stored.Paid+stored.Remaining)

	// Settled payments reject further installments
	resp, err = app.Test(jsonRequest("POST", "/finance/payment/"+payment.ID+"/pay", fiber.Map{
		"amount": 1,
	}, token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestFractionalInstallmentsSettle(t *testing.T) {
	app := setupApp()
	user, token := newUser(t, "centpayer@example.com", models.RoleStudent)
	payment := newPayment(t, user.ID, 999.99)

	// Three equal installments must not strand the payment on a
	// sub-cent float residue
	for i := 0; i < 3; i++ {
		resp, err := app.Test(jsonRequest("POST", "/finance/payment/"+payment.ID+"/pay", fiber.Map{
			"amount": 333.33,
		}, token))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var stored models.Payment
	require.NoError(t, database.Database.Db.Where("id = ?", payment.ID).First(&stored).Error)
	assert.Equal(t, float64(999.99), stored.Paid)
	assert.Equal(t, float64(0), stored.Remaining)
	assert.Equal(t, models.PaymentStatusCompleted, stored.Status)
	assert.Equal(t, stored.Amount, stored.Paid+stored.Remaining)
}

func TestOverpaymentRejected(t *testing.T) {
	app := setupApp()
	user, token := newUser(t, "overpayer@example.com", models.RoleStudent)
	payment := newPayment(t, user.ID, 500)

	resp, err := app.Test(jsonRequest("POST", "/finance/payment/"+payment.ID+"/pay", fiber.Map{
		"amount": 501,
	}, token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var stored models.Payment
	require.NoError(t, database.Database.Db.Where("id = ?", payment.ID).First(&stored).Error)
	assert.Equal(t, float64(0), stored.Paid)
	assert.Equal(t, models.PaymentStatusPending, stored.Status)
}

func TestZeroAndNegativeAmountsRejected(t *testing.T) {
	app := setupApp()
	user, token := newUser(t, "zeropayer@example.com", models.RoleStudent)
	payment := newPayment(t, user.ID, 500)

	for _, amount := range []float64{0, -10} {
		resp, err := app.Test(jsonRequest("POST", "/finance/payment/"+payment.ID+"/pay", fiber.Map{
			"amount": amount,
		}, token))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	}
}

func TestCannotPaySomeoneElsesBill(t *testing.T) {
	app := setupApp()
	owner, _ := newUser(t, "billowner@example.com", models.RoleStudent)
	_, intruderToken := newUser(t, "intruder@example.com", models.RoleStudent)
	payment := newPayment(t, owner.ID, 500)

	resp, err := app.Test(jsonRequest("POST", "/finance/payment/"+payment.ID+"/pay", fiber.Map{
		"amount": 100,
	}, intruderToken))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminFinanceEndpoints(t *testing.T) {
	app := setupApp()
	user, studentToken := newUser(t, "financestudent@example.com", models.RoleStudent)
	_, adminToken := newUser(t, "financeadmin@example.com", models.RoleAdmin)

	payment := newPayment(t, user.ID, 2000)
	resp, err := app.Test(jsonRequest("POST", "/finance/payment/"+payment.ID+"/pay", fiber.Map{
		"amount": 500,
	}, studentToken))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Students cannot read the ledger
	resp, err = app.Test(jsonRequest("GET", "/admin/finance/list", nil, studentToken))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(jsonRequest("GET", "/admin/finance/list?status=PARTIAL", nil, adminToken))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	payments := body["data"].(map[string]interface{})["payments"].([]interface{})
	require.NotEmpty(t, payments)
	for _, entry := range payments {
		assert.Equal(t, "PARTIAL", entry.(map[string]interface{})["status"])
	}

	resp, err = app.Test(jsonRequest("GET", "/admin/finance/stats", nil, adminToken))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body = decodeBody(t, resp)
	stats := body["data"].(map[string]interface{})
	assert.GreaterOrEqual(t, stats["revenue"].(float64), float64(500))
	assert.GreaterOrEqual(t, stats["outstanding"].(float64), float64(1500))
}

func TestUserPaymentList(t *testing.T) {
	app := setupApp()
	user, token := newUser(t, "listpayer@example.com", models.RoleStudent)
	newPayment(t, user.ID, 300)
	newPayment(t, user.ID, 700)

	resp, err := app.Test(jsonRequest("GET", "/finance/payments", nil, token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	payments := body["data"].([]interface{})
	assert.Len(t, payments, 2)
}
