package route

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	userModel "eventhub_backend/internals/features/users/model"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&userModel.UserModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := fiber.New()
	AuthRoutes(app.Group("/api"), db)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode body %q: %v", raw, err)
	}
	return out
}

func studentPayload(email string) map[string]interface{} {
	return map[string]interface{}{
		"name":       "Asha Verma",
		"email":      email,
		"password":   "secret123",
		"role":       "student",
		"phone":      "9876543210",
		"student_id": "CS-042",
		"department": "CSE",
		"year":       3,
	}
}

func TestRegisterThenLogin(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", studentPayload("asha@example.com"))
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}
	body := decodeEnvelope(t, resp)
	data, _ := body["data"].(map[string]interface{})
	if token, _ := data["token"].(string); token == "" {
		t.Fatalf("register response missing token: %v", body)
	}

	resp = postJSON(t, app, "/api/auth/login", map[string]string{
		"email": "asha@example.com", "password": "secret123",
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)

	if resp := postJSON(t, app, "/api/auth/register", studentPayload("dup@example.com")); resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("first register status = %d", resp.StatusCode)
	}
	resp := postJSON(t, app, "/api/auth/register", studentPayload("dup@example.com"))
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", resp.StatusCode)
	}
}

func TestRegisterStudentRequiresProfileFields(t *testing.T) {
	app, _ := newTestApp(t)

	payload := studentPayload("incomplete@example.com")
	delete(payload, "student_id")
	delete(payload, "department")
	delete(payload, "year")

	resp := postJSON(t, app, "/api/auth/register", payload)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

// Unknown email and wrong password must be indistinguishable.
func TestLoginUniformRejection(t *testing.T) {
	app, _ := newTestApp(t)
	postJSON(t, app, "/api/auth/register", studentPayload("asha@example.com"))

	wrongPass := postJSON(t, app, "/api/auth/login", map[string]string{
		"email": "asha@example.com", "password": "nope",
	})
	unknown := postJSON(t, app, "/api/auth/login", map[string]string{
		"email": "ghost@example.com", "password": "nope",
	})

	if wrongPass.StatusCode != fiber.StatusUnauthorized || unknown.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("statuses = %d / %d, want 401 for both", wrongPass.StatusCode, unknown.StatusCode)
	}
	msgA := decodeEnvelope(t, wrongPass)["message"]
	msgB := decodeEnvelope(t, unknown)["message"]
	if msgA != msgB {
		t.Errorf("rejection messages differ: %q vs %q", msgA, msgB)
	}
	if msgA != "Invalid credentials" {
		t.Errorf("message = %q, want Invalid credentials", msgA)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	app, db := newTestApp(t)
	postJSON(t, app, "/api/auth/register", studentPayload("asha@example.com"))
	if err := db.Model(&userModel.UserModel{}).
		Where("email = ?", "asha@example.com").
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	resp := postJSON(t, app, "/api/auth/login", map[string]string{
		"email": "asha@example.com", "password": "secret123",
	})
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}

func TestGetMeWithToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", studentPayload("asha@example.com"))
	data, _ := decodeEnvelope(t, resp)["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("no token in register response")
	}

	req := httptest.NewRequest(fiber.MethodGet, "/api/auth/user", nil)
	req.Header.Set("x-auth-token", token)
	meResp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("me request: %v", err)
	}
	if meResp.StatusCode != fiber.StatusOK {
		t.Fatalf("me status = %d, want 200", meResp.StatusCode)
	}
	me, _ := decodeEnvelope(t, meResp)["data"].(map[string]interface{})
	if me["email"] != "asha@example.com" {
		t.Errorf("me email = %v, want asha@example.com", me["email"])
	}
}

func TestGetMeWithoutToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/auth/user", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
