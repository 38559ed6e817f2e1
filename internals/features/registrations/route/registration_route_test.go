package route

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"eventhub_backend/internals/constants"
	eventModel "eventhub_backend/internals/features/events/model"
	"eventhub_backend/internals/features/registrations/model"
	userService "eventhub_backend/internals/features/users/service"
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
	if err := db.AutoMigrate(&eventModel.EventModel{}, &model.RegistrationModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := fiber.New()
	RegistrationRoutes(app.Group("/api"), db)
	return app, db
}

func tokenFor(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	token, err := userService.IssueToken(userID, role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func seedEvent(t *testing.T, db *gorm.DB, organizerID uuid.UUID, mutate func(*eventModel.EventModel)) *eventModel.EventModel {
	t.Helper()
	ev := &eventModel.EventModel{
		EventTitle: "Quiz Finals", EventDescription: "finals", EventCategory: "Academic",
		EventDate: time.Now().Add(48 * time.Hour), EventEndDate: time.Now().Add(50 * time.Hour),
		EventVenue: "Auditorium", EventRegistrationFee: 20, EventMaxParticipants: 2,
		EventOrganizerID: organizerID, EventStatus: eventModel.StatusUpcoming,
		EventIsRegistrationOpen: true, EventRegistrationDeadline: time.Now().Add(24 * time.Hour),
	}
	if mutate != nil {
		mutate(ev)
	}
	if err := db.Create(ev).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return ev
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}
	return resp
}

func TestRegistrationLifecycleOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	organizer := uuid.New()
	ev := seedEvent(t, db, organizer, nil)

	studentA := uuid.New()
	tokenA := tokenFor(t, studentA, constants.RoleStudent)

	// Register
	resp := doJSON(t, app, fiber.MethodPost, "/api/registrations", tokenA, map[string]interface{}{
		"event_id": ev.EventID, "team_name": "Alpha",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}

	// Duplicate
	resp = doJSON(t, app, fiber.MethodPost, "/api/registrations", tokenA, map[string]interface{}{
		"event_id": ev.EventID,
	})
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", resp.StatusCode)
	}

	// Second student takes the last seat, third bounces off capacity.
	tokenB := tokenFor(t, uuid.New(), constants.RoleStudent)
	if resp := doJSON(t, app, fiber.MethodPost, "/api/registrations", tokenB, map[string]interface{}{
		"event_id": ev.EventID,
	}); resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("second register status = %d, want 201", resp.StatusCode)
	}
	tokenC := tokenFor(t, uuid.New(), constants.RoleStudent)
	resp = doJSON(t, app, fiber.MethodPost, "/api/registrations", tokenC, map[string]interface{}{
		"event_id": ev.EventID,
	})
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("over-capacity status = %d, want 409", resp.StatusCode)
	}

	// Own list
	resp = doJSON(t, app, fiber.MethodGet, "/api/registrations/me", tokenA, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("me status = %d, want 200", resp.StatusCode)
	}
	var envelope struct {
		Data []map[string]interface{} `json:"data"`
	}
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("decode me body %q: %v", raw, err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("me list = %d entries, want 1", len(envelope.Data))
	}
}

func TestRegistrationClosedEventOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	ev := seedEvent(t, db, uuid.New(), func(e *eventModel.EventModel) {
		e.EventIsRegistrationOpen = false
	})

	token := tokenFor(t, uuid.New(), constants.RoleStudent)
	resp := doJSON(t, app, fiber.MethodPost, "/api/registrations", token, map[string]interface{}{
		"event_id": ev.EventID,
	})
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("closed-event status = %d, want 409", resp.StatusCode)
	}
}

func TestRegistrationRequiresToken(t *testing.T) {
	app, db := newTestApp(t)
	ev := seedEvent(t, db, uuid.New(), nil)

	resp := doJSON(t, app, fiber.MethodPost, "/api/registrations", "", map[string]interface{}{
		"event_id": ev.EventID,
	})
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRegistrationUnknownEventOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	token := tokenFor(t, uuid.New(), constants.RoleStudent)

	resp := doJSON(t, app, fiber.MethodPost, "/api/registrations", token, map[string]interface{}{
		"event_id": uuid.New(),
	})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestEventRegistrationsListSweepsExpired(t *testing.T) {
	app, db := newTestApp(t)
	organizer := uuid.New()
	ev := seedEvent(t, db, organizer, func(e *eventModel.EventModel) {
		e.EventDate = time.Now().Add(-72 * time.Hour)
		e.EventEndDate = time.Now().Add(-48 * time.Hour)
	})

	reg := model.RegistrationModel{
		RegistrationStudentID: uuid.New(), RegistrationEventID: ev.EventID,
		RegistrationStatus: model.StatusRegistered, RegistrationPaymentStatus: model.PaymentPending,
	}
	if err := db.Create(&reg).Error; err != nil {
		t.Fatalf("seed registration: %v", err)
	}

	token := tokenFor(t, organizer, constants.RoleOrganizer)
	resp := doJSON(t, app, fiber.MethodGet, "/api/registrations/event/"+ev.EventID.String(), token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var fresh model.RegistrationModel
	if err := db.First(&fresh, "registration_id = ?", reg.RegistrationID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fresh.RegistrationStatus != model.StatusAbsent {
		t.Errorf("status after listing = %q, want absent", fresh.RegistrationStatus)
	}
}

func TestEventRegistrationsListForeignOrganizerForbidden(t *testing.T) {
	app, db := newTestApp(t)
	ev := seedEvent(t, db, uuid.New(), nil)

	token := tokenFor(t, uuid.New(), constants.RoleOrganizer)
	resp := doJSON(t, app, fiber.MethodGet, "/api/registrations/event/"+ev.EventID.String(), token, nil)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}

func TestUpdateAttendanceOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	organizer := uuid.New()
	ev := seedEvent(t, db, organizer, nil)

	reg := model.RegistrationModel{
		RegistrationStudentID: uuid.New(), RegistrationEventID: ev.EventID,
		RegistrationStatus: model.StatusRegistered, RegistrationPaymentStatus: model.PaymentPaid,
	}
	if err := db.Create(&reg).Error; err != nil {
		t.Fatalf("seed registration: %v", err)
	}

	token := tokenFor(t, organizer, constants.RoleOrganizer)
	path := "/api/registrations/" + reg.RegistrationID.String() + "/attendance"

	resp := doJSON(t, app, fiber.MethodPost, path, token, map[string]string{"status": "attended"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var fresh model.RegistrationModel
	db.First(&fresh, "registration_id = ?", reg.RegistrationID)
	if fresh.RegistrationStatus != model.StatusAttended {
		t.Errorf("status = %q, want attended", fresh.RegistrationStatus)
	}

	// Only attended/absent are accepted here.
	resp = doJSON(t, app, fiber.MethodPost, path, token, map[string]string{"status": "disqualified"})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("invalid status code = %d, want 400", resp.StatusCode)
	}

	// Students cannot hit the organizer group at all.
	studentToken := tokenFor(t, uuid.New(), constants.RoleStudent)
	resp = doJSON(t, app, fiber.MethodPost, path, studentToken, map[string]string{"status": "attended"})
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("student status code = %d, want 403", resp.StatusCode)
	}
}

func TestAutoAbsentSingleRegistration(t *testing.T) {
	app, db := newTestApp(t)
	organizer := uuid.New()

	past := seedEvent(t, db, organizer, func(e *eventModel.EventModel) {
		e.EventDate = time.Now().Add(-72 * time.Hour)
		e.EventEndDate = time.Now().Add(-48 * time.Hour)
	})
	future := seedEvent(t, db, organizer, nil)

	stale := model.RegistrationModel{
		RegistrationStudentID: uuid.New(), RegistrationEventID: past.EventID,
		RegistrationStatus: model.StatusRegistered, RegistrationPaymentStatus: model.PaymentPending,
	}
	fresh := model.RegistrationModel{
		RegistrationStudentID: uuid.New(), RegistrationEventID: future.EventID,
		RegistrationStatus: model.StatusRegistered, RegistrationPaymentStatus: model.PaymentPending,
	}
	for _, reg := range []*model.RegistrationModel{&stale, &fresh} {
		if err := db.Create(reg).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	token := tokenFor(t, organizer, constants.RoleOrganizer)

	resp := doJSON(t, app, fiber.MethodPost, "/api/registrations/"+stale.RegistrationID.String()+"/auto-absent", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var swept model.RegistrationModel
	if err := db.First(&swept, "registration_id = ?", stale.RegistrationID).Error; err != nil {
		t.Fatalf("reload past-event registration: %v", err)
	}
	if swept.RegistrationStatus != model.StatusAbsent {
		t.Errorf("past-event status = %q, want absent", swept.RegistrationStatus)
	}

	// Event still running: the call is a no-op.
	resp = doJSON(t, app, fiber.MethodPost, "/api/registrations/"+fresh.RegistrationID.String()+"/auto-absent", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var untouched model.RegistrationModel
	if err := db.First(&untouched, "registration_id = ?", fresh.RegistrationID).Error; err != nil {
		t.Fatalf("reload future-event registration: %v", err)
	}
	if untouched.RegistrationStatus != model.StatusRegistered {
		t.Errorf("future-event status = %q, want registered", untouched.RegistrationStatus)
	}
}
