package service

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	eventModel "eventhub_backend/internals/features/events/model"
	"eventhub_backend/internals/features/registrations/model"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	// One connection so every session sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&eventModel.EventModel{}, &model.RegistrationModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedEvent(t *testing.T, db *gorm.DB, mutate func(*eventModel.EventModel)) *eventModel.EventModel {
	t.Helper()
	ev := &eventModel.EventModel{
		EventTitle:                "Hack Night",
		EventDescription:          "24h hackathon",
		EventCategory:             "Technical",
		EventDate:                 time.Now().Add(48 * time.Hour),
		EventEndDate:              time.Now().Add(72 * time.Hour),
		EventVenue:                "Main Hall",
		EventRegistrationFee:      150,
		EventMaxParticipants:      10,
		EventOrganizerID:          uuid.New(),
		EventStatus:               eventModel.StatusUpcoming,
		EventIsRegistrationOpen:   true,
		EventRegistrationDeadline: time.Now().Add(24 * time.Hour),
	}
	if mutate != nil {
		mutate(ev)
	}
	if err := db.Create(ev).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return ev
}

func TestCreateRegistrationSnapshotsFeeAndIncrementsCounter(t *testing.T) {
	db := newTestDB(t)
	ev := seedEvent(t, db, nil)
	student := uuid.New()

	reg, err := CreateRegistration(db, CreateRegistrationInput{
		StudentID: student,
		EventID:   ev.EventID,
		Extra:     &model.RegistrationExtra{College: "NIT", RollNumber: "42"},
	})
	if err != nil {
		t.Fatalf("create registration: %v", err)
	}

	if reg.RegistrationAmount != 150 {
		t.Errorf("fee snapshot = %v, want 150", reg.RegistrationAmount)
	}
	if reg.RegistrationPaymentStatus != model.PaymentPending {
		t.Errorf("payment status = %q, want pending", reg.RegistrationPaymentStatus)
	}
	if reg.RegistrationStatus != model.StatusRegistered {
		t.Errorf("status = %q, want registered", reg.RegistrationStatus)
	}
	if got := reg.RegistrationExtraInfo.Data(); got.SchemaVersion != 1 || got.College != "NIT" {
		t.Errorf("extra = %+v, want schema v1 with college NIT", got)
	}

	var fresh eventModel.EventModel
	if err := db.First(&fresh, "event_id = ?", ev.EventID).Error; err != nil {
		t.Fatalf("reload event: %v", err)
	}
	if fresh.EventCurrentParticipants != 1 {
		t.Errorf("current participants = %d, want 1", fresh.EventCurrentParticipants)
	}
}

func TestCreateRegistrationUnknownEvent(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateRegistration(db, CreateRegistrationInput{
		StudentID: uuid.New(),
		EventID:   uuid.New(),
	})
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("err = %v, want ErrEventNotFound", err)
	}
}

func TestCreateRegistrationClosedEvent(t *testing.T) {
	db := newTestDB(t)
	ev := seedEvent(t, db, func(e *eventModel.EventModel) {
		e.EventIsRegistrationOpen = false
	})

	_, err := CreateRegistration(db, CreateRegistrationInput{
		StudentID: uuid.New(),
		EventID:   ev.EventID,
	})
	if !errors.Is(err, ErrRegistrationClosed) {
		t.Fatalf("err = %v, want ErrRegistrationClosed", err)
	}
}

func TestCreateRegistrationCapacity(t *testing.T) {
	db := newTestDB(t)
	ev := seedEvent(t, db, func(e *eventModel.EventModel) {
		e.EventMaxParticipants = 1
	})

	if _, err := CreateRegistration(db, CreateRegistrationInput{
		StudentID: uuid.New(), EventID: ev.EventID,
	}); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	_, err := CreateRegistration(db, CreateRegistrationInput{
		StudentID: uuid.New(), EventID: ev.EventID,
	})
	if !errors.Is(err, ErrCapacityReached) {
		t.Fatalf("err = %v, want ErrCapacityReached", err)
	}

	var fresh eventModel.EventModel
	if err := db.First(&fresh, "event_id = ?", ev.EventID).Error; err != nil {
		t.Fatalf("reload event: %v", err)
	}
	if fresh.EventCurrentParticipants != 1 {
		t.Errorf("current participants = %d, want 1 after rejected attempt", fresh.EventCurrentParticipants)
	}
}

func TestCreateRegistrationDuplicateKeepsCounter(t *testing.T) {
	db := newTestDB(t)
	ev := seedEvent(t, db, nil)
	student := uuid.New()

	if _, err := CreateRegistration(db, CreateRegistrationInput{
		StudentID: student, EventID: ev.EventID,
	}); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	_, err := CreateRegistration(db, CreateRegistrationInput{
		StudentID: student, EventID: ev.EventID,
	})
	if !errors.Is(err, ErrDuplicateRegistration) {
		t.Fatalf("err = %v, want ErrDuplicateRegistration", err)
	}

	var fresh eventModel.EventModel
	if err := db.First(&fresh, "event_id = ?", ev.EventID).Error; err != nil {
		t.Fatalf("reload event: %v", err)
	}
	if fresh.EventCurrentParticipants != 1 {
		t.Errorf("current participants = %d, want 1", fresh.EventCurrentParticipants)
	}

	var count int64
	db.Model(&model.RegistrationModel{}).Where("registration_event_id = ?", ev.EventID).Count(&count)
	if count != 1 {
		t.Errorf("registrations = %d, want 1", count)
	}
}

func TestSweepExpiredMarksOnlyRegistered(t *testing.T) {
	db := newTestDB(t)
	ev := seedEvent(t, db, func(e *eventModel.EventModel) {
		e.EventDate = time.Now().Add(-72 * time.Hour)
		e.EventEndDate = time.Now().Add(-48 * time.Hour)
	})

	stale := model.RegistrationModel{
		RegistrationStudentID: uuid.New(), RegistrationEventID: ev.EventID,
		RegistrationStatus: model.StatusRegistered, RegistrationPaymentStatus: model.PaymentPending,
	}
	attended := model.RegistrationModel{
		RegistrationStudentID: uuid.New(), RegistrationEventID: ev.EventID,
		RegistrationStatus: model.StatusAttended, RegistrationPaymentStatus: model.PaymentPaid,
	}
	if err := db.Create(&stale).Error; err != nil {
		t.Fatalf("seed stale: %v", err)
	}
	if err := db.Create(&attended).Error; err != nil {
		t.Fatalf("seed attended: %v", err)
	}

	n, err := SweepExpired(db, ev, time.Now())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Errorf("swept = %d, want 1", n)
	}

	var sweptReg model.RegistrationModel
	if err := db.First(&sweptReg, "registration_id = ?", stale.RegistrationID).Error; err != nil {
		t.Fatalf("reload stale: %v", err)
	}
	if sweptReg.RegistrationStatus != model.StatusAbsent {
		t.Errorf("stale status = %q, want absent", sweptReg.RegistrationStatus)
	}
	var keptReg model.RegistrationModel
	if err := db.First(&keptReg, "registration_id = ?", attended.RegistrationID).Error; err != nil {
		t.Fatalf("reload attended: %v", err)
	}
	if keptReg.RegistrationStatus != model.StatusAttended {
		t.Errorf("attended status = %q, want attended untouched", keptReg.RegistrationStatus)
	}

	// Second pass is a no-op.
	n, err = SweepExpired(db, ev, time.Now())
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if n != 0 {
		t.Errorf("second sweep = %d, want 0", n)
	}
}

func TestSweepExpiredSkipsRunningEvent(t *testing.T) {
	db := newTestDB(t)
	ev := seedEvent(t, db, nil) // ends in the future

	reg := model.RegistrationModel{
		RegistrationStudentID: uuid.New(), RegistrationEventID: ev.EventID,
		RegistrationStatus: model.StatusRegistered, RegistrationPaymentStatus: model.PaymentPending,
	}
	if err := db.Create(&reg).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	n, err := SweepExpired(db, ev, time.Now())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 0 {
		t.Errorf("swept = %d, want 0 for a future event", n)
	}
}

func TestSweepExpiredFallsBackToStartDate(t *testing.T) {
	db := newTestDB(t)
	ev := seedEvent(t, db, func(e *eventModel.EventModel) {
		e.EventDate = time.Now().Add(-24 * time.Hour)
		e.EventEndDate = time.Time{} // no end date: start date decides
	})

	reg := model.RegistrationModel{
		RegistrationStudentID: uuid.New(), RegistrationEventID: ev.EventID,
		RegistrationStatus: model.StatusRegistered, RegistrationPaymentStatus: model.PaymentPending,
	}
	if err := db.Create(&reg).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	n, err := SweepExpired(db, ev, time.Now())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Errorf("swept = %d, want 1", n)
	}
}

func TestSweepAllExpired(t *testing.T) {
	db := newTestDB(t)
	past := seedEvent(t, db, func(e *eventModel.EventModel) {
		e.EventDate = time.Now().Add(-72 * time.Hour)
		e.EventEndDate = time.Now().Add(-48 * time.Hour)
	})
	future := seedEvent(t, db, nil)

	for _, eventID := range []uuid.UUID{past.EventID, future.EventID} {
		reg := model.RegistrationModel{
			RegistrationStudentID: uuid.New(), RegistrationEventID: eventID,
			RegistrationStatus: model.StatusRegistered, RegistrationPaymentStatus: model.PaymentPending,
		}
		if err := db.Create(&reg).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	n, err := SweepAllExpired(db, time.Now())
	if err != nil {
		t.Fatalf("sweep all: %v", err)
	}
	if n != 1 {
		t.Errorf("swept = %d, want 1 (future event untouched)", n)
	}

	var count int64
	db.Model(&model.RegistrationModel{}).
		Where("registration_event_id = ? AND registration_status = ?", future.EventID, model.StatusRegistered).
		Count(&count)
	if count != 1 {
		t.Errorf("future event registrations swept, want them left registered")
	}
}
