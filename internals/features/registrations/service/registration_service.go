package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	eventModel "eventhub_backend/internals/features/events/model"
	"eventhub_backend/internals/features/registrations/model"
)

// Rejections surfaced to the client as conflict/not-found responses.
var (
	ErrEventNotFound         = errors.New("event not found")
	ErrRegistrationClosed    = errors.New("registration is closed")
	ErrCapacityReached       = errors.New("event capacity reached")
	ErrDuplicateRegistration = errors.New("already registered for this event")
)

const extraSchemaVersion = 1

// CreateRegistrationInput is the service-level input for self-registration.
type CreateRegistrationInput struct {
	StudentID   uuid.UUID
	EventID     uuid.UUID
	TeamName    string
	TeamMembers []model.TeamMember
	Extra       *model.RegistrationExtra
}

// CreateRegistration registers a student for an event. The insert and the
// participant-counter increment run in one transaction; the increment is a
// conditional UPDATE that only fires while the counter is below the maximum,
// so concurrent registrations cannot push the counter past capacity.
func CreateRegistration(db *gorm.DB, in CreateRegistrationInput) (*model.RegistrationModel, error) {
	var ev eventModel.EventModel
	if err := db.First(&ev, "event_id = ?", in.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if !ev.EventIsRegistrationOpen {
		return nil, ErrRegistrationClosed
	}
	if ev.EventCurrentParticipants >= ev.EventMaxParticipants {
		return nil, ErrCapacityReached
	}

	// Defensive duplicate check; the unique index below is authoritative.
	var existing model.RegistrationModel
	err := db.
		Where("registration_student_id = ? AND registration_event_id = ?", in.StudentID, in.EventID).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateRegistration
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	extra := model.RegistrationExtra{SchemaVersion: extraSchemaVersion}
	if in.Extra != nil {
		extra = *in.Extra
		extra.SchemaVersion = extraSchemaVersion
	}

	reg := &model.RegistrationModel{
		RegistrationStudentID:     in.StudentID,
		RegistrationEventID:       in.EventID,
		RegistrationAmount:        ev.EventRegistrationFee,
		RegistrationPaymentStatus: model.PaymentPending,
		RegistrationStatus:        model.StatusRegistered,
		RegistrationTeamName:      in.TeamName,
		RegistrationTeamMembers:   datatypes.NewJSONSlice(in.TeamMembers),
		RegistrationExtraInfo:     datatypes.NewJSONType(extra),
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		// Guarded increment: zero rows affected means capacity filled up
		// under us.
		res := tx.Model(&eventModel.EventModel{}).
			Where("event_id = ? AND event_current_participants < event_max_participants", in.EventID).
			UpdateColumn("event_current_participants", gorm.Expr("event_current_participants + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCapacityReached
		}

		if err := tx.Create(reg).Error; err != nil {
			low := strings.ToLower(err.Error())
			if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
				return ErrDuplicateRegistration
			}
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return reg, nil
}

// SweepExpired transitions stale "registered" entries of a finished event to
// "absent". Idempotent: entries already attended/absent/disqualified are left
// alone, and repeat calls change nothing. Returns how many rows transitioned.
func SweepExpired(db *gorm.DB, ev *eventModel.EventModel, now time.Time) (int64, error) {
	if !ev.EffectiveEnd().Before(now) {
		return 0, nil
	}
	res := db.Model(&model.RegistrationModel{}).
		Where("registration_event_id = ? AND registration_status = ?", ev.EventID, model.StatusRegistered).
		Update("registration_status", model.StatusAbsent)
	return res.RowsAffected, res.Error
}

// SweepOne applies the same transition to a single registration.
func SweepOne(db *gorm.DB, reg *model.RegistrationModel, ev *eventModel.EventModel, now time.Time) error {
	if !ev.EffectiveEnd().Before(now) || reg.RegistrationStatus != model.StatusRegistered {
		return nil
	}
	reg.RegistrationStatus = model.StatusAbsent
	return db.Model(reg).Update("registration_status", model.StatusAbsent).Error
}

// SweepAllExpired runs the sweep for every event whose effective end has
// passed. Used by the background scheduler; the lazy read path covers events
// organizers actually look at.
func SweepAllExpired(db *gorm.DB, now time.Time) (int64, error) {
	// Broad prefilter; SweepExpired re-checks the effective end per event.
	var events []eventModel.EventModel
	if err := db.
		Where("event_end_date < ? OR event_date < ?", now, now).
		Find(&events).Error; err != nil {
		return 0, err
	}

	var total int64
	for i := range events {
		n, err := SweepExpired(db, &events[i], now)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
