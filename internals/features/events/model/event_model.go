package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Event status values.
const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// EventCategories are the accepted category values.
var EventCategories = []string{"Technical", "Cultural", "Sports", "Academic", "Workshop", "Other"}

type EventModel struct {
	EventID          uuid.UUID `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	EventTitle       string    `gorm:"column:event_title;type:varchar(255);not null" json:"event_title"`
	EventDescription string    `gorm:"column:event_description;type:text;not null" json:"event_description"`
	EventCategory    string    `gorm:"column:event_category;type:varchar(30);not null;index:idx_events_category_status" json:"event_category"`
	EventDate        time.Time `gorm:"column:event_date;not null;index:idx_events_date_status" json:"event_date"`
	EventEndDate     time.Time `gorm:"column:event_end_date;not null" json:"event_end_date"`
	EventVenue       string    `gorm:"column:event_venue;type:varchar(255);not null" json:"event_venue"`

	EventRegistrationFee     float64 `gorm:"column:event_registration_fee;not null;default:0" json:"event_registration_fee"`
	EventMaxParticipants     int     `gorm:"column:event_max_participants;not null" json:"event_max_participants"`
	EventCurrentParticipants int     `gorm:"column:event_current_participants;not null;default:0" json:"event_current_participants"`

	EventOrganizerID uuid.UUID `gorm:"column:event_organizer_id;type:uuid;not null;index:idx_events_organizer_id" json:"event_organizer_id"`
	EventStatus      string    `gorm:"column:event_status;type:varchar(20);not null;default:'upcoming';index:idx_events_date_status;index:idx_events_category_status" json:"event_status"`
	EventImage       string    `gorm:"column:event_image;type:text" json:"event_image"`

	EventRules        pq.StringArray `gorm:"column:event_rules;type:text[]" json:"event_rules"`
	EventPrizes       pq.StringArray `gorm:"column:event_prizes;type:text[]" json:"event_prizes"`
	EventRequirements pq.StringArray `gorm:"column:event_requirements;type:text[]" json:"event_requirements"`
	EventTags         pq.StringArray `gorm:"column:event_tags;type:text[]" json:"event_tags"`

	// No gorm default here: with one, gorm drops the zero value from the
	// INSERT and a closed event would be stored open.
	EventIsRegistrationOpen   bool      `gorm:"column:event_is_registration_open;not null" json:"event_is_registration_open"`
	EventRegistrationDeadline time.Time `gorm:"column:event_registration_deadline;not null" json:"event_registration_deadline"`

	EventCreatedAt time.Time `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`
}

func (EventModel) TableName() string {
	return "events"
}

func (e *EventModel) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}

// EffectiveEnd is the timestamp the auto-absent sweep compares against:
// the end date when set, otherwise the start date.
func (e *EventModel) EffectiveEnd() time.Time {
	if !e.EventEndDate.IsZero() {
		return e.EventEndDate
	}
	return e.EventDate
}
