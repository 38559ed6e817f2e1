package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment state of a registration.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Attendance state of a registration. Disqualified is modeled but no route
// sets it.
const (
	StatusRegistered   = "registered"
	StatusAttended     = "attended"
	StatusAbsent       = "absent"
	StatusDisqualified = "disqualified"
)

type TeamMember struct {
	Name       string `json:"name"`
	StudentID  string `json:"student_id"`
	Department string `json:"department"`
}

// RegistrationExtra is the typed extension record replacing the old
// free-form additional-info blob. Bump SchemaVersion when fields change.
type RegistrationExtra struct {
	SchemaVersion int    `json:"schema_version"`
	College       string `json:"college,omitempty"`
	RollNumber    string `json:"roll_number,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type RegistrationModel struct {
	RegistrationID        uuid.UUID `gorm:"column:registration_id;type:uuid;primaryKey" json:"registration_id"`
	RegistrationStudentID uuid.UUID `gorm:"column:registration_student_id;type:uuid;not null;uniqueIndex:ux_registrations_student_event" json:"registration_student_id"`
	RegistrationEventID   uuid.UUID `gorm:"column:registration_event_id;type:uuid;not null;uniqueIndex:ux_registrations_student_event;index:idx_registrations_event_id" json:"registration_event_id"`

	// Fee snapshot taken from the event at registration time.
	RegistrationAmount        float64 `gorm:"column:registration_amount;not null" json:"registration_amount"`
	RegistrationPaymentStatus string  `gorm:"column:registration_payment_status;type:varchar(20);not null;default:'pending'" json:"registration_payment_status"`
	RegistrationTransactionID string  `gorm:"column:registration_transaction_id;type:varchar(100)" json:"registration_transaction_id"`

	RegistrationStatus string `gorm:"column:registration_status;type:varchar(20);not null;default:'registered'" json:"registration_status"`

	RegistrationTeamName    string                                `gorm:"column:registration_team_name;type:varchar(100)" json:"registration_team_name"`
	RegistrationTeamMembers datatypes.JSONSlice[TeamMember]       `gorm:"column:registration_team_members" json:"registration_team_members"`
	RegistrationExtraInfo   datatypes.JSONType[RegistrationExtra] `gorm:"column:registration_extra" json:"registration_extra"`

	RegistrationIsWinner bool `gorm:"column:registration_is_winner;not null;default:false" json:"registration_is_winner"`
	RegistrationRank     *int `gorm:"column:registration_rank" json:"registration_rank"`

	// Declared but never written by any route. Kept for schema parity.
	RegistrationCertificateGenerated bool   `gorm:"column:registration_certificate_generated;not null;default:false" json:"registration_certificate_generated"`
	RegistrationCertificateURL       string `gorm:"column:registration_certificate_url;type:text" json:"registration_certificate_url"`

	RegistrationCreatedAt time.Time `gorm:"column:registration_created_at;autoCreateTime" json:"registration_created_at"`
	RegistrationUpdatedAt time.Time `gorm:"column:registration_updated_at;autoUpdateTime" json:"registration_updated_at"`
}

func (RegistrationModel) TableName() string {
	return "registrations"
}

func (r *RegistrationModel) BeforeCreate(tx *gorm.DB) error {
	if r.RegistrationID == uuid.Nil {
		r.RegistrationID = uuid.New()
	}
	return nil
}
