package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusRefunded  = "refunded"
)

const MethodDummy = "dummy"

type PaymentModel struct {
	PaymentID             uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	PaymentRegistrationID uuid.UUID `gorm:"column:payment_registration_id;type:uuid;not null;uniqueIndex:ux_payments_registration_id" json:"payment_registration_id"`
	PaymentEventID        uuid.UUID `gorm:"column:payment_event_id;type:uuid;not null;index:idx_payments_event_id" json:"payment_event_id"`
	PaymentStudentID      uuid.UUID `gorm:"column:payment_student_id;type:uuid;not null;index:idx_payments_student_id" json:"payment_student_id"`

	PaymentAmount float64 `gorm:"column:payment_amount;not null" json:"payment_amount"`
	PaymentMethod string  `gorm:"column:payment_method;type:varchar(20);not null;default:'dummy'" json:"payment_method"`
	PaymentStatus string  `gorm:"column:payment_status;type:varchar(20);not null;default:'pending'" json:"payment_status"`

	PaymentTransactionID string     `gorm:"column:payment_transaction_id;type:varchar(100)" json:"payment_transaction_id"`
	PaymentPaidAt        *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

func (p *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	return nil
}
