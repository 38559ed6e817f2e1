package dto

import (
	"time"

	"github.com/google/uuid"

	"eventhub_backend/internals/features/payments/model"
)

type DummyPaymentRequest struct {
	RegistrationID uuid.UUID `json:"registration_id"`
	// Optional; a FAKE-<timestamp> id is generated when absent.
	TransactionID string `json:"transaction_id"`
}

type PaymentResponse struct {
	PaymentID      uuid.UUID  `json:"payment_id"`
	RegistrationID uuid.UUID  `json:"registration_id"`
	EventID        uuid.UUID  `json:"event_id"`
	StudentID      uuid.UUID  `json:"student_id"`
	Amount         float64    `json:"amount"`
	Method         string     `json:"method"`
	Status         string     `json:"status"`
	TransactionID  string     `json:"transaction_id"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func ToPaymentResponse(m *model.PaymentModel) *PaymentResponse {
	return &PaymentResponse{
		PaymentID:      m.PaymentID,
		RegistrationID: m.PaymentRegistrationID,
		EventID:        m.PaymentEventID,
		StudentID:      m.PaymentStudentID,
		Amount:         m.PaymentAmount,
		Method:         m.PaymentMethod,
		Status:         m.PaymentStatus,
		TransactionID:  m.PaymentTransactionID,
		PaidAt:         m.PaymentPaidAt,
		CreatedAt:      m.PaymentCreatedAt,
	}
}
