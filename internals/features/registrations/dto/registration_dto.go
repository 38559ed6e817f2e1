package dto

import (
	"time"

	"github.com/google/uuid"

	"eventhub_backend/internals/features/registrations/model"
)

type RegistrationRequest struct {
	EventID     uuid.UUID                `json:"event_id"`
	TeamName    string                   `json:"team_name"`
	TeamMembers []model.TeamMember       `json:"team_members"`
	Extra       *model.RegistrationExtra `json:"extra"`
}

type AttendanceRequest struct {
	Status string `json:"status"` // attended | absent
}

type RegistrationResponse struct {
	RegistrationID uuid.UUID `json:"registration_id"`
	StudentID      uuid.UUID `json:"student_id"`
	EventID        uuid.UUID `json:"event_id"`
	Amount         float64   `json:"amount"`
	PaymentStatus  string    `json:"payment_status"`
	TransactionID  string    `json:"transaction_id,omitempty"`
	Status         string    `json:"status"`

	TeamName    string                  `json:"team_name,omitempty"`
	TeamMembers []model.TeamMember      `json:"team_members,omitempty"`
	Extra       model.RegistrationExtra `json:"extra"`

	IsWinner bool `json:"is_winner"`
	Rank     *int `json:"rank,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func ToRegistrationResponse(m *model.RegistrationModel) *RegistrationResponse {
	return &RegistrationResponse{
		RegistrationID: m.RegistrationID,
		StudentID:      m.RegistrationStudentID,
		EventID:        m.RegistrationEventID,
		Amount:         m.RegistrationAmount,
		PaymentStatus:  m.RegistrationPaymentStatus,
		TransactionID:  m.RegistrationTransactionID,
		Status:         m.RegistrationStatus,
		TeamName:       m.RegistrationTeamName,
		TeamMembers:    m.RegistrationTeamMembers,
		Extra:          m.RegistrationExtraInfo.Data(),
		IsWinner:       m.RegistrationIsWinner,
		Rank:           m.RegistrationRank,
		CreatedAt:      m.RegistrationCreatedAt,
	}
}

func ToRegistrationResponseList(models []model.RegistrationModel) []RegistrationResponse {
	result := make([]RegistrationResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToRegistrationResponse(&models[i]))
	}
	return result
}
