package dto

import (
	"time"

	"github.com/google/uuid"

	"eventhub_backend/internals/features/results/model"
)

type MarkWinnerRequest struct {
	RegistrationID uuid.UUID `json:"registration_id"`
	Rank           int       `json:"rank"`
	Category       string    `json:"category"`
	Prize          string    `json:"prize"`
}

type ResultResponse struct {
	ResultID       uuid.UUID `json:"result_id"`
	EventID        uuid.UUID `json:"event_id"`
	RegistrationID uuid.UUID `json:"registration_id"`
	StudentID      uuid.UUID `json:"student_id"`
	Rank           int       `json:"rank"`
	Category       string    `json:"category,omitempty"`
	Prize          string    `json:"prize,omitempty"`
	AnnouncedBy    uuid.UUID `json:"announced_by"`
	StudentName    string    `json:"student_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToResultResponse(m *model.ResultModel) *ResultResponse {
	return &ResultResponse{
		ResultID:       m.ResultID,
		EventID:        m.ResultEventID,
		RegistrationID: m.ResultRegistrationID,
		StudentID:      m.ResultStudentID,
		Rank:           m.ResultRank,
		Category:       m.ResultCategory,
		Prize:          m.ResultPrize,
		AnnouncedBy:    m.ResultAnnouncedBy,
		CreatedAt:      m.ResultCreatedAt,
	}
}

func ToResultResponseList(models []model.ResultModel) []ResultResponse {
	result := make([]ResultResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToResultResponse(&models[i]))
	}
	return result
}
