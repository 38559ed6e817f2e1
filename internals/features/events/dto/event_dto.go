package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"eventhub_backend/internals/features/events/model"
)

var validate = validator.New()

type EventRequest struct {
	Title                string    `json:"title" validate:"required,max=255"`
	Description          string    `json:"description" validate:"required"`
	Category             string    `json:"category" validate:"required,oneof=Technical Cultural Sports Academic Workshop Other"`
	Date                 time.Time `json:"date" validate:"required"`
	EndDate              time.Time `json:"end_date" validate:"required"`
	Venue                string    `json:"venue" validate:"required"`
	RegistrationFee      float64   `json:"registration_fee" validate:"gte=0"`
	MaxParticipants      int       `json:"max_participants" validate:"required,gt=0"`
	Rules                []string  `json:"rules"`
	Prizes               []string  `json:"prizes"`
	Requirements         []string  `json:"requirements"`
	Tags                 []string  `json:"tags"`
	Image                string    `json:"image"`
	RegistrationDeadline time.Time `json:"registration_deadline" validate:"required"`
}

// EventUpdateRequest carries only the fields present in the body.
type EventUpdateRequest struct {
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	Category             *string    `json:"category"`
	Date                 *time.Time `json:"date"`
	EndDate              *time.Time `json:"end_date"`
	Venue                *string    `json:"venue"`
	RegistrationFee      *float64   `json:"registration_fee"`
	MaxParticipants      *int       `json:"max_participants"`
	Status               *string    `json:"status"`
	Image                *string    `json:"image"`
	Rules                *[]string  `json:"rules"`
	Prizes               *[]string  `json:"prizes"`
	Requirements         *[]string  `json:"requirements"`
	Tags                 *[]string  `json:"tags"`
	IsRegistrationOpen   *bool      `json:"is_registration_open"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
}

type EventResponse struct {
	EventID              uuid.UUID `json:"event_id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Category             string    `json:"category"`
	Date                 time.Time `json:"date"`
	EndDate              time.Time `json:"end_date"`
	Venue                string    `json:"venue"`
	RegistrationFee      float64   `json:"registration_fee"`
	MaxParticipants      int       `json:"max_participants"`
	CurrentParticipants  int       `json:"current_participants"`
	OrganizerID          uuid.UUID `json:"organizer_id"`
	Status               string    `json:"status"`
	Image                string    `json:"image,omitempty"`
	Rules                []string  `json:"rules,omitempty"`
	Prizes               []string  `json:"prizes,omitempty"`
	Requirements         []string  `json:"requirements,omitempty"`
	Tags                 []string  `json:"tags,omitempty"`
	IsRegistrationOpen   bool      `json:"is_registration_open"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	CreatedAt            time.Time `json:"created_at"`
}

func (r *EventRequest) Validate() error {
	return validate.Struct(r)
}

func (r *EventRequest) ToModel(organizerID uuid.UUID) *model.EventModel {
	return &model.EventModel{
		EventTitle:                r.Title,
		EventDescription:          r.Description,
		EventCategory:             r.Category,
		EventDate:                 r.Date,
		EventEndDate:              r.EndDate,
		EventVenue:                r.Venue,
		EventRegistrationFee:      r.RegistrationFee,
		EventMaxParticipants:      r.MaxParticipants,
		EventOrganizerID:          organizerID,
		EventStatus:               model.StatusUpcoming,
		EventImage:                r.Image,
		EventRules:                pq.StringArray(r.Rules),
		EventPrizes:               pq.StringArray(r.Prizes),
		EventRequirements:         pq.StringArray(r.Requirements),
		EventTags:                 pq.StringArray(r.Tags),
		EventIsRegistrationOpen:   true,
		EventRegistrationDeadline: r.RegistrationDeadline,
	}
}

func ToEventResponse(m *model.EventModel) *EventResponse {
	return &EventResponse{
		EventID:              m.EventID,
		Title:                m.EventTitle,
		Description:          m.EventDescription,
		Category:             m.EventCategory,
		Date:                 m.EventDate,
		EndDate:              m.EventEndDate,
		Venue:                m.EventVenue,
		RegistrationFee:      m.EventRegistrationFee,
		MaxParticipants:      m.EventMaxParticipants,
		CurrentParticipants:  m.EventCurrentParticipants,
		OrganizerID:          m.EventOrganizerID,
		Status:               m.EventStatus,
		Image:                m.EventImage,
		Rules:                m.EventRules,
		Prizes:               m.EventPrizes,
		Requirements:         m.EventRequirements,
		Tags:                 m.EventTags,
		IsRegistrationOpen:   m.EventIsRegistrationOpen,
		RegistrationDeadline: m.EventRegistrationDeadline,
		CreatedAt:            m.EventCreatedAt,
	}
}

func ToEventResponseList(models []model.EventModel) []EventResponse {
	result := make([]EventResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToEventResponse(&models[i]))
	}
	return result
}
