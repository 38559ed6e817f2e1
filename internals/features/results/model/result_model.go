package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResultModel struct {
	ResultID             uuid.UUID `gorm:"column:result_id;type:uuid;primaryKey" json:"result_id"`
	ResultEventID        uuid.UUID `gorm:"column:result_event_id;type:uuid;not null;index:idx_results_event_id" json:"result_event_id"`
	ResultRegistrationID uuid.UUID `gorm:"column:result_registration_id;type:uuid;not null;uniqueIndex:ux_results_registration_id" json:"result_registration_id"`
	ResultStudentID      uuid.UUID `gorm:"column:result_student_id;type:uuid;not null" json:"result_student_id"`

	ResultRank        int       `gorm:"column:result_rank;not null" json:"result_rank"`
	ResultCategory    string    `gorm:"column:result_category;type:varchar(100)" json:"result_category"`
	ResultPrize       string    `gorm:"column:result_prize;type:varchar(200)" json:"result_prize"`
	ResultAnnouncedBy uuid.UUID `gorm:"column:result_announced_by;type:uuid" json:"result_announced_by"`

	ResultCreatedAt time.Time `gorm:"column:result_created_at;autoCreateTime" json:"result_created_at"`
	ResultUpdatedAt time.Time `gorm:"column:result_updated_at;autoUpdateTime" json:"result_updated_at"`
}

func (ResultModel) TableName() string {
	return "results"
}

func (r *ResultModel) BeforeCreate(tx *gorm.DB) error {
	if r.ResultID == uuid.Nil {
		r.ResultID = uuid.New()
	}
	return nil
}
