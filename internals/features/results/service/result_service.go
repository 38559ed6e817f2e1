package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	regModel "eventhub_backend/internals/features/registrations/model"
	"eventhub_backend/internals/features/results/model"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrCertificateNotReady  = errors.New("certificate not available yet")
)

// MarkWinnerInput carries the organizer's winner announcement.
type MarkWinnerInput struct {
	RegistrationID uuid.UUID
	Rank           int
	Category       string
	Prize          string
	AnnouncedBy    uuid.UUID
}

// MarkWinner records (or re-records) a winner for an event. The result row is
// upserted on registration id, and the winner flag plus rank are mirrored
// onto the registration so eligibility checks read a single row.
func MarkWinner(db *gorm.DB, in MarkWinnerInput) (*model.ResultModel, error) {
	var reg regModel.RegistrationModel
	if err := db.First(&reg, "registration_id = ?", in.RegistrationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}

	var result model.ResultModel
	txErr := db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&result, "result_registration_id = ?", in.RegistrationID).Error
		switch {
		case err == nil:
			result.ResultRank = in.Rank
			result.ResultCategory = in.Category
			result.ResultPrize = in.Prize
			result.ResultAnnouncedBy = in.AnnouncedBy
			if err := tx.Save(&result).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			result = model.ResultModel{
				ResultEventID:        reg.RegistrationEventID,
				ResultRegistrationID: in.RegistrationID,
				ResultStudentID:      reg.RegistrationStudentID,
				ResultRank:           in.Rank,
				ResultCategory:       in.Category,
				ResultPrize:          in.Prize,
				ResultAnnouncedBy:    in.AnnouncedBy,
			}
			if err := tx.Create(&result).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Model(&reg).Updates(map[string]interface{}{
			"registration_is_winner": true,
			"registration_rank":      in.Rank,
		}).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return &result, nil
}

// CertificateEligible: winners only, and only once the registration is both
// paid and marked attended.
func CertificateEligible(reg *regModel.RegistrationModel) bool {
	return reg.RegistrationIsWinner &&
		reg.RegistrationPaymentStatus == regModel.PaymentPaid &&
		reg.RegistrationStatus == regModel.StatusAttended
}
