package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	eventModel "eventhub_backend/internals/features/events/model"
	"eventhub_backend/internals/features/payments/model"
	regModel "eventhub_backend/internals/features/registrations/model"
	userModel "eventhub_backend/internals/features/users/model"
	authHelper "eventhub_backend/internals/helpers/auth"
	"eventhub_backend/internals/mailer"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrNotYourRegistration  = errors.New("registration belongs to another student")
)

// ProcessDummyPayment settles a registration through the simulated gateway.
// The payment row is upserted on registration id, so retries and repeat
// calls converge on one completed row instead of piling up duplicates. The
// mirror onto the registration and the upsert run in one transaction; the
// confirmation email is fired after commit and never fails the request.
// txnOverride, when non-empty, replaces the generated FAKE-<timestamp> id.
func ProcessDummyPayment(db *gorm.DB, payerID uuid.UUID, payerRole string, registrationID uuid.UUID, txnOverride string) (*model.PaymentModel, error) {
	var reg regModel.RegistrationModel
	if err := db.First(&reg, "registration_id = ?", registrationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}

	if !authHelper.CanPayRegistration(payerID, payerRole, reg.RegistrationStudentID) {
		return nil, ErrNotYourRegistration
	}

	txnID := txnOverride
	if txnID == "" {
		txnID = fmt.Sprintf("FAKE-%d", time.Now().UnixMilli())
	}
	paidAt := time.Now()

	var payment model.PaymentModel
	txErr := db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&payment, "payment_registration_id = ?", registrationID).Error
		switch {
		case err == nil:
			payment.PaymentStatus = model.StatusCompleted
			payment.PaymentTransactionID = txnID
			payment.PaymentAmount = reg.RegistrationAmount
			payment.PaymentEventID = reg.RegistrationEventID
			payment.PaymentPaidAt = &paidAt
			if err := tx.Save(&payment).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			payment = model.PaymentModel{
				PaymentRegistrationID: registrationID,
				PaymentEventID:        reg.RegistrationEventID,
				PaymentStudentID:      reg.RegistrationStudentID,
				PaymentAmount:         reg.RegistrationAmount,
				PaymentMethod:         model.MethodDummy,
				PaymentStatus:         model.StatusCompleted,
				PaymentTransactionID:  txnID,
				PaymentPaidAt:         &paidAt,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Model(&reg).Updates(map[string]interface{}{
			"registration_payment_status": regModel.PaymentPaid,
			"registration_transaction_id": txnID,
		}).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	go sendConfirmationEmail(db, &reg, txnID)

	return &payment, nil
}

// sendConfirmationEmail is best effort: failures are logged, never surfaced.
func sendConfirmationEmail(db *gorm.DB, reg *regModel.RegistrationModel, txnID string) {
	var student userModel.UserModel
	if err := db.First(&student, "id = ?", reg.RegistrationStudentID).Error; err != nil {
		log.Printf("[WARN] Payment email skipped, student lookup failed: %v", err)
		return
	}
	var ev eventModel.EventModel
	if err := db.First(&ev, "event_id = ?", reg.RegistrationEventID).Error; err != nil {
		log.Printf("[WARN] Payment email skipped, event lookup failed: %v", err)
		return
	}
	if err := mailer.SendPaymentConfirmation(student.Email, student.UserName, ev.EventTitle, txnID); err != nil {
		log.Printf("[WARN] Payment confirmation email failed: %v", err)
	}
}
