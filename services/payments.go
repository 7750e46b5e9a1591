package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hostelhub/models"
	"hostelhub/reports"
	"hostelhub/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// kindFor classifies a submitted amount. The registration fee amount is the one-time charge,
// everything else is a monthly fee.
func (s *Service) kindFor(amount float64) models.PaymentKind {
	if amount == s.fees.RegistrationFee {
		return models.KindRegistration
	}
	return models.KindMonthly
}

// Submit records a student's payment with proof as Pending. The method must be an active
// configured one. Monthly payments are stamped with the current month; the registration fee
// is not. The amount is taken as given.
func (s *Service) Submit(ctx context.Context, sess *Session, req models.SubmitPaymentRequest) (*models.Payment, error) {
	if err := requireStudent(sess); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	now := s.now()
	payment := models.Payment{
		StudentID:      sess.ID,
		Amount:         req.Amount,
		PaymentMethod:  strings.ToUpper(utils.SanitizeString(req.PaymentMethod)),
		ScreenshotRefs: datatypes.NewJSONSlice(req.ScreenshotRefs),
		ReferenceNo:    utils.SanitizeString(req.ReferenceNo),
		Kind:           s.kindFor(req.Amount),
		Status:         models.PaymentPending,
		CreatedAt:      now,
	}
	if payment.Kind == models.KindMonthly {
		month, year := int(now.Month()), now.Year()
		payment.Month = &month
		payment.Year = &year
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.findStudent(tx, sess.ID); err != nil {
			return err
		}
		var active int64
		err := tx.Model(&models.PaymentMethod{}).
			Where("type = ? AND is_active = ?", payment.PaymentMethod, true).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active == 0 {
			return errValidation("Payment method is not available")
		}
		if payment.Kind == models.KindRegistration {
			var request models.RegistrationRequest
			err := tx.Where("student_id = ?", sess.ID).First(&request).Error
			if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && request.Status != models.RequestApproved) {
				return errValidation("Registration request has not been approved")
			}
			if err != nil {
				return err
			}
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, s.fail("submit_payment", err)
	}

	s.logger.Info("payment submitted", "payment_id", payment.ID, "student_id", sess.ID, "kind", payment.Kind)
	return &payment, nil
}

// Approve marks a pending payment paid. Approving the registration fee also assigns the room
// and registers the student, in the same transaction.
func (s *Service) Approve(ctx context.Context, sess *Session, paymentID uint, room string) (*models.Payment, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	room = strings.TrimSpace(room)

	var payment models.Payment
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, s.unexpected("approve_payment.begin", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := s.findPayment(tx, paymentID, &payment); err != nil {
		tx.Rollback()
		return nil, s.fail("approve_payment", err)
	}

	if payment.Kind == models.KindRegistration {
		if room == "" {
			tx.Rollback()
			return nil, errValidation("Room number is required")
		}
	}

	if err := s.transition(tx, &payment, models.PaymentPaid); err != nil {
		tx.Rollback()
		return nil, s.fail("approve_payment", err)
	}

	if payment.Kind == models.KindRegistration {
		if err := tx.Model(&models.Student{}).Where("id = ?", payment.StudentID).Updates(map[string]interface{}{
			"room_number":   room,
			"is_registered": true,
		}).Error; err != nil {
			tx.Rollback()
			return nil, s.unexpected("approve_payment.register", err)
		}
	}

	details := fmt.Sprintf("Payment %d approved", payment.ID)
	if payment.Kind == models.KindRegistration {
		details += ", room " + room + " assigned"
	}
	if err := s.audit(tx, sess, "APPROVE", "PAYMENT", details); err != nil {
		tx.Rollback()
		return nil, s.unexpected("approve_payment.audit", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, s.unexpected("approve_payment.commit", err)
	}

	s.cache.Invalidate(ctx, payment.StudentID)
	return &payment, nil
}

// Reject marks a pending payment rejected. The student's ledger is left alone.
func (s *Service) Reject(ctx context.Context, sess *Session, paymentID uint) (*models.Payment, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	var payment models.Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.findPayment(tx, paymentID, &payment); err != nil {
			return err
		}
		if err := s.transition(tx, &payment, models.PaymentRejected); err != nil {
			return err
		}
		return s.audit(tx, sess, "REJECT", "PAYMENT", fmt.Sprintf("Payment %d rejected", payment.ID))
	})
	if err != nil {
		return nil, s.fail("reject_payment", err)
	}
	return &payment, nil
}

func (s *Service) findPayment(tx *gorm.DB, id uint, dst *models.Payment) error {
	if err := tx.First(dst, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("Payment not found")
		}
		return err
	}
	return nil
}

// transition moves a pending payment to status. The status guard in the WHERE clause makes a
// second, concurrent transition affect no rows.
func (s *Service) transition(tx *gorm.DB, payment *models.Payment, status models.PaymentStatus) error {
	verified := status == models.PaymentPaid
	res := tx.Model(&models.Payment{}).
		Where("id = ? AND status = ?", payment.ID, models.PaymentPending).
		Updates(map[string]interface{}{"status": status, "is_verified": verified})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errConflict("Payment already processed")
	}
	payment.Status = status
	payment.IsVerified = verified
	return nil
}

// ListForStudent returns the caller's own payments, newest first.
func (s *Service) ListForStudent(ctx context.Context, sess *Session) ([]models.Payment, error) {
	if err := requireStudent(sess); err != nil {
		return nil, err
	}
	var payments []models.Payment
	if err := newestFirst(s.db.WithContext(ctx)).Where("student_id = ?", sess.ID).Find(&payments).Error; err != nil {
		return nil, s.unexpected("list_student_payments", err)
	}
	return payments, nil
}

// ListAll returns every payment with its student's name, oldest first.
func (s *Service) ListAll(ctx context.Context, sess *Session) ([]models.PaymentWithStudent, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	var payments []models.Payment
	err := s.db.WithContext(ctx).
		Preload("Student", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name") }).
		Order("created_at ASC").Order("id ASC").
		Find(&payments).Error
	if err != nil {
		return nil, s.unexpected("list_payments", err)
	}

	out := make([]models.PaymentWithStudent, 0, len(payments))
	for _, p := range payments {
		row := models.PaymentWithStudent{Payment: p}
		if p.Student != nil {
			row.StudentName = p.Student.Name
		}
		row.Student = nil
		out = append(out, row)
	}
	return out, nil
}

// Receipt renders a paid payment for the admin or the student who made it.
func (s *Service) Receipt(ctx context.Context, sess *Session, paymentID uint) (*models.Receipt, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	var payment models.Payment
	db := s.db.WithContext(ctx)
	if err := s.findPayment(db.Preload("Student"), paymentID, &payment); err != nil {
		return nil, s.fail("receipt", err)
	}
	if !sess.IsAdmin() && payment.StudentID != sess.ID {
		return nil, errNotFound("Payment not found")
	}
	if payment.Status != models.PaymentPaid {
		return nil, errValidation("Receipt is only available for paid payments")
	}

	receipt := &models.Receipt{
		PaymentID:     payment.ID,
		StudentID:     payment.StudentID,
		Amount:        payment.Amount,
		AmountInWords: reports.AmountInWords(payment.Amount),
		PaymentMethod: payment.PaymentMethod,
		ReferenceNo:   payment.ReferenceNo,
		Kind:          payment.Kind,
		Period:        reports.Period(payment.Month, payment.Year),
		PaidAt:        payment.UpdatedAt,
	}
	if payment.Student != nil {
		receipt.StudentName = payment.Student.Name
		if payment.Student.RoomNumber != nil {
			receipt.RoomNumber = *payment.Student.RoomNumber
		}
	}
	return receipt, nil
}
