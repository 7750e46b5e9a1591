package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hostelhub/mail"
	"hostelhub/models"

	"gorm.io/gorm"
)

const (
	StatusPaid   = "Paid"
	StatusUnpaid = "Unpaid"
)

// DerivePaymentStatus reports "Paid" only when the newest payment covers the full amount owed,
// was approved, and belongs to now's month. payments must be ordered newest first.
func DerivePaymentStatus(student *models.Student, payments []models.Payment, now time.Time) string {
	if len(payments) == 0 {
		return StatusUnpaid
	}
	latest := payments[0]
	if latest.Amount != student.AmountToPay || latest.Status != models.PaymentPaid {
		return StatusUnpaid
	}
	if latest.Month == nil || latest.Year == nil {
		return StatusUnpaid
	}
	if *latest.Month != int(now.Month()) || *latest.Year != now.Year() {
		return StatusUnpaid
	}
	return StatusPaid
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

// ListStudents returns every student with payments newest first and the current-month status.
func (s *Service) ListStudents(ctx context.Context, sess *Session) ([]models.StudentWithStatus, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	return s.studentsWithStatus(ctx)
}

func (s *Service) studentsWithStatus(ctx context.Context) ([]models.StudentWithStatus, error) {
	var students []models.Student
	err := s.db.WithContext(ctx).
		Preload("Payments", newestFirst).
		Preload("Parent").
		Order("name ASC").
		Find(&students).Error
	if err != nil {
		return nil, s.unexpected("list_students", err)
	}

	now := s.now()
	out := make([]models.StudentWithStatus, 0, len(students))
	for i := range students {
		out = append(out, models.StudentWithStatus{
			Student: students[i],
			Status:  DerivePaymentStatus(&students[i], students[i].Payments, now),
		})
	}
	return out, nil
}

// SetAmountOwed overwrites what a student currently owes. Any value is accepted.
func (s *Service) SetAmountOwed(ctx context.Context, sess *Session, studentID string, amount float64) (*models.Student, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	return s.updateStudent(ctx, sess, studentID, map[string]interface{}{"amount_to_pay": amount},
		fmt.Sprintf("Amount to pay set to %.2f", amount))
}

// SetAmountByAttendance bills a student for the days they were present at the per-day rate.
func (s *Service) SetAmountByAttendance(ctx context.Context, sess *Session, studentID string, daysPresent int) (*models.Student, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if daysPresent <= 0 {
		return nil, errValidation("Please enter the day student was present in the hostel")
	}
	amount := float64(daysPresent) * s.fees.PerDayRate
	return s.updateStudent(ctx, sess, studentID, map[string]interface{}{"amount_to_pay": amount},
		fmt.Sprintf("Amount to pay set to %.2f for %d days present", amount, daysPresent))
}

// ResetAmountOwed puts a student back on the standard monthly fee.
func (s *Service) ResetAmountOwed(ctx context.Context, sess *Session, studentID string) (*models.Student, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	return s.updateStudent(ctx, sess, studentID, map[string]interface{}{"amount_to_pay": s.fees.MonthlyFee},
		"Amount to pay reset to the monthly fee")
}

// AssignRoom overwrites a student's room. Rooms are labels; sharing one is allowed.
func (s *Service) AssignRoom(ctx context.Context, sess *Session, studentID, room string) (*models.Student, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	room = strings.TrimSpace(room)
	if room == "" {
		return nil, errValidation("Room number is required")
	}
	return s.updateStudent(ctx, sess, studentID, map[string]interface{}{"room_number": room},
		"Room assigned: "+room)
}

func (s *Service) updateStudent(ctx context.Context, sess *Session, studentID string, updates map[string]interface{}, details string) (*models.Student, error) {
	var student *models.Student
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.findStudent(tx, studentID)
		if err != nil {
			return err
		}
		if err := tx.Model(found).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.First(found, "id = ?", studentID).Error; err != nil {
			return err
		}
		student = found
		return s.audit(tx, sess, "UPDATE", "STUDENT", fmt.Sprintf("%s (student %s)", details, studentID))
	})
	if err != nil {
		return nil, s.fail("update_student", err)
	}
	s.cache.Invalidate(ctx, studentID)
	return student, nil
}

// RecordCashPayment books cash the admin collected in person. The payment is created already
// paid and verified for the current month.
func (s *Service) RecordCashPayment(ctx context.Context, sess *Session, studentID string, amount float64) (*models.Payment, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, errValidation("Please enter the amount paid by the student")
	}

	now := s.now()
	month, year := int(now.Month()), now.Year()
	payment := models.Payment{
		StudentID:     studentID,
		Amount:        amount,
		PaymentMethod: string(models.MethodCash),
		Month:         &month,
		Year:          &year,
		Kind:          models.KindCashManual,
		Status:        models.PaymentPaid,
		IsVerified:    true,
		CreatedAt:     now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.findStudent(tx, studentID); err != nil {
			return err
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return s.audit(tx, sess, "CREATE", "PAYMENT",
			fmt.Sprintf("Cash payment %d of %.2f recorded for student %s", payment.ID, amount, studentID))
	})
	if err != nil {
		return nil, s.fail("record_cash_payment", err)
	}
	return &payment, nil
}

// SendReminder emails a student what they owe. Mail failures never touch the ledger.
func (s *Service) SendReminder(ctx context.Context, sess *Session, studentID string) error {
	if err := requireAdmin(sess); err != nil {
		return err
	}
	student, err := s.findStudent(s.db.WithContext(ctx), studentID)
	if err != nil {
		return s.fail("send_reminder", err)
	}
	if err := s.mailer.Send(ctx, mail.ReminderMessage(student, s.now())); err != nil {
		s.logger.Warn("reminder email failed", "student_id", studentID, "error", err)
		return &Error{Kind: KindUnexpected, Msg: "Failed to send email", cause: err}
	}
	return nil
}

// RemindUnpaid mails every student whose current-month status is unpaid. It runs without a
// session and is only reachable from the scheduler.
func (s *Service) RemindUnpaid(ctx context.Context) (int, error) {
	students, err := s.studentsWithStatus(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	sent := 0
	for i := range students {
		st := &students[i]
		if st.Status == StatusPaid || !st.IsRegistered {
			continue
		}
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if err := s.mailer.Send(ctx, mail.ReminderMessage(&st.Student, now)); err != nil {
			s.logger.Warn("reminder email failed", "student_id", st.ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}
