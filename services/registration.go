package services

import (
	"context"
	"errors"

	"hostelhub/models"

	"gorm.io/gorm"
)

const msgRequestExists = "Registration request already sent."

// CreateRegistrationRequest opens the caller's one registration request. Any existing request,
// whatever its status, blocks a new one.
func (s *Service) CreateRegistrationRequest(ctx context.Context, sess *Session) (*models.RegistrationRequest, error) {
	if err := requireStudent(sess); err != nil {
		return nil, err
	}

	request := models.RegistrationRequest{StudentID: sess.ID, Status: models.RequestPending}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.findStudent(tx, sess.ID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.RegistrationRequest{}).Where("student_id = ?", sess.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errConflict(msgRequestExists)
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		if isUnique(err) {
			return nil, errConflict(msgRequestExists)
		}
		return nil, s.fail("create_registration_request", err)
	}
	return &request, nil
}

// RegistrationStatus returns the caller's request, or nil when none was sent.
func (s *Service) RegistrationStatus(ctx context.Context, sess *Session) (*models.RegistrationRequest, error) {
	if err := requireStudent(sess); err != nil {
		return nil, err
	}
	var request models.RegistrationRequest
	err := s.db.WithContext(ctx).Where("student_id = ?", sess.ID).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, s.unexpected("registration_status", err)
	}
	return &request, nil
}

func (s *Service) ListRegistrationRequests(ctx context.Context, sess *Session) ([]models.RegistrationRequest, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	var requests []models.RegistrationRequest
	err := s.db.WithContext(ctx).
		Preload("Student").
		Preload("Student.Parent").
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, s.unexpected("list_registration_requests", err)
	}
	return requests, nil
}

func (s *Service) ApproveRegistration(ctx context.Context, sess *Session, requestID string) (*models.RegistrationRequest, error) {
	return s.setRegistrationStatus(ctx, sess, requestID, models.RequestApproved)
}

func (s *Service) RejectRegistration(ctx context.Context, sess *Session, requestID string) (*models.RegistrationRequest, error) {
	return s.setRegistrationStatus(ctx, sess, requestID, models.RequestRejected)
}

// setRegistrationStatus only overwrites the request. The student becomes registered when the
// registration fee payment is approved.
func (s *Service) setRegistrationStatus(ctx context.Context, sess *Session, requestID string, status models.RequestStatus) (*models.RegistrationRequest, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	var request models.RegistrationRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Request not found")
			}
			return err
		}
		if err := tx.Model(&request).Update("status", status).Error; err != nil {
			return err
		}
		return s.audit(tx, sess, "UPDATE", "REGISTRATION_REQUEST",
			"Registration request "+request.ID+" set to "+string(status))
	})
	if err != nil {
		return nil, s.fail("update_registration_request", err)
	}
	return &request, nil
}
