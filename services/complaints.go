package services

import (
	"context"
	"errors"
	"fmt"

	"hostelhub/models"
	"hostelhub/utils"

	"gorm.io/gorm"
)

func (s *Service) CreateComplaint(ctx context.Context, sess *Session, req models.ComplaintRequest) (*models.Complaint, error) {
	if err := requireStudent(sess); err != nil {
		return nil, err
	}
	req.Category = utils.SanitizeString(req.Category)
	req.Text = utils.SanitizeString(req.Text)
	if err := validate(req); err != nil {
		return nil, err
	}

	complaint := models.Complaint{
		StudentID: sess.ID,
		Category:  req.Category,
		Text:      req.Text,
		Status:    models.ComplaintPending,
	}
	if err := s.db.WithContext(ctx).Create(&complaint).Error; err != nil {
		return nil, s.unexpected("create_complaint", err)
	}
	return &complaint, nil
}

func (s *Service) MyComplaints(ctx context.Context, sess *Session) ([]models.Complaint, error) {
	if err := requireStudent(sess); err != nil {
		return nil, err
	}
	var complaints []models.Complaint
	if err := newestFirst(s.db.WithContext(ctx)).Where("student_id = ?", sess.ID).Find(&complaints).Error; err != nil {
		return nil, s.unexpected("my_complaints", err)
	}
	return complaints, nil
}

// ListComplaints returns every complaint with the filing student's room.
func (s *Service) ListComplaints(ctx context.Context, sess *Session) ([]models.ComplaintWithRoom, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	var complaints []models.Complaint
	err := newestFirst(s.db.WithContext(ctx)).
		Preload("Student", func(db *gorm.DB) *gorm.DB { return db.Select("id", "room_number") }).
		Find(&complaints).Error
	if err != nil {
		return nil, s.unexpected("list_complaints", err)
	}

	out := make([]models.ComplaintWithRoom, 0, len(complaints))
	for _, c := range complaints {
		row := models.ComplaintWithRoom{Complaint: c}
		if c.Student != nil {
			row.RoomNumber = c.Student.RoomNumber
		}
		row.Student = nil
		out = append(out, row)
	}
	return out, nil
}

func (s *Service) UpdateComplaintStatus(ctx context.Context, sess *Session, id uint, req models.ComplaintStatusRequest) (*models.Complaint, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	var complaint models.Complaint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&complaint, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Complaint not found")
			}
			return err
		}
		if err := tx.Model(&complaint).Update("status", req.Status).Error; err != nil {
			return err
		}
		return s.audit(tx, sess, "UPDATE", "COMPLAINT", fmt.Sprintf("Complaint %d set to %s", id, req.Status))
	})
	if err != nil {
		return nil, s.fail("update_complaint_status", err)
	}
	return &complaint, nil
}

func (s *Service) complaintCounts(ctx context.Context) (models.ComplaintCounts, error) {
	var rows []struct {
		Status models.ComplaintStatus
		Count  int
	}
	err := s.db.WithContext(ctx).Model(&models.Complaint{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return models.ComplaintCounts{}, err
	}

	var counts models.ComplaintCounts
	for _, r := range rows {
		switch r.Status {
		case models.ComplaintPending:
			counts.Pending = r.Count
		case models.ComplaintInProgress:
			counts.InProgress = r.Count
		case models.ComplaintClosed:
			counts.Closed = r.Count
		}
		counts.Total += r.Count
	}
	return counts, nil
}
