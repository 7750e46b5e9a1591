package services

import (
	"context"

	"hostelhub/models"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 100
)

// ListAuditLogs pages through the audit trail, newest first. Out of range page or limit values fall
// back to the first page of 50.
func (s *Service) ListAuditLogs(ctx context.Context, sess *Session, page, limit int) ([]models.AuditLog, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}

	var logs []models.AuditLog
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error
	if err != nil {
		return nil, s.unexpected("list_audit_logs", err)
	}
	return logs, nil
}
