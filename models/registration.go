package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

type RegistrationRequest struct {
	ID        string        `json:"id" gorm:"primaryKey;size:36"`
	StudentID string        `json:"student_id" gorm:"uniqueIndex;not null;size:36"`
	Student   *Student      `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Status    RequestStatus `json:"status" gorm:"not null;default:PENDING"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (r *RegistrationRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
