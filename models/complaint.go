package models

import "time"

type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "Pending"
	ComplaintInProgress ComplaintStatus = "In Progress"
	ComplaintClosed     ComplaintStatus = "Closed"
)

type Complaint struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	StudentID string          `json:"student_id" gorm:"not null;index;size:36"`
	Student   *Student        `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Category  string          `json:"category" gorm:"not null"`
	Text      string          `json:"text" gorm:"not null"`
	Status    ComplaintStatus `json:"status" gorm:"not null;default:Pending"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ComplaintRequest struct {
	Category string `json:"category" validate:"required"`
	Text     string `json:"text" validate:"required,min=5"`
}

type ComplaintStatusRequest struct {
	Status ComplaintStatus `json:"status" validate:"required,oneof=Pending 'In Progress' Closed"`
}

// ComplaintWithRoom is the admin complaint row.
type ComplaintWithRoom struct {
	Complaint
	RoomNumber *string `json:"room_number"`
}
