package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleAdmin   Role = "ADMIN"
)

type Student struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone        string    `json:"phone" gorm:"uniqueIndex;not null"`
	Password     string    `json:"-" gorm:"not null"`
	Name         string    `json:"name" gorm:"not null"`
	Address      *string   `json:"address"`
	Category     *string   `json:"category"`
	Course       *string   `json:"course"`
	College      *string   `json:"college"`
	RoomNumber   *string   `json:"room_number"`
	AmountToPay  float64   `json:"amount_to_pay" gorm:"not null;default:3500"`
	IsRegistered bool      `json:"is_registered" gorm:"default:false"`
	ProfileSetup bool      `json:"profile_setup" gorm:"default:false"`
	Parent       *Parent   `json:"parent,omitempty" gorm:"foreignKey:StudentID"`
	Payments     []Payment `json:"payments,omitempty" gorm:"foreignKey:StudentID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// HasCompleteProfile reports whether every field needed for profileSetup is present.
// The Parent association must be loaded.
func (s *Student) HasCompleteProfile() bool {
	filled := func(p *string) bool { return p != nil && *p != "" }
	return filled(s.Address) && filled(s.Category) && filled(s.Course) && filled(s.College) &&
		s.Parent != nil && s.Parent.Name != "" && s.Parent.Phone != ""
}

type Parent struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	StudentID string    `json:"student_id" gorm:"uniqueIndex;not null;size:36"`
	Name      string    `json:"name" gorm:"not null"`
	Email     *string   `json:"email"`
	Phone     string    `json:"phone" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Parent) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HostelStaff is an administrator account.
type HostelStaff struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Name      string    `json:"name" gorm:"not null"`
	Role      Role      `json:"role" gorm:"not null;default:ADMIN"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (HostelStaff) TableName() string { return "hostel_staffs" }

func (h *HostelStaff) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.Role == "" {
		h.Role = RoleAdmin
	}
	return nil
}

type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=10,max=15"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

type CreateAdminRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type ParentInput struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

type ProfileUpdateRequest struct {
	Address  string      `json:"address" validate:"required"`
	Category string      `json:"category" validate:"required"`
	Course   string      `json:"course" validate:"required"`
	College  string      `json:"college" validate:"required"`
	Parent   ParentInput `json:"parent"`
}

type ParentInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type RoomRequest struct {
	RoomNumber string `json:"room_number" validate:"required"`
}

type AmountRequest struct {
	Amount float64 `json:"amount"`
}

type AttendanceRequest struct {
	DaysPresent int `json:"days_present"`
}

type CashPaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// StudentWithStatus is a student row as seen on the admin dashboard.
type StudentWithStatus struct {
	Student
	Status string `json:"status"`
}
