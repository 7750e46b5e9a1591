package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRejected PaymentStatus = "Rejected"
)

// PaymentKind tells what a payment is for. It is fixed when the payment is created.
type PaymentKind string

const (
	KindRegistration PaymentKind = "REGISTRATION"
	KindMonthly      PaymentKind = "MONTHLY"
	KindCashManual   PaymentKind = "CASH_MANUAL"
)

type Payment struct {
	ID             uint                        `json:"id" gorm:"primaryKey"`
	StudentID      string                      `json:"student_id" gorm:"not null;index;size:36"`
	Student        *Student                    `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Amount         float64                     `json:"amount" gorm:"not null"`
	PaymentMethod  string                      `json:"payment_method" gorm:"not null"`
	ScreenshotRefs datatypes.JSONSlice[string] `json:"screenshot_refs"`
	ReferenceNo    string                      `json:"reference_no"`
	Month          *int                        `json:"month"`
	Year           *int                        `json:"year"`
	Kind           PaymentKind                 `json:"kind" gorm:"not null;default:MONTHLY"`
	Status         PaymentStatus               `json:"status" gorm:"not null;default:Pending;index"`
	IsVerified     bool                        `json:"is_verified" gorm:"default:false"`
	CreatedAt      time.Time                   `json:"created_at" gorm:"index"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

type SubmitPaymentRequest struct {
	PaymentMethod  string   `json:"payment_method" validate:"required"`
	ScreenshotRefs []string `json:"screenshot_refs" validate:"required,min=1,dive,required"`
	Amount         float64  `json:"amount" validate:"required,gt=0"`
	ReferenceNo    string   `json:"reference_no"`
}

type ApprovePaymentRequest struct {
	RoomNumber string `json:"room_number"`
}

// PaymentWithStudent is the admin payment history row.
type PaymentWithStudent struct {
	Payment
	StudentName string `json:"student_name"`
}

type Receipt struct {
	PaymentID     uint        `json:"payment_id"`
	StudentID     string      `json:"student_id"`
	StudentName   string      `json:"student_name"`
	RoomNumber    string      `json:"room_number"`
	Amount        float64     `json:"amount"`
	AmountInWords string      `json:"amount_in_words"`
	PaymentMethod string      `json:"payment_method"`
	ReferenceNo   string      `json:"reference_no"`
	Kind          PaymentKind `json:"kind"`
	Period        string      `json:"period"`
	PaidAt        time.Time   `json:"paid_at"`
}

type MethodType string

const (
	MethodUPI        MethodType = "UPI"
	MethodNetBanking MethodType = "NETBANKING"
	MethodQR         MethodType = "QR"
	MethodCash       MethodType = "CASH"
)

type PaymentMethod struct {
	ID              string     `json:"id" gorm:"primaryKey;size:36"`
	Type            MethodType `json:"type" gorm:"uniqueIndex;not null"`
	IsActive        bool       `json:"is_active" gorm:"default:true"`
	UPIID           string     `json:"upi_id"`
	BeneficiaryName string     `json:"beneficiary_name"`
	AccountNumber   string     `json:"account_number"`
	IFSC            string     `json:"ifsc"`
	BankName        string     `json:"bank_name"`
	QRCode          string     `json:"qr_code"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (m *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type PaymentMethodRequest struct {
	Type            MethodType `json:"type" validate:"required,oneof=UPI NETBANKING QR CASH"`
	UPIID           string     `json:"upi_id"`
	BeneficiaryName string     `json:"beneficiary_name"`
	AccountNumber   string     `json:"account_number"`
	IFSC            string     `json:"ifsc"`
	BankName        string     `json:"bank_name"`
	QRCode          string     `json:"qr_code"`
}
