package models

import "time"

type GalleryImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PublicURL string    `json:"public_url" gorm:"not null"`
	SecureURL string    `json:"secure_url" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

type GalleryImageRequest struct {
	PublicURL string `json:"public_url" validate:"required"`
	SecureURL string `json:"secure_url" validate:"required,url"`
}
