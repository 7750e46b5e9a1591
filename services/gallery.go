package services

import (
	"context"
	"errors"
	"fmt"

	"hostelhub/models"
	"hostelhub/utils"

	"gorm.io/gorm"
)

// ListGallery is public.
func (s *Service) ListGallery(ctx context.Context) ([]models.GalleryImage, error) {
	var images []models.GalleryImage
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&images).Error; err != nil {
		return nil, s.unexpected("list_gallery", err)
	}
	return images, nil
}

func (s *Service) AddGalleryImage(ctx context.Context, sess *Session, req models.GalleryImageRequest) (*models.GalleryImage, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	req.PublicURL = utils.SanitizeString(req.PublicURL)
	req.SecureURL = utils.SanitizeString(req.SecureURL)
	if err := validate(req); err != nil {
		return nil, err
	}

	image := models.GalleryImage{PublicURL: req.PublicURL, SecureURL: req.SecureURL}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&image).Error; err != nil {
			return err
		}
		return s.audit(tx, sess, "CREATE", "GALLERY", fmt.Sprintf("Gallery image %d added", image.ID))
	})
	if err != nil {
		return nil, s.unexpected("add_gallery_image", err)
	}
	return &image, nil
}

// DeleteGalleryImage removes the row, then asks the media store to drop the object. A storage
// failure is logged and does not undo the delete.
func (s *Service) DeleteGalleryImage(ctx context.Context, sess *Session, id uint) (*models.GalleryImage, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	var image models.GalleryImage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&image, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Image not found")
			}
			return err
		}
		if err := tx.Delete(&image).Error; err != nil {
			return err
		}
		return s.audit(tx, sess, "DELETE", "GALLERY", fmt.Sprintf("Gallery image %d deleted", image.ID))
	})
	if err != nil {
		return nil, s.fail("delete_gallery_image", err)
	}

	if err := s.media.Delete(ctx, image.PublicURL); err != nil {
		s.logger.Warn("failed to delete stored image", "image_id", image.ID, "ref", image.PublicURL, "error", err)
	}
	return &image, nil
}
