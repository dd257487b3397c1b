package repos

import (
	"context"

	"gorm.io/gorm"

	"shopkeeper/internal/db/models"
)

// ListingImageRepository provides access to listing image metadata
type ListingImageRepository struct {
	db *gorm.DB
}

// NewListingImageRepository creates a new listing image repository
func NewListingImageRepository(db *gorm.DB) *ListingImageRepository {
	return &ListingImageRepository{db: db}
}

// Create records a new image for a listing
func (r *ListingImageRepository) Create(ctx context.Context, image *models.ListingImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// GetByID retrieves an image by its ID
func (r *ListingImageRepository) GetByID(ctx context.Context, id uint) (*models.ListingImage, error) {
	var image models.ListingImage
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// Hide soft-hides an image so it no longer appears on its listing
func (r *ListingImageRepository) Hide(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.ListingImage{}).
		Where("id = ?", id).
		Update("is_hidden", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
