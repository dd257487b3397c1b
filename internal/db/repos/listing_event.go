package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"shopkeeper/internal/db/models"
)

// ListingEventRepository provides access to the listing change history
type ListingEventRepository struct {
	db *gorm.DB
}

// NewListingEventRepository creates a new listing event repository
func NewListingEventRepository(db *gorm.DB) *ListingEventRepository {
	return &ListingEventRepository{db: db}
}

// Create records a listing event
func (r *ListingEventRepository) Create(ctx context.Context, event *models.ListingEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListRecent retrieves the most recent events for non-hidden listings, newest
// first, with the Listing association preloaded for feed rendering.
func (r *ListingEventRepository) ListRecent(ctx context.Context, limit int) ([]models.ListingEvent, error) {
	var events []models.ListingEvent
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Joins("JOIN listings ON listings.id = listing_events.listing_id").
		Where("listings.is_hidden = ?", false).
		Order("listing_events.created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list listing events: %w", err)
	}
	return events, nil
}
