// Package repos provides access to the database models.
package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"shopkeeper/internal/db/models"
	"shopkeeper/internal/filter"
	"shopkeeper/internal/issues"
)

// ListingRepository provides access to listing-related database operations
type ListingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create creates a new listing in the database
func (r *ListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

// Save persists all fields of an existing listing
func (r *ListingRepository) Save(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

// GetByID retrieves a listing by its ID, with its visible images preloaded
func (r *ListingRepository) GetByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.WithContext(ctx).
		Preload("Images", "is_hidden = ?", false).
		First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// List retrieves listings matching the filter criteria. Hidden listings are
// excluded unless the options say otherwise. An explicit empty status or type
// set matches nothing by definition and skips the query entirely.
func (r *ListingRepository) List(ctx context.Context, criteria filter.Criteria, defaults filter.Defaults, opts *models.ListOptions) ([]models.Listing, error) {
	statuses := criteria.EffectiveStatuses(defaults)
	types := criteria.EffectiveTypes(defaults)
	if len(statuses) == 0 || len(types) == 0 {
		return []models.Listing{}, nil
	}

	query := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Preload("Images", "is_hidden = ?", false).
		Where("listings.status IN ?", statuses).
		Where("listings.type IN ?", types)

	if opts == nil || !opts.IncludeHidden {
		query = query.Where("listings.is_hidden = ?", false)
	}

	if len(criteria.Owners) > 0 {
		query = query.Where("listings.owner_id IN ?", criteria.Owners)
	}

	if criteria.HasIssues != nil {
		cond, args := issues.HasIssuesCondition()
		if *criteria.HasIssues {
			query = query.Where(cond, args...)
		} else {
			query = query.Where("NOT "+cond, args...)
		}
	}

	if opts != nil {
		if opts.Limit > 0 {
			query = query.Limit(opts.Limit)
		}
		if opts.Offset > 0 {
			query = query.Offset(opts.Offset)
		}
	}

	var listings []models.Listing
	if err := query.Order("listings.created_at DESC").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return listings, nil
}

// Hide soft-hides a listing so it disappears from queries without losing the record
func (r *ListingRepository) Hide(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Listing{}).
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

// CountIssuesByOwner counts the owner's non-hidden listings that currently carry issues
func (r *ListingRepository) CountIssuesByOwner(ctx context.Context, ownerID string) (int64, error) {
	cond, args := issues.HasIssuesCondition()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("listings.owner_id = ?", ownerID).
		Where("listings.is_hidden = ?", false).
		Where(cond, args...).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count listings with issues: %w", err)
	}
	return count, nil
}

// ListWithIssues retrieves every non-hidden listing currently carrying issues,
// used by the reminder sweep.
func (r *ListingRepository) ListWithIssues(ctx context.Context) ([]models.Listing, error) {
	cond, args := issues.HasIssuesCondition()

	var listings []models.Listing
	err := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("listings.is_hidden = ?", false).
		Where(cond, args...).
		Order("listings.owner_id").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list listings with issues: %w", err)
	}
	return listings, nil
}
