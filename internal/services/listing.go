// Package services provides business logic implementation for the API
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"shopkeeper/internal/authz"
	"shopkeeper/internal/cache"
	"shopkeeper/internal/db/models"
	"shopkeeper/internal/db/repos"
	"shopkeeper/internal/filter"
	"shopkeeper/internal/logger"
	"shopkeeper/internal/messaging/nats"
	"shopkeeper/internal/types"
)

// Service-level errors surfaced to the HTTP layer
var (
	// ErrForbidden means the viewer may not perform the action
	ErrForbidden = errors.New("action forbidden")
	// ErrListingClosed means the listing can no longer be edited
	ErrListingClosed = errors.New("listing is closed")
)

// Publisher is the bus the listing service announces mutations on
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// ListingCache caches listing query results keyed by serialized criteria
type ListingCache interface {
	Get(ctx context.Context, query string) ([]byte, error)
	Set(ctx context.Context, query string, data []byte) error
	Invalidate(ctx context.Context) error
}

// Listing provides business logic for listing operations
type Listing struct {
	repo      *repos.ListingRepository
	eventRepo *repos.ListingEventRepository
	publisher Publisher
	cache     ListingCache
	defaults  filter.Defaults
}

// NewListingService creates a new listing service
func NewListingService(
	repo *repos.ListingRepository,
	eventRepo *repos.ListingEventRepository,
	publisher Publisher,
	listingCache ListingCache,
	defaults filter.Defaults,
) *Listing {
	return &Listing{
		repo:      repo,
		eventRepo: eventRepo,
		publisher: publisher,
		cache:     listingCache,
		defaults:  defaults,
	}
}

// Defaults returns the configured default filter criteria
func (s *Listing) Defaults() filter.Defaults {
	return s.defaults
}

// List retrieves listings matching the criteria. Results are cached per
// serialized criteria; the rows are viewer-independent, so one cache entry
// serves every viewer.
func (s *Listing) List(ctx context.Context, criteria filter.Criteria, opts *models.ListOptions) ([]models.Listing, error) {
	key := criteria.QueryString(s.defaults)
	if opts != nil && *opts != (models.ListOptions{}) {
		key = fmt.Sprintf("%s&_limit=%d&_offset=%d&_hidden=%t", key, opts.Limit, opts.Offset, opts.IncludeHidden)
	}

	if s.cache != nil {
		data, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Warnf("Listings cache read failed: %v", err)
		} else if data != nil {
			var cached []models.Listing
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
			logger.Warnf("Discarding undecodable listings cache entry for %q", key)
		}
	}

	listings, err := s.repo.List(ctx, criteria, s.defaults, opts)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(listings); err == nil {
			if err := s.cache.Set(ctx, key, data); err != nil {
				logger.Warnf("Listings cache write failed: %v", err)
			}
		}
	}

	return listings, nil
}

// Get retrieves a single listing by ID
func (s *Listing) Get(ctx context.Context, id uint) (*models.Listing, error) {
	return s.repo.GetByID(ctx, id)
}

// Create creates a new listing owned by the viewer. Listings always start open.
func (s *Listing) Create(ctx context.Context, viewer models.Viewer, req types.CreateListingRequest) (*models.Listing, error) {
	listing := &models.Listing{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Type:        req.Type,
		Status:      models.ListingStatusOpen,
		OwnerID:     viewer.ID,
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	s.recordEvent(ctx, listing.ID, models.EventListingCreated, "", listing.Title)
	s.publish(ctx, nats.SubjectListingCreated, types.ListingMessage{
		ListingID: listing.ID,
		OwnerID:   listing.OwnerID,
		Title:     listing.Title,
		Type:      listing.Type,
		Status:    listing.Status,
	})
	s.invalidate(ctx)

	return listing, nil
}

// Edit applies a partial edit to a listing. The viewer must own the listing
// or hold the moderation role, and the listing must not be closed.
func (s *Listing) Edit(ctx context.Context, viewer models.Viewer, id uint, req types.EditListingRequest) (*models.Listing, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	presentation, err := authz.Present(listing, viewer)
	if err != nil {
		return nil, err
	}
	if !presentation.CanEdit {
		// Ownership decides first: only a viewer who could otherwise edit
		// gets told the listing is closed.
		ownerMatch := !viewer.Anonymous() && viewer.ID == listing.OwnerID
		if !viewer.IsOwner && !ownerMatch {
			return nil, ErrForbidden
		}
		return nil, ErrListingClosed
	}

	changes := s.applyEdit(listing, req)
	if len(changes) == 0 {
		return listing, nil
	}

	if err := s.repo.Save(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to save listing: %w", err)
	}

	for _, change := range changes {
		s.recordEvent(ctx, listing.ID, change.Type, change.FromValue, change.ToValue)
	}
	s.publish(ctx, nats.SubjectListingEdited, types.ListingMessage{
		ListingID: listing.ID,
		OwnerID:   listing.OwnerID,
		Title:     listing.Title,
		Type:      listing.Type,
		Status:    listing.Status,
		Changes:   changes,
	})
	s.invalidate(ctx)

	return listing, nil
}

func (s *Listing) applyEdit(listing *models.Listing, req types.EditListingRequest) []types.ListingChange {
	var changes []types.ListingChange

	if req.Title != nil && *req.Title != listing.Title {
		changes = append(changes, types.ListingChange{
			Type: models.EventTitleChanged, FromValue: listing.Title, ToValue: *req.Title,
		})
		listing.Title = *req.Title
	}
	if req.Description != nil && *req.Description != listing.Description {
		changes = append(changes, types.ListingChange{
			Type: models.EventDescriptionChanged, FromValue: listing.Description, ToValue: *req.Description,
		})
		listing.Description = *req.Description
	}
	if req.Price != nil && *req.Price != listing.Price {
		changes = append(changes, types.ListingChange{
			Type: models.EventPriceChanged, FromValue: listing.Price, ToValue: *req.Price,
		})
		listing.Price = *req.Price
	}
	if req.Status != nil && *req.Status != listing.Status {
		changes = append(changes, types.ListingChange{
			Type: models.EventStatusChanged, FromValue: listing.Status.String(), ToValue: req.Status.String(),
		})
		listing.Status = *req.Status
	}

	return changes
}

// Hide soft-hides a listing. Moderation only; listing ownership grants no
// hide rights.
func (s *Listing) Hide(ctx context.Context, viewer models.Viewer, id uint) error {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	presentation, err := authz.Present(listing, viewer)
	if err != nil {
		return err
	}
	if !presentation.CanHide {
		return ErrForbidden
	}

	if err := s.repo.Hide(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, nats.SubjectListingHidden, types.ListingMessage{
		ListingID: listing.ID,
		OwnerID:   listing.OwnerID,
		Title:     listing.Title,
		Type:      listing.Type,
		Status:    listing.Status,
	})
	s.invalidate(ctx)

	return nil
}

// RecentEvents returns the latest listing history entries, newest first
func (s *Listing) RecentEvents(ctx context.Context, limit int) ([]models.ListingEvent, error) {
	return s.eventRepo.ListRecent(ctx, limit)
}

// IssueCount counts the viewer's own listings currently carrying issues
func (s *Listing) IssueCount(ctx context.Context, viewer models.Viewer) (int64, error) {
	return s.repo.CountIssuesByOwner(ctx, viewer.ID)
}

func (s *Listing) recordEvent(ctx context.Context, listingID uint, eventType models.ListingEventType, from, to string) {
	event := &models.ListingEvent{
		ListingID: listingID,
		Type:      eventType,
		FromValue: from,
		ToValue:   to,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		// The mutation itself succeeded; a missing history entry is not
		// worth failing the request over.
		logger.Errorf("Failed to record listing event: %v", err)
	}
}

func (s *Listing) publish(ctx context.Context, subject string, msg interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, subject, msg); err != nil {
		logger.Errorf("Failed to publish %s: %v", subject, err)
	}
}

func (s *Listing) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Warnf("Listings cache invalidation failed: %v", err)
	}
}

var _ ListingCache = (*cache.ListingCache)(nil)
