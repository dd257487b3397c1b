package services

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/disintegration/imaging"

	"shopkeeper/internal/authz"
	"shopkeeper/internal/db/models"
	"shopkeeper/internal/db/repos"
	"shopkeeper/internal/logger"
	"shopkeeper/internal/messaging/nats"
	"shopkeeper/internal/storage"
	"shopkeeper/internal/types"
)

// thumbnailBound is the maximum edge length of generated thumbnails
const thumbnailBound = 350

// Image provides business logic for listing image operations
type Image struct {
	repo        *repos.ListingImageRepository
	listingRepo *repos.ListingRepository
	store       *storage.ImageStore
	publisher   Publisher
	cache       ListingCache
}

// NewImageService creates a new image service
func NewImageService(
	repo *repos.ListingImageRepository,
	listingRepo *repos.ListingRepository,
	store *storage.ImageStore,
	publisher Publisher,
	listingCache ListingCache,
) *Image {
	return &Image{
		repo:        repo,
		listingRepo: listingRepo,
		store:       store,
		publisher:   publisher,
		cache:       listingCache,
	}
}

// Add stores an image for a listing. The viewer must be allowed to edit the
// listing. Dimensions are extracted from the decoded image; undecodable
// uploads are rejected.
func (s *Image) Add(ctx context.Context, viewer models.Viewer, listingID uint, filename, contentType string, data []byte) (*models.ListingImage, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	presentation, err := authz.Present(listing, viewer)
	if err != nil {
		return nil, err
	}
	if !presentation.CanEdit {
		return nil, ErrForbidden
	}

	decoded, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image data: %w", err)
	}
	bounds := decoded.Bounds()

	key, err := s.store.Upload(ctx, filename, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	image := &models.ListingImage{
		ListingID: listingID,
		ObjectKey: key,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}
	if err := s.repo.Create(ctx, image); err != nil {
		return nil, fmt.Errorf("failed to record listing image: %w", err)
	}

	s.invalidate(ctx)

	return image, nil
}

// Open streams the original image object
func (s *Image) Open(ctx context.Context, id uint) (io.ReadCloser, error) {
	image, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.store.Get(ctx, image.ObjectKey)
}

// Thumbnail returns the image scaled down to fit the thumbnail bound,
// re-encoded as PNG.
func (s *Image) Thumbnail(ctx context.Context, id uint) ([]byte, error) {
	reader, err := s.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	decoded, err := imaging.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored image: %w", err)
	}

	thumb := imaging.Fit(decoded, thumbnailBound, thumbnailBound, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// Hide soft-hides an image. Moderation only.
func (s *Image) Hide(ctx context.Context, viewer models.Viewer, id uint) error {
	image, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	listing, err := s.listingRepo.GetByID(ctx, image.ListingID)
	if err != nil {
		return err
	}

	presentation, err := authz.Present(listing, viewer)
	if err != nil {
		return err
	}
	if !presentation.CanHideImage {
		return ErrForbidden
	}

	if err := s.repo.Hide(ctx, id); err != nil {
		return err
	}

	if s.publisher != nil {
		msg := types.ImageMessage{ImageID: image.ID, ListingID: image.ListingID}
		if err := s.publisher.Publish(ctx, nats.SubjectImageHidden, msg); err != nil {
			logger.Errorf("Failed to publish %s: %v", nats.SubjectImageHidden, err)
		}
	}
	s.invalidate(ctx)

	return nil
}

func (s *Image) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx)
}
