package types

import (
	"fmt"

	"shopkeeper/internal/db/models"
	"shopkeeper/internal/issues"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 4000
	maxPriceLength       = 100
)

// CreateListingRequest represents a request to create a new listing
type CreateListingRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Price       string             `json:"price,omitempty"`
	Type        models.ListingType `json:"type"`
}

// Validate validates the create request
func (r CreateListingRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(r.Title) > maxTitleLength {
		return fmt.Errorf("title must be at most %d characters", maxTitleLength)
	}
	if len(r.Description) > maxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", maxDescriptionLength)
	}
	if len(r.Price) > maxPriceLength {
		return fmt.Errorf("price must be at most %d characters", maxPriceLength)
	}
	return nil
}

// EditListingRequest represents a partial edit of a listing. Nil fields are
// left unchanged.
type EditListingRequest struct {
	Title       *string               `json:"title,omitempty"`
	Description *string               `json:"description,omitempty"`
	Price       *string               `json:"price,omitempty"`
	Status      *models.ListingStatus `json:"status,omitempty"`
}

// Validate validates the edit request
func (r EditListingRequest) Validate() error {
	if r.Title == nil && r.Description == nil && r.Price == nil && r.Status == nil {
		return fmt.Errorf("at least one field must be provided")
	}
	if r.Title != nil {
		if *r.Title == "" {
			return fmt.Errorf("title cannot be empty")
		}
		if len(*r.Title) > maxTitleLength {
			return fmt.Errorf("title must be at most %d characters", maxTitleLength)
		}
	}
	if r.Description != nil && len(*r.Description) > maxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", maxDescriptionLength)
	}
	if r.Price != nil && len(*r.Price) > maxPriceLength {
		return fmt.Errorf("price must be at most %d characters", maxPriceLength)
	}
	return nil
}

// ListingResponse is a listing as returned by the API: the stored fields plus
// the computed jump URL and the issues the viewer is allowed to see.
type ListingResponse struct {
	models.Listing
	URL string `json:"url"`
	// Issues is always present; it is empty unless the viewer owns the listing
	Issues []issues.Issue `json:"issues"`
}

// IssueCountResponse is the viewer's own count of listings with issues
type IssueCountResponse struct {
	Count int64 `json:"count"`
}

// ImageUploadResponse identifies a freshly stored listing image
type ImageUploadResponse struct {
	ImageID uint `json:"image_id"`
}
