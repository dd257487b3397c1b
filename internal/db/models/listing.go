// Package models defines the database models for the marketplace.
package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// ListingType represents whether a listing offers or seeks an item
type ListingType int

const (
	// ListingTypeBuy is a "wanted" listing
	ListingTypeBuy ListingType = iota
	// ListingTypeSell is a "for sale" listing
	ListingTypeSell
)

var listingTypeNames = []string{
	"buy",
	"sell",
}

func (t ListingType) String() string {
	return listingTypeNames[t]
}

// ParseListingType converts a string representation of a listing type to ListingType
func ParseListingType(str string) (ListingType, error) {
	for i, name := range listingTypeNames {
		if name == str {
			return ListingType(i), nil
		}
	}
	return ListingType(0), fmt.Errorf("invalid listing type: %s", str)
}

// MarshalJSON implements the json.Marshaler interface for ListingType
func (t ListingType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for ListingType
func (t *ListingType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	parsed, err := ParseListingType(str)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// ListingStatus represents the lifecycle state of a listing
type ListingStatus int

const (
	// ListingStatusOpen is the initial state of every listing
	ListingStatusOpen ListingStatus = iota
	// ListingStatusPending marks a transaction in progress
	ListingStatusPending
	// ListingStatusClosed is terminal; closed listings cannot be edited
	ListingStatusClosed
)

var listingStatusNames = []string{
	"open",
	"pending",
	"closed",
}

func (s ListingStatus) String() string {
	return listingStatusNames[s]
}

// ParseListingStatus converts a string representation of a listing status to ListingStatus
func ParseListingStatus(str string) (ListingStatus, error) {
	for i, name := range listingStatusNames {
		if name == str {
			return ListingStatus(i), nil
		}
	}
	return ListingStatus(0), fmt.Errorf("invalid listing status: %s", str)
}

// MarshalJSON implements the json.Marshaler interface for ListingStatus
func (s ListingStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for ListingStatus
func (s *ListingStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	parsed, err := ParseListingStatus(str)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}

// Listing represents a marketplace listing mirrored from a Discord thread
type Listing struct {
	gorm.Model
	Title       string        `json:"title" gorm:"not null"`
	Description string        `json:"description"`
	Price       string        `json:"price"`
	Type        ListingType   `json:"type" gorm:"index"`
	Status      ListingStatus `json:"status" gorm:"index"`
	IsHidden    bool          `json:"is_hidden" gorm:"index"`
	OwnerID     string        `json:"owner_id" gorm:"not null;index"`
	MessageID   string        `json:"message_id"`
	ThreadID    string        `json:"thread_id"`

	Images []ListingImage `json:"images"`
	Events []ListingEvent `json:"-"`
}

// JumpURL returns the Discord jump link for the listing's source message
func (l *Listing) JumpURL(guildID, channelID string) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, channelID, l.MessageID)
}

// VisibleImages returns the listing's images that have not been hidden by a moderator
func (l *Listing) VisibleImages() []ListingImage {
	visible := make([]ListingImage, 0, len(l.Images))
	for _, img := range l.Images {
		if !img.IsHidden {
			visible = append(visible, img)
		}
	}
	return visible
}
