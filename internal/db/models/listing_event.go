package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// ListingEventType identifies what changed on a listing
type ListingEventType int

const (
	// EventListingCreated records the initial creation of a listing
	EventListingCreated ListingEventType = iota
	// EventTitleChanged records a title edit
	EventTitleChanged
	// EventDescriptionChanged records a description edit
	EventDescriptionChanged
	// EventPriceChanged records a price edit
	EventPriceChanged
	// EventStatusChanged records a status transition
	EventStatusChanged
)

var listingEventTypeNames = []string{
	"listing_created",
	"title_changed",
	"description_changed",
	"price_changed",
	"status_changed",
}

func (t ListingEventType) String() string {
	return listingEventTypeNames[t]
}

// ParseListingEventType converts a string representation to ListingEventType
func ParseListingEventType(str string) (ListingEventType, error) {
	for i, name := range listingEventTypeNames {
		if name == str {
			return ListingEventType(i), nil
		}
	}
	return ListingEventType(0), fmt.Errorf("invalid listing event type: %s", str)
}

// MarshalJSON implements the json.Marshaler interface for ListingEventType
func (t ListingEventType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for ListingEventType
func (t *ListingEventType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	parsed, err := ParseListingEventType(str)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// ListingEvent is one entry of a listing's change history. Events feed the
// RSS feed and the messages published for the Discord bridge.
type ListingEvent struct {
	gorm.Model
	ListingID uint             `json:"listing_id" gorm:"not null;index"`
	Type      ListingEventType `json:"type"`
	FromValue string           `json:"from_value"`
	ToValue   string           `json:"to_value"`

	Listing Listing `json:"-"`
}

func stringifyDiffValue(value string) string {
	if value == "" {
		return "`(empty)`"
	}
	return fmt.Sprintf("`%s`", value)
}

// FeedTitle renders the event headline for the RSS feed. The Listing
// association must be preloaded.
func (e *ListingEvent) FeedTitle() string {
	switch e.Type {
	case EventListingCreated:
		return fmt.Sprintf("New Listing: %s", e.ToValue)
	case EventTitleChanged:
		return fmt.Sprintf("%s: Title Changed", e.Listing.Title)
	case EventDescriptionChanged:
		return fmt.Sprintf("%s: Description Changed", e.Listing.Title)
	case EventPriceChanged:
		return fmt.Sprintf("%s: Price Changed", e.Listing.Title)
	case EventStatusChanged:
		return fmt.Sprintf("%s: Status Changed", e.Listing.Title)
	}
	return ""
}

// FeedDescription renders the event body for the RSS feed
func (e *ListingEvent) FeedDescription() string {
	if e.Type == EventListingCreated {
		return "Listing created"
	}

	var what string
	switch e.Type {
	case EventTitleChanged:
		what = "Title"
	case EventDescriptionChanged:
		what = "Description"
	case EventPriceChanged:
		what = "Price"
	case EventStatusChanged:
		what = "Status"
	default:
		return ""
	}

	return fmt.Sprintf("%s changed from %s to %s", what, stringifyDiffValue(e.FromValue), stringifyDiffValue(e.ToValue))
}
