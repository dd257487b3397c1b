package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingEventFeedRendering(t *testing.T) {
	listing := Listing{Title: "Road bike"}

	tests := []struct {
		name        string
		event       ListingEvent
		title       string
		description string
	}{
		{
			name: "listing created",
			event: ListingEvent{
				Type:    EventListingCreated,
				ToValue: "Road bike",
				Listing: listing,
			},
			title:       "New Listing: Road bike",
			description: "Listing created",
		},
		{
			name: "title changed",
			event: ListingEvent{
				Type:      EventTitleChanged,
				FromValue: "Road bike",
				ToValue:   "Road bike (price drop)",
				Listing:   listing,
			},
			title:       "Road bike: Title Changed",
			description: "Title changed from `Road bike` to `Road bike (price drop)`",
		},
		{
			name: "price set from empty",
			event: ListingEvent{
				Type:      EventPriceChanged,
				FromValue: "",
				ToValue:   "250",
				Listing:   listing,
			},
			title:       "Road bike: Price Changed",
			description: "Price changed from `(empty)` to `250`",
		},
		{
			name: "status changed",
			event: ListingEvent{
				Type:      EventStatusChanged,
				FromValue: "open",
				ToValue:   "pending",
				Listing:   listing,
			},
			title:       "Road bike: Status Changed",
			description: "Status changed from `open` to `pending`",
		},
		{
			name: "description cleared",
			event: ListingEvent{
				Type:      EventDescriptionChanged,
				FromValue: "Some text",
				ToValue:   "",
				Listing:   listing,
			},
			title:       "Road bike: Description Changed",
			description: "Description changed from `Some text` to `(empty)`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.title, tt.event.FeedTitle())
			assert.Equal(t, tt.description, tt.event.FeedDescription())
		})
	}
}

func TestParseListingEventType(t *testing.T) {
	for i, name := range listingEventTypeNames {
		parsed, err := ParseListingEventType(name)
		assert.NoError(t, err)
		assert.Equal(t, ListingEventType(i), parsed)
		assert.Equal(t, name, parsed.String())
	}

	_, err := ParseListingEventType("listing_deleted")
	assert.Error(t, err)
}
