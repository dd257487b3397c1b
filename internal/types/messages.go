package types

import "shopkeeper/internal/db/models"

// ListingMessage is the bus payload for listing lifecycle subjects. The
// Discord bridge consumes these and mirrors the change to the marketplace
// channel.
type ListingMessage struct {
	ListingID uint                 `json:"listing_id"`
	OwnerID   string               `json:"owner_id"`
	Title     string               `json:"title"`
	Type      models.ListingType   `json:"type"`
	Status    models.ListingStatus `json:"status"`
	// Changes lists the recorded events for edit messages, empty otherwise
	Changes []ListingChange `json:"changes,omitempty"`
}

// ListingChange is one field change within an edit message
type ListingChange struct {
	Type      models.ListingEventType `json:"type"`
	FromValue string                  `json:"from_value"`
	ToValue   string                  `json:"to_value"`
}

// ImageMessage is the bus payload for image moderation subjects
type ImageMessage struct {
	ImageID   uint `json:"image_id"`
	ListingID uint `json:"listing_id"`
}

// ReminderNotice tells the bridge to DM an owner about their listings with
// outstanding issues.
type ReminderNotice struct {
	OwnerID      string `json:"owner_id"`
	ListingCount int    `json:"listing_count"`
}
