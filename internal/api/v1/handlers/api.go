// Package handlers provides HTTP request handlers for the API
package handlers

import "shopkeeper/internal/services"

// APIHandler bundles the services the endpoint handlers dispatch to
type APIHandler struct {
	listing *services.Listing
	image   *services.Image

	// Discord identifiers used to compute listing jump URLs
	guildID   string
	channelID string
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(listing *services.Listing, image *services.Image, guildID, channelID string) *APIHandler {
	return &APIHandler{
		listing:   listing,
		image:     image,
		guildID:   guildID,
		channelID: channelID,
	}
}
