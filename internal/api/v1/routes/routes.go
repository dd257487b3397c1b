// Package routes wires the HTTP handlers onto the fiber app
package routes

import (
	fiber "github.com/gofiber/fiber/v2"

	"shopkeeper/internal/api/v1/handlers"
	"shopkeeper/internal/api/v1/middleware"
	"shopkeeper/pkg/api/v1/routes"
)

// Route names for lookup
const (
	// Health check and feed
	HealthCheck = "HealthCheck"
	GetFeed     = "GetFeed"

	// Listing routes
	ListListings  = "ListListings"
	GetListing    = "GetListing"
	CreateListing = "CreateListing"
	EditListing   = "EditListing"
	HideListing   = "HideListing"

	// Image routes
	UploadImage       = "UploadImage"
	GetImage          = "GetImage"
	GetImageThumbnail = "GetImageThumbnail"
	HideImage         = "HideImage"

	// User routes
	GetCurrentUser    = "GetCurrentUser"
	GetUserIssueCount = "GetUserIssueCount"
)

// RegisterRoutes configures all the v1 routes.
//
// NOTE: route ordering is important because routes will try and match in the
// order they are registered. Param routes (/:id) go after their literal
// siblings so fiber does not interpret the slug as the param.
func RegisterRoutes(app *fiber.App, handler *handlers.APIHandler, sessionSecret string) {
	// Health check
	app.Get(routes.HealthCheckPath, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	}).Name(HealthCheck)

	// Public event feed
	app.Get(routes.FeedPath, handler.GetFeed).Name(GetFeed)

	// API v1 routes. Reads are open to anonymous viewers; writes require a
	// valid session.
	optional := middleware.OptionalViewer(sessionSecret)
	required := middleware.RequireViewer(sessionSecret)

	// Listing endpoints
	app.Get(routes.ListingsPath, optional, handler.ListListings).Name(ListListings)
	app.Get(routes.ListingPath, optional, handler.GetListing).Name(GetListing)
	app.Post(routes.ListingsPath, required, handler.CreateListing).Name(CreateListing)
	app.Patch(routes.ListingPath, required, handler.EditListing).Name(EditListing)
	app.Delete(routes.ListingPath, required, handler.HideListing).Name(HideListing)

	// Image endpoints
	app.Get(routes.ImageThumbnailPath, optional, handler.GetImageThumbnail).Name(GetImageThumbnail)
	app.Get(routes.ImagePath, optional, handler.GetImage).Name(GetImage)
	app.Post(routes.ListingImagesPath, required, handler.UploadImage).Name(UploadImage)
	app.Delete(routes.ImagePath, required, handler.HideImage).Name(HideImage)

	// User endpoints
	app.Get(routes.CurrentUserPath, required, handler.GetCurrentUser).Name(GetCurrentUser)
	app.Get(routes.IssueCountPath, required, handler.GetUserIssueCount).Name(GetUserIssueCount)
}
