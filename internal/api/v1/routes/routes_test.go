package routes

import (
	"testing"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"shopkeeper/internal/api/v1/handlers"
)

func TestRegisterRoutes(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, &handlers.APIHandler{}, "secret")

	// Fiber registers a HEAD twin for every GET under the same name.
	registered := make(map[string]string)
	for _, route := range app.GetRoutes() {
		if route.Name != "" && route.Method != fiber.MethodHead {
			registered[route.Name] = route.Method + " " + route.Path
		}
	}

	expected := map[string]string{
		HealthCheck:       "GET /health",
		GetFeed:           "GET /feed",
		ListListings:      "GET /api/v1/listings",
		GetListing:        "GET /api/v1/listings/:id",
		CreateListing:     "POST /api/v1/listings",
		EditListing:       "PATCH /api/v1/listings/:id",
		HideListing:       "DELETE /api/v1/listings/:id",
		UploadImage:       "POST /api/v1/listings/:id/images",
		GetImage:          "GET /api/v1/images/:id",
		GetImageThumbnail: "GET /api/v1/images/:id/thumbnail",
		HideImage:         "DELETE /api/v1/images/:id",
		GetCurrentUser:    "GET /api/v1/users/me",
		GetUserIssueCount: "GET /api/v1/users/me/issue-count",
	}
	assert.Equal(t, expected, registered)
}
