// Package routes defines the API routes and URL structure
package routes

import (
	"fmt"
	"net/url"
	"strings"
)

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8080"
	// APIv1Prefix is the prefix for all API endpoints
	APIv1Prefix = "/api/v1"
)

// DefaultBaseURL is the default base URL for the API
var DefaultBaseURL = fmt.Sprintf("http://localhost:%s", DefaultPort)

// Route patterns, relative to the app root. Parameters use fiber's :name form.
const (
	// Health check and feed are public, outside the API prefix
	HealthCheckPath = "/health"
	FeedPath        = "/feed"

	// Listing routes
	ListingsPath      = APIv1Prefix + "/listings"
	ListingPath       = APIv1Prefix + "/listings/:id"
	ListingImagesPath = APIv1Prefix + "/listings/:id/images"

	// Image routes
	ImagePath          = APIv1Prefix + "/images/:id"
	ImageThumbnailPath = APIv1Prefix + "/images/:id/thumbnail"

	// User routes
	CurrentUserPath = APIv1Prefix + "/users/me"
	IssueCountPath  = APIv1Prefix + "/users/me/issue-count"
)

// BuildURL expands a route pattern with the given parameters and query string
func BuildURL(pattern string, params map[string]string, queryParams url.Values) string {
	route := pattern
	for param, value := range params {
		route = strings.ReplaceAll(route, ":"+param, value)
	}
	if len(queryParams) > 0 {
		route = fmt.Sprintf("%s?%s", route, queryParams.Encode())
	}
	return route
}

// HealthCheckURL returns the URL for the health check endpoint
func HealthCheckURL() string {
	return BuildURL(HealthCheckPath, nil, nil)
}

// FeedURL returns the URL for the listing event feed
func FeedURL() string {
	return BuildURL(FeedPath, nil, nil)
}

// ListingsURL returns the URL for listing and creating listings
func ListingsURL(queryParams url.Values) string {
	return BuildURL(ListingsPath, nil, queryParams)
}

// ListingURL returns the URL for a single listing
func ListingURL(id string) string {
	return BuildURL(ListingPath, map[string]string{"id": id}, nil)
}

// ListingImagesURL returns the URL for uploading an image to a listing
func ListingImagesURL(id string) string {
	return BuildURL(ListingImagesPath, map[string]string{"id": id}, nil)
}

// ImageURL returns the URL for a stored image
func ImageURL(id string) string {
	return BuildURL(ImagePath, map[string]string{"id": id}, nil)
}

// ImageThumbnailURL returns the URL for a stored image's thumbnail
func ImageThumbnailURL(id string) string {
	return BuildURL(ImageThumbnailPath, map[string]string{"id": id}, nil)
}

// CurrentUserURL returns the URL for the current viewer endpoint
func CurrentUserURL() string {
	return BuildURL(CurrentUserPath, nil, nil)
}

// IssueCountURL returns the URL for the viewer's open issue count
func IssueCountURL() string {
	return BuildURL(IssueCountPath, nil, nil)
}
