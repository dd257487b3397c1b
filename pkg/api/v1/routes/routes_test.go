package routes

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "/health", HealthCheckURL())
	assert.Equal(t, "/api/v1/listings/7", ListingURL("7"))
	assert.Equal(t, "/api/v1/listings/7/images", ListingImagesURL("7"))
	assert.Equal(t, "/api/v1/images/3/thumbnail", ImageThumbnailURL("3"))

	query := url.Values{}
	query.Set("status", "closed")
	assert.Equal(t, "/api/v1/listings?status=closed", ListingsURL(query))
	assert.Equal(t, "/api/v1/listings", ListingsURL(nil))
}
