package middleware

import (
	"strings"

	fiber "github.com/gofiber/fiber/v2"

	"shopkeeper/internal/db/models"
	"shopkeeper/internal/session"
	"shopkeeper/internal/types"
)

// viewerKey is the fiber locals key the resolved Viewer is stored under
const viewerKey = "viewer"

// RequireViewer returns a middleware that verifies the session token and
// injects the resolved Viewer into the request context. Requests without a
// valid token get 401; the web client responds by redirecting to the external
// Discord login flow.
func RequireViewer(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return c.Status(fiber.StatusUnauthorized).
				JSON(types.ErrInvalidInput("missing or malformed session token"))
		}

		viewer, err := session.Verify(secret, parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(types.ErrInvalidInput("invalid session token"))
		}

		c.Locals(viewerKey, viewer)
		return c.Next()
	}
}

// OptionalViewer resolves the session token when one is present but lets
// anonymous requests through. Read-only routes use this so listings stay
// browsable without logging in.
func OptionalViewer(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		parts := strings.Fields(header)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			if viewer, err := session.Verify(secret, parts[1]); err == nil {
				c.Locals(viewerKey, viewer)
			}
		}
		return c.Next()
	}
}

// ViewerFromCtx returns the Viewer the auth middleware resolved for this
// request. The zero Viewer is returned on routes that skip authentication.
func ViewerFromCtx(c *fiber.Ctx) models.Viewer {
	viewer, ok := c.Locals(viewerKey).(models.Viewer)
	if !ok {
		return models.Viewer{}
	}
	return viewer
}
