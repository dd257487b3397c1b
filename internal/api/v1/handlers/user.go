package handlers

import (
	"fmt"

	fiber "github.com/gofiber/fiber/v2"

	"shopkeeper/internal/api/v1/middleware"
	"shopkeeper/internal/types"
)

// GetCurrentUser returns the viewer the session token resolved to
func (h *APIHandler) GetCurrentUser(c *fiber.Ctx) error {
	return c.JSON(middleware.ViewerFromCtx(c))
}

// GetUserIssueCount returns the count of the viewer's own listings with issues
func (h *APIHandler) GetUserIssueCount(c *fiber.Ctx) error {
	count, err := h.listing.IssueCount(c.Context(), middleware.ViewerFromCtx(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("%s: %v", ErrMsgCountFailed, err)))
	}
	return c.JSON(types.IssueCountResponse{Count: count})
}
