package handlers

import (
	"errors"
	"fmt"
	"net/url"

	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"shopkeeper/internal/api/v1/middleware"
	"shopkeeper/internal/authz"
	"shopkeeper/internal/db/models"
	"shopkeeper/internal/filter"
	"shopkeeper/internal/issues"
	"shopkeeper/internal/logger"
	"shopkeeper/internal/services"
	"shopkeeper/internal/types"
)

// queryValues converts the request query string to url.Values, preserving
// repeated keys and present-but-empty values.
func queryValues(c *fiber.Ctx) url.Values {
	values := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values
}

// listingResponse builds the API representation of a listing for one viewer.
// Issue visibility follows the authorizer: issues are the owner's remediation
// prompt, not public metadata.
func (h *APIHandler) listingResponse(listing models.Listing, viewer models.Viewer) (types.ListingResponse, error) {
	presentation, err := authz.Present(&listing, viewer)
	if err != nil {
		return types.ListingResponse{}, err
	}

	visibleIssues := presentation.VisibleIssues
	if visibleIssues == nil {
		visibleIssues = []issues.Issue{}
	}
	return types.ListingResponse{
		Listing: listing,
		URL:     listing.JumpURL(h.guildID, h.channelID),
		Issues:  visibleIssues,
	}, nil
}

// ListListings handles the request to list listings matching the filter
// criteria carried in the query string.
func (h *APIHandler) ListListings(c *fiber.Ctx) error {
	criteria, err := filter.Parse(queryValues(c))
	if err != nil {
		var validationErr *filter.ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).
				JSON(types.ErrInvalidFilter(ErrMsgInvalidFilter, validationErr.Key, validationErr.Value))
		}
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	opts := models.ListOptions{
		Limit:  c.QueryInt("limit", models.DefaultLimit),
		Offset: c.QueryInt("offset", 0),
	}

	listings, err := h.listing.List(c.Context(), criteria, &opts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("%s: %v", ErrMsgListFailed, err)))
	}

	viewer := middleware.ViewerFromCtx(c)
	rows := make([]types.ListingResponse, 0, len(listings))
	for _, listing := range listings {
		row, err := h.listingResponse(listing, viewer)
		if err != nil {
			// A status outside the schema is a contract violation, not
			// something to paper over with a default branch.
			logger.Errorf("Listing %d violates the status contract: %v", listing.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(err.Error()))
		}
		rows = append(rows, row)
	}

	return c.JSON(types.ListResponse[types.ListingResponse]{
		Rows: rows,
		Pagination: types.PaginationResponse{
			Total:  len(rows),
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}

// GetListing returns details of a specific listing
func (h *APIHandler) GetListing(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("listing id must be a positive number"))
	}

	listing, err := h.listing.Get(c.Context(), uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrInvalidInput(ErrMsgListingNotFound))
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(err.Error()))
	}

	row, err := h.listingResponse(*listing, middleware.ViewerFromCtx(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(row)
}

// CreateListing handles the request to create a listing
func (h *APIHandler) CreateListing(c *fiber.Ctx) error {
	var req types.CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidReqBody))
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	viewer := middleware.ViewerFromCtx(c)
	listing, err := h.listing.Create(c.Context(), viewer, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("%s: %v", ErrMsgCreateFailed, err)))
	}

	row, err := h.listingResponse(*listing, viewer)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}

// EditListing handles a partial edit of a listing
func (h *APIHandler) EditListing(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("listing id must be a positive number"))
	}

	var req types.EditListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidReqBody))
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	viewer := middleware.ViewerFromCtx(c)
	listing, err := h.listing.Edit(c.Context(), viewer, uint(id), req)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ErrInvalidInput(ErrMsgListingNotFound))
	case errors.Is(err, services.ErrListingClosed):
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgListingClosed))
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(types.ErrInvalidInput(ErrMsgForbidden))
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("%s: %v", ErrMsgEditFailed, err)))
	}

	row, err := h.listingResponse(*listing, viewer)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(row)
}

// HideListing handles the moderation request to hide a listing
func (h *APIHandler) HideListing(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("listing id must be a positive number"))
	}

	err = h.listing.Hide(c.Context(), middleware.ViewerFromCtx(c), uint(id))
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ErrInvalidInput(ErrMsgListingNotFound))
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(types.ErrInvalidInput(ErrMsgForbidden))
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("%s: %v", ErrMsgHideFailed, err)))
	}

	return c.SendStatus(fiber.StatusNoContent)
}
