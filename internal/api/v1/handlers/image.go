package handlers

import (
	"errors"
	"fmt"
	"io"

	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"shopkeeper/internal/api/v1/middleware"
	"shopkeeper/internal/services"
	"shopkeeper/internal/types"
)

// maxImageBytes caps uploaded image size
const maxImageBytes = 10 * 1024 * 1024

// UploadImage handles a multipart image upload for a listing
func (h *APIHandler) UploadImage(c *fiber.Ctx) error {
	listingID, err := c.ParamsInt("id")
	if err != nil || listingID <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("listing id must be a positive number"))
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("an image file is required"))
	}
	if fileHeader.Size > maxImageBytes {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("image is too large"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgImageFailed))
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgImageFailed))
	}

	image, err := h.image.Add(
		c.Context(),
		middleware.ViewerFromCtx(c),
		uint(listingID),
		fileHeader.Filename,
		fileHeader.Header.Get(fiber.HeaderContentType),
		data,
	)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ErrInvalidInput(ErrMsgListingNotFound))
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(types.ErrInvalidInput(ErrMsgForbidden))
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("%s: %v", ErrMsgImageFailed, err)))
	}

	return c.Status(fiber.StatusCreated).JSON(types.ImageUploadResponse{ImageID: image.ID})
}

// GetImage streams the original image object
func (h *APIHandler) GetImage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("image id must be a positive number"))
	}

	reader, err := h.image.Open(c.Context(), uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrInvalidInput(ErrMsgImageNotFound))
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("%s: %v", ErrMsgImageFailed, err)))
	}

	return c.SendStream(reader)
}

// GetImageThumbnail returns a bounded PNG thumbnail of the image
func (h *APIHandler) GetImageThumbnail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("image id must be a positive number"))
	}

	thumb, err := h.image.Thumbnail(c.Context(), uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrInvalidInput(ErrMsgImageNotFound))
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("%s: %v", ErrMsgImageFailed, err)))
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(thumb)
}

// HideImage handles the moderation request to hide an image
func (h *APIHandler) HideImage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("image id must be a positive number"))
	}

	err = h.image.Hide(c.Context(), middleware.ViewerFromCtx(c), uint(id))
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ErrInvalidInput(ErrMsgImageNotFound))
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(types.ErrInvalidInput(ErrMsgForbidden))
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("%s: %v", ErrMsgImageFailed, err)))
	}

	return c.SendStatus(fiber.StatusNoContent)
}
