package handlers

// Common error messages
const (
	ErrMsgInvalidReqBody  = "Invalid request body"
	ErrMsgInvalidFilter   = "Invalid filter parameter"
	ErrMsgListingNotFound = "Listing not found"
	ErrMsgImageNotFound   = "Image not found"
	ErrMsgForbidden       = "You do not own this listing"
	ErrMsgListingClosed   = "Listing is closed"
	ErrMsgListFailed      = "Failed to list listings"
	ErrMsgCreateFailed    = "Failed to create listing"
	ErrMsgEditFailed      = "Failed to edit listing"
	ErrMsgHideFailed      = "Failed to hide listing"
	ErrMsgImageFailed     = "Failed to process image"
	ErrMsgCountFailed     = "Failed to count issues"
)
