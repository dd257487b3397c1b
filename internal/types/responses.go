// Package types provides the request and response types of the API.
package types

// ErrorResponse is the error payload for all non-2xx responses
type ErrorResponse struct {
	Error string `json:"error"`

	// Key and Value identify the offending filter parameter on
	// invalid-filter responses, so clients can report precisely what they
	// fell back to defaults over.
	Key   string `json:"key,omitempty"`
	Value string `json:"value,omitempty"`
}

// ErrInvalidInput returns the error payload for a malformed request
func ErrInvalidInput(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// ErrInvalidFilter returns the error payload for an unparseable filter value
func ErrInvalidFilter(msg, key, value string) ErrorResponse {
	return ErrorResponse{Error: msg, Key: key, Value: value}
}

// ErrServer returns the error payload for an internal failure
func ErrServer(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// PaginationResponse represents pagination information for list endpoints
type PaginationResponse struct {
	// Total number of items in this page
	Total int `json:"total"`

	// Maximum number of items per page
	Limit int `json:"limit"`

	// Number of items skipped from the beginning of the result set
	Offset int `json:"offset"`
}

// ListResponse defines a generic response structure for listing resources
type ListResponse[T any] struct {
	// Array of resource items
	Rows []T `json:"rows"`

	// Pagination information for the result set
	Pagination PaginationResponse `json:"pagination"`
}
