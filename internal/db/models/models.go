package models

const (
	// DefaultLimit is the max number of rows that are retrieved from the DB per listing API call
	DefaultLimit = 50
)

// ListOptions represents pagination options for list operations
type ListOptions struct {
	Limit         int  `json:"limit"`  // Number of items to return
	Offset        int  `json:"offset"` // Number of items to skip
	IncludeHidden bool `json:"include_hidden"`
}
