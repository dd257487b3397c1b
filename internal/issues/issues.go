// Package issues holds the catalog of listing content issues: problems with a
// listing the owner is expected to remediate, such as a sell listing without a
// price. Each issue exists twice, as a pure per-listing predicate and as a SQL
// condition for repository-side filtering; the two must agree.
package issues

import (
	"strings"

	"shopkeeper/internal/db/models"
)

// Icon identifies the glyph the UI renders for an issue
type Icon string

const (
	// IconDollarSign marks price-related issues
	IconDollarSign Icon = "dollar-sign"
	// IconImage marks image-related issues
	IconImage Icon = "image"
	// IconText marks text-content issues
	IconText Icon = "text"
)

// ResolutionLocation says where an issue gets fixed
type ResolutionLocation string

const (
	// ResolveInUI means the issue is fixed through the listing edit flow
	ResolveInUI ResolutionLocation = "ui"
	// ResolveOnDiscord means the issue is fixed at the listing's source
	// thread, e.g. by posting a photo there
	ResolveOnDiscord ResolutionLocation = "discord"
)

// Issue describes one detected problem on a listing
type Issue struct {
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	Icon               Icon               `json:"icon"`
	ResolutionLocation ResolutionLocation `json:"resolution_location"`
}

type check struct {
	issue     Issue
	predicate func(l *models.Listing) bool
	// clause matches the predicate in SQL; args line up with its placeholders
	clause string
	args   []interface{}
}

var catalog = []check{
	{
		issue: Issue{
			Title:              "No images",
			Description:        "Your listing has no images. Please send at least one photo of the item in your listing's thread.",
			Icon:               IconImage,
			ResolutionLocation: ResolveOnDiscord,
		},
		predicate: func(l *models.Listing) bool {
			return l.Type == models.ListingTypeSell && len(l.VisibleImages()) == 0
		},
		clause: "(listings.type = ? AND NOT EXISTS (SELECT 1 FROM listing_images WHERE listing_images.listing_id = listings.id AND listing_images.is_hidden = false AND listing_images.deleted_at IS NULL))",
		args:   []interface{}{models.ListingTypeSell},
	},
	{
		issue: Issue{
			Title:              "No price",
			Description:        "Your listing has no price.",
			Icon:               IconDollarSign,
			ResolutionLocation: ResolveInUI,
		},
		predicate: func(l *models.Listing) bool {
			return l.Type == models.ListingTypeSell && l.Price == ""
		},
		clause: "(listings.type = ? AND listings.price = '')",
		args:   []interface{}{models.ListingTypeSell},
	},
	{
		issue: Issue{
			Title:              "No description",
			Description:        "Your listing has no description.",
			Icon:               IconText,
			ResolutionLocation: ResolveInUI,
		},
		predicate: func(l *models.Listing) bool {
			return l.Description == ""
		},
		clause: "(listings.description = '')",
	},
}

// Detect returns the issues currently present on the listing. Closed listings
// never carry issues; there is nothing left to remediate on them.
func Detect(l *models.Listing) []Issue {
	if l.Status == models.ListingStatusClosed {
		return nil
	}

	var found []Issue
	for _, c := range catalog {
		if c.predicate(l) {
			found = append(found, c.issue)
		}
	}
	return found
}

// HasIssuesCondition returns a SQL condition (and its arguments) matching
// listings that currently carry at least one issue.
func HasIssuesCondition() (string, []interface{}) {
	clauses := make([]string, 0, len(catalog))
	var args []interface{}
	for _, c := range catalog {
		clauses = append(clauses, c.clause)
		args = append(args, c.args...)
	}

	cond := "(" + strings.Join(clauses, " OR ") + ") AND listings.status <> ?"
	args = append(args, models.ListingStatusClosed)
	return "(" + cond + ")", args
}
