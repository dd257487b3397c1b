// Package authz decides which actions a viewer may take on a listing. It is a
// pure presentation-rule package: it computes flags, it performs no mutations.
// The HTTP layer is the enforcement point for the actions themselves; any
// client-side use of these flags is advisory UX only.
package authz

import (
	"fmt"

	"shopkeeper/internal/db/models"
	"shopkeeper/internal/issues"
)

// Accent is the status-dependent visual affordance of a listing card
type Accent int

const (
	// AccentNone is the accent for open listings
	AccentNone Accent = iota
	// AccentWarning is the accent for pending listings
	AccentWarning
	// AccentDanger is the accent for closed listings
	AccentDanger
)

var accentNames = []string{
	"none",
	"warning",
	"danger",
}

func (a Accent) String() string {
	return accentNames[a]
}

// Action is the remediation affordance offered for a listing issue
type Action int

const (
	// ActionNone offers nothing; unrecognized resolution locations fail closed
	ActionNone Action = iota
	// ActionEdit routes to the listing's edit flow pre-populated with
	// current values
	ActionEdit
	// ActionOpenSource opens the listing's originating Discord message
	ActionOpenSource
)

// Presentation is the per-listing permitted-action set and visual state for
// one viewer.
type Presentation struct {
	CanEdit      bool
	CanHide      bool
	CanHideImage bool
	StatusAccent Accent
	// VisibleIssues is non-empty only for the listing's own owner. Issues
	// are a self-service remediation prompt, not a moderation queue, so the
	// elevated role does not see other users' issue lists.
	VisibleIssues []issues.Issue
}

// Present computes the presentation of a listing for a viewer.
//
// A status outside the three known values is a contract violation against the
// API schema, not a recoverable condition; it is returned as an error rather
// than mapped onto a default accent.
func Present(l *models.Listing, viewer models.Viewer) (Presentation, error) {
	accent, err := statusAccent(l.Status)
	if err != nil {
		return Presentation{}, err
	}

	ownerMatch := !viewer.Anonymous() && viewer.ID == l.OwnerID

	p := Presentation{
		CanEdit:      l.Status != models.ListingStatusClosed && (viewer.IsOwner || ownerMatch),
		CanHide:      viewer.IsOwner,
		CanHideImage: viewer.IsOwner,
		StatusAccent: accent,
	}

	if ownerMatch {
		p.VisibleIssues = issues.Detect(l)
	}

	return p, nil
}

func statusAccent(status models.ListingStatus) (Accent, error) {
	switch status {
	case models.ListingStatusOpen:
		return AccentNone, nil
	case models.ListingStatusPending:
		return AccentWarning, nil
	case models.ListingStatusClosed:
		return AccentDanger, nil
	}
	return AccentNone, fmt.Errorf("listing status out of range: %d", status)
}

// ResolutionAction maps an issue's resolution location to the affordance the
// UI should offer. Unrecognized locations fail closed.
func ResolutionAction(issue issues.Issue) Action {
	switch issue.ResolutionLocation {
	case issues.ResolveInUI:
		return ActionEdit
	case issues.ResolveOnDiscord:
		return ActionOpenSource
	}
	return ActionNone
}
