package authz

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopkeeper/internal/db/models"
	"shopkeeper/internal/filter"
	"shopkeeper/internal/issues"
)

func openSellListing(ownerID string) *models.Listing {
	return &models.Listing{
		Title:       "GPU for sale",
		Description: "Lightly used",
		Price:       "300",
		Type:        models.ListingTypeSell,
		Status:      models.ListingStatusOpen,
		OwnerID:     ownerID,
		Images:      []models.ListingImage{{ObjectKey: "images/a.png"}},
	}
}

func TestPresentPermissions(t *testing.T) {
	owner := models.Viewer{ID: "100", Username: "seller"}
	moderator := models.Viewer{ID: "200", Username: "mod", IsOwner: true}
	stranger := models.Viewer{ID: "300", Username: "passerby"}
	anonymous := models.Viewer{}

	tests := []struct {
		name         string
		status       models.ListingStatus
		viewer       models.Viewer
		canEdit      bool
		canHide      bool
		canHideImage bool
	}{
		{
			name:    "owner edits own open listing",
			status:  models.ListingStatusOpen,
			viewer:  owner,
			canEdit: true,
		},
		{
			name:    "owner edits own pending listing",
			status:  models.ListingStatusPending,
			viewer:  owner,
			canEdit: true,
		},
		{
			name:    "closed listing is not editable even by its owner",
			status:  models.ListingStatusClosed,
			viewer:  owner,
			canEdit: false,
		},
		{
			name:         "moderator edits and hides any open listing",
			status:       models.ListingStatusOpen,
			viewer:       moderator,
			canEdit:      true,
			canHide:      true,
			canHideImage: true,
		},
		{
			name:         "moderator cannot edit a closed listing",
			status:       models.ListingStatusClosed,
			viewer:       moderator,
			canEdit:      false,
			canHide:      true,
			canHideImage: true,
		},
		{
			name:   "stranger can do nothing",
			status: models.ListingStatusOpen,
			viewer: stranger,
		},
		{
			name:   "anonymous viewer can do nothing",
			status: models.ListingStatusOpen,
			viewer: anonymous,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := openSellListing("100")
			listing.Status = tt.status

			p, err := Present(listing, tt.viewer)
			require.NoError(t, err)
			assert.Equal(t, tt.canEdit, p.CanEdit, "CanEdit")
			assert.Equal(t, tt.canHide, p.CanHide, "CanHide")
			assert.Equal(t, tt.canHideImage, p.CanHideImage, "CanHideImage")
		})
	}
}

func TestPresentAnonymousViewerWithEmptyOwner(t *testing.T) {
	// A listing with an empty owner must not match the anonymous viewer's
	// empty ID.
	listing := openSellListing("")

	p, err := Present(listing, models.Viewer{})
	require.NoError(t, err)
	assert.False(t, p.CanEdit)
	assert.Empty(t, p.VisibleIssues)
}

func TestPresentStatusAccent(t *testing.T) {
	tests := []struct {
		status models.ListingStatus
		accent Accent
	}{
		{models.ListingStatusOpen, AccentNone},
		{models.ListingStatusPending, AccentWarning},
		{models.ListingStatusClosed, AccentDanger},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			listing := openSellListing("100")
			listing.Status = tt.status

			p, err := Present(listing, models.Viewer{})
			require.NoError(t, err)
			assert.Equal(t, tt.accent, p.StatusAccent)
		})
	}
}

func TestPresentRejectsUnknownStatus(t *testing.T) {
	listing := openSellListing("100")
	listing.Status = models.ListingStatus(42)

	_, err := Present(listing, models.Viewer{ID: "100"})
	assert.Error(t, err)
}

func TestPresentIssueVisibility(t *testing.T) {
	// A sell listing with no price and no description carries two issues
	listing := openSellListing("100")
	listing.Price = ""
	listing.Description = ""

	t.Run("owner sees own issues", func(t *testing.T) {
		p, err := Present(listing, models.Viewer{ID: "100", Username: "seller"})
		require.NoError(t, err)
		assert.Len(t, p.VisibleIssues, 2)
	})

	t.Run("moderator does not see other users' issues", func(t *testing.T) {
		p, err := Present(listing, models.Viewer{ID: "200", Username: "mod", IsOwner: true})
		require.NoError(t, err)
		assert.Empty(t, p.VisibleIssues)
	})

	t.Run("stranger sees nothing", func(t *testing.T) {
		p, err := Present(listing, models.Viewer{ID: "300", Username: "passerby"})
		require.NoError(t, err)
		assert.Empty(t, p.VisibleIssues)
	})

	t.Run("anonymous sees nothing", func(t *testing.T) {
		p, err := Present(listing, models.Viewer{})
		require.NoError(t, err)
		assert.Empty(t, p.VisibleIssues)
	})
}

func TestResolutionAction(t *testing.T) {
	assert.Equal(t, ActionEdit, ResolutionAction(issues.Issue{ResolutionLocation: issues.ResolveInUI}))
	assert.Equal(t, ActionOpenSource, ResolutionAction(issues.Issue{ResolutionLocation: issues.ResolveOnDiscord}))
	// Unrecognized locations fail closed
	assert.Equal(t, ActionNone, ResolutionAction(issues.Issue{ResolutionLocation: "email"}))
	assert.Equal(t, ActionNone, ResolutionAction(issues.Issue{}))
}

func TestFilterThenPresentScenario(t *testing.T) {
	// A user follows a bookmarked URL filtered to their own open and
	// pending listings.
	values, err := url.ParseQuery("status=open&status=pending&owner=U1")
	require.NoError(t, err)

	criteria, err := filter.Parse(values)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]models.ListingStatus{models.ListingStatusOpen, models.ListingStatusPending},
		criteria.Statuses)
	assert.Equal(t, []string{"U1"}, criteria.Owners)
	assert.Nil(t, criteria.Types)

	viewer := models.Viewer{ID: "U1", Username: "u1"}

	open := &models.Listing{Status: models.ListingStatusOpen, OwnerID: "U1"}
	p, err := Present(open, viewer)
	require.NoError(t, err)
	assert.True(t, p.CanEdit)
	assert.False(t, p.CanHide)
	assert.Equal(t, AccentNone, p.StatusAccent)

	closed := &models.Listing{Status: models.ListingStatusClosed, OwnerID: "U1"}
	p, err = Present(closed, viewer)
	require.NoError(t, err)
	assert.False(t, p.CanEdit)
	assert.False(t, p.CanHide)
	assert.Equal(t, AccentDanger, p.StatusAccent)
}

func TestAccentString(t *testing.T) {
	assert.Equal(t, "none", AccentNone.String())
	assert.Equal(t, "warning", AccentWarning.String())
	assert.Equal(t, "danger", AccentDanger.String())
}
