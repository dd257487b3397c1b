package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopkeeper/internal/db/models"
	"shopkeeper/internal/db/repos"
	"shopkeeper/internal/filter"
	"shopkeeper/internal/types"
)

// TestSetup sets up an in-memory database and repositories for testing
type TestSetup struct {
	DB             *gorm.DB
	ListingRepo    *repos.ListingRepository
	EventRepo      *repos.ListingEventRepository
	ListingService *Listing
	ctx            context.Context
}

// NewTestSetup creates a new test setup with in-memory database
func NewTestSetup(t *testing.T) *TestSetup {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to create in-memory database")

	err = db.AutoMigrate(&models.Listing{}, &models.ListingImage{}, &models.ListingEvent{})
	require.NoError(t, err, "Failed to run migrations")

	listingRepo := repos.NewListingRepository(db)
	eventRepo := repos.NewListingEventRepository(db)
	listingService := NewListingService(listingRepo, eventRepo, nil, nil, filter.StandardDefaults())

	return &TestSetup{
		DB:             db,
		ListingRepo:    listingRepo,
		EventRepo:      eventRepo,
		ListingService: listingService,
		ctx:            context.Background(),
	}
}

// CleanUp cleans up resources after test
func (ts *TestSetup) CleanUp() {
	sqlDB, err := ts.DB.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

func strPtr(s string) *string { return &s }

func TestListingService_Edit_OwnershipDecidesBeforeClosedStatus(t *testing.T) {
	ts := NewTestSetup(t)
	defer ts.CleanUp()

	owner := models.Viewer{ID: "U1", Username: "owner"}
	moderator := models.Viewer{ID: "U2", Username: "mod", IsOwner: true}
	stranger := models.Viewer{ID: "U3", Username: "stranger"}

	closed, err := ts.ListingService.Create(ts.ctx, owner, types.CreateListingRequest{
		Title:       "Desk lamp",
		Description: "Warm white",
		Price:       "15",
		Type:        models.ListingTypeSell,
	})
	require.NoError(t, err)
	closed.Status = models.ListingStatusClosed
	require.NoError(t, ts.ListingRepo.Save(ts.ctx, closed))

	edit := types.EditListingRequest{Title: strPtr("Desk lamp, warm white")}

	// A viewer with no claim on the listing is rejected outright; only an
	// otherwise-entitled viewer learns the listing is closed.
	_, err = ts.ListingService.Edit(ts.ctx, stranger, closed.ID, edit)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = ts.ListingService.Edit(ts.ctx, models.Viewer{}, closed.ID, edit)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = ts.ListingService.Edit(ts.ctx, owner, closed.ID, edit)
	assert.ErrorIs(t, err, ErrListingClosed)

	_, err = ts.ListingService.Edit(ts.ctx, moderator, closed.ID, edit)
	assert.ErrorIs(t, err, ErrListingClosed)
}

func TestListingService_Edit_RecordsChanges(t *testing.T) {
	ts := NewTestSetup(t)
	defer ts.CleanUp()

	owner := models.Viewer{ID: "U1", Username: "owner"}
	stranger := models.Viewer{ID: "U3", Username: "stranger"}

	listing, err := ts.ListingService.Create(ts.ctx, owner, types.CreateListingRequest{
		Title:       "Desk lamp",
		Description: "Warm white",
		Price:       "15",
		Type:        models.ListingTypeSell,
	})
	require.NoError(t, err)

	_, err = ts.ListingService.Edit(ts.ctx, stranger, listing.ID, types.EditListingRequest{
		Title: strPtr("Hijacked"),
	})
	assert.ErrorIs(t, err, ErrForbidden)

	edited, err := ts.ListingService.Edit(ts.ctx, owner, listing.ID, types.EditListingRequest{
		Price: strPtr("12"),
	})
	require.NoError(t, err)
	assert.Equal(t, "12", edited.Price)

	events, err := ts.ListingService.RecentEvents(ts.ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	eventTypes := []models.ListingEventType{events[0].Type, events[1].Type}
	assert.ElementsMatch(t,
		[]models.ListingEventType{models.EventListingCreated, models.EventPriceChanged},
		eventTypes)
}
