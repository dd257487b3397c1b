package repos

import (
	"gorm.io/gorm"

	"shopkeeper/internal/db/models"
	"shopkeeper/internal/filter"
	"shopkeeper/internal/issues"
)

func listingTitles(listings []models.Listing) []string {
	var titles []string
	for i := range listings {
		titles = append(titles, listings[i].Title)
	}
	return titles
}

func (s *DBRepositoryTestSuite) TestListAppliesDefaultCriteria() {
	ownerID := "owner-defaults"

	open := s.completeSellListing(ownerID)
	open.Title = "Open listing"
	s.createListing(open)

	pending := s.completeSellListing(ownerID)
	pending.Title = "Pending listing"
	pending.Status = models.ListingStatusPending
	s.createListing(pending)

	closed := s.completeSellListing(ownerID)
	closed.Title = "Closed listing"
	closed.Status = models.ListingStatusClosed
	s.createListing(closed)

	hidden := s.completeSellListing(ownerID)
	hidden.Title = "Hidden listing"
	hidden.IsHidden = true
	s.createListing(hidden)

	criteria := filter.Criteria{Owners: []string{ownerID}}
	listings, err := s.repo.List(s.ctx, criteria, filter.StandardDefaults(), nil)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"Open listing", "Pending listing"}, listingTitles(listings))

	// The hidden row comes back only when asked for, the closed one only
	// when the criteria name it.
	criteria.Statuses = []models.ListingStatus{
		models.ListingStatusOpen,
		models.ListingStatusPending,
		models.ListingStatusClosed,
	}
	listings, err = s.repo.List(s.ctx, criteria, filter.StandardDefaults(), &models.ListOptions{IncludeHidden: true})
	s.Require().NoError(err)
	s.ElementsMatch(
		[]string{"Open listing", "Pending listing", "Closed listing", "Hidden listing"},
		listingTitles(listings))
}

func (s *DBRepositoryTestSuite) TestListExplicitEmptySetMatchesNothing() {
	ownerID := "owner-empty-set"
	s.createListing(s.completeSellListing(ownerID))

	criteria := filter.Criteria{
		Statuses: []models.ListingStatus{},
		Owners:   []string{ownerID},
	}
	listings, err := s.repo.List(s.ctx, criteria, filter.StandardDefaults(), nil)
	s.Require().NoError(err)
	s.Empty(listings)

	criteria = filter.Criteria{
		Types:  []models.ListingType{},
		Owners: []string{ownerID},
	}
	listings, err = s.repo.List(s.ctx, criteria, filter.StandardDefaults(), nil)
	s.Require().NoError(err)
	s.Empty(listings)
}

// TestHasIssuesFilterAgreesWithDetect seeds listings across every issue
// permutation and checks the SQL condition selects exactly the rows the Go
// predicates flag.
func (s *DBRepositoryTestSuite) TestHasIssuesFilterAgreesWithDetect() {
	ownerID := "owner-issues"

	seeds := []*models.Listing{}
	add := func(title string, mutate func(l *models.Listing)) {
		l := s.completeSellListing(ownerID)
		l.Title = title
		mutate(l)
		seeds = append(seeds, s.createListing(l))
	}

	add("Complete sell", func(*models.Listing) {})
	add("Sell without images", func(l *models.Listing) { l.Images = nil })
	add("Sell with only a hidden image", func(l *models.Listing) {
		l.Images = []models.ListingImage{{ObjectKey: "images/hidden.png", IsHidden: true}}
	})
	add("Sell without price", func(l *models.Listing) { l.Price = "" })
	add("Sell without description", func(l *models.Listing) { l.Description = "" })
	add("Complete buy", func(l *models.Listing) {
		l.Type = models.ListingTypeBuy
		l.Price = ""
		l.Images = nil
	})
	add("Buy without description", func(l *models.Listing) {
		l.Type = models.ListingTypeBuy
		l.Description = ""
	})
	add("Closed sell missing everything", func(l *models.Listing) {
		l.Status = models.ListingStatusClosed
		l.Description = ""
		l.Price = ""
		l.Images = nil
	})
	add("Pending sell without price", func(l *models.Listing) {
		l.Status = models.ListingStatusPending
		l.Price = ""
	})

	var withIssues, withoutIssues []string
	for _, seed := range seeds {
		if len(issues.Detect(seed)) > 0 {
			withIssues = append(withIssues, seed.Title)
		} else {
			withoutIssues = append(withoutIssues, seed.Title)
		}
	}
	s.Require().Len(withIssues, 6)

	allStatuses := []models.ListingStatus{
		models.ListingStatusOpen,
		models.ListingStatusPending,
		models.ListingStatusClosed,
	}
	hasIssues := true
	criteria := filter.Criteria{
		Statuses:  allStatuses,
		Owners:    []string{ownerID},
		HasIssues: &hasIssues,
	}
	listings, err := s.repo.List(s.ctx, criteria, filter.StandardDefaults(), nil)
	s.Require().NoError(err)
	s.ElementsMatch(withIssues, listingTitles(listings))

	hasIssues = false
	listings, err = s.repo.List(s.ctx, criteria, filter.StandardDefaults(), nil)
	s.Require().NoError(err)
	s.ElementsMatch(withoutIssues, listingTitles(listings))
}

func (s *DBRepositoryTestSuite) TestCountIssuesByOwner() {
	ownerID := "owner-count"
	otherID := "owner-count-other"

	s.createListing(s.completeSellListing(ownerID))

	noPrice := s.completeSellListing(ownerID)
	noPrice.Price = ""
	s.createListing(noPrice)

	noImages := s.completeSellListing(ownerID)
	noImages.Images = nil
	s.createListing(noImages)

	hiddenWithIssue := s.completeSellListing(ownerID)
	hiddenWithIssue.Price = ""
	hiddenWithIssue.IsHidden = true
	s.createListing(hiddenWithIssue)

	otherWithIssue := s.completeSellListing(otherID)
	otherWithIssue.Price = ""
	s.createListing(otherWithIssue)

	count, err := s.repo.CountIssuesByOwner(s.ctx, ownerID)
	s.Require().NoError(err)
	s.Equal(int64(2), count)
}

func (s *DBRepositoryTestSuite) TestListWithIssues() {
	noDescription := s.completeSellListing("owner-sweep")
	noDescription.Title = "Needs a description"
	noDescription.Description = ""
	s.createListing(noDescription)

	hidden := s.completeSellListing("owner-sweep")
	hidden.Description = ""
	hidden.IsHidden = true
	s.createListing(hidden)

	s.createListing(s.completeSellListing("owner-sweep"))

	listings, err := s.repo.ListWithIssues(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Needs a description"}, listingTitles(listings))
}

func (s *DBRepositoryTestSuite) TestHideListing() {
	ownerID := "owner-hide"
	listing := s.createListing(s.completeSellListing(ownerID))

	err := s.repo.Hide(s.ctx, listing.ID)
	s.Require().NoError(err)

	criteria := filter.Criteria{Owners: []string{ownerID}}
	listings, err := s.repo.List(s.ctx, criteria, filter.StandardDefaults(), nil)
	s.Require().NoError(err)
	s.Empty(listings)

	err = s.repo.Hide(s.ctx, listing.ID+1000)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *DBRepositoryTestSuite) TestSaveAndGetByID() {
	listing := s.createListing(s.completeSellListing("owner-save"))

	listing.Title = "Mechanical keyboard (price drop)"
	listing.Price = "60"
	listing.Status = models.ListingStatusPending
	err := s.repo.Save(s.ctx, listing)
	s.Require().NoError(err)

	got, err := s.repo.GetByID(s.ctx, listing.ID)
	s.Require().NoError(err)
	s.Equal("Mechanical keyboard (price drop)", got.Title)
	s.Equal("60", got.Price)
	s.Equal(models.ListingStatusPending, got.Status)
}

func (s *DBRepositoryTestSuite) TestGetByIDPreloadsOnlyVisibleImages() {
	listing := s.completeSellListing("owner-preload")
	listing.Images = append(listing.Images, models.ListingImage{
		ObjectKey: "images/removed.png",
		IsHidden:  true,
	})
	s.createListing(listing)

	got, err := s.repo.GetByID(s.ctx, listing.ID)
	s.Require().NoError(err)
	s.Require().Len(got.Images, 1)
	s.Equal("images/kb.png", got.Images[0].ObjectKey)
}

func (s *DBRepositoryTestSuite) TestHideImage() {
	listing := s.createListing(s.completeSellListing("owner-image"))
	imageID := listing.Images[0].ID

	err := s.imageRepo.Hide(s.ctx, imageID)
	s.Require().NoError(err)

	image, err := s.imageRepo.GetByID(s.ctx, imageID)
	s.Require().NoError(err)
	s.True(image.IsHidden)

	got, err := s.repo.GetByID(s.ctx, listing.ID)
	s.Require().NoError(err)
	s.Empty(got.Images)

	err = s.imageRepo.Hide(s.ctx, imageID+1000)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *DBRepositoryTestSuite) TestListRecentEvents() {
	visible := s.createListing(s.completeSellListing("owner-events"))
	hidden := s.completeSellListing("owner-events")
	hidden.IsHidden = true
	s.createListing(hidden)

	first := &models.ListingEvent{
		ListingID: visible.ID,
		Type:      models.EventListingCreated,
		ToValue:   visible.Title,
	}
	s.Require().NoError(s.eventRepo.Create(s.ctx, first))

	second := &models.ListingEvent{
		ListingID: visible.ID,
		Type:      models.EventPriceChanged,
		FromValue: "80",
		ToValue:   "60",
	}
	s.Require().NoError(s.eventRepo.Create(s.ctx, second))

	onHidden := &models.ListingEvent{
		ListingID: hidden.ID,
		Type:      models.EventListingCreated,
		ToValue:   hidden.Title,
	}
	s.Require().NoError(s.eventRepo.Create(s.ctx, onHidden))

	events, err := s.eventRepo.ListRecent(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	for _, event := range events {
		s.Equal(visible.ID, event.ListingID)
		s.Equal(visible.Title, event.Listing.Title)
	}

	events, err = s.eventRepo.ListRecent(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(events, 1)
}