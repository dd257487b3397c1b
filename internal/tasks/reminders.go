// Package tasks holds the periodic background jobs of the service.
package tasks

import (
	"context"
	"time"

	"shopkeeper/internal/db/repos"
	"shopkeeper/internal/logger"
	"shopkeeper/internal/messaging/nats"
	"shopkeeper/internal/types"
)

const sweepTimeout = time.Minute

// Publisher is the bus reminder notices are published on
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// ReminderSweep periodically nudges owners about listings with outstanding
// issues. The sweep only counts and publishes; the Discord bridge turns the
// notices into DMs.
type ReminderSweep struct {
	repo      *repos.ListingRepository
	publisher Publisher
}

// NewReminderSweep creates a new reminder sweep
func NewReminderSweep(repo *repos.ListingRepository, publisher Publisher) *ReminderSweep {
	return &ReminderSweep{repo: repo, publisher: publisher}
}

// Run executes one sweep. It satisfies cron's job signature.
func (s *ReminderSweep) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	listings, err := s.repo.ListWithIssues(ctx)
	if err != nil {
		logger.Errorf("Reminder sweep failed to list listings with issues: %v", err)
		return
	}

	counts := make(map[string]int)
	for _, listing := range listings {
		counts[listing.OwnerID]++
	}

	for ownerID, count := range counts {
		notice := types.ReminderNotice{OwnerID: ownerID, ListingCount: count}
		if err := s.publisher.Publish(ctx, nats.SubjectReminders, notice); err != nil {
			logger.Errorf("Failed to publish reminder for owner %s: %v", ownerID, err)
		}
	}

	logger.InfoWithFields("Reminder sweep complete", map[string]interface{}{
		"listings_with_issues": len(listings),
		"owners_notified":      len(counts),
	})
}
