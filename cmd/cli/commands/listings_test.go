package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shopkeeper/internal/db/models"
	"shopkeeper/internal/issues"
	"shopkeeper/internal/types"
)

func TestToListingOutput(t *testing.T) {
	row := types.ListingResponse{
		Listing: models.Listing{
			Title:  "Camera",
			Price:  "120",
			Type:   models.ListingTypeSell,
			Status: models.ListingStatusPending,
		},
		URL: "https://discord.com/channels/1/2/3",
		Issues: []issues.Issue{
			{Title: "No description"},
		},
	}
	row.ID = 7

	output := toListingOutput(row)
	assert.Equal(t, uint(7), output.ID)
	assert.Equal(t, "Camera", output.Title)
	assert.Equal(t, "120", output.Price)
	assert.Equal(t, "sell", output.Type)
	assert.Equal(t, "pending", output.Status)
	assert.Equal(t, "https://discord.com/channels/1/2/3", output.URL)
	assert.Equal(t, 1, output.Issues)
}

func TestListingCommandsRegistered(t *testing.T) {
	cmd := GetListingsCmd()
	assert.Equal(t, "listings", cmd.Use)

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Use)
	}
	assert.ElementsMatch(t, []string{"list", "get", "create", "edit", "hide"}, names)
}
