package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"shopkeeper/internal/db/models"
)

func strPtr(s string) *string {
	return &s
}

func TestCreateListingRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		request CreateListingRequest
		wantErr bool
	}{
		{
			name: "valid sell listing",
			request: CreateListingRequest{
				Title: "Desk lamp",
				Price: "15",
				Type:  models.ListingTypeSell,
			},
			wantErr: false,
		},
		{
			name: "valid buy listing with only a title",
			request: CreateListingRequest{
				Title: "Looking for a desk lamp",
				Type:  models.ListingTypeBuy,
			},
			wantErr: false,
		},
		{
			name:    "missing title",
			request: CreateListingRequest{Type: models.ListingTypeSell},
			wantErr: true,
		},
		{
			name: "title too long",
			request: CreateListingRequest{
				Title: strings.Repeat("x", maxTitleLength+1),
			},
			wantErr: true,
		},
		{
			name: "description too long",
			request: CreateListingRequest{
				Title:       "Desk lamp",
				Description: strings.Repeat("x", maxDescriptionLength+1),
			},
			wantErr: true,
		},
		{
			name: "price too long",
			request: CreateListingRequest{
				Title: "Desk lamp",
				Price: strings.Repeat("9", maxPriceLength+1),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEditListingRequestValidate(t *testing.T) {
	status := models.ListingStatusPending

	tests := []struct {
		name    string
		request EditListingRequest
		wantErr bool
	}{
		{
			name:    "empty edit is rejected",
			request: EditListingRequest{},
			wantErr: true,
		},
		{
			name:    "title only",
			request: EditListingRequest{Title: strPtr("New title")},
			wantErr: false,
		},
		{
			name:    "status only",
			request: EditListingRequest{Status: &status},
			wantErr: false,
		},
		{
			name:    "clearing the price is allowed",
			request: EditListingRequest{Price: strPtr("")},
			wantErr: false,
		},
		{
			name:    "clearing the title is not",
			request: EditListingRequest{Title: strPtr("")},
			wantErr: true,
		},
		{
			name:    "title too long",
			request: EditListingRequest{Title: strPtr(strings.Repeat("x", maxTitleLength+1))},
			wantErr: true,
		},
		{
			name:    "description too long",
			request: EditListingRequest{Description: strPtr(strings.Repeat("x", maxDescriptionLength+1))},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
