package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"shopkeeper/internal/db/models"
	"shopkeeper/internal/filter"
	"shopkeeper/internal/types"
)

// Flag names
const (
	flagStatus      = "status"
	flagType        = "type"
	flagOwner       = "owner"
	flagHasIssues   = "has-issues"
	flagLimit       = "limit"
	flagOffset      = "offset"
	flagID          = "id"
	flagTitle       = "title"
	flagDescription = "description"
	flagPrice       = "price"
)

// listingOutput represents the filtered output for a listing
type listingOutput struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Price  string `json:"price,omitempty"`
	Type   string `json:"type"`
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
	Issues int    `json:"issues"`
}

// listingListOutput represents the filtered output for a list of listings
type listingListOutput struct {
	Listings []listingOutput `json:"listings"`
	Total    int             `json:"total"`
}

func toListingOutput(row types.ListingResponse) listingOutput {
	return listingOutput{
		ID:     row.ID,
		Title:  row.Title,
		Price:  row.Price,
		Type:   row.Type.String(),
		Status: row.Status.String(),
		URL:    row.URL,
		Issues: len(row.Issues),
	}
}

func printJSON(v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	fmt.Println(string(prettyJSON))
	return nil
}

// GetListingsCmd returns the listings command group
func GetListingsCmd() *cobra.Command {
	return listingsCmd
}

func init() {
	listingsCmd.AddCommand(listListingsCmd)
	listingsCmd.AddCommand(getListingCmd)
	listingsCmd.AddCommand(createListingCmd)
	listingsCmd.AddCommand(editListingCmd)
	listingsCmd.AddCommand(hideListingCmd)

	// Add flags for list
	listListingsCmd.Flags().StringSlice(flagStatus, nil, "Statuses to include (open, pending, closed); repeatable")
	listListingsCmd.Flags().StringSlice(flagType, nil, "Listing types to include (buy, sell); repeatable")
	listListingsCmd.Flags().StringSlice(flagOwner, nil, "Owner IDs to include; repeatable")
	listListingsCmd.Flags().String(flagHasIssues, "", "Filter by issue presence (true or false)")
	listListingsCmd.Flags().IntP(flagLimit, "l", models.DefaultLimit, "Maximum number of listings to return")
	listListingsCmd.Flags().Int(flagOffset, 0, "Number of listings to skip")

	// Add flags for get
	getListingCmd.Flags().Uint(flagID, 0, "Listing ID")
	if err := getListingCmd.MarkFlagRequired(flagID); err != nil {
		panic(fmt.Errorf("failed to mark id flag as required for get listing command: %w", err))
	}

	// Add flags for create
	createListingCmd.Flags().StringP(flagTitle, "n", "", "Listing title")
	createListingCmd.Flags().StringP(flagDescription, "d", "", "Listing description")
	createListingCmd.Flags().StringP(flagPrice, "p", "", "Asking or offered price")
	createListingCmd.Flags().String(flagType, "", "Listing type (buy or sell)")
	if err := createListingCmd.MarkFlagRequired(flagTitle); err != nil {
		panic(fmt.Errorf("failed to mark title flag as required for create listing command: %w", err))
	}
	if err := createListingCmd.MarkFlagRequired(flagType); err != nil {
		panic(fmt.Errorf("failed to mark type flag as required for create listing command: %w", err))
	}

	// Add flags for edit
	editListingCmd.Flags().Uint(flagID, 0, "Listing ID")
	editListingCmd.Flags().StringP(flagTitle, "n", "", "New title")
	editListingCmd.Flags().StringP(flagDescription, "d", "", "New description")
	editListingCmd.Flags().StringP(flagPrice, "p", "", "New price")
	editListingCmd.Flags().String(flagStatus, "", "New status (open, pending, closed)")
	if err := editListingCmd.MarkFlagRequired(flagID); err != nil {
		panic(fmt.Errorf("failed to mark id flag as required for edit listing command: %w", err))
	}

	// Add flags for hide
	hideListingCmd.Flags().Uint(flagID, 0, "Listing ID")
	if err := hideListingCmd.MarkFlagRequired(flagID); err != nil {
		panic(fmt.Errorf("failed to mark id flag as required for hide listing command: %w", err))
	}
}

var listingsCmd = &cobra.Command{
	Use:   "listings",
	Short: "Manage listings",
}

var listListingsCmd = &cobra.Command{
	Use:   "list",
	Short: "List listings matching the filter",
	RunE: func(cmd *cobra.Command, _ []string) error {
		statuses, err := cmd.Flags().GetStringSlice(flagStatus)
		if err != nil {
			return fmt.Errorf("error getting status flag: %w", err)
		}
		listTypes, err := cmd.Flags().GetStringSlice(flagType)
		if err != nil {
			return fmt.Errorf("error getting type flag: %w", err)
		}
		owners, err := cmd.Flags().GetStringSlice(flagOwner)
		if err != nil {
			return fmt.Errorf("error getting owner flag: %w", err)
		}
		hasIssues, err := cmd.Flags().GetString(flagHasIssues)
		if err != nil {
			return fmt.Errorf("error getting has-issues flag: %w", err)
		}
		limit, err := cmd.Flags().GetInt(flagLimit)
		if err != nil {
			return fmt.Errorf("error getting limit flag: %w", err)
		}
		offset, err := cmd.Flags().GetInt(flagOffset)
		if err != nil {
			return fmt.Errorf("error getting offset flag: %w", err)
		}

		// Run the flag values through the same filter parser the server
		// uses, so bad values fail here with the same message.
		query := url.Values{}
		for _, status := range statuses {
			query.Add(filter.KeyStatus, status)
		}
		for _, listType := range listTypes {
			query.Add(filter.KeyType, listType)
		}
		for _, owner := range owners {
			query.Add(filter.KeyOwner, owner)
		}
		if hasIssues != "" {
			query.Add(filter.KeyHasIssues, hasIssues)
		}

		criteria, err := filter.Parse(query)
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}

		opts := &models.ListOptions{Limit: limit, Offset: offset}
		response, err := apiClient.ListListings(context.Background(), criteria, filter.StandardDefaults(), opts)
		if err != nil {
			return fmt.Errorf("error listing listings: %w", err)
		}

		output := listingListOutput{
			Listings: make([]listingOutput, 0, len(response.Rows)),
			Total:    response.Pagination.Total,
		}
		for _, row := range response.Rows {
			output.Listings = append(output.Listings, toListingOutput(row))
		}
		return printJSON(output)
	},
}

var getListingCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific listing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetUint(flagID)
		if err != nil {
			return fmt.Errorf("error getting id flag: %w", err)
		}

		listing, err := apiClient.GetListing(context.Background(), id)
		if err != nil {
			return fmt.Errorf("error getting listing: %w", err)
		}

		return printJSON(listing)
	},
}

var createListingCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new listing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		title, err := cmd.Flags().GetString(flagTitle)
		if err != nil {
			return fmt.Errorf("error getting title flag: %w", err)
		}
		description, err := cmd.Flags().GetString(flagDescription)
		if err != nil {
			return fmt.Errorf("error getting description flag: %w", err)
		}
		price, err := cmd.Flags().GetString(flagPrice)
		if err != nil {
			return fmt.Errorf("error getting price flag: %w", err)
		}
		rawType, err := cmd.Flags().GetString(flagType)
		if err != nil {
			return fmt.Errorf("error getting type flag: %w", err)
		}

		listType, err := models.ParseListingType(rawType)
		if err != nil {
			return err
		}

		req := types.CreateListingRequest{
			Title:       title,
			Description: description,
			Price:       price,
			Type:        listType,
		}
		if err := req.Validate(); err != nil {
			return err
		}

		listing, err := apiClient.CreateListing(context.Background(), req)
		if err != nil {
			return fmt.Errorf("error creating listing: %w", err)
		}

		return printJSON(toListingOutput(listing))
	},
}

var editListingCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a listing you own",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetUint(flagID)
		if err != nil {
			return fmt.Errorf("error getting id flag: %w", err)
		}

		// Only flags the user actually set become part of the edit
		var req types.EditListingRequest
		if cmd.Flags().Changed(flagTitle) {
			title, _ := cmd.Flags().GetString(flagTitle)
			req.Title = &title
		}
		if cmd.Flags().Changed(flagDescription) {
			description, _ := cmd.Flags().GetString(flagDescription)
			req.Description = &description
		}
		if cmd.Flags().Changed(flagPrice) {
			price, _ := cmd.Flags().GetString(flagPrice)
			req.Price = &price
		}
		if cmd.Flags().Changed(flagStatus) {
			rawStatus, _ := cmd.Flags().GetString(flagStatus)
			status, err := models.ParseListingStatus(rawStatus)
			if err != nil {
				return err
			}
			req.Status = &status
		}

		if err := req.Validate(); err != nil {
			return err
		}

		listing, err := apiClient.EditListing(context.Background(), id, req)
		if err != nil {
			return fmt.Errorf("error editing listing: %w", err)
		}

		return printJSON(toListingOutput(listing))
	},
}

var hideListingCmd = &cobra.Command{
	Use:   "hide",
	Short: "Hide a listing (moderators only)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetUint(flagID)
		if err != nil {
			return fmt.Errorf("error getting id flag: %w", err)
		}

		if err := apiClient.HideListing(context.Background(), id); err != nil {
			return fmt.Errorf("error hiding listing: %w", err)
		}

		fmt.Printf("Listing %d hidden\n", id)
		return nil
	},
}
