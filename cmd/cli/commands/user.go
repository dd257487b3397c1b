package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// GetWhoamiCmd returns the whoami command
func GetWhoamiCmd() *cobra.Command {
	return whoamiCmd
}

// GetIssueCountCmd returns the issue-count command
func GetIssueCountCmd() *cobra.Command {
	return issueCountCmd
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the viewer behind the current session token",
	RunE: func(_ *cobra.Command, _ []string) error {
		viewer, err := apiClient.GetCurrentUser(context.Background())
		if err != nil {
			return fmt.Errorf("error getting current user: %w", err)
		}

		return printJSON(viewer)
	},
}

var issueCountCmd = &cobra.Command{
	Use:   "issue-count",
	Short: "Show how many of your open listings have issues",
	RunE: func(_ *cobra.Command, _ []string) error {
		count, err := apiClient.GetIssueCount(context.Background())
		if err != nil {
			return fmt.Errorf("error getting issue count: %w", err)
		}

		return printJSON(count)
	},
}
