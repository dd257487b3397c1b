package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shopkeeper/pkg/api/v1/client"
	"shopkeeper/pkg/api/v1/routes"
)

// flag names
const (
	flagServerAddress = "server-address"
	flagSessionToken  = "session-token"
)

// environment variable names
const (
	envServerAddress = "SHOPKEEPER_SERVER_ADDRESS"
	envSessionToken  = "SHOPKEEPER_SESSION_TOKEN"
)

var (
	// apiClient is the shared API client instance
	apiClient client.Client
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
	// sessionToken holds the bearer token sent with authenticated requests
	sessionToken string
)

// initClient initializes the API client
func initClient() error {
	opts := client.DefaultOptions()
	opts.BaseURL = serverAddress
	opts.AuthToken = sessionToken

	var err error
	apiClient, err = client.NewClient(opts)
	return err
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", routes.DefaultBaseURL, "Address of the Shopkeeper API server (env: SHOPKEEPER_SERVER_ADDRESS)")
	RootCmd.PersistentFlags().StringVarP(&sessionToken, flagSessionToken, "t", "", "Session token for authenticated requests (env: SHOPKEEPER_SESSION_TOKEN)")

	RootCmd.AddCommand(GetListingsCmd())
	RootCmd.AddCommand(GetWhoamiCmd())
	RootCmd.AddCommand(GetIssueCountCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "shopkeeper",
	Short: "Shopkeeper CLI - A command line interface for the Shopkeeper API",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Flag > env var > default
		if !cmd.Flags().Changed(flagServerAddress) {
			if envAddr := os.Getenv(envServerAddress); envAddr != "" {
				serverAddress = envAddr
			}
		}
		if !cmd.Flags().Changed(flagSessionToken) {
			if envToken := os.Getenv(envSessionToken); envToken != "" {
				sessionToken = envToken
			}
		}

		if serverAddress == "" {
			return fmt.Errorf("server address cannot be empty")
		}
		return initClient()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
