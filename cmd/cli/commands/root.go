package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crewline/crewline/pkg/api/v1/client"
	"github.com/crewline/crewline/pkg/api/v1/routes"
)

// flag names
const (
	flagUserID        = "user-id"
	flagServerAddress = "server-address"
)

// environment variable names
const (
	envServerAddress = "CREWLINE_SERVER_ADDRESS"
	envUserID        = "CREWLINE_USER_ID"
)

var (
	// apiClient is the shared API client instance
	apiClient *client.Client
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
	// userID identifies the acting user on every request. Flag parsing sets this.
	userID uint
)

// initClient initializes the API client
func initClient() error {
	var err error
	opts := client.DefaultOptions()
	opts.BaseURL = serverAddress
	opts.UserID = userID

	apiClient, err = client.NewClient(opts)
	return err
}

func init() {
	// Defaults only; PersistentPreRunE applies the env var overrides.
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", routes.DefaultBaseURL, "Address of the Crewline API server (env: CREWLINE_SERVER_ADDRESS)")
	RootCmd.PersistentFlags().UintVarP(&userID, flagUserID, "u", 0, "ID of the acting user (env: CREWLINE_USER_ID)")

	RootCmd.AddCommand(GetProjectsCmd())
	RootCmd.AddCommand(GetTasksCmd())
	RootCmd.AddCommand(GetDashboardCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "crewline",
	Short: "Crewline CLI - A command line interface for the Crewline API",
	Long: `Crewline CLI is a command line tool for managing projects, tasks and
dashboards through the Crewline API.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Flag > Env Var > Default
		if !cmd.Flags().Changed(flagServerAddress) {
			if envAddr := os.Getenv(envServerAddress); envAddr != "" {
				serverAddress = envAddr
			}
		}
		if !cmd.Flags().Changed(flagUserID) {
			if envUser := os.Getenv(envUserID); envUser != "" {
				if _, err := fmt.Sscanf(envUser, "%d", &userID); err != nil {
					return fmt.Errorf("invalid %s value %q: %w", envUserID, envUser, err)
				}
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
