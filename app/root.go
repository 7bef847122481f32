// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cleardesk",
	Short: "ClearDesk is the clearing platform's access management service",
	Long: `ClearDesk manages organizations, desks and role based access control
for the clearing platform, exposing a JSON API for role administration
and permission guarded resource access.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
