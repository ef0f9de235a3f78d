// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "github-pr-stats",
	Short: "A CLI tool to aggregate pull request statistics for a GitHub organization.",
	Long: `github-pr-stats aggregates pull request counts per author and per
repository across all repositories of a GitHub organization over a date
window, and renders the result as a stats table and an optional Slack
message payload.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag to silence progress output, available to all commands.
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress per-repository progress output")
}
