// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/naka-gawa/github-pr-stats/internal/config"
	"github.com/naka-gawa/github-pr-stats/internal/domain"
	"github.com/naka-gawa/github-pr-stats/internal/gateway"
	"github.com/naka-gawa/github-pr-stats/internal/report"
	"github.com/naka-gawa/github-pr-stats/internal/usecase"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

var statsCmd = &cobra.Command{
	Use:   "stats [organization]",
	Short: "Aggregates pull request statistics for an organization",
	Long: `Aggregates pull request counts per author and per repository across all
repositories of the organization, filtered to PRs created within the date
window, and prints the result as a stats table. Optionally writes a Slack
message payload file for a separate posting step.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := config.Load()

		// The quiet flag silences per-repository progress on stderr.
		quiet, _ := cmd.InheritedFlags().GetBool("quiet")
		logger := log.New(os.Stderr, "", log.LstdFlags)
		if quiet {
			logger.SetOutput(io.Discard)
		}

		org := cfg.DefaultOrg
		if len(args) > 0 {
			org = args[0]
		}
		if org == "" {
			fmt.Fprintln(os.Stderr, "Error: no organization given and DEFAULT_ORG is not set.")
			os.Exit(1)
		}
		if cfg.Token == "" {
			fmt.Fprintln(os.Stderr, "Error: GITHUB_TOKEN environment variable is not set.")
			os.Exit(1)
		}

		window, err := buildWindow(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		concurrency, _ := cmd.Flags().GetInt("concurrency")
		leadTime, _ := cmd.Flags().GetBool("lead-time")
		payloadPath, _ := cmd.Flags().GetString("slack-payload")
		channel, _ := cmd.Flags().GetString("channel")
		if channel == "" {
			channel = cfg.SlackChannel
		}

		// Inject dependencies and run the pipeline.
		githubGateway, err := gateway.NewGitHubGateway(cfg.Token, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		collector := usecase.NewCollector(githubGateway, logger, concurrency)

		records, err := collector.Collect(ctx, org, window)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to collect pull requests: %v\n", err)
			os.Exit(1)
		}
		aggregate := usecase.Aggregate(window, records)
		text := report.FormatText(aggregate)

		if leadTime {
			summaries, err := collector.LeadTimes(ctx, org, window)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to fetch review lead times: %v\n", err)
				os.Exit(1)
			}
			text += report.FormatLeadTimes(summaries)
		}

		fmt.Print(text)

		if payloadPath != "" {
			payload := report.BuildSlackPayload(text, window.String(), channel)
			if err := report.WriteSlackPayload(payloadPath, payload); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to write Slack payload: %v\n", err)
				os.Exit(1)
			}
			logger.Printf("Slack payload written to %s.", payloadPath)
		}
	},
}

// buildWindow derives the date window from the flags: either an explicit
// --start-date/--end-date pair or a trailing --days span ending now.
func buildWindow(cmd *cobra.Command) (domain.DateWindow, error) {
	startStr, _ := cmd.Flags().GetString("start-date")
	endStr, _ := cmd.Flags().GetString("end-date")
	days, _ := cmd.Flags().GetInt("days")

	if endStr != "" && startStr == "" {
		return domain.DateWindow{}, fmt.Errorf("--end-date requires --start-date")
	}
	if startStr == "" {
		return domain.LastDays(days, time.Now()), nil
	}

	start, err := time.ParseInLocation(dateLayout, startStr, time.UTC)
	if err != nil {
		return domain.DateWindow{}, fmt.Errorf("invalid --start-date, use YYYY-MM-DD: %w", err)
	}
	end := time.Now().UTC()
	if endStr != "" {
		endDay, err := time.ParseInLocation(dateLayout, endStr, time.UTC)
		if err != nil {
			return domain.DateWindow{}, fmt.Errorf("invalid --end-date, use YYYY-MM-DD: %w", err)
		}
		// Inclusive end date: extend to the last second of the day.
		end = endDay.AddDate(0, 0, 1).Add(-time.Second)
	}
	return domain.NewDateWindow(start, end)
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().IntP("days", "d", 90, "Aggregate PRs created in the last N days")
	statsCmd.Flags().String("start-date", "", "Window start date (YYYY-MM-DD), overrides --days")
	statsCmd.Flags().String("end-date", "", "Window end date (YYYY-MM-DD), inclusive, defaults to today")
	statsCmd.Flags().Int("concurrency", 1, "Number of repositories to fetch at once")
	statsCmd.Flags().Bool("lead-time", false, "Include review lead time summary per repository")
	statsCmd.Flags().String("slack-payload", "", "Write a Slack message payload JSON to this file")
	statsCmd.Flags().String("channel", "", "Slack channel for the payload (defaults to SLACK_CHANNEL)")
}
