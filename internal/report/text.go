// Package report renders an aggregate into human-readable text and into
// the Slack message payload consumed by the posting step.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/naka-gawa/github-pr-stats/internal/domain"
	"github.com/naka-gawa/github-pr-stats/internal/usecase"
)

// NoActivityMessage is printed when the window holds no pull requests.
const NoActivityMessage = "No pull request statistics found."

// userRow pairs an author with their counts for sorted display.
type userRow struct {
	name  string
	stats domain.UserStats
}

// rankUsers orders authors by merged count descending, ties broken by
// author name for display stability.
func rankUsers(report *domain.Report) []userRow {
	rows := make([]userRow, 0, len(report.Users))
	for name, stats := range report.Users {
		rows = append(rows, userRow{name: name, stats: *stats})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].stats.Merged != rows[j].stats.Merged {
			return rows[i].stats.Merged > rows[j].stats.Merged
		}
		return rows[i].name < rows[j].name
	})
	return rows
}

// FormatText renders the report as a fixed-width table, followed by the
// per-repository breakdown and total. A zero-activity report renders the
// no-activity message alone.
func FormatText(report *domain.Report) string {
	if report == nil || report.Total == 0 {
		return NoActivityMessage + "\n"
	}

	var b strings.Builder
	divider := strings.Repeat("-", 60)

	b.WriteString("Pull Request Statistics per User (sorted by merged PRs):\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "%-20s %-10s %-10s %-10s\n", "Username", "Open", "Merged", "Closed")
	b.WriteString(divider + "\n")
	for _, row := range rankUsers(report) {
		fmt.Fprintf(&b, "%-20s %-10d %-10d %-10d\n", row.name, row.stats.Open, row.stats.Merged, row.stats.Closed)
	}

	b.WriteString("\nPull Requests per Repository:\n")
	repos := make([]string, 0, len(report.Repositories))
	for name := range report.Repositories {
		repos = append(repos, name)
	}
	sort.Strings(repos)
	for _, name := range repos {
		fmt.Fprintf(&b, "  %-30s %d\n", name, report.Repositories[name])
	}

	fmt.Fprintf(&b, "\nTotal pull requests: %d\n", report.Total)
	return b.String()
}

// FormatLeadTimes renders the review lead time summary, one line per
// repository. An empty summary renders nothing.
func FormatLeadTimes(summaries []usecase.RepoLeadTime) string {
	if len(summaries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nReview Lead Time per Repository (creation to last review):\n")
	fmt.Fprintf(&b, "%-30s %-8s %-12s %-12s\n", "Repository", "PRs", "Median (h)", "P90 (h)")
	for _, s := range summaries {
		fmt.Fprintf(&b, "%-30s %-8d %-12.1f %-12.1f\n", s.Repository, s.Count, s.MedianHours, s.P90Hours)
	}
	return b.String()
}
