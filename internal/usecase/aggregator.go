package usecase

import (
	"github.com/naka-gawa/github-pr-stats/internal/domain"
)

// Aggregate tallies pull request records into per-author and per-repository
// counts. Only records whose creation time falls within the window are
// counted; both window bounds are inclusive. The function is pure: the same
// window and records always produce the same report.
func Aggregate(window domain.DateWindow, records []domain.PullRequest) *domain.Report {
	report := domain.NewReport()
	for _, pr := range records {
		if !window.Contains(pr.CreatedAt) {
			continue
		}
		stats, ok := report.Users[pr.Author]
		if !ok {
			stats = &domain.UserStats{}
			report.Users[pr.Author] = stats
		}
		switch pr.State {
		case domain.StateOpen:
			stats.Open++
		case domain.StateMerged:
			stats.Merged++
		default:
			stats.Closed++
		}
		report.Repositories[pr.Repository]++
		report.Total++
	}
	return report
}
