package usecase

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-pr-stats/internal/gateway"
)

// RepoLeadTime summarizes the time from PR creation to last review for one
// repository.
type RepoLeadTime struct {
	Repository  string  `json:"repository"`
	Count       int     `json:"count"`
	MedianHours float64 `json:"median_hours"`
	P90Hours    float64 `json:"p90_hours"`
}

// SummarizeLeadTimes reduces raw per-PR timestamps into per-repository
// median and 90th-percentile lead times, sorted by repository name for
// consistent output.
func SummarizeLeadTimes(data map[string][]gateway.PRLeadTimeData) []RepoLeadTime {
	summaries := make([]RepoLeadTime, 0, len(data))
	for repo, leadTimes := range data {
		hours := make([]float64, 0, len(leadTimes))
		for _, lt := range leadTimes {
			hours = append(hours, lt.LastReviewedAt.Sub(lt.CreatedAt).Hours())
		}
		median, err := stats.Median(hours)
		if err != nil {
			continue
		}
		p90, err := stats.Percentile(hours, 90)
		if err != nil {
			continue
		}
		summaries = append(summaries, RepoLeadTime{
			Repository:  repo,
			Count:       len(hours),
			MedianHours: median,
			P90Hours:    p90,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Repository < summaries[j].Repository
	})
	return summaries
}
