// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-pr-stats/internal/domain"
	"github.com/naka-gawa/github-pr-stats/internal/gateway"
)

// Collector retrieves the pull requests of every repository in an
// organization over a date window.
type Collector struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
	limit   int
}

// NewCollector creates a new Collector. limit bounds the number of
// repositories fetched at once; values below 1 mean sequential fetching.
func NewCollector(fetcher gateway.Fetcher, logger *log.Logger, limit int) *Collector {
	if limit < 1 {
		limit = 1
	}
	return &Collector{
		fetcher: fetcher,
		logger:  logger,
		limit:   limit,
	}
}

// Collect enumerates the organization's repositories and gathers their
// in-window pull requests. The result is ordered by repository, in listing
// order, regardless of the fetch limit. An organization with no
// repositories yields an empty record set, not an error; any repository
// failure aborts the whole run.
func (c *Collector) Collect(ctx context.Context, org string, window domain.DateWindow) ([]domain.PullRequest, error) {
	repos, err := c.fetcher.ListRepositories(ctx, org)
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		c.logger.Printf("No repositories found in organization %s.", org)
		return []domain.PullRequest{}, nil
	}

	// Each repository writes to its own slot so the merged output stays
	// deterministic even when fetches overlap.
	perRepo := make([][]domain.PullRequest, len(repos))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.limit)
	for i, repo := range repos {
		i, repo := i, repo
		eg.Go(func() error {
			c.logger.Printf("Fetching pull requests for %s/%s...", org, repo)
			records, err := c.fetcher.FetchPullRequests(egCtx, org, repo, window)
			if err != nil {
				return err
			}
			perRepo[i] = records
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var all []domain.PullRequest
	for _, records := range perRepo {
		all = append(all, records...)
	}
	c.logger.Printf("Collected %d pull requests across %d repositories.", len(all), len(repos))
	return all, nil
}

// LeadTimes fetches and summarizes review lead times for the organization.
func (c *Collector) LeadTimes(ctx context.Context, org string, window domain.DateWindow) ([]RepoLeadTime, error) {
	data, err := c.fetcher.FetchReviewLeadTimes(ctx, org, window)
	if err != nil {
		return nil, err
	}
	return SummarizeLeadTimes(data), nil
}
