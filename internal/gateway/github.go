// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-pr-stats/internal/domain"
)

// PRLeadTimeData holds the timestamps needed to calculate review lead time
// for a single pull request.
type PRLeadTimeData struct {
	CreatedAt      time.Time
	LastReviewedAt time.Time
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	ListRepositories(ctx context.Context, org string) ([]string, error)
	FetchPullRequests(ctx context.Context, org, repo string, window domain.DateWindow) ([]domain.PullRequest, error)
	FetchReviewLeadTimes(ctx context.Context, org string, window domain.DateWindow) (map[string][]PRLeadTimeData, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// prLeadTimeQuery defines the GraphQL search for closed PRs with their
// review timestamps.
type prLeadTimeQuery struct {
	Search struct {
		PageInfo struct {
			HasNextPage bool
			EndCursor   githubv4.String
		}
		Edges []struct {
			Node struct {
				Typename    string `graphql:"__typename"`
				PullRequest struct {
					Repository struct {
						Name string
					}
					CreatedAt githubv4.DateTime
					Reviews   struct {
						Nodes []struct {
							SubmittedAt githubv4.DateTime
						}
					} `graphql:"reviews(first: 100, states: [COMMENTED, APPROVED, CHANGES_REQUESTED])"`
				} `graphql:"... on PullRequest"`
			}
		}
	} `graphql:"search(query: $query, type: ISSUE, first: 20, after: $cursor)"` // Use a smaller page size for this complex query
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

// ListRepositories returns the names of all repositories in the
// organization, public and private alike.
func (g *GitHubGateway) ListRepositories(ctx context.Context, org string) ([]string, error) {
	g.logger.Printf("Listing repositories for organization %s...", org)
	opts := &github.RepositoryListByOrgOptions{
		Type:        "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var names []string
	for {
		repos, resp, err := g.restClient.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, classifyError(fmt.Sprintf("list repositories for %s", org), err)
		}
		for _, repo := range repos {
			names = append(names, repo.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of repositories...")
	}
	g.logger.Printf("Found %d repositories in %s.", len(names), org)
	return names, nil
}

// FetchPullRequests returns the pull requests of a repository whose
// creation time falls within the window. Listing is sorted newest-first by
// creation date, so pagination stops as soon as a page yields a record
// older than the window start.
func (g *GitHubGateway) FetchPullRequests(ctx context.Context, org, repo string, window domain.DateWindow) ([]domain.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       "all",
		Sort:        "created",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var records []domain.PullRequest
	for {
		prs, resp, err := g.restClient.PullRequests.List(ctx, org, repo, opts)
		if err != nil {
			return nil, classifyError(fmt.Sprintf("list pull requests for %s/%s", org, repo), err)
		}
		pastWindow := false
		for _, pr := range prs {
			createdAt := pr.GetCreatedAt().Time
			if createdAt.Before(window.Start) {
				pastWindow = true
				break
			}
			if !window.Contains(createdAt) {
				continue
			}
			records = append(records, domain.PullRequest{
				ID:         pr.GetID(),
				Number:     pr.GetNumber(),
				Author:     pr.GetUser().GetLogin(),
				Repository: repo,
				CreatedAt:  createdAt,
				State:      prState(pr),
			})
		}
		if pastWindow || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Printf("  Fetching next page of pull requests for %s/%s...", org, repo)
	}
	return records, nil
}

// prState collapses GitHub's open/closed state plus the merged timestamp
// into the report's three-way state.
func prState(pr *github.PullRequest) domain.PRState {
	switch {
	case pr.GetState() == "open":
		return domain.StateOpen
	case pr.MergedAt != nil:
		return domain.StateMerged
	default:
		return domain.StateClosed
	}
}

// FetchReviewLeadTimes fetches creation and last-review timestamps for
// closed pull requests across the organization, keyed by repository name.
func (g *GitHubGateway) FetchReviewLeadTimes(ctx context.Context, org string, window domain.DateWindow) (map[string][]PRLeadTimeData, error) {
	g.logger.Println("Fetching PR lead time data...")
	query := fmt.Sprintf("org:%s is:pr is:closed created:%s", org, window)

	variables := map[string]interface{}{
		"query":  githubv4.String(query),
		"cursor": (*githubv4.String)(nil),
	}

	leadTimesByRepo := make(map[string][]PRLeadTimeData)

	for {
		var q prLeadTimeQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, fmt.Errorf("failed to execute GraphQL query for lead times: %w", err)
		}

		for _, edge := range q.Search.Edges {
			prNode := edge.Node.PullRequest
			if edge.Node.Typename != "PullRequest" || len(prNode.Reviews.Nodes) == 0 {
				continue // Skip if not a PR or has no reviews.
			}

			// Find the latest review timestamp.
			lastReviewedAt := prNode.Reviews.Nodes[0].SubmittedAt.Time
			for _, review := range prNode.Reviews.Nodes[1:] {
				if review.SubmittedAt.After(lastReviewedAt) {
					lastReviewedAt = review.SubmittedAt.Time
				}
			}

			repoName := prNode.Repository.Name
			leadTimesByRepo[repoName] = append(leadTimesByRepo[repoName], PRLeadTimeData{
				CreatedAt:      prNode.CreatedAt.Time,
				LastReviewedAt: lastReviewedAt,
			})
		}

		if !q.Search.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = q.Search.PageInfo.EndCursor
		g.logger.Println("  Fetching next page of PRs for lead time analysis...")
	}
	g.logger.Println("Completed fetching PR lead time data.")
	return leadTimesByRepo, nil
}
