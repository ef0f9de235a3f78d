package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/naka-gawa/github-pr-stats/internal/domain"
	"github.com/naka-gawa/github-pr-stats/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) ListRepositories(ctx context.Context, org string) ([]string, error) {
	args := m.Called(ctx, org)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockFetcher) FetchPullRequests(ctx context.Context, org, repo string, window domain.DateWindow) ([]domain.PullRequest, error) {
	args := m.Called(ctx, org, repo, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PullRequest), args.Error(1)
}

func (m *mockFetcher) FetchReviewLeadTimes(ctx context.Context, org string, window domain.DateWindow) (map[string][]gateway.PRLeadTimeData, error) {
	args := m.Called(ctx, org, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]gateway.PRLeadTimeData), args.Error(1)
}

func testWindow(t *testing.T) domain.DateWindow {
	t.Helper()
	return mustWindow(t, "2024-01-01T00:00:00Z", "2024-03-31T23:59:59Z")
}

func TestCollector_Collect(t *testing.T) {
	prA := pr("alice", "repo-a", "2024-01-10T12:00:00Z", domain.StateMerged)
	prB := pr("bob", "repo-b", "2024-02-10T12:00:00Z", domain.StateOpen)

	testCases := []struct {
		name        string
		concurrency int
		repos       []string
		reposErr    error
		perRepo     map[string][]domain.PullRequest
		perRepoErr  map[string]error
		expected    []domain.PullRequest
		expectError bool
	}{
		{
			name:        "happy path - records concatenated in repository order",
			concurrency: 1,
			repos:       []string{"repo-a", "repo-b"},
			perRepo: map[string][]domain.PullRequest{
				"repo-a": {prA},
				"repo-b": {prB},
			},
			expected: []domain.PullRequest{prA, prB},
		},
		{
			name:        "concurrent fetch preserves repository order",
			concurrency: 4,
			repos:       []string{"repo-a", "repo-b"},
			perRepo: map[string][]domain.PullRequest{
				"repo-a": {prA},
				"repo-b": {prB},
			},
			expected: []domain.PullRequest{prA, prB},
		},
		{
			name:        "empty organization yields empty record set, not an error",
			concurrency: 1,
			repos:       []string{},
			expected:    []domain.PullRequest{},
		},
		{
			name:        "repository listing failure aborts the run",
			concurrency: 1,
			reposErr:    errors.New("github api error"),
			expectError: true,
		},
		{
			name:        "single repository failure aborts the whole run",
			concurrency: 1,
			repos:       []string{"repo-a", "repo-b"},
			perRepo: map[string][]domain.PullRequest{
				"repo-a": {prA},
			},
			perRepoErr:  map[string]error{"repo-b": errors.New("github api error")},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			window := testWindow(t)
			logger := log.New(io.Discard, "", 0)
			fetcher := new(mockFetcher)

			if tc.reposErr != nil {
				fetcher.On("ListRepositories", mock.Anything, "any-org").Return(nil, tc.reposErr)
			} else {
				fetcher.On("ListRepositories", mock.Anything, "any-org").Return(tc.repos, nil)
			}
			for _, repo := range tc.repos {
				if err, ok := tc.perRepoErr[repo]; ok {
					fetcher.On("FetchPullRequests", mock.Anything, "any-org", repo, window).Return(nil, err)
					continue
				}
				fetcher.On("FetchPullRequests", mock.Anything, "any-org", repo, window).Return(tc.perRepo[repo], nil)
			}

			collector := NewCollector(fetcher, logger, tc.concurrency)
			records, err := collector.Collect(ctx, "any-org", window)

			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, records)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, records)
			}
		})
	}
}

func TestCollector_LeadTimes(t *testing.T) {
	ctx := context.Background()
	window := testWindow(t)
	logger := log.New(io.Discard, "", 0)
	fetcher := new(mockFetcher)

	created := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	fetcher.On("FetchReviewLeadTimes", mock.Anything, "any-org", window).Return(map[string][]gateway.PRLeadTimeData{
		"repo-a": {
			{CreatedAt: created, LastReviewedAt: created.Add(2 * time.Hour)},
			{CreatedAt: created, LastReviewedAt: created.Add(4 * time.Hour)},
		},
	}, nil)

	collector := NewCollector(fetcher, logger, 1)
	summaries, err := collector.LeadTimes(ctx, "any-org", window)

	assert.NoError(t, err)
	assert.Equal(t, []RepoLeadTime{
		{Repository: "repo-a", Count: 2, MedianHours: 3, P90Hours: 4},
	}, summaries)
}
