// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// PRState is the lifecycle state of a pull request as the report counts it.
type PRState string

const (
	StateOpen   PRState = "open"
	StateMerged PRState = "merged"
	StateClosed PRState = "closed"
)

// PullRequest is a single pull request record fetched from the hosting
// platform. It is immutable once created by the gateway.
type PullRequest struct {
	ID         int64     `json:"id"`
	Number     int       `json:"number"`
	Author     string    `json:"author"`
	Repository string    `json:"repository"`
	CreatedAt  time.Time `json:"created_at"`
	State      PRState   `json:"state"`
}

// UserStats holds the pull request counts for a single author.
type UserStats struct {
	Open   int `json:"open"`
	Merged int `json:"merged"`
	Closed int `json:"closed"`
}

// Total returns the number of pull requests counted for the author.
func (s UserStats) Total() int {
	return s.Open + s.Merged + s.Closed
}

// Report is the aggregate of one run: pull request counts per author and
// per repository over a date window. It is built once and never mutated
// after construction.
type Report struct {
	Users        map[string]*UserStats `json:"users"`
	Repositories map[string]int        `json:"repositories"`
	Total        int                   `json:"total"`
}

// NewReport returns an empty report with initialized maps.
func NewReport() *Report {
	return &Report{
		Users:        make(map[string]*UserStats),
		Repositories: make(map[string]int),
	}
}
