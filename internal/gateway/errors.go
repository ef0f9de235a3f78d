package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
)

// AuthError indicates the token was missing, invalid, or lacked the scopes
// needed for the request. Always fatal.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("%s: authentication failed: %v", e.Op, e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

// RateLimitError indicates GitHub rejected the request due to primary or
// secondary rate limiting. Fatal in this implementation.
type RateLimitError struct {
	Op  string
	Err error
}

func (e *RateLimitError) Error() string { return fmt.Sprintf("%s: rate limited: %v", e.Op, e.Err) }
func (e *RateLimitError) Unwrap() error { return e.Err }

// NetworkError covers transport failures and any remaining API errors.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// classifyError maps a go-github error onto the gateway's error taxonomy.
func classifyError(op string, err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &RateLimitError{Op: op, Err: err}
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &RateLimitError{Op: op, Err: err}
	}
	var apiErr *github.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		switch apiErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AuthError{Op: op, Err: err}
		case http.StatusTooManyRequests:
			return &RateLimitError{Op: op, Err: err}
		}
	}
	return &NetworkError{Op: op, Err: err}
}
