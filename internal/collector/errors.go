package collector

import (
	"errors"

	"github.com/google/go-github/v84/github"
	"github.com/maxbolgarin/errm"
)

var (
	// ErrNotFoundOrRateLimited is returned when the profile lookup fails.
	ErrNotFoundOrRateLimited = errm.New("GitHub user not found or API rate limit exceeded")

	// ErrFetchFailed is returned when the repository listing fails.
	ErrFetchFailed = errm.New("failed to fetch repository data")

	// ErrCommitFetchFailed is returned when a single repository's commit listing fails.
	ErrCommitFetchFailed = errm.New("failed to fetch commits")
)

// Error ties a failed call to its classification. Both the kind and the
// underlying cause match with errors.Is and errors.As.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// RateLimited reports whether err was caused by a GitHub primary or
// secondary rate limit.
func RateLimited(err error) bool {
	var rle *github.RateLimitError
	if errors.As(err, &rle) {
		return true
	}
	var arle *github.AbuseRateLimitError
	return errors.As(err, &arle)
}

// NotFound reports whether err was caused by a 404 response.
func NotFound(err error) bool {
	var er *github.ErrorResponse
	return errors.As(err, &er) && er.Response != nil && er.Response.StatusCode == 404
}
