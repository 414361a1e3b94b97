package github

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates the hosting API rejected the credential.
	ErrUnauthorized = errors.New("credential rejected by hosting API")

	// ErrNotFound indicates the hosting API returned a not-found response.
	// Note: for private repositories this is indistinguishable from
	// "no access" at the transport level; CheckAccess disambiguates.
	ErrNotFound = errors.New("not found")
)

// AuthError indicates the configured credential itself is dead or missing.
// It is fatal to the invocation and never retried.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// AccessError indicates the credential is valid but the repository or path
// is unreachable. Reason carries a human-readable diagnosis of the cause.
type AccessError struct {
	Owner  string
	Repo   string
	Reason string
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("cannot access %s/%s: %s", e.Owner, e.Repo, e.Reason)
}

// FetchError indicates content retrieval failed: a malformed locator, a
// non-success transport response, or an undecodable payload.
type FetchError struct {
	Locator string
	Reason  string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.Locator, e.Reason, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.Locator, e.Reason)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
