package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Fetch resolves a locator to raw text.
//
// Locators on the configured raw-content host are re-derived to
// (owner, repo, path) and retrieved through the authenticated contents API:
// raw URLs for private repositories are not fetchable anonymously even
// though they look like plain links. The branch segment is intentionally not
// pinned; content is read from the repository's default branch, accepting
// the documented staleness window between scan and fetch.
//
// Any other host is fetched with a plain unauthenticated GET.
func (s *Service) Fetch(ctx context.Context, locator string) (string, error) {
	u, err := url.Parse(locator)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", &FetchError{Locator: locator, Reason: "not a valid URL"}
	}

	if u.Host == s.rawHost {
		return s.fetchRaw(ctx, locator, u)
	}
	return s.fetchExternal(ctx, locator)
}

// fetchRaw handles raw-content locators. The path must carry at least
// owner/repo/branch/path segments; anything shorter fails before any network
// call is attempted.
func (s *Service) fetchRaw(ctx context.Context, locator string, u *url.URL) (string, error) {
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 4 {
		return "", &FetchError{
			Locator: locator,
			Reason:  "raw content URL must have the form {owner}/{repo}/{branch}/{path}",
		}
	}
	owner, repo := segments[0], segments[1]
	filePath := strings.Join(segments[3:], "/")

	file, _, err := s.api.GetContents(ctx, owner, repo, filePath)
	if err != nil {
		return "", &FetchError{Locator: locator, Reason: "content retrieval failed", Err: err}
	}
	if file == nil {
		return "", &FetchError{Locator: locator, Reason: "locator resolves to a directory"}
	}
	return file.Content, nil
}

func (s *Service) fetchExternal(ctx context.Context, locator string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, http.NoBody)
	if err != nil {
		return "", &FetchError{Locator: locator, Reason: "cannot build request", Err: err}
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return "", &FetchError{Locator: locator, Reason: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &FetchError{Locator: locator, Reason: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{Locator: locator, Reason: "reading response body", Err: err}
	}
	return string(body), nil
}
