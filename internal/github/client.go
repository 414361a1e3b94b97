// Package github provides repository discovery and content retrieval against
// a GitHub-compatible hosting API. The API surface this package consumes is
// kept behind the narrow API interface so that tests can substitute an
// in-memory fake and deployments can point at a mock server.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gogithub "github.com/google/go-github/v75/github"
	"golang.org/x/oauth2"
)

const defaultAPIURL = "https://api.github.com"

// Entry kind values used in TreeEntry.Kind.
const (
	KindFile      = "file"
	KindDirectory = "dir"
)

// Repository is the subset of repository metadata this package needs.
type Repository struct {
	Owner         string
	Name          string
	DefaultBranch string
	Private       bool
}

// TreeEntry is a single node of a repository tree listing. Entries are
// transient: files are emitted to callers, directories are expanded.
type TreeEntry struct {
	Path string `json:"path"`
	SHA  string `json:"sha"`
	Size int64  `json:"size"`
	Kind string `json:"kind"`
}

// FileContent is a file retrieved through the contents API, with the
// transport base64 encoding already decoded.
type FileContent struct {
	Path    string
	SHA     string
	Size    int64
	Content string
}

// Issue is a created tracking issue.
type Issue struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// RepositoryFile describes a scan match. LastModified is the scan's
// wall-clock time, not the file's true modification time: the tree API does
// not expose per-file timestamps.
type RepositoryFile struct {
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	SHA          string    `json:"sha"`
	DownloadURL  string    `json:"download_url,omitempty"`
}

// API is the hosting API surface consumed by this package. Implementations
// must translate authentication rejections to ErrUnauthorized and not-found
// responses to ErrNotFound (wrapped is fine); all other failures pass
// through untranslated.
type API interface {
	// AuthenticatedUser returns the login of the credential's identity.
	AuthenticatedUser(ctx context.Context) (string, error)

	// GetRepository looks up a single repository.
	GetRepository(ctx context.Context, owner, repo string) (*Repository, error)

	// GetContents retrieves path from the repository's default branch.
	// Exactly one of the returns is populated: file when path names a file,
	// entries when it names a directory.
	GetContents(ctx context.Context, owner, repo, path string) (*FileContent, []TreeEntry, error)

	// GetBranchHead resolves a branch name to its head commit SHA.
	GetBranchHead(ctx context.Context, owner, repo, branch string) (string, error)

	// GetRecursiveTree lists the full tree under the given commit SHA in a
	// single call.
	GetRecursiveTree(ctx context.Context, owner, repo, sha string) ([]TreeEntry, error)

	// CreateIssue opens a tracking issue.
	CreateIssue(ctx context.Context, owner, repo, title, body string, labels []string) (*Issue, error)
}

// NewTokenClient creates a *gogithub.Client authenticated with a personal
// access token. Pass baseURL="" for the real GitHub API, or a custom URL for
// a mock server.
func NewTokenClient(token, baseURL string) *gogithub.Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	c := gogithub.NewClient(httpClient)
	applyBaseURL(c, baseURL)
	return c
}

func applyBaseURL(c *gogithub.Client, baseURL string) {
	if baseURL == "" || baseURL == defaultAPIURL {
		return
	}
	u, err := url.Parse(baseURL + "/")
	if err != nil {
		return
	}
	c.BaseURL = u
}

// Adapter implements API on top of the official go-github client.
type Adapter struct {
	gh *gogithub.Client
}

// NewAdapter wraps an authenticated go-github client.
func NewAdapter(gh *gogithub.Client) *Adapter {
	return &Adapter{gh: gh}
}

// AuthenticatedUser performs the identity lookup backing credential checks.
func (a *Adapter) AuthenticatedUser(ctx context.Context) (string, error) {
	user, _, err := a.gh.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("get authenticated user: %w", classify(err))
	}
	return user.GetLogin(), nil
}

// GetRepository looks up a single repository.
func (a *Adapter) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	r, _, err := a.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("get repository %s/%s: %w", owner, repo, classify(err))
	}
	return &Repository{
		Owner:         owner,
		Name:          repo,
		DefaultBranch: r.GetDefaultBranch(),
		Private:       r.GetPrivate(),
	}, nil
}

// GetContents retrieves a file (decoded from its base64 transport form) or a
// directory listing.
func (a *Adapter) GetContents(ctx context.Context, owner, repo, path string) (*FileContent, []TreeEntry, error) {
	fc, dc, _, err := a.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("get contents %s/%s/%s: %w", owner, repo, path, classify(err))
	}

	if fc != nil {
		content, err := fc.GetContent()
		if err != nil {
			return nil, nil, fmt.Errorf("decode content %s/%s/%s: %w", owner, repo, path, err)
		}
		return &FileContent{
			Path:    fc.GetPath(),
			SHA:     fc.GetSHA(),
			Size:    int64(fc.GetSize()),
			Content: content,
		}, nil, nil
	}

	entries := make([]TreeEntry, 0, len(dc))
	for _, e := range dc {
		kind := KindFile
		if e.GetType() == "dir" {
			kind = KindDirectory
		}
		entries = append(entries, TreeEntry{
			Path: e.GetPath(),
			SHA:  e.GetSHA(),
			Size: int64(e.GetSize()),
			Kind: kind,
		})
	}
	return nil, entries, nil
}

// GetBranchHead resolves the head commit of a branch.
func (a *Adapter) GetBranchHead(ctx context.Context, owner, repo, branch string) (string, error) {
	ref, _, err := a.gh.Git.GetRef(ctx, owner, repo, "refs/heads/"+branch)
	if err != nil {
		return "", fmt.Errorf("get ref %s for %s/%s: %w", branch, owner, repo, classify(err))
	}
	return ref.Object.GetSHA(), nil
}

// GetRecursiveTree lists the complete tree under a commit in one call.
func (a *Adapter) GetRecursiveTree(ctx context.Context, owner, repo, sha string) ([]TreeEntry, error) {
	tree, _, err := a.gh.Git.GetTree(ctx, owner, repo, sha, true)
	if err != nil {
		return nil, fmt.Errorf("get tree %s for %s/%s: %w", sha, owner, repo, classify(err))
	}

	entries := make([]TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		kind := KindFile
		if e.GetType() == "tree" {
			kind = KindDirectory
		}
		entries = append(entries, TreeEntry{
			Path: e.GetPath(),
			SHA:  e.GetSHA(),
			Size: int64(e.GetSize()),
			Kind: kind,
		})
	}
	return entries, nil
}

// CreateIssue opens a tracking issue and returns its number and URL.
func (a *Adapter) CreateIssue(ctx context.Context, owner, repo, title, body string, labels []string) (*Issue, error) {
	req := &gogithub.IssueRequest{
		Title: gogithub.Ptr(title),
		Body:  gogithub.Ptr(body),
	}
	if len(labels) > 0 {
		req.Labels = &labels
	}

	issue, _, err := a.gh.Issues.Create(ctx, owner, repo, req)
	if err != nil {
		return nil, fmt.Errorf("create issue in %s/%s: %w", owner, repo, classify(err))
	}
	return &Issue{Number: issue.GetNumber(), URL: issue.GetHTMLURL()}, nil
}

// classify maps hosting API response codes onto the package sentinels so
// callers can branch with errors.Is. Anything else passes through.
func classify(err error) error {
	var ghErr *gogithub.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusUnauthorized:
			return ErrUnauthorized
		case http.StatusNotFound:
			return ErrNotFound
		}
	}
	return err
}
