package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/sha1n/mcp-incident-server/internal/github"
)

// IssueCreator opens tracking issues through the hosting API.
type IssueCreator struct {
	api github.API
}

// NewIssueCreator creates an IssueCreator over the given hosting API.
func NewIssueCreator(api github.API) *IssueCreator {
	return &IssueCreator{api: api}
}

// Create opens a tracking issue in owner/repo and returns its number and URL.
func (c *IssueCreator) Create(ctx context.Context, owner, repo, title, body string, labels []string) (*github.Issue, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("create issue in %s/%s: title cannot be empty", owner, repo)
	}

	issue, err := c.api.CreateIssue(ctx, owner, repo, title, body, labels)
	if err != nil {
		return nil, fmt.Errorf("create tracking issue: %w", err)
	}
	return issue, nil
}
