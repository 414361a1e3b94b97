package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sha1n/mcp-incident-server/internal/github"
)

// resultText extracts the single text payload from a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func seededService() (*github.InMem, *github.Service) {
	api := github.NewInMem()
	api.AddRepository("acme", "runbooks", "main")
	api.SetFile("acme", "runbooks", "README.md", "# Runbooks")
	api.SetFile("acme", "runbooks", "incidents/outage.json", `{"severity": "high"}`)
	return api, github.NewService(api, "raw.example.com")
}

func TestCheckAccessHandler(t *testing.T) {
	_, svc := seededService()
	handler := NewCheckAccessHandler(svc)

	result, _, err := handler.Handle(context.Background(), &mcp.CallToolRequest{}, CheckAccessArgument{
		Owner: "acme",
		Repo:  "runbooks",
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var access github.AccessResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &access))
	assert.True(t, access.Accessible)
	assert.Empty(t, access.Reason)
}

func TestCheckAccessHandler_Inaccessible(t *testing.T) {
	_, svc := seededService()
	handler := NewCheckAccessHandler(svc)

	result, _, err := handler.Handle(context.Background(), &mcp.CallToolRequest{}, CheckAccessArgument{
		Owner: "acme",
		Repo:  "missing",
	})
	require.NoError(t, err)

	// An inaccessible repository is a diagnostic result, not a tool error.
	require.False(t, result.IsError)

	var access github.AccessResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &access))
	assert.False(t, access.Accessible)
	assert.NotEmpty(t, access.Reason)
}

func TestCheckAccessHandler_InvalidArguments(t *testing.T) {
	_, svc := seededService()
	handler := NewCheckAccessHandler(svc)

	cases := []CheckAccessArgument{
		{Owner: "", Repo: "runbooks"},
		{Owner: "acme", Repo: ""},
		{Owner: "acme/runbooks", Repo: "runbooks"},
	}
	for _, args := range cases {
		result, _, err := handler.Handle(context.Background(), &mcp.CallToolRequest{}, args)
		require.NoError(t, err)
		assert.True(t, result.IsError, "args=%+v", args)
	}
}

func TestScanHandler(t *testing.T) {
	_, svc := seededService()
	handler := NewScanHandler(svc)

	result, _, err := handler.Handle(context.Background(), &mcp.CallToolRequest{}, ScanArgument{
		Owner: "acme",
		Repo:  "runbooks",
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var files []github.RepositoryFile
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &files))
	require.Len(t, files, 2)
	for _, f := range files {
		assert.NotEmpty(t, f.DownloadURL)
		assert.NotEmpty(t, f.SHA)
	}
}

func TestScanHandler_DeadCredential(t *testing.T) {
	api, svc := seededService()
	api.SetBadCredential(true)
	handler := NewScanHandler(svc)

	result, _, err := handler.Handle(context.Background(), &mcp.CallToolRequest{}, ScanArgument{
		Owner: "acme",
		Repo:  "runbooks",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Scan failed")
}

func TestScanHandler_InvalidArguments(t *testing.T) {
	_, svc := seededService()
	handler := NewScanHandler(svc)

	result, _, err := handler.Handle(context.Background(), &mcp.CallToolRequest{}, ScanArgument{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestFetchHandler_RawLocator(t *testing.T) {
	_, svc := seededService()
	handler := NewFetchHandler(svc)

	result, _, err := handler.Handle(context.Background(), &mcp.CallToolRequest{}, FetchArgument{
		URL: "https://raw.example.com/acme/runbooks/main/README.md",
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Equal(t, "# Runbooks", resultText(t, result))
}

func TestFetchHandler_EmptyURL(t *testing.T) {
	_, svc := seededService()
	handler := NewFetchHandler(svc)

	result, _, err := handler.Handle(context.Background(), &mcp.CallToolRequest{}, FetchArgument{URL: "   "})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestFetchHandler_FetchFailure(t *testing.T) {
	_, svc := seededService()
	handler := NewFetchHandler(svc)

	result, _, err := handler.Handle(context.Background(), &mcp.CallToolRequest{}, FetchArgument{
		URL: "https://raw.example.com/acme/runbooks/main/does-not-exist.md",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Fetch failed")
}

func TestValidateRepoArgs(t *testing.T) {
	assert.Empty(t, validateRepoArgs("acme", "runbooks"))
	assert.NotEmpty(t, validateRepoArgs("", "runbooks"))
	assert.NotEmpty(t, validateRepoArgs("acme", " "))
	assert.NotEmpty(t, validateRepoArgs("acme/runbooks", "runbooks"))
	assert.NotEmpty(t, validateRepoArgs("acme", "group/runbooks"))
}
