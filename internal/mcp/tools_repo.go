package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-incident-server/internal/github"
)

// CheckAccessArgument defines check_repository_access parameters.
type CheckAccessArgument struct {
	Owner string `json:"owner" jsonschema_description:"Repository owner (user or organization)"`
	Repo  string `json:"repo" jsonschema_description:"Repository name"`
}

// CheckAccessHandler handles the check_repository_access MCP tool.
type CheckAccessHandler struct {
	service *github.Service
}

// NewCheckAccessHandler creates a new access check handler.
func NewCheckAccessHandler(service *github.Service) *CheckAccessHandler {
	return &CheckAccessHandler{service: service}
}

// Handle verifies that the configured credential can reach a repository.
func (h *CheckAccessHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args CheckAccessArgument) (*mcp.CallToolResult, any, error) {
	if msg := validateRepoArgs(args.Owner, args.Repo); msg != "" {
		return errorResult("%s", msg), nil, nil
	}

	result, err := h.service.CheckAccess(ctx, args.Owner, args.Repo)
	if err != nil {
		return errorResult("Access check failed: %s", err), nil, nil
	}
	return jsonResult(result), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *CheckAccessHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "check_repository_access",
		Description: "Check whether the configured GitHub credential can access a repository, with a diagnostic reason on failure",
	}
}

// RegisterCheckAccessTool registers the access check tool with an MCP server.
func RegisterCheckAccessTool(server *mcp.Server, service *github.Service) {
	handler := NewCheckAccessHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}

// ScanArgument defines scan_repository_files parameters.
type ScanArgument struct {
	Owner      string   `json:"owner" jsonschema_description:"Repository owner (user or organization)"`
	Repo       string   `json:"repo" jsonschema_description:"Repository name"`
	Path       string   `json:"path,omitempty" jsonschema_description:"Root path to scan; empty scans the whole repository"`
	Extensions []string `json:"extensions,omitempty" jsonschema_description:"File extension allow-list, e.g. [\".md\", \".json\"]; defaults to .json,.md,.txt,.yaml,.yml"`
}

// ScanHandler handles the scan_repository_files MCP tool.
type ScanHandler struct {
	service *github.Service
}

// NewScanHandler creates a new scan handler.
func NewScanHandler(service *github.Service) *ScanHandler {
	return &ScanHandler{service: service}
}

// Handle walks the repository tree and returns the matching files with
// download locators.
func (h *ScanHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ScanArgument) (*mcp.CallToolResult, any, error) {
	if msg := validateRepoArgs(args.Owner, args.Repo); msg != "" {
		return errorResult("%s", msg), nil, nil
	}

	files, err := h.service.Scan(ctx, args.Owner, args.Repo, args.Path, args.Extensions)
	if err != nil {
		return errorResult("Scan failed: %s", err), nil, nil
	}
	return jsonResult(files), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *ScanHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "scan_repository_files",
		Description: "List files in a GitHub repository matching an extension allow-list, each with a raw-content download URL",
	}
}

// RegisterScanTool registers the scan tool with an MCP server.
func RegisterScanTool(server *mcp.Server, service *github.Service) {
	handler := NewScanHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}

// FetchArgument defines fetch_file_content parameters.
type FetchArgument struct {
	URL string `json:"url" jsonschema_description:"File URL; raw repository URLs are fetched through the authenticated API so private repositories work"`
}

// FetchHandler handles the fetch_file_content MCP tool.
type FetchHandler struct {
	service *github.Service
}

// NewFetchHandler creates a new fetch handler.
func NewFetchHandler(service *github.Service) *FetchHandler {
	return &FetchHandler{service: service}
}

// Handle resolves a locator to raw text.
func (h *FetchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args FetchArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.URL) == "" {
		return errorResult("URL cannot be empty"), nil, nil
	}

	content, err := h.service.Fetch(ctx, args.URL)
	if err != nil {
		return errorResult("Fetch failed: %s", err), nil, nil
	}
	return textResult(content), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *FetchHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fetch_file_content",
		Description: "Fetch the raw text content of a file by URL",
	}
}

// RegisterFetchTool registers the fetch tool with an MCP server.
func RegisterFetchTool(server *mcp.Server, service *github.Service) {
	handler := NewFetchHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}

// validateRepoArgs performs the shared owner/repo domain checks. Returns an
// error message, or empty when the arguments are acceptable.
func validateRepoArgs(owner, repo string) string {
	if strings.TrimSpace(owner) == "" {
		return "Owner cannot be empty"
	}
	if strings.TrimSpace(repo) == "" {
		return "Repository cannot be empty"
	}
	if strings.Contains(owner, "/") || strings.Contains(repo, "/") {
		return "Owner and repository must be given separately, not as owner/repo"
	}
	return ""
}
