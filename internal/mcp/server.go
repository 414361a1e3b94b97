package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-incident-server/internal/github"
	"github.com/sha1n/mcp-incident-server/internal/notify"
)

// ServerConfig contains configuration for creating an MCP server
type ServerConfig struct {
	Name    string
	Version string

	// Repos serves the repository discovery and retrieval tools.
	Repos *github.Service

	// Mailer serves the email digest tool.
	Mailer *notify.Mailer

	// Issues serves the tracking issue tool.
	Issues *notify.IssueCreator
}

// CreateServer creates and configures the MCP server
func CreateServer(cfg ServerConfig) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	// Document tools have no external dependencies and are always available.
	RegisterParseTool(s)
	RegisterExtractTool(s)

	if cfg.Repos != nil {
		RegisterCheckAccessTool(s, cfg.Repos)
		RegisterScanTool(s, cfg.Repos)
		RegisterFetchTool(s, cfg.Repos)
	}
	if cfg.Mailer != nil {
		RegisterEmailTool(s, cfg.Mailer)
	}
	if cfg.Issues != nil {
		RegisterIssueTool(s, cfg.Issues)
	}

	return s
}
