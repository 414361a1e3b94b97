package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-incident-server/internal/incident"
	"github.com/sha1n/mcp-incident-server/internal/notify"
)

// EmailArgument defines send_incident_email parameters.
type EmailArgument struct {
	Incidents  []incident.Incident `json:"incidents" jsonschema_description:"Incidents to report, as extracted by the caller"`
	Recipients []string            `json:"recipients,omitempty" jsonschema_description:"Recipient addresses; empty uses the configured defaults"`
}

// EmailHandler handles the send_incident_email MCP tool.
type EmailHandler struct {
	mailer *notify.Mailer
}

// NewEmailHandler creates a new email handler.
func NewEmailHandler(mailer *notify.Mailer) *EmailHandler {
	return &EmailHandler{mailer: mailer}
}

// Handle sends a severity-grouped incident digest.
func (h *EmailHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args EmailArgument) (*mcp.CallToolResult, any, error) {
	if len(args.Incidents) == 0 {
		return errorResult("At least one incident is required"), nil, nil
	}

	if err := h.mailer.SendDigest(args.Incidents, args.Recipients); err != nil {
		return jsonResult(notify.EmailResult{Success: false, Error: err.Error()}), nil, nil
	}
	return jsonResult(notify.EmailResult{Success: true}), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *EmailHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "send_incident_email",
		Description: "Email an incident digest, grouped by severity, to a recipient list",
	}
}

// RegisterEmailTool registers the email tool with an MCP server.
func RegisterEmailTool(server *mcp.Server, mailer *notify.Mailer) {
	handler := NewEmailHandler(mailer)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}

// IssueArgument defines create_tracking_issue parameters.
type IssueArgument struct {
	Owner  string   `json:"owner" jsonschema_description:"Repository owner (user or organization)"`
	Repo   string   `json:"repo" jsonschema_description:"Repository name"`
	Title  string   `json:"title" jsonschema_description:"Issue title"`
	Body   string   `json:"body,omitempty" jsonschema_description:"Issue body (markdown)"`
	Labels []string `json:"labels,omitempty" jsonschema_description:"Labels to apply"`
}

// IssueHandler handles the create_tracking_issue MCP tool.
type IssueHandler struct {
	creator *notify.IssueCreator
}

// NewIssueHandler creates a new issue handler.
func NewIssueHandler(creator *notify.IssueCreator) *IssueHandler {
	return &IssueHandler{creator: creator}
}

// Handle opens a tracking issue and returns its number and URL.
func (h *IssueHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args IssueArgument) (*mcp.CallToolResult, any, error) {
	if msg := validateRepoArgs(args.Owner, args.Repo); msg != "" {
		return errorResult("%s", msg), nil, nil
	}

	issue, err := h.creator.Create(ctx, args.Owner, args.Repo, args.Title, args.Body, args.Labels)
	if err != nil {
		return errorResult("Issue creation failed: %s", err), nil, nil
	}
	return jsonResult(issue), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *IssueHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_tracking_issue",
		Description: "Create a tracking issue in a GitHub repository",
	}
}

// RegisterIssueTool registers the issue tool with an MCP server.
func RegisterIssueTool(server *mcp.Server, creator *notify.IssueCreator) {
	handler := NewIssueHandler(creator)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
