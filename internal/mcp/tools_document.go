package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-incident-server/internal/document"
	"github.com/sha1n/mcp-incident-server/internal/incident"
)

// ParseArgument defines parse_document parameters.
type ParseArgument struct {
	Content  string `json:"content" jsonschema_description:"Raw document text to parse"`
	Format   string `json:"format,omitempty" jsonschema_description:"Explicit format: json, markdown, yaml or text; 'auto' or empty detects from path and content"`
	FilePath string `json:"file_path,omitempty" jsonschema_description:"Original file path, used as a format hint"`
}

// ParseHandler handles the parse_document MCP tool.
type ParseHandler struct{}

// NewParseHandler creates a new parse handler.
func NewParseHandler() *ParseHandler {
	return &ParseHandler{}
}

// Handle detects the document format and decodes the content.
func (h *ParseHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ParseArgument) (*mcp.CallToolResult, any, error) {
	if args.Content == "" {
		return errorResult("Content cannot be empty"), nil, nil
	}

	format := document.Detect(args.Content, args.FilePath, document.Format(strings.ToLower(args.Format)))
	parsed, err := document.Decode(args.Content, format)
	if err != nil {
		return errorResult("Parse failed: %s", err), nil, nil
	}
	return jsonResult(parsed), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *ParseHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "parse_document",
		Description: "Parse a document as json, markdown (with frontmatter metadata), yaml or text, with automatic format detection",
	}
}

// RegisterParseTool registers the parse tool with an MCP server.
func RegisterParseTool(server *mcp.Server) {
	handler := NewParseHandler()
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}

// ExtractArgument defines extract_incident_data parameters.
type ExtractArgument struct {
	Content string `json:"content" jsonschema_description:"Document text the caller intends to extract incidents from"`
}

// ExtractHandler handles the extract_incident_data MCP tool.
//
// Extraction is intentionally delegated to the calling agent: this handler
// always returns the empty report template so callers learn the expected
// shape. Changing this to extract server-side would break the documented
// contract.
type ExtractHandler struct{}

// NewExtractHandler creates a new extract handler.
func NewExtractHandler() *ExtractHandler {
	return &ExtractHandler{}
}

// Handle returns the empty incident report template.
func (h *ExtractHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ExtractArgument) (*mcp.CallToolResult, any, error) {
	return jsonResult(incident.EmptyTemplate()), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *ExtractHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "extract_incident_data",
		Description: "Return the incident report template to fill in. Extraction itself is the caller's responsibility; this tool documents the expected structure",
	}
}

// RegisterExtractTool registers the extract tool with an MCP server.
func RegisterExtractTool(server *mcp.Server) {
	handler := NewExtractHandler()
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
