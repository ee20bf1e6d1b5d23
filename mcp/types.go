// Package mcp implements a JSON-RPC based Model Context Protocol (MCP) server
// for exposing editor capabilities to LLM-powered applications.
//
// The server side of the protocol lets a host application publish tools
// (callable RPCs with typed schemas), resources and resource templates
// (addressable read-only content), and prompts (parameterized message
// templates) to MCP clients over HTTP.
//
// # Basic Usage
//
// Create a registry, register capabilities, then create a server and mount its
// HTTP handler:
//
//	registry := mcp.NewRegistry()
//	registry.RegisterTool(mcp.Tool{
//	    Name:        "export_asset",
//	    InputSchema: exportAssetSchema,
//	    Call:        exportAsset,
//	})
//
//	server, err := mcp.NewServer(registry, mcp.Implementation{
//	    Name:    "unrealmcp",
//	    Version: "0.1.0",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	handler := mcp.NewHTTPHandler(server)
//	defer handler.Close()
//	http.Handle("/mcp", handler)
//
// # Protocol Details
//
// This implementation supports the following MCP methods:
//   - initialize: Handshake and capability exchange
//   - ping: Connection health check
//   - notifications/initialized: Client ready notification
//   - tools/list, tools/call: Enumerate and execute tools
//   - resources/list, resources/templates/list, resources/read: Read-only content
//   - prompts/list, prompts/get: Parameterized message templates
//
// The pinned protocol version predates streaming; every exchange is a single
// HTTP POST with a JSON body.
package mcp

import (
	"encoding/json"

	"github.com/glasskite/unrealmcp/schema"
)

// ProtocolVersion is the MCP protocol version supported by this server.
const ProtocolVersion = "2024-11-05"

// JSON-RPC 2.0 error codes, plus the MCP-specific extensions the server emits.
const (
	CodeParseError       = -32700
	CodeInvalidRequest   = -32600
	CodeMethodNotFound   = -32601
	CodeInvalidParams    = -32602
	CodeInternalError    = -32603
	CodeResourceNotFound = -32002
	CodeServerError      = -32000
)

// Request represents a JSON-RPC 2.0 request message. Params is kept raw and
// decoded per-method. The ID distinguishes absent, null, string, and number.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      RequestID       `json:"id,omitzero"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitzero"`
}

// Response represents a JSON-RPC 2.0 response message. Either Result or Error
// is set, never both. An absent request ID stays absent in the response; an
// explicit null is echoed as null.
type Response struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      RequestID `json:"id,omitzero"`
	Result  any       `json:"result,omitzero"`
	Error   *Error    `json:"error,omitzero"`
}

// Error represents a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitzero"`
}

// Implementation identifies an MCP server or client implementation.
type Implementation struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolCapabilities describes the server's tool-related capabilities.
type ToolCapabilities struct {
	ListChanged bool `json:"listChanged"`
}

// ResourceCapabilities describes the server's resource-related capabilities.
// Subscriptions require a streaming transport, which this server does not
// provide.
type ResourceCapabilities struct {
	ListChanged bool `json:"listChanged"`
	Subscribe   bool `json:"subscribe"`
}

// PromptCapabilities describes the server's prompt-related capabilities.
type PromptCapabilities struct {
	ListChanged bool `json:"listChanged"`
}

// ServerCapabilities describes what features the server supports.
type ServerCapabilities struct {
	Tools     ToolCapabilities     `json:"tools"`
	Resources ResourceCapabilities `json:"resources"`
	Prompts   PromptCapabilities   `json:"prompts"`
}

// InitializeResult is returned by the initialize method during handshake.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	ServerInfo      Implementation     `json:"serverInfo"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	Instructions    string             `json:"instructions,omitzero"`
}

// ContentBlock is a piece of content in a tool result. Text is used by "text"
// blocks; Data and MimeType by "image" and "audio" blocks.
type ContentBlock struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitzero"`
	Data     string `json:"data,omitzero"`
	MimeType string `json:"mimeType,omitzero"`
}

// TextContent builds a text content block.
func TextContent(text string) ContentBlock {
	return ContentBlock{Type: "text", Text: text}
}

// ResourceContent is one entry in a resources/read result. Exactly one of
// Text or Blob is set, depending on whether the resource is textual.
type ResourceContent struct {
	URI      string `json:"uri"`
	Text     string `json:"text,omitzero"`
	Blob     string `json:"blob,omitzero"`
	MimeType string `json:"mimeType,omitzero"`
}

// ToolHandler executes a tool call. The arguments are the decoded JSON
// "arguments" object. A false return marks an application-level failure: the
// content still flows back to the client with isError set, it is not a
// protocol error.
type ToolHandler func(args map[string]any) ([]ContentBlock, bool)

// Tool is a named, schema-described RPC with a bound handler. Registered once
// at startup and immutable thereafter.
type Tool struct {
	Name         string       `json:"name"`
	Description  string       `json:"description,omitzero"`
	InputSchema  *schema.JSON `json:"inputSchema"`
	OutputSchema *schema.JSON `json:"outputSchema,omitzero"`

	Call ToolHandler `json:"-"`
}

// ResourceHandler loads the contents of a static resource.
type ResourceHandler func(uri string) ([]ResourceContent, bool)

// Resource is a static read-only content source, keyed by its exact URI.
type Resource struct {
	Name        string `json:"name"`
	Description string `json:"description,omitzero"`
	MimeType    string `json:"mimeType,omitzero"`
	URI         string `json:"uri"`

	Read ResourceHandler `json:"-"`
}

// TemplateHandler loads the contents of a templated resource. It receives the
// compiled template and the variable bindings extracted from the concrete URI.
type TemplateHandler func(tmpl *URITemplate, match *Match) ([]ResourceContent, bool)

// ResourceTemplate is a URI-pattern-addressed content source. Templates are
// consulted in registration order; the first pattern that matches a read URI
// wins.
type ResourceTemplate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitzero"`
	MimeType    string `json:"mimeType,omitzero"`
	URITemplate string `json:"uriTemplate"`

	Read TemplateHandler `json:"-"`
}

// PromptArgument describes one parameter of a prompt.
type PromptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description,omitzero"`
	Required    bool   `json:"required"`
}

// PromptContent is the content object of a prompt message.
type PromptContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitzero"`
}

// PromptMessage is one message produced by a prompt handler.
type PromptMessage struct {
	Role    string        `json:"role"`
	Content PromptContent `json:"content"`
}

// UserMessage builds a user-role text message.
func UserMessage(text string) PromptMessage {
	return PromptMessage{Role: "user", Content: PromptContent{Type: "text", Text: text}}
}

// PromptHandler expands a prompt into messages given its decoded arguments.
type PromptHandler func(args map[string]any) []PromptMessage

// Prompt is a named, argument-driven message-template generator.
type Prompt struct {
	Name        string           `json:"name"`
	Title       string           `json:"title,omitzero"`
	Description string           `json:"description,omitzero"`
	Arguments   []PromptArgument `json:"arguments,omitzero"`

	Get PromptHandler `json:"-"`
}

// ListToolsResult is returned by tools/list. NextCursor is always empty: the
// server returns every registration in one page.
type ListToolsResult struct {
	Tools      []Tool `json:"tools"`
	NextCursor string `json:"nextCursor,omitzero"`
}

// CallToolResult is returned by tools/call. IsError reports application-level
// tool failure, distinct from JSON-RPC errors. StructuredContent carries the
// parsed JSON form of the first text block when the tool declares an output
// schema.
type CallToolResult struct {
	Content           []ContentBlock `json:"content"`
	StructuredContent map[string]any `json:"structuredContent,omitzero"`
	IsError           bool           `json:"isError"`
}

// ListResourcesResult is returned by resources/list.
type ListResourcesResult struct {
	Resources  []Resource `json:"resources"`
	NextCursor string     `json:"nextCursor,omitzero"`
}

// ListResourceTemplatesResult is returned by resources/templates/list.
type ListResourceTemplatesResult struct {
	ResourceTemplates []ResourceTemplate `json:"resourceTemplates"`
	NextCursor        string             `json:"nextCursor,omitzero"`
}

// ReadResourceResult is returned by resources/read.
type ReadResourceResult struct {
	Contents []ResourceContent `json:"contents"`
}

// ListPromptsResult is returned by prompts/list.
type ListPromptsResult struct {
	Prompts    []Prompt `json:"prompts"`
	NextCursor string   `json:"nextCursor,omitzero"`
}

// GetPromptResult is returned by prompts/get.
type GetPromptResult struct {
	Description string          `json:"description,omitzero"`
	Messages    []PromptMessage `json:"messages"`
}
