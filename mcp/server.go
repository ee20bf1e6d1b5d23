package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/glasskite/unrealmcp/internal/logging"
)

// internalErrorFallback is emitted verbatim when an already-built response
// fails to serialize, so the client always receives a well-formed envelope.
const internalErrorFallback = `{"jsonrpc":"2.0","id":null,"error":{"code":-32603,"message":"Internal error - failed to serialize response"}}`

// Option configures a Server.
type Option func(*Server)

// methodHandler processes the decoded request for one protocol method and
// produces either a result value or a protocol-level error.
type methodHandler func(req *Request) (any, *Error)

// Server dispatches JSON-RPC requests to the capability registry. It owns the
// method table, populated once at construction; registries are mutated only
// before the transport starts and cleared only after it stops, so dispatch
// never races registration.
type Server struct {
	registry        *Registry
	info            Implementation
	protocolVersion string
	instructions    string
	methods         map[string]methodHandler
}

// NewServer creates a dispatcher over the given registry.
func NewServer(registry *Registry, info Implementation, opts ...Option) (*Server, error) {
	if registry == nil {
		return nil, fmt.Errorf("new server: registry is required")
	}
	if info.Name == "" {
		return nil, fmt.Errorf("new server: server name is required")
	}
	if info.Version == "" {
		return nil, fmt.Errorf("new server: server version is required")
	}

	server := &Server{
		registry:        registry,
		info:            info,
		protocolVersion: ProtocolVersion,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(server)
		}
	}

	if server.protocolVersion == "" {
		return nil, fmt.Errorf("new server: protocol version is required")
	}

	server.methods = map[string]methodHandler{
		"initialize":                server.handleInitialize,
		"ping":                      server.handlePing,
		"notifications/initialized": server.handleInitialized,
		"tools/list":                server.handleListTools,
		"tools/call":                server.handleCallTool,
		"resources/list":            server.handleListResources,
		"resources/templates/list":  server.handleListResourceTemplates,
		"resources/read":            server.handleReadResource,
		"prompts/list":              server.handleListPrompts,
		"prompts/get":               server.handleGetPrompt,
	}

	return server, nil
}

// WithInstructions sets the instructions string returned from initialize.
func WithInstructions(instructions string) Option {
	return func(server *Server) {
		server.instructions = instructions
	}
}

// WithProtocolVersion overrides the protocol version the server reports.
func WithProtocolVersion(version string) Option {
	return func(server *Server) {
		server.protocolVersion = version
	}
}

// Registry returns the registry the server dispatches against.
func (s *Server) Registry() *Registry { return s.registry }

// HandleRequest processes one raw JSON-RPC request body and returns the
// serialized response. It never returns an empty slice: parse and dispatch
// failures become JSON-RPC error envelopes, and a response that cannot be
// serialized degrades to a hard-coded InternalError payload.
func (s *Server) HandleRequest(body []byte) []byte {
	resp := s.handle(body)

	data, err := json.Marshal(resp)
	if err != nil {
		logging.Logger().Error("failed to serialize response", "err", err)
		return []byte(internalErrorFallback)
	}
	return data
}

func (s *Server) handle(body []byte) *Response {
	req, perr := ParseRequest(body)
	if perr != nil {
		logging.Logger().Error("failed to parse request", "err", perr.Message)
		return &Response{JSONRPC: "2.0", Error: perr}
	}

	resp := &Response{JSONRPC: "2.0", ID: req.ID}

	if req.JSONRPC != "2.0" {
		logging.Logger().Error("invalid JSON-RPC version", "version", req.JSONRPC)
		resp.Error = &Error{Code: CodeInvalidRequest, Message: "Invalid Request - JSON-RPC version must be 2.0"}
		return resp
	}

	handler, ok := s.methods[req.Method]
	if !ok {
		logging.Logger().Warn("unknown method", "method", req.Method)
		resp.Error = &Error{Code: CodeMethodNotFound, Message: "Method not found", Data: req.Method}
		return resp
	}

	result, herr := handler(req)
	if herr != nil {
		logging.Logger().Warn("method failed", "method", req.Method, "code", herr.Code, "err", herr.Message)
		resp.Error = herr
		return resp
	}
	resp.Result = result
	return resp
}

// ParseRequest deserializes a JSON-RPC request body. A body that is not valid
// JSON, or that lacks the protocol tag or method, fails with ParseError. The
// id field is captured verbatim: an explicit null is distinguished from an
// absent field.
func ParseRequest(body []byte) (*Request, *Error) {
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &Error{Code: CodeParseError, Message: "Failed to parse request JSON", Data: err.Error()}
	}
	if req.JSONRPC == "" || req.Method == "" {
		return nil, &Error{Code: CodeParseError, Message: "Failed to parse request JSON", Data: "missing 'jsonrpc' or 'method'"}
	}
	return &req, nil
}

// ParseResponse deserializes a JSON-RPC response body, preserving the id
// variant. Used by the proxy and by round-trip tests.
func ParseResponse(body []byte) (*Response, error) {
	var resp struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      RequestID       `json:"id,omitzero"`
		Result  json.RawMessage `json:"result,omitzero"`
		Error   *Error          `json:"error,omitzero"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if resp.JSONRPC == "" {
		return nil, fmt.Errorf("parse response: missing 'jsonrpc'")
	}
	out := &Response{JSONRPC: resp.JSONRPC, ID: resp.ID, Error: resp.Error}
	if len(resp.Result) > 0 {
		out.Result = resp.Result
	}
	return out, nil
}

func (s *Server) handleInitialize(req *Request) (any, *Error) {
	var params struct {
		ProtocolVersion string         `json:"protocolVersion"`
		ClientInfo      Implementation `json:"clientInfo"`
	}
	if len(req.Params) == 0 {
		return nil, &Error{Code: CodeInvalidParams, Message: "Failed to parse 'initialize' params"}
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: "Failed to parse 'initialize' params", Data: err.Error()}
	}

	logging.Logger().Info("client initializing",
		"client", params.ClientInfo.Name, "clientVersion", params.ClientInfo.Version,
		"clientProtocol", params.ProtocolVersion)

	result := InitializeResult{
		ProtocolVersion: s.protocolVersion,
		ServerInfo:      s.info,
		Capabilities:    ServerCapabilities{},
		Instructions:    s.instructions,
	}
	return result, nil
}

func (s *Server) handlePing(req *Request) (any, *Error) {
	return struct{}{}, nil
}

func (s *Server) handleInitialized(req *Request) (any, *Error) {
	logging.Logger().Debug("client reported initialized")
	return struct{}{}, nil
}

// cursorParams covers every list method: a cursor is accepted for protocol
// shape compatibility but ignored, since all results fit in one page.
type cursorParams struct {
	Cursor string `json:"cursor"`
}

func parseCursor(req *Request) *Error {
	if len(req.Params) == 0 {
		return nil
	}
	var params cursorParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return &Error{Code: CodeInvalidParams, Message: "Failed to parse list params", Data: err.Error()}
	}
	return nil
}

func (s *Server) handleListTools(req *Request) (any, *Error) {
	if herr := parseCursor(req); herr != nil {
		return nil, herr
	}
	return ListToolsResult{Tools: s.registry.Tools()}, nil
}

func (s *Server) handleCallTool(req *Request) (any, *Error) {
	var params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return nil, &Error{Code: CodeInvalidParams, Message: "Failed to parse call tool params", Data: err.Error()}
		}
	}

	tool, ok := s.registry.Tool(params.Name)
	if !ok {
		return nil, &Error{Code: CodeInvalidParams, Message: "Unknown tool name", Data: params.Name}
	}
	if tool.Call == nil {
		return nil, &Error{Code: CodeInternalError, Message: "Tool has no bound handler"}
	}

	args := params.Arguments
	if args == nil {
		args = map[string]any{}
	}

	content, ok := tool.Call(args)
	result := CallToolResult{
		Content: content,
		IsError: !ok,
	}
	if result.Content == nil {
		result.Content = []ContentBlock{}
	}

	attachStructuredContent(tool, &result)

	return result, nil
}

func (s *Server) handleListResources(req *Request) (any, *Error) {
	if herr := parseCursor(req); herr != nil {
		return nil, herr
	}
	return ListResourcesResult{Resources: s.registry.Resources()}, nil
}

func (s *Server) handleListResourceTemplates(req *Request) (any, *Error) {
	if herr := parseCursor(req); herr != nil {
		return nil, herr
	}
	return ListResourceTemplatesResult{ResourceTemplates: s.registry.ResourceTemplates()}, nil
}

func (s *Server) handleReadResource(req *Request) (any, *Error) {
	var params struct {
		URI string `json:"uri"`
	}
	if len(req.Params) == 0 {
		return nil, &Error{Code: CodeInvalidParams, Message: "Failed to parse read resource params"}
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: "Failed to parse read resource params", Data: err.Error()}
	}

	// Static resources first: an exact URI hit is cheaper than walking the
	// template list.
	if resource, ok := s.registry.Resource(params.URI); ok {
		contents, ok := resource.Read(params.URI)
		if !ok {
			return nil, &Error{Code: CodeResourceNotFound, Message: "Failed to load resource contents"}
		}
		return ReadResourceResult{Contents: contents}, nil
	}

	if tmpl, match, def, ok := s.registry.FindTemplate(params.URI); ok {
		contents, ok := def.Read(tmpl, match)
		if !ok {
			return nil, &Error{Code: CodeInternalError, Message: "Failed to load resource contents"}
		}
		return ReadResourceResult{Contents: contents}, nil
	}

	return nil, &Error{Code: CodeResourceNotFound, Message: "Resource not found", Data: params.URI}
}

func (s *Server) handleListPrompts(req *Request) (any, *Error) {
	if herr := parseCursor(req); herr != nil {
		return nil, herr
	}
	return ListPromptsResult{Prompts: s.registry.Prompts()}, nil
}

func (s *Server) handleGetPrompt(req *Request) (any, *Error) {
	var params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if len(req.Params) == 0 {
		return nil, &Error{Code: CodeInvalidParams, Message: "Failed to parse get prompt params"}
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: "Failed to parse get prompt params", Data: err.Error()}
	}
	if params.Name == "" {
		return nil, &Error{Code: CodeInvalidParams, Message: "Missing required parameter: name"}
	}

	prompt, ok := s.registry.Prompt(params.Name)
	if !ok {
		return nil, &Error{Code: CodeInvalidParams, Message: fmt.Sprintf("Prompt not found: %s", params.Name)}
	}
	if prompt.Get == nil {
		return nil, &Error{Code: CodeInternalError, Message: "Prompt has no bound handler"}
	}

	args := params.Arguments
	if args == nil {
		args = map[string]any{}
	}

	messages := prompt.Get(args)
	if messages == nil {
		messages = []PromptMessage{}
	}

	return GetPromptResult{
		Description: prompt.Description,
		Messages:    messages,
	}, nil
}
