// Package unreal registers the editor-facing MCP surface: asset, blueprint,
// and common tools plus the project's resources and prompts, all backed by a
// project.Project.
package unreal

import (
	"encoding/json"
	"fmt"

	"github.com/glasskite/unrealmcp/mcp"
)

// stringArg reads an optional string argument, returning "" when absent.
func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

// boolArg reads an optional boolean argument with a fallback default.
func boolArg(args map[string]any, name string, def bool) bool {
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// intArg reads an optional numeric argument with a fallback default. JSON
// numbers decode as float64.
func intArg(args map[string]any, name string, def int) int {
	if v, ok := args[name].(float64); ok {
		return int(v)
	}
	return def
}

// stringSliceArg reads an optional array-of-strings argument. Non-string
// elements are dropped.
func stringSliceArg(args map[string]any, name string) []string {
	raw, ok := args[name].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// jsonResult marshals a result value into a single JSON text block.
func jsonResult(v any) ([]mcp.ContentBlock, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return failText(fmt.Sprintf("encode result: %s", err))
	}
	return []mcp.ContentBlock{mcp.TextContent(string(data))}, true
}

// failJSON reports an application-level failure as a JSON payload so callers
// that declared an output schema still get a parseable result.
func failJSON(v any) ([]mcp.ContentBlock, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return failText(fmt.Sprintf("encode result: %s", err))
	}
	return []mcp.ContentBlock{mcp.TextContent(string(data))}, false
}

// failText reports an application-level failure as plain text.
func failText(msg string) ([]mcp.ContentBlock, bool) {
	return []mcp.ContentBlock{mcp.TextContent(msg)}, false
}
