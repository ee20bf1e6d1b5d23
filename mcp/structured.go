package mcp

import (
	"encoding/json"

	"github.com/glasskite/unrealmcp/internal/logging"
)

// attachStructuredContent post-processes a successful tool call. When the tool
// declares an output schema and its first content block is text, the text is
// parsed as JSON and attached as structuredContent. The step is advisory:
// parse failures and missing required fields are logged, never fatal, so
// malformed tool output degrades to plain text instead of failing the call.
func attachStructuredContent(tool Tool, result *CallToolResult) {
	if tool.OutputSchema == nil || result.IsError || len(result.Content) == 0 {
		return
	}
	first := result.Content[0]
	if first.Type != "text" || first.Text == "" {
		return
	}

	var structured map[string]any
	if err := json.Unmarshal([]byte(first.Text), &structured); err != nil {
		logging.Logger().Warn("failed to parse structured content from tool result",
			"tool", tool.Name, "err", err)
		return
	}
	if structured == nil {
		logging.Logger().Warn("tool result text is not a JSON object", "tool", tool.Name)
		return
	}

	for _, field := range tool.OutputSchema.Required {
		if _, ok := structured[field]; !ok {
			logging.Logger().Warn("structuredContent missing required field",
				"tool", tool.Name, "field", field)
		}
	}

	result.StructuredContent = structured
}
