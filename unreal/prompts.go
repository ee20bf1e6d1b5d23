package unreal

import (
	"fmt"
	"strings"

	"github.com/glasskite/unrealmcp/mcp"
)

// RegisterPrompts registers the analysis and authoring prompt templates.
func RegisterPrompts(reg *mcp.Registry) error {
	prompts := []mcp.Prompt{
		{
			Name:        "analyze_blueprint",
			Title:       "Analyze Blueprint",
			Description: "Analyze a Blueprint's structure, logic, and dependencies.",
			Arguments: []mcp.PromptArgument{
				{Name: "blueprint_path", Description: "Object path of the Blueprint to analyze", Required: true},
			},
			Get: func(args map[string]any) []mcp.PromptMessage {
				path := stringArg(args, "blueprint_path")
				return []mcp.PromptMessage{mcp.UserMessage(fmt.Sprintf(
					"Analyze the Blueprint at %s. Use export_asset to read its serialized form and get_asset_dependencies to map what it relies on. Summarize its purpose, its event graph logic, its variables and components, and any potential issues you notice.",
					path))}
			},
		},
		{
			Name:        "refactor_blueprint",
			Title:       "Refactor Blueprint",
			Description: "Plan a safe refactoring of a Blueprint, accounting for everything that references it.",
			Arguments: []mcp.PromptArgument{
				{Name: "blueprint_path", Description: "Object path of the Blueprint to refactor", Required: true},
				{Name: "goal", Description: "What the refactoring should achieve", Required: true},
			},
			Get: func(args map[string]any) []mcp.PromptMessage {
				return []mcp.PromptMessage{mcp.UserMessage(fmt.Sprintf(
					"Plan a refactoring of the Blueprint at %s. Goal: %s. First use get_asset_references to find every asset that depends on it, then export_asset to inspect its current state. Propose concrete steps that keep all referencing assets working, and call out any step that risks breaking them.",
					stringArg(args, "blueprint_path"), stringArg(args, "goal")))}
			},
		},
		{
			Name:        "audit_assets",
			Title:       "Audit Assets",
			Description: "Audit a content folder for unused assets, broken dependencies, and naming issues.",
			Arguments: []mcp.PromptArgument{
				{Name: "package_path", Description: "Folder to audit, e.g. /Game/Blueprints", Required: true},
			},
			Get: func(args map[string]any) []mcp.PromptMessage {
				return []mcp.PromptMessage{mcp.UserMessage(fmt.Sprintf(
					"Audit the assets under %s. Use search_assets to enumerate them, then get_asset_references on each to find assets nothing references. Report likely-unused assets, assets with suspiciously heavy dependency trees (use get_asset_dependency_tree), and names that do not follow the project's prefix conventions.",
					stringArg(args, "package_path")))}
			},
		},
		{
			Name:        "create_blueprint",
			Title:       "Create Blueprint",
			Description: "Author a new Blueprint as T3D and import it into the project.",
			Arguments: []mcp.PromptArgument{
				{Name: "name", Description: "Name for the new Blueprint, e.g. BP_Door", Required: true},
				{Name: "parent_class", Description: "Parent class, e.g. Actor or Character", Required: true},
				{Name: "description", Description: "What the Blueprint should do", Required: false},
			},
			Get: func(args map[string]any) []mcp.PromptMessage {
				var b strings.Builder
				fmt.Fprintf(&b, "Create a new Blueprint named %s with parent class %s.", stringArg(args, "name"), stringArg(args, "parent_class"))
				if desc := stringArg(args, "description"); desc != "" {
					fmt.Fprintf(&b, " It should: %s.", desc)
				}
				b.WriteString(" Use export_class_default to inspect the parent class defaults, author the Blueprint's T3D form, and then use import_asset with a t3dFilePath to bring it into the project under /Game.")
				return []mcp.PromptMessage{mcp.UserMessage(b.String())}
			},
		},
		{
			Name:        "analyze_performance",
			Title:       "Analyze Performance",
			Description: "Investigate editor performance using console stats and the log.",
			Arguments: []mcp.PromptArgument{
				{Name: "focus", Description: "Optional area to focus on, e.g. rendering or memory", Required: false},
			},
			Get: func(args map[string]any) []mcp.PromptMessage {
				focus := stringArg(args, "focus")
				if focus == "" {
					focus = "overall frame time"
				}
				return []mcp.PromptMessage{mcp.UserMessage(fmt.Sprintf(
					"Investigate editor performance with a focus on %s. Use execute_console_command to gather stats ('stat fps', 'stat unit', 'stat memory' as appropriate), read recent warnings via get_log_file_path, and summarize the biggest contributors with concrete next steps.",
					focus))}
			},
		},
	}

	for _, p := range prompts {
		if err := reg.RegisterPrompt(p); err != nil {
			return err
		}
	}
	return nil
}
