package unreal

import (
	"github.com/glasskite/unrealmcp/mcp"
	"github.com/glasskite/unrealmcp/project"
	"github.com/glasskite/unrealmcp/schema"
)

type searchBlueprintsResult struct {
	BSuccess   bool                     `json:"bSuccess"`
	Blueprints []project.BlueprintMatch `json:"blueprints"`
	Count      int                      `json:"count"`
	Error      string                   `json:"error,omitzero"`
}

type blueprintMarkdownResult struct {
	BSuccess      bool     `json:"bSuccess"`
	ExportedCount int      `json:"exportedCount"`
	FailedCount   int      `json:"failedCount"`
	ExportedPaths []string `json:"exportedPaths,omitzero"`
	FailedPaths   []string `json:"failedPaths,omitzero"`
	Error         string   `json:"error,omitzero"`
}

// RegisterBlueprintTools registers the Blueprint search and documentation
// tools.
func RegisterBlueprintTools(reg *mcp.Registry, proj *project.Project) error {
	err := reg.RegisterTool(mcp.Tool{
		Name:        "search_blueprints",
		Description: "Search for Blueprint assets by name pattern or parent class. Use 'name' searchType with patterns like 'BP_Player*', 'parent_class' with class names like 'Character', or 'all' to match either.",
		InputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "SearchType", Kind: schema.KindString, Description: "Type of search. 'name' matches the Blueprint name pattern, 'parent_class' matches the class it inherits from, 'all' matches either.", Enum: []string{"name", "parent_class", "all"}},
				{Name: "SearchTerm", Kind: schema.KindString, Description: "The pattern or class name to search for. Name patterns support '*' and '?' wildcards and substring matching."},
				{Name: "PackagePath", Kind: schema.KindString, Description: "Directory to search in. Defaults to '/Game'."},
				{Name: "BRecursive", Kind: schema.KindBoolean, Description: "Whether to search subdirectories. Defaults to true."},
				{Name: "MaxResults", Kind: schema.KindNumber, Description: "Maximum number of results. Defaults to 0 (no limit)."},
				{Name: "Offset", Kind: schema.KindNumber, Description: "Number of results to skip, for paging. Defaults to 0."},
			},
			Required: []string{"SearchType", "SearchTerm"},
		}.Schema(),
		OutputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "BSuccess", Kind: schema.KindBoolean, Description: "Whether the search completed"},
				{Name: "Blueprints", Kind: schema.KindArray, Items: schema.KindObject, Description: "Matching Blueprints with objectPath, assetName, parentClass, and matchedBy"},
				{Name: "Count", Kind: schema.KindNumber, Description: "Number of Blueprints returned"},
				{Name: "Error", Kind: schema.KindString, Description: "Error message if bSuccess is false"},
			},
			Required: []string{"BSuccess", "Count"},
		}.Schema(),
		Call: func(args map[string]any) ([]mcp.ContentBlock, bool) {
			matches, err := proj.SearchBlueprints(
				stringArg(args, "searchType"),
				stringArg(args, "searchTerm"),
				stringArg(args, "packagePath"),
				boolArg(args, "bRecursive", true),
				intArg(args, "maxResults", 0),
				intArg(args, "offset", 0),
			)
			if err != nil {
				return failJSON(searchBlueprintsResult{Error: err.Error()})
			}
			if matches == nil {
				matches = []project.BlueprintMatch{}
			}
			return jsonResult(searchBlueprintsResult{BSuccess: true, Blueprints: matches, Count: len(matches)})
		},
	})
	if err != nil {
		return err
	}

	return reg.RegisterTool(mcp.Tool{
		Name:        "export_blueprint_markdown",
		Description: "Export Blueprints as markdown documentation files, one per Blueprint, into an output folder. Each file summarizes the Blueprint's identity, parent class, dependencies, and serialized form. Individual failures do not abort the batch.",
		InputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "BlueprintPaths", Kind: schema.KindArray, Items: schema.KindString, Description: "Object paths of the Blueprints to export. Example: ['/Game/Blueprints/BP_Player.BP_Player']."},
				{Name: "OutputFolder", Kind: schema.KindString, Description: "Folder where markdown files will be written, relative to the project root."},
			},
		}.Schema(),
		OutputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "BSuccess", Kind: schema.KindBoolean, Description: "Whether the batch completed (individual Blueprints may still have failed)"},
				{Name: "ExportedCount", Kind: schema.KindNumber, Description: "Number of Blueprints exported successfully"},
				{Name: "FailedCount", Kind: schema.KindNumber, Description: "Number of Blueprints that failed to export"},
				{Name: "ExportedPaths", Kind: schema.KindArray, Items: schema.KindString, Description: "Markdown file paths that were written"},
				{Name: "FailedPaths", Kind: schema.KindArray, Items: schema.KindString, Description: "Blueprint paths that failed to export"},
				{Name: "Error", Kind: schema.KindString, Description: "Error message if bSuccess is false"},
			},
			Required: []string{"BSuccess", "ExportedCount", "FailedCount"},
		}.Schema(),
		Call: func(args map[string]any) ([]mcp.ContentBlock, bool) {
			result, err := proj.ExportBlueprintMarkdown(stringSliceArg(args, "blueprintPaths"), stringArg(args, "outputFolder"))
			if err != nil {
				return failJSON(blueprintMarkdownResult{Error: err.Error()})
			}
			return jsonResult(blueprintMarkdownResult{
				BSuccess:      true,
				ExportedCount: len(result.ExportedPaths),
				FailedCount:   len(result.FailedPaths),
				ExportedPaths: result.ExportedPaths,
				FailedPaths:   result.FailedPaths,
			})
		},
	})
}
