package unreal

import (
	"github.com/glasskite/unrealmcp/mcp"
	"github.com/glasskite/unrealmcp/project"
	"github.com/glasskite/unrealmcp/schema"
)

type exportAssetResult struct {
	BSuccess   bool   `json:"bSuccess"`
	ObjectPath string `json:"objectPath"`
	Format     string `json:"format,omitzero"`
	Content    string `json:"content,omitzero"`
	Error      string `json:"error,omitzero"`
}

type batchExportResult struct {
	BSuccess      bool     `json:"bSuccess"`
	ExportedCount int      `json:"exportedCount"`
	FailedCount   int      `json:"failedCount"`
	ExportedPaths []string `json:"exportedPaths,omitzero"`
	FailedPaths   []string `json:"failedPaths,omitzero"`
	Error         string   `json:"error,omitzero"`
}

type exportClassDefaultResult struct {
	BSuccess  bool   `json:"bSuccess"`
	ClassPath string `json:"classPath"`
	Format    string `json:"format,omitzero"`
	Content   string `json:"content,omitzero"`
	Error     string `json:"error,omitzero"`
}

type importAssetResult struct {
	BSuccess        bool     `json:"bSuccess"`
	Count           int      `json:"count,omitzero"`
	FilePath        string   `json:"filePath,omitzero"`
	PackagePath     string   `json:"packagePath,omitzero"`
	FactoryClass    string   `json:"factoryClass,omitzero"`
	ImportedObjects []string `json:"importedObjects,omitzero"`
	Error           string   `json:"error,omitzero"`
}

type queryAssetResult struct {
	BExists     bool              `json:"bExists"`
	AssetPath   string            `json:"assetPath"`
	AssetName   string            `json:"assetName,omitzero"`
	PackagePath string            `json:"packagePath,omitzero"`
	ClassPath   string            `json:"classPath,omitzero"`
	ObjectPath  string            `json:"objectPath,omitzero"`
	Tags        map[string]string `json:"tags,omitzero"`
}

type searchAssetsResult struct {
	BSuccess bool                `json:"bSuccess"`
	Assets   []project.AssetInfo `json:"assets"`
	Count    int                 `json:"count"`
	Error    string              `json:"error,omitzero"`
}

type assetEdgesResult struct {
	BSuccess     bool     `json:"bSuccess"`
	AssetPath    string   `json:"assetPath"`
	Dependencies []string `json:"dependencies,omitzero"`
	References   []string `json:"references,omitzero"`
	Count        int      `json:"count"`
	Error        string   `json:"error,omitzero"`
}

type dependencyTreeResult struct {
	BSuccess        bool               `json:"bSuccess"`
	AssetPath       string             `json:"assetPath"`
	Tree            []project.TreeNode `json:"tree,omitzero"`
	TotalNodes      int                `json:"totalNodes"`
	MaxDepthReached int                `json:"maxDepthReached"`
	Error           string             `json:"error,omitzero"`
}

// formatField is shared by the export tools.
var formatField = schema.Field{
	Name:        "Format",
	Kind:        schema.KindString,
	Description: "The export format. 'T3D' is the textual serialization format; 'COPY' is the clipboard copy format. Defaults to 'T3D'.",
	Enum:        []string{"T3D", "COPY"},
}

type exportDefaults struct {
	Format string `json:"format"`
}

// RegisterAssetTools registers the asset export, import, query, and
// dependency tools.
func RegisterAssetTools(reg *mcp.Registry, proj *project.Project) error {
	register := []func(*mcp.Registry, *project.Project) error{
		registerExportAsset,
		registerBatchExportAssets,
		registerExportClassDefault,
		registerImportAsset,
		registerQueryAsset,
		registerSearchAssets,
		registerAssetDependencies,
		registerAssetReferences,
		registerAssetDependencyTree,
	}
	for _, fn := range register {
		if err := fn(reg, proj); err != nil {
			return err
		}
	}
	return nil
}

func registerExportAsset(reg *mcp.Registry, proj *project.Project) error {
	return reg.RegisterTool(mcp.Tool{
		Name:        "export_asset",
		Description: "Export a single asset to its textual T3D form. Use this to inspect an asset's full serialized state. The asset must exist; use query_asset first for a cheap existence check.",
		InputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "ObjectPath", Kind: schema.KindString, Description: "The full object path of the asset to export. Format: '/Game/MyFolder/MyAsset.MyAsset'. Must start with '/Game/'."},
				formatField,
			},
			Required: []string{"ObjectPath"},
			Defaults: exportDefaults{Format: "T3D"},
		}.Schema(),
		OutputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "BSuccess", Kind: schema.KindBoolean, Description: "Whether the export was successful"},
				{Name: "ObjectPath", Kind: schema.KindString, Description: "The object path that was exported"},
				{Name: "Format", Kind: schema.KindString, Description: "The format that was used"},
				{Name: "Content", Kind: schema.KindString, Description: "The exported content (if bSuccess is true)"},
				{Name: "Error", Kind: schema.KindString, Description: "Error message if bSuccess is false"},
			},
			Required: []string{"BSuccess", "ObjectPath"},
		}.Schema(),
		Call: func(args map[string]any) ([]mcp.ContentBlock, bool) {
			objectPath := stringArg(args, "objectPath")
			format := stringArg(args, "format")
			content, err := proj.ExportAsset(objectPath, format)
			if err != nil {
				return failJSON(exportAssetResult{ObjectPath: objectPath, Error: err.Error()})
			}
			return jsonResult(exportAssetResult{BSuccess: true, ObjectPath: objectPath, Format: normalizedFormat(format), Content: content})
		},
	})
}

func normalizedFormat(format string) string {
	if format == "" {
		return "T3D"
	}
	return format
}

func registerBatchExportAssets(reg *mcp.Registry, proj *project.Project) error {
	return reg.RegisterTool(mcp.Tool{
		Name:        "batch_export_assets",
		Description: "Export multiple assets into an output folder, one file per asset. Individual failures do not abort the batch; failed paths are reported alongside the successes.",
		InputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "ObjectPaths", Kind: schema.KindArray, Items: schema.KindString, Description: "Object paths of the assets to export. Each must be a full object path like '/Game/MyFolder/MyAsset.MyAsset'."},
				{Name: "OutputFolder", Kind: schema.KindString, Description: "Folder where exported files will be written, relative to the project root."},
				formatField,
			},
			Required: []string{"ObjectPaths", "OutputFolder"},
			Defaults: exportDefaults{Format: "T3D"},
		}.Schema(),
		OutputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "BSuccess", Kind: schema.KindBoolean, Description: "Whether the batch completed (individual assets may still have failed)"},
				{Name: "ExportedCount", Kind: schema.KindNumber, Description: "Number of assets exported successfully"},
				{Name: "FailedCount", Kind: schema.KindNumber, Description: "Number of assets that failed to export"},
				{Name: "ExportedPaths", Kind: schema.KindArray, Items: schema.KindString, Description: "Output file paths of the exported assets"},
				{Name: "FailedPaths", Kind: schema.KindArray, Items: schema.KindString, Description: "Object paths that failed to export"},
				{Name: "Error", Kind: schema.KindString, Description: "Error message if bSuccess is false"},
			},
			Required: []string{"BSuccess", "ExportedCount", "FailedCount"},
		}.Schema(),
		Call: func(args map[string]any) ([]mcp.ContentBlock, bool) {
			result, err := proj.BatchExport(stringSliceArg(args, "objectPaths"), stringArg(args, "outputFolder"), stringArg(args, "format"))
			if err != nil {
				return failJSON(batchExportResult{Error: err.Error()})
			}
			return jsonResult(batchExportResult{
				BSuccess:      true,
				ExportedCount: len(result.ExportedPaths),
				FailedCount:   len(result.FailedPaths),
				ExportedPaths: result.ExportedPaths,
				FailedPaths:   result.FailedPaths,
			})
		},
	})
}

func registerExportClassDefault(reg *mcp.Registry, proj *project.Project) error {
	return reg.RegisterTool(mcp.Tool{
		Name:        "export_class_default",
		Description: "Export the class default object for a class path. Use this to inspect the default property values of a C++ or Blueprint class.",
		InputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "ClassPath", Kind: schema.KindString, Description: "The class path to export defaults for. C++ format: '/Script/Engine.StaticMesh'. Blueprint format: '/Game/Blueprints/BP_Player.BP_Player_C'."},
				formatField,
			},
			Required: []string{"ClassPath"},
			Defaults: exportDefaults{Format: "T3D"},
		}.Schema(),
		OutputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "BSuccess", Kind: schema.KindBoolean, Description: "Whether the export was successful"},
				{Name: "ClassPath", Kind: schema.KindString, Description: "The class path that was exported"},
				{Name: "Format", Kind: schema.KindString, Description: "The format that was used"},
				{Name: "Content", Kind: schema.KindString, Description: "The exported content (if bSuccess is true)"},
				{Name: "Error", Kind: schema.KindString, Description: "Error message if bSuccess is false"},
			},
			Required: []string{"BSuccess", "ClassPath"},
		}.Schema(),
		Call: func(args map[string]any) ([]mcp.ContentBlock, bool) {
			classPath := stringArg(args, "classPath")
			format := stringArg(args, "format")
			content, err := proj.ExportClassDefault(classPath, format)
			if err != nil {
				return failJSON(exportClassDefaultResult{ClassPath: classPath, Error: err.Error()})
			}
			return jsonResult(exportClassDefaultResult{BSuccess: true, ClassPath: classPath, Format: normalizedFormat(format), Content: content})
		},
	})
}

func registerImportAsset(reg *mcp.Registry, proj *project.Project) error {
	return reg.RegisterTool(mcp.Tool{
		Name:        "import_asset",
		Description: "Import a file to create or update an asset. The import factory is detected from the file extension. Supported binary formats: .fbx, .obj (meshes), .png, .jpg, .tga (textures), .wav, .mp3 (sounds); .t3d files import serialized objects. At least one of filePath or t3dFilePath must be provided.",
		InputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "FilePath", Kind: schema.KindString, Description: "Path to the binary file to import. Optional if t3dFilePath is provided."},
				{Name: "T3dFilePath", Kind: schema.KindString, Description: "Path to the T3D file to import or configure from. Optional if filePath is provided."},
				{Name: "PackagePath", Kind: schema.KindString, Description: "The full object path where the asset should be created, including the object name. Format: '/Game/MyFolder/MyAsset.MyAsset'. An existing asset at this path is updated."},
				{Name: "ClassPath", Kind: schema.KindString, Description: "The class path of the object to import. Examples: '/Script/Engine.Texture2D', '/Script/Engine.StaticMesh'."},
			},
			Required: []string{"PackagePath", "ClassPath"},
		}.Schema(),
		OutputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "BSuccess", Kind: schema.KindBoolean, Description: "Whether the import was successful"},
				{Name: "Count", Kind: schema.KindNumber, Description: "Number of objects imported (if bSuccess is true)"},
				{Name: "FilePath", Kind: schema.KindString, Description: "The file path that was imported"},
				{Name: "PackagePath", Kind: schema.KindString, Description: "The package path where objects were imported"},
				{Name: "FactoryClass", Kind: schema.KindString, Description: "The factory class name used for import"},
				{Name: "ImportedObjects", Kind: schema.KindArray, Items: schema.KindString, Description: "Object paths of the imported objects (if bSuccess is true)"},
				{Name: "Error", Kind: schema.KindString, Description: "Error message if bSuccess is false"},
			},
			Required: []string{"BSuccess"},
		}.Schema(),
		Call: func(args map[string]any) ([]mcp.ContentBlock, bool) {
			result, err := proj.ImportAsset(
				stringArg(args, "filePath"),
				stringArg(args, "t3dFilePath"),
				stringArg(args, "packagePath"),
				stringArg(args, "classPath"),
			)
			if err != nil {
				return failJSON(importAssetResult{Error: err.Error()})
			}
			return jsonResult(importAssetResult{
				BSuccess:        true,
				Count:           result.Count,
				FilePath:        result.FilePath,
				PackagePath:     result.PackagePath,
				FactoryClass:    result.FactoryClass,
				ImportedObjects: result.ImportedObjects,
			})
		},
	})
}

func registerQueryAsset(reg *mcp.Registry, proj *project.Project) error {
	return reg.RegisterTool(mcp.Tool{
		Name:        "query_asset",
		Description: "Query a single asset to check if it exists and get its basic registry information. Cheaper than export_asset for existence checks. Use before export_asset or import_asset.",
		InputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "AssetPath", Kind: schema.KindString, Description: "Asset path to query. Format: '/Game/MyFolder/MyAsset' or '/Game/MyFolder/MyAsset.MyAsset'."},
				{Name: "BIncludeTags", Kind: schema.KindBoolean, Description: "Whether to include asset tags in the response. Defaults to false."},
			},
			Required: []string{"AssetPath"},
		}.Schema(),
		OutputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "BExists", Kind: schema.KindBoolean, Description: "Whether the asset exists"},
				{Name: "AssetPath", Kind: schema.KindString, Description: "The asset path that was queried"},
				{Name: "AssetName", Kind: schema.KindString, Description: "Name of the asset (if bExists is true)"},
				{Name: "PackagePath", Kind: schema.KindString, Description: "Package path of the asset (if bExists is true)"},
				{Name: "ClassPath", Kind: schema.KindString, Description: "Class path of the asset (if bExists is true)"},
				{Name: "ObjectPath", Kind: schema.KindString, Description: "Full object path of the asset (if bExists is true)"},
				{Name: "Tags", Kind: schema.KindMap, Description: "Asset tags (if bIncludeTags was true and bExists is true)"},
			},
			Required: []string{"BExists", "AssetPath"},
		}.Schema(),
		Call: func(args map[string]any) ([]mcp.ContentBlock, bool) {
			assetPath := stringArg(args, "assetPath")
			if assetPath == "" {
				return failText("Missing required parameter: assetPath")
			}
			info, ok, err := proj.Index().Get(assetPath)
			if err != nil {
				return failText(err.Error())
			}
			result := queryAssetResult{BExists: ok, AssetPath: assetPath}
			if ok {
				result.AssetName = info.AssetName
				result.PackagePath = info.PackagePath
				result.ClassPath = info.ClassPath
				result.ObjectPath = info.ObjectPath
				if boolArg(args, "bIncludeTags", false) {
					result.Tags = info.Tags
				}
			}
			return jsonResult(result)
		},
	})
}

func registerSearchAssets(reg *mcp.Registry, proj *project.Project) error {
	return reg.RegisterTool(mcp.Tool{
		Name:        "search_assets",
		Description: "Search for assets by package paths or package names, optionally filtered by class. At least one of packagePaths or packageNames must be a non-empty array. Package names support '*' and '?' wildcards and case-insensitive substring matching. Use maxResults and offset for paging.",
		InputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "PackagePaths", Kind: schema.KindArray, Items: schema.KindString, Description: "Directory paths to search. Example: ['/Game/Blueprints']. Recursive by default."},
				{Name: "PackageNames", Kind: schema.KindArray, Items: schema.KindString, Description: "Package names to match. Supports exact paths, '*'/'?' wildcards, and substrings. Example: ['BP_*', 'Player']."},
				{Name: "ClassPaths", Kind: schema.KindArray, Items: schema.KindString, Description: "Class paths to filter by. Example: ['/Script/Engine.Texture2D']. Empty searches all types."},
				{Name: "BRecursive", Kind: schema.KindBoolean, Description: "Whether to search subdirectories. Defaults to true."},
				{Name: "BIncludeTags", Kind: schema.KindBoolean, Description: "Whether to include asset tags in results. Defaults to false."},
				{Name: "MaxResults", Kind: schema.KindNumber, Description: "Maximum number of results. Defaults to 0 (no limit)."},
				{Name: "Offset", Kind: schema.KindNumber, Description: "Number of results to skip, for paging. Defaults to 0."},
			},
			Required: []string{},
		}.Schema(),
		OutputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "BSuccess", Kind: schema.KindBoolean, Description: "Whether the search completed"},
				{Name: "Assets", Kind: schema.KindArray, Items: schema.KindObject, Description: "Matching assets with objectPath, assetName, classPath, and packagePath"},
				{Name: "Count", Kind: schema.KindNumber, Description: "Number of assets returned"},
				{Name: "Error", Kind: schema.KindString, Description: "Error message if bSuccess is false"},
			},
			Required: []string{"BSuccess", "Count"},
		}.Schema(),
		Call: func(args map[string]any) ([]mcp.ContentBlock, bool) {
			results, err := proj.Index().Search(project.SearchQuery{
				PackagePaths: stringSliceArg(args, "packagePaths"),
				PackageNames: stringSliceArg(args, "packageNames"),
				ClassPaths:   stringSliceArg(args, "classPaths"),
				Recursive:    boolArg(args, "bRecursive", true),
				IncludeTags:  boolArg(args, "bIncludeTags", false),
				MaxResults:   intArg(args, "maxResults", 0),
				Offset:       intArg(args, "offset", 0),
			})
			if err != nil {
				return failJSON(searchAssetsResult{Error: err.Error()})
			}
			if results == nil {
				results = []project.AssetInfo{}
			}
			return jsonResult(searchAssetsResult{BSuccess: true, Assets: results, Count: len(results)})
		},
	})
}

func registerAssetDependencies(reg *mcp.Registry, proj *project.Project) error {
	return reg.RegisterTool(mcp.Tool{
		Name:        "get_asset_dependencies",
		Description: "Get all assets that a specified asset depends on. Useful for impact analysis and understanding asset relationships. Supports hard dependencies (direct references) and soft dependencies (searchable references).",
		InputSchema: dependencyInputSchema("dependencies"),
		OutputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "BSuccess", Kind: schema.KindBoolean, Description: "Whether the operation completed successfully"},
				{Name: "AssetPath", Kind: schema.KindString, Description: "The asset path that was queried"},
				{Name: "Dependencies", Kind: schema.KindArray, Items: schema.KindString, Description: "Asset paths that this asset depends on"},
				{Name: "Count", Kind: schema.KindNumber, Description: "Number of dependencies found"},
				{Name: "Error", Kind: schema.KindString, Description: "Error message if bSuccess is false"},
			},
			Required: []string{"BSuccess", "AssetPath", "Count"},
		}.Schema(),
		Call: func(args map[string]any) ([]mcp.ContentBlock, bool) {
			assetPath := stringArg(args, "assetPath")
			deps, ok, blocks := assetEdges(proj, assetPath, args, proj.Index().Dependencies)
			if !ok {
				return blocks, false
			}
			return jsonResult(assetEdgesResult{BSuccess: true, AssetPath: assetPath, Dependencies: deps, Count: len(deps)})
		},
	})
}

func registerAssetReferences(reg *mcp.Registry, proj *project.Project) error {
	return reg.RegisterTool(mcp.Tool{
		Name:        "get_asset_references",
		Description: "Get all assets that reference a specified asset. Critical for impact analysis, refactoring safety, and unused asset detection. Supports hard references (direct) and soft references (searchable).",
		InputSchema: dependencyInputSchema("references"),
		OutputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "BSuccess", Kind: schema.KindBoolean, Description: "Whether the operation completed successfully"},
				{Name: "AssetPath", Kind: schema.KindString, Description: "The asset path that was queried"},
				{Name: "References", Kind: schema.KindArray, Items: schema.KindString, Description: "Asset paths that reference this asset"},
				{Name: "Count", Kind: schema.KindNumber, Description: "Number of references found"},
				{Name: "Error", Kind: schema.KindString, Description: "Error message if bSuccess is false"},
			},
			Required: []string{"BSuccess", "AssetPath", "Count"},
		}.Schema(),
		Call: func(args map[string]any) ([]mcp.ContentBlock, bool) {
			assetPath := stringArg(args, "assetPath")
			refs, ok, blocks := assetEdges(proj, assetPath, args, proj.Index().References)
			if !ok {
				return blocks, false
			}
			return jsonResult(assetEdgesResult{BSuccess: true, AssetPath: assetPath, References: refs, Count: len(refs)})
		},
	})
}

// dependencyInputSchema is the shared input shape of the dependency and
// reference tools; kindNoun customizes the hard/soft toggle descriptions.
func dependencyInputSchema(kindNoun string) *schema.JSON {
	return schema.Def{
		Fields: []schema.Field{
			{Name: "AssetPath", Kind: schema.KindString, Description: "The asset path to inspect. Format: '/Game/Folder/AssetName' or '/Game/Folder/AssetName.AssetName'."},
			{Name: "BIncludeHard", Kind: schema.KindBoolean, Description: "Whether to include hard " + kindNoun + " (direct references). Defaults to true."},
			{Name: "BIncludeSoft", Kind: schema.KindBoolean, Description: "Whether to include soft " + kindNoun + " (searchable references). Defaults to false."},
		},
		Required: []string{"AssetPath"},
	}.Schema()
}

func assetEdges(proj *project.Project, assetPath string, args map[string]any, lookup func(string, bool, bool) ([]string, error)) ([]string, bool, []mcp.ContentBlock) {
	if assetPath == "" {
		blocks, _ := failJSON(assetEdgesResult{Error: "Missing required parameter: assetPath"})
		return nil, false, blocks
	}
	if _, exists, err := proj.Index().Get(assetPath); err != nil || !exists {
		msg := "Asset not found: " + assetPath
		if err != nil {
			msg = err.Error()
		}
		blocks, _ := failJSON(assetEdgesResult{AssetPath: assetPath, Error: msg})
		return nil, false, blocks
	}
	edges, err := lookup(assetPath, boolArg(args, "bIncludeHard", true), boolArg(args, "bIncludeSoft", false))
	if err != nil {
		blocks, _ := failJSON(assetEdgesResult{AssetPath: assetPath, Error: err.Error()})
		return nil, false, blocks
	}
	return edges, true, nil
}

func registerAssetDependencyTree(reg *mcp.Registry, proj *project.Project) error {
	return reg.RegisterTool(mcp.Tool{
		Name:        "get_asset_dependency_tree",
		Description: "Get the complete dependency tree for a specified asset as a flattened node list with depth information. Use maxDepth to bound recursion on deep trees.",
		InputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "AssetPath", Kind: schema.KindString, Description: "The asset path to build the tree for. Format: '/Game/Folder/AssetName' or '/Game/Folder/AssetName.AssetName'."},
				{Name: "MaxDepth", Kind: schema.KindNumber, Description: "Maximum recursion depth. Defaults to 10. Must be at least 1."},
				{Name: "BIncludeHard", Kind: schema.KindBoolean, Description: "Whether to include hard dependencies (direct references). Defaults to true."},
				{Name: "BIncludeSoft", Kind: schema.KindBoolean, Description: "Whether to include soft dependencies (searchable references). Defaults to false."},
			},
			Required: []string{"AssetPath"},
		}.Schema(),
		OutputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "BSuccess", Kind: schema.KindBoolean, Description: "Whether the operation completed successfully"},
				{Name: "AssetPath", Kind: schema.KindString, Description: "The asset path that was queried"},
				{Name: "Tree", Kind: schema.KindArray, Items: schema.KindObject, Description: "Dependency tree nodes, each with assetPath, depth, and dependencies"},
				{Name: "TotalNodes", Kind: schema.KindNumber, Description: "Total number of nodes in the tree"},
				{Name: "MaxDepthReached", Kind: schema.KindNumber, Description: "Deepest level reached in the tree"},
				{Name: "Error", Kind: schema.KindString, Description: "Error message if bSuccess is false"},
			},
			Required: []string{"BSuccess", "AssetPath", "TotalNodes"},
		}.Schema(),
		Call: func(args map[string]any) ([]mcp.ContentBlock, bool) {
			assetPath := stringArg(args, "assetPath")
			if assetPath == "" {
				return failJSON(dependencyTreeResult{Error: "Missing required parameter: assetPath"})
			}
			nodes, maxReached, err := proj.Index().DependencyTree(
				assetPath,
				intArg(args, "maxDepth", 10),
				boolArg(args, "bIncludeHard", true),
				boolArg(args, "bIncludeSoft", false),
			)
			if err != nil {
				return failJSON(dependencyTreeResult{AssetPath: assetPath, Error: err.Error()})
			}
			return jsonResult(dependencyTreeResult{
				BSuccess:        true,
				AssetPath:       assetPath,
				Tree:            nodes,
				TotalNodes:      len(nodes),
				MaxDepthReached: maxReached,
			})
		},
	})
}
