package unreal

import (
	"encoding/json"

	"github.com/glasskite/unrealmcp/mcp"
	"github.com/glasskite/unrealmcp/project"
)

// RegisterResources registers the static project config resource and the
// templated asset content resources.
func RegisterResources(reg *mcp.Registry, proj *project.Project) error {
	err := reg.RegisterResource(mcp.Resource{
		Name:        "Project Configuration",
		Description: "The current project's configuration as JSON.",
		MimeType:    "application/json",
		URI:         "unreal://project/config",
		Read: func(uri string) ([]mcp.ResourceContent, bool) {
			cfg := proj.Config()
			data, err := json.Marshal(projectConfigResult{
				ProjectName: cfg.Name,
				Version:     cfg.Version,
				ContentDir:  cfg.ContentDir,
			})
			if err != nil {
				return nil, false
			}
			return []mcp.ResourceContent{{
				URI:      uri,
				Text:     string(data),
				MimeType: "application/json",
			}}, true
		},
	})
	if err != nil {
		return err
	}

	err = reg.RegisterResourceTemplate(mcp.ResourceTemplate{
		Name:        "Asset T3D",
		Description: "The textual T3D serialization of an asset. The filepath is the asset's object path without the leading slash, e.g. 'Game/Meshes/SM_Rock.SM_Rock'.",
		MimeType:    "text/plain",
		URITemplate: "unreal+t3d://{filepath}",
		Read: func(tmpl *mcp.URITemplate, match *mcp.Match) ([]mcp.ResourceContent, bool) {
			filepath, ok := match.Variable("filepath")
			if !ok {
				return nil, false
			}
			content, err := proj.ExportAsset("/"+filepath, "T3D")
			if err != nil {
				return nil, false
			}
			return []mcp.ResourceContent{{
				URI:      match.URI,
				Text:     content,
				MimeType: "text/plain",
			}}, true
		},
	})
	if err != nil {
		return err
	}

	return reg.RegisterResourceTemplate(mcp.ResourceTemplate{
		Name:        "Blueprint Markdown",
		Description: "A markdown summary of a Blueprint asset. The filepath is the Blueprint's object path without the leading slash, e.g. 'Game/Blueprints/BP_Player.BP_Player'.",
		MimeType:    "text/markdown",
		URITemplate: "unreal+md://{filepath}",
		Read: func(tmpl *mcp.URITemplate, match *mcp.Match) ([]mcp.ResourceContent, bool) {
			filepath, ok := match.Variable("filepath")
			if !ok {
				return nil, false
			}
			md, err := proj.BlueprintMarkdown("/" + filepath)
			if err != nil {
				return nil, false
			}
			return []mcp.ResourceContent{{
				URI:      match.URI,
				Text:     md,
				MimeType: "text/markdown",
			}}, true
		},
	})
}
