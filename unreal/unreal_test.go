package unreal

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/psanford/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasskite/unrealmcp/internal/config"
	"github.com/glasskite/unrealmcp/mcp"
	"github.com/glasskite/unrealmcp/project"
)

func newTestServer(t *testing.T) (*mcp.Server, *project.Project) {
	t.Helper()

	idx, err := project.OpenIndex(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	rootFS := memfs.New()
	require.NoError(t, rootFS.MkdirAll("Content/Blueprints", 0o755))
	require.NoError(t, rootFS.WriteFile("Content/Blueprints/BP_Player.t3d",
		[]byte("Begin Object Class=/Script/Engine.Blueprint Name=\"BP_Player\"\nEnd Object\n"), 0o644))

	require.NoError(t, idx.Add(project.AssetInfo{
		ObjectPath:  "/Game/Blueprints/BP_Player.BP_Player",
		AssetName:   "BP_Player",
		ClassPath:   "/Script/Engine.Blueprint",
		PackagePath: "/Game/Blueprints/BP_Player",
		Tags:        map[string]string{"ParentClass": "Character"},
	}))
	require.NoError(t, idx.AddDependency("/Game/Blueprints/BP_Player.BP_Player", "/Game/Meshes/SM_Body.SM_Body", project.HardDependency))

	runner := project.CommandFunc(func(command string) (string, error) {
		if command == "stat fps" {
			return "fps counter enabled", nil
		}
		return "", fmt.Errorf("unknown command %q", command)
	})

	proj, err := project.Open(config.ProjectConfig{Name: "TestProject", Version: "1.0", ContentDir: "Content"}, rootFS, idx, runner)
	require.NoError(t, err)

	registry := mcp.NewRegistry()
	require.NoError(t, RegisterAll(registry, proj))

	server, err := mcp.NewServer(registry, mcp.Implementation{Name: "unrealmcp", Version: "0.1.0"})
	require.NoError(t, err)
	return server, proj
}

type callResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StructuredContent map[string]any `json:"structuredContent"`
	IsError           bool           `json:"isError"`
}

func callTool(t *testing.T, server *mcp.Server, name string, args map[string]any) callResult {
	t.Helper()
	params := map[string]any{"name": name}
	if args != nil {
		params["arguments"] = args
	}
	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params":  params,
	})
	require.NoError(t, err)

	var resp struct {
		Result json.RawMessage `json:"result"`
		Error  *mcp.Error      `json:"error"`
	}
	require.NoError(t, json.Unmarshal(server.HandleRequest(body), &resp))
	require.Nil(t, resp.Error, "unexpected protocol error for %s", name)

	var result callResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	return result
}

// textPayload decodes the JSON text block of a tool result. Failed calls
// carry their payload only as text, structuredContent stays unset.
func textPayload(t *testing.T, result callResult) map[string]any {
	t.Helper()
	require.NotEmpty(t, result.Content)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &payload))
	return payload
}

func TestRegisterAll(t *testing.T) {
	server, _ := newTestServer(t)
	registry := server.Registry()

	for _, name := range []string{
		"get_project_config", "execute_console_command", "get_log_file_path",
		"export_asset", "batch_export_assets", "export_class_default",
		"import_asset", "query_asset", "search_assets",
		"get_asset_dependencies", "get_asset_references", "get_asset_dependency_tree",
		"search_blueprints", "export_blueprint_markdown",
	} {
		_, ok := registry.Tool(name)
		assert.True(t, ok, "tool %s not registered", name)
	}
	assert.Len(t, registry.Resources(), 1)
	assert.Len(t, registry.ResourceTemplates(), 2)
	assert.Len(t, registry.Prompts(), 5)
}

func TestGetProjectConfig(t *testing.T) {
	server, _ := newTestServer(t)

	result := callTool(t, server, "get_project_config", nil)
	require.False(t, result.IsError)
	assert.Equal(t, "TestProject", result.StructuredContent["projectName"])
	assert.Equal(t, "Content", result.StructuredContent["contentDir"])
}

func TestExecuteConsoleCommand(t *testing.T) {
	server, _ := newTestServer(t)

	result := callTool(t, server, "execute_console_command", map[string]any{"command": "stat fps"})
	require.False(t, result.IsError)
	assert.Equal(t, true, result.StructuredContent["bSuccess"])
	assert.Equal(t, "fps counter enabled", result.StructuredContent["output"])

	result = callTool(t, server, "execute_console_command", map[string]any{"command": "bogus"})
	require.True(t, result.IsError)
	assert.Nil(t, result.StructuredContent)
	payload := textPayload(t, result)
	assert.Equal(t, false, payload["bSuccess"])
	assert.NotEmpty(t, payload["error"])
}

func TestExportAssetTool(t *testing.T) {
	server, _ := newTestServer(t)

	result := callTool(t, server, "export_asset", map[string]any{"objectPath": "/Game/Blueprints/BP_Player.BP_Player"})
	require.False(t, result.IsError)
	assert.Equal(t, true, result.StructuredContent["bSuccess"])
	assert.Equal(t, "T3D", result.StructuredContent["format"])
	assert.Contains(t, result.StructuredContent["content"], "BP_Player")

	result = callTool(t, server, "export_asset", map[string]any{"objectPath": "/Game/Missing.Missing"})
	require.True(t, result.IsError)
	assert.Equal(t, false, textPayload(t, result)["bSuccess"])
}

func TestBatchExportAssetsTool(t *testing.T) {
	server, _ := newTestServer(t)

	result := callTool(t, server, "batch_export_assets", map[string]any{
		"objectPaths":  []any{"/Game/Blueprints/BP_Player.BP_Player", "/Game/Missing.Missing"},
		"outputFolder": "Exports",
	})
	require.False(t, result.IsError)
	assert.Equal(t, float64(1), result.StructuredContent["exportedCount"])
	assert.Equal(t, float64(1), result.StructuredContent["failedCount"])
}

func TestImportAssetTool(t *testing.T) {
	server, _ := newTestServer(t)

	result := callTool(t, server, "import_asset", map[string]any{
		"packagePath": "/Game/Textures/T_New.T_New",
		"classPath":   "/Script/Engine.Texture2D",
	})
	assert.True(t, result.IsError, "missing source file must fail")
}

func TestQueryAssetTool(t *testing.T) {
	server, _ := newTestServer(t)

	result := callTool(t, server, "query_asset", map[string]any{"assetPath": "/Game/Blueprints/BP_Player"})
	require.False(t, result.IsError)
	assert.Equal(t, true, result.StructuredContent["bExists"])
	assert.Equal(t, "BP_Player", result.StructuredContent["assetName"])
	assert.Nil(t, result.StructuredContent["tags"])

	result = callTool(t, server, "query_asset", map[string]any{"assetPath": "/Game/Blueprints/BP_Player", "bIncludeTags": true})
	require.False(t, result.IsError)
	tags, ok := result.StructuredContent["tags"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Character", tags["ParentClass"])
}

func TestSearchAssetsTool(t *testing.T) {
	server, _ := newTestServer(t)

	result := callTool(t, server, "search_assets", map[string]any{"packagePaths": []any{"/Game/Blueprints"}})
	require.False(t, result.IsError)
	assert.Equal(t, float64(1), result.StructuredContent["count"])

	// neither selector provided is an application error, not a protocol one
	result = callTool(t, server, "search_assets", map[string]any{})
	require.True(t, result.IsError)
	assert.Equal(t, false, textPayload(t, result)["bSuccess"])
}

func TestDependencyTools(t *testing.T) {
	server, _ := newTestServer(t)

	result := callTool(t, server, "get_asset_dependencies", map[string]any{"assetPath": "/Game/Blueprints/BP_Player.BP_Player"})
	require.False(t, result.IsError)
	assert.Equal(t, float64(1), result.StructuredContent["count"])

	result = callTool(t, server, "get_asset_dependencies", map[string]any{"assetPath": "/Game/Missing.Missing"})
	assert.True(t, result.IsError)

	result = callTool(t, server, "get_asset_dependency_tree", map[string]any{"assetPath": "/Game/Blueprints/BP_Player.BP_Player"})
	require.False(t, result.IsError)
	assert.Equal(t, float64(2), result.StructuredContent["totalNodes"])
	assert.Equal(t, float64(1), result.StructuredContent["maxDepthReached"])
}

func TestSearchBlueprintsTool(t *testing.T) {
	server, _ := newTestServer(t)

	result := callTool(t, server, "search_blueprints", map[string]any{"searchType": "parent_class", "searchTerm": "Character"})
	require.False(t, result.IsError)
	assert.Equal(t, float64(1), result.StructuredContent["count"])

	result = callTool(t, server, "search_blueprints", map[string]any{"searchType": "bogus", "searchTerm": "x"})
	assert.True(t, result.IsError)
}

func TestExportBlueprintMarkdownTool(t *testing.T) {
	server, _ := newTestServer(t)

	result := callTool(t, server, "export_blueprint_markdown", map[string]any{
		"blueprintPaths": []any{"/Game/Blueprints/BP_Player.BP_Player"},
		"outputFolder":   "Docs",
	})
	require.False(t, result.IsError)
	assert.Equal(t, float64(1), result.StructuredContent["exportedCount"])
	assert.Equal(t, float64(0), result.StructuredContent["failedCount"])
}

func readResource(t *testing.T, server *mcp.Server, uri string) (json.RawMessage, *mcp.Error) {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "resources/read",
		"params":  map[string]any{"uri": uri},
	})
	require.NoError(t, err)
	var resp struct {
		Result json.RawMessage `json:"result"`
		Error  *mcp.Error      `json:"error"`
	}
	require.NoError(t, json.Unmarshal(server.HandleRequest(body), &resp))
	return resp.Result, resp.Error
}

func TestResources(t *testing.T) {
	server, _ := newTestServer(t)

	result, rpcErr := readResource(t, server, "unreal://project/config")
	require.Nil(t, rpcErr)
	assert.Contains(t, string(result), "TestProject")

	result, rpcErr = readResource(t, server, "unreal+t3d://Game/Blueprints/BP_Player.BP_Player")
	require.Nil(t, rpcErr)
	assert.Contains(t, string(result), "Begin Object")

	result, rpcErr = readResource(t, server, "unreal+md://Game/Blueprints/BP_Player.BP_Player")
	require.Nil(t, rpcErr)
	assert.Contains(t, string(result), "BP_Player")

	_, rpcErr = readResource(t, server, "unreal://nope")
	require.NotNil(t, rpcErr)
	assert.Equal(t, mcp.CodeResourceNotFound, rpcErr.Code)
}

func TestPrompts(t *testing.T) {
	server, _ := newTestServer(t)

	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "prompts/get",
		"params": map[string]any{
			"name":      "analyze_blueprint",
			"arguments": map[string]any{"blueprint_path": "/Game/Blueprints/BP_Player.BP_Player"},
		},
	})
	require.NoError(t, err)

	var resp struct {
		Result json.RawMessage `json:"result"`
		Error  *mcp.Error      `json:"error"`
	}
	require.NoError(t, json.Unmarshal(server.HandleRequest(body), &resp))
	require.Nil(t, resp.Error)
	assert.Contains(t, string(resp.Result), "/Game/Blueprints/BP_Player.BP_Player")
	assert.Contains(t, string(resp.Result), "export_asset")
}
