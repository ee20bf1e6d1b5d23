package unreal

import (
	"github.com/glasskite/unrealmcp/mcp"
	"github.com/glasskite/unrealmcp/project"
	"github.com/glasskite/unrealmcp/schema"
)

// RegisterAll registers every tool, resource, and prompt the project exposes.
func RegisterAll(reg *mcp.Registry, proj *project.Project) error {
	if err := RegisterCommonTools(reg, proj); err != nil {
		return err
	}
	if err := RegisterAssetTools(reg, proj); err != nil {
		return err
	}
	if err := RegisterBlueprintTools(reg, proj); err != nil {
		return err
	}
	if err := RegisterResources(reg, proj); err != nil {
		return err
	}
	return RegisterPrompts(reg)
}

type projectConfigResult struct {
	ProjectName string `json:"projectName"`
	Version     string `json:"version"`
	ContentDir  string `json:"contentDir"`
}

type consoleCommandResult struct {
	BSuccess bool   `json:"bSuccess"`
	Command  string `json:"command"`
	Output   string `json:"output,omitzero"`
	Error    string `json:"error,omitzero"`
}

type logFilePathResult struct {
	LogFilePath string `json:"logFilePath"`
}

// RegisterCommonTools registers the project-level utility tools.
func RegisterCommonTools(reg *mcp.Registry, proj *project.Project) error {
	err := reg.RegisterTool(mcp.Tool{
		Name:        "get_project_config",
		Description: "Get the current project's configuration: project name, version, and content directory. Use this to orient before asset operations.",
		InputSchema: schema.Def{}.Schema(),
		OutputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "ProjectName", Kind: schema.KindString, Description: "Name of the project"},
				{Name: "Version", Kind: schema.KindString, Description: "Project version string"},
				{Name: "ContentDir", Kind: schema.KindString, Description: "Root directory of project content"},
			},
		}.Schema(),
		Call: func(args map[string]any) ([]mcp.ContentBlock, bool) {
			cfg := proj.Config()
			return jsonResult(projectConfigResult{
				ProjectName: cfg.Name,
				Version:     cfg.Version,
				ContentDir:  cfg.ContentDir,
			})
		},
	})
	if err != nil {
		return err
	}

	err = reg.RegisterTool(mcp.Tool{
		Name:        "execute_console_command",
		Description: "Execute a console command in the editor and return its output. Examples: 'stat fps', 'obj list class=Blueprint', 'r.ScreenPercentage 50'.",
		InputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "Command", Kind: schema.KindString, Description: "The console command to execute. Examples: 'stat fps', 'obj list class=Blueprint'."},
			},
		}.Schema(),
		OutputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "BSuccess", Kind: schema.KindBoolean, Description: "Whether the command executed successfully"},
				{Name: "Command", Kind: schema.KindString, Description: "The command that was executed"},
				{Name: "Output", Kind: schema.KindString, Description: "Command output (if bSuccess is true)"},
				{Name: "Error", Kind: schema.KindString, Description: "Error message if bSuccess is false"},
			},
			Required: []string{"BSuccess", "Command"},
		}.Schema(),
		Call: func(args map[string]any) ([]mcp.ContentBlock, bool) {
			command := stringArg(args, "command")
			out, err := proj.RunConsoleCommand(command)
			if err != nil {
				return failJSON(consoleCommandResult{Command: command, Error: err.Error()})
			}
			return jsonResult(consoleCommandResult{BSuccess: true, Command: command, Output: out})
		},
	})
	if err != nil {
		return err
	}

	return reg.RegisterTool(mcp.Tool{
		Name:        "get_log_file_path",
		Description: "Get the absolute path of the editor's current log file. Read the log to diagnose errors and warnings after running commands or imports.",
		InputSchema: schema.Def{}.Schema(),
		OutputSchema: schema.Def{
			Fields: []schema.Field{
				{Name: "LogFilePath", Kind: schema.KindString, Description: "Path to the current log file"},
			},
		}.Schema(),
		Call: func(args map[string]any) ([]mcp.ContentBlock, bool) {
			return jsonResult(logFilePathResult{LogFilePath: proj.LogFilePath()})
		},
	})
}
