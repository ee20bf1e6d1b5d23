// Package project models the editor-side state an MCP server exposes:
// the asset registry index, the content filesystem that assets are
// exported from and imported into, and the console command surface.
package project

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/glasskite/unrealmcp/internal/config"
)

// WriteFS is a filesystem that supports writes alongside fs.FS reads.
// memfs.FS satisfies this for tests; a thin os wrapper does for real
// project directories.
type WriteFS interface {
	fs.FS
	WriteFile(path string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
}

// CommandRunner executes a console command and returns its output.
type CommandRunner interface {
	Run(command string) (string, error)
}

// CommandFunc adapts a plain function to CommandRunner.
type CommandFunc func(command string) (string, error)

func (f CommandFunc) Run(command string) (string, error) {
	return f(command)
}

// ImportResult reports what an import produced.
type ImportResult struct {
	Count           int
	FilePath        string
	PackagePath     string
	FactoryClass    string
	ImportedObjects []string
}

// BatchResult reports per-asset outcomes of a batch export.
type BatchResult struct {
	ExportedPaths []string
	FailedPaths   []string
}

// BlueprintMatch is one search_blueprints hit.
type BlueprintMatch struct {
	ObjectPath  string `json:"objectPath"`
	AssetName   string `json:"assetName"`
	PackagePath string `json:"packagePath"`
	ParentClass string `json:"parentClass,omitempty"`
	MatchedBy   string `json:"matchedBy"`
}

// Project binds a content filesystem, an asset index, and a command
// runner under one project configuration.
type Project struct {
	cfg    config.ProjectConfig
	fsys   WriteFS
	index  *Index
	runner CommandRunner
}

// Open assembles a Project from its parts. The runner may be nil, in
// which case console commands report an error.
func Open(cfg config.ProjectConfig, fsys WriteFS, index *Index, runner CommandRunner) (*Project, error) {
	if fsys == nil {
		return nil, fmt.Errorf("project filesystem is required")
	}
	if index == nil {
		return nil, fmt.Errorf("asset index is required")
	}
	if cfg.ContentDir == "" {
		cfg.ContentDir = "Content"
	}
	return &Project{cfg: cfg, fsys: fsys, index: index, runner: runner}, nil
}

// Config returns the project configuration snapshot.
func (p *Project) Config() config.ProjectConfig {
	return p.cfg
}

// Index returns the project's asset index.
func (p *Project) Index() *Index {
	return p.index
}

// LogFilePath returns the configured editor log file path.
func (p *Project) LogFilePath() string {
	if p.cfg.LogFile != "" {
		return p.cfg.LogFile
	}
	return path.Join("Saved", "Logs", p.cfg.Name+".log")
}

// RunConsoleCommand executes a console command through the configured
// runner.
func (p *Project) RunConsoleCommand(command string) (string, error) {
	if strings.TrimSpace(command) == "" {
		return "", fmt.Errorf("console command is empty")
	}
	if p.runner == nil {
		return "", fmt.Errorf("no console command runner configured")
	}
	out, err := p.runner.Run(command)
	if err != nil {
		return "", fmt.Errorf("run console command: %w", err)
	}
	return out, nil
}

// contentFilePath maps an object path like /Game/Foo/Bar.Bar to the
// source file Content/Foo/Bar.<ext> inside the project filesystem.
func (p *Project) contentFilePath(objectPath, ext string) (string, error) {
	pkg := objectPath
	if i := strings.LastIndex(pkg, "."); i >= 0 {
		pkg = pkg[:i]
	}
	rel, ok := strings.CutPrefix(pkg, "/Game/")
	if !ok {
		return "", fmt.Errorf("object path must start with /Game/: %q", objectPath)
	}
	if rel == "" {
		return "", fmt.Errorf("object path has no asset name: %q", objectPath)
	}
	return path.Join(p.cfg.ContentDir, rel) + ext, nil
}

func extForFormat(format string) (string, error) {
	switch strings.ToUpper(format) {
	case "", "T3D":
		return ".t3d", nil
	case "COPY":
		return ".copy", nil
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
}

// ExportAsset reads the serialized text form of the asset at
// objectPath. The asset must exist in the index and its source file
// must exist in the content filesystem.
func (p *Project) ExportAsset(objectPath, format string) (string, error) {
	info, ok, err := p.index.Get(objectPath)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("asset not found: %s", objectPath)
	}
	ext, err := extForFormat(format)
	if err != nil {
		return "", err
	}
	file, err := p.contentFilePath(info.ObjectPath, ext)
	if err != nil {
		return "", err
	}
	data, err := fs.ReadFile(p.fsys, file)
	if err != nil {
		return "", fmt.Errorf("read asset source %s: %w", file, err)
	}
	return string(data), nil
}

// BatchExport exports each object path into outputFolder, one file per
// asset, and reports which succeeded. A partial failure is not an
// error; the caller inspects FailedPaths.
func (p *Project) BatchExport(objectPaths []string, outputFolder, format string) (BatchResult, error) {
	if len(objectPaths) == 0 {
		return BatchResult{}, fmt.Errorf("objectPaths is empty")
	}
	if outputFolder == "" {
		return BatchResult{}, fmt.Errorf("outputFolder is required")
	}
	ext, err := extForFormat(format)
	if err != nil {
		return BatchResult{}, err
	}
	if err := p.fsys.MkdirAll(outputFolder, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("create output folder: %w", err)
	}

	var result BatchResult
	for _, objectPath := range objectPaths {
		content, err := p.ExportAsset(objectPath, format)
		if err != nil {
			result.FailedPaths = append(result.FailedPaths, objectPath)
			continue
		}
		name := objectPath
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		if i := strings.Index(name, "."); i >= 0 {
			name = name[:i]
		}
		out := path.Join(outputFolder, name+ext)
		if err := p.fsys.WriteFile(out, []byte(content), 0o644); err != nil {
			result.FailedPaths = append(result.FailedPaths, objectPath)
			continue
		}
		result.ExportedPaths = append(result.ExportedPaths, out)
	}
	return result, nil
}

// ExportClassDefault renders the default object for a class path like
// /Script/Engine.StaticMesh. If the project carries an override file
// under ClassDefaults/ it is returned verbatim, otherwise a minimal
// default block is synthesized.
func (p *Project) ExportClassDefault(classPath, format string) (string, error) {
	ext, err := extForFormat(format)
	if err != nil {
		return "", err
	}
	className := classPath
	if i := strings.LastIndex(className, "."); i >= 0 {
		className = className[i+1:]
	}
	if className == "" || !strings.HasPrefix(classPath, "/") {
		return "", fmt.Errorf("invalid class path %q", classPath)
	}

	override := path.Join("ClassDefaults", className) + ext
	if data, err := fs.ReadFile(p.fsys, override); err == nil {
		return string(data), nil
	}

	return fmt.Sprintf("Begin Object Class=%s Name=\"Default__%s\"\nEnd Object\n", classPath, className), nil
}

func factoryForFile(filePath string) string {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".fbx", ".obj":
		return "FbxFactory"
	case ".png", ".jpg", ".tga":
		return "TextureFactory"
	case ".wav", ".mp3":
		return "SoundFactory"
	case ".t3d":
		return "LevelFactory"
	default:
		return ""
	}
}

// ImportAsset creates or updates an asset from a source file. At least
// one of filePath and t3dFilePath must be provided; the factory is
// picked from the binary file's extension when one is given.
func (p *Project) ImportAsset(filePath, t3dFilePath, packagePath, classPath string) (ImportResult, error) {
	if filePath == "" && t3dFilePath == "" {
		return ImportResult{}, fmt.Errorf("at least one of filePath or t3dFilePath is required")
	}
	if packagePath == "" || classPath == "" {
		return ImportResult{}, fmt.Errorf("packagePath and classPath are required")
	}

	source := filePath
	if source == "" {
		source = t3dFilePath
	}
	factory := factoryForFile(source)
	if factory == "" {
		return ImportResult{}, fmt.Errorf("no import factory for %q", source)
	}
	data, err := fs.ReadFile(p.fsys, strings.TrimPrefix(source, "./"))
	if err != nil {
		return ImportResult{}, fmt.Errorf("read import source: %w", err)
	}

	dest, err := p.contentFilePath(packagePath, ".t3d")
	if err != nil {
		return ImportResult{}, err
	}
	if dir := path.Dir(dest); dir != "." {
		if err := p.fsys.MkdirAll(dir, 0o755); err != nil {
			return ImportResult{}, fmt.Errorf("create package folder: %w", err)
		}
	}
	if err := p.fsys.WriteFile(dest, data, 0o644); err != nil {
		return ImportResult{}, fmt.Errorf("write imported asset: %w", err)
	}

	name := packagePath
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	} else if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	objectPath := packagePath
	if !strings.Contains(path.Base(objectPath), ".") {
		objectPath = packagePath + "." + name
	}
	pkg := objectPath[:strings.LastIndex(objectPath, ".")]
	if err := p.index.Add(AssetInfo{
		ObjectPath:  objectPath,
		AssetName:   name,
		ClassPath:   classPath,
		PackagePath: pkg,
	}); err != nil {
		return ImportResult{}, err
	}

	return ImportResult{
		Count:           1,
		FilePath:        source,
		PackagePath:     packagePath,
		FactoryClass:    factory,
		ImportedObjects: []string{objectPath},
	}, nil
}

// blueprintClass is the class path the index records for Blueprint
// assets.
const blueprintClass = "/Script/Engine.Blueprint"

// SearchBlueprints finds Blueprint assets by name pattern or parent
// class. searchType is one of "name", "parent_class", or "all".
func (p *Project) SearchBlueprints(searchType, searchTerm, packagePath string, recursive bool, maxResults, offset int) ([]BlueprintMatch, error) {
	if searchType == "" || searchTerm == "" {
		return nil, fmt.Errorf("searchType and searchTerm are required")
	}
	switch searchType {
	case "name", "parent_class", "all":
	default:
		return nil, fmt.Errorf("unknown searchType %q", searchType)
	}

	dirs := []string{"/Game"}
	if packagePath != "" {
		dirs = []string{packagePath}
	}
	assets, err := p.index.Search(SearchQuery{
		PackagePaths: dirs,
		ClassPaths:   []string{blueprintClass},
		Recursive:    recursive,
		IncludeTags:  true,
	})
	if err != nil {
		return nil, err
	}

	var matches []BlueprintMatch
	for _, a := range assets {
		parent := a.Tags["ParentClass"]
		matchedBy := ""
		if searchType == "name" || searchType == "all" {
			if matchName(a.AssetName, searchTerm) {
				matchedBy = "name"
			}
		}
		if matchedBy == "" && (searchType == "parent_class" || searchType == "all") {
			if parent != "" && strings.EqualFold(parent, searchTerm) {
				matchedBy = "parent_class"
			}
		}
		if matchedBy == "" {
			continue
		}
		matches = append(matches, BlueprintMatch{
			ObjectPath:  a.ObjectPath,
			AssetName:   a.AssetName,
			PackagePath: a.PackagePath,
			ParentClass: parent,
			MatchedBy:   matchedBy,
		})
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ObjectPath < matches[j].ObjectPath })

	if offset > 0 {
		if offset >= len(matches) {
			return nil, nil
		}
		matches = matches[offset:]
	}
	if maxResults > 0 && len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches, nil
}

// ExportBlueprintMarkdown renders each Blueprint as a markdown summary
// file in outputFolder. Assets that are missing or not Blueprints land
// in FailedPaths.
func (p *Project) ExportBlueprintMarkdown(blueprintPaths []string, outputFolder string) (BatchResult, error) {
	if len(blueprintPaths) == 0 {
		return BatchResult{}, fmt.Errorf("blueprintPaths is empty")
	}
	if outputFolder == "" {
		return BatchResult{}, fmt.Errorf("outputFolder is required")
	}
	if err := p.fsys.MkdirAll(outputFolder, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("create output folder: %w", err)
	}

	var result BatchResult
	for _, bp := range blueprintPaths {
		md, err := p.BlueprintMarkdown(bp)
		if err != nil {
			result.FailedPaths = append(result.FailedPaths, bp)
			continue
		}
		name := path.Base(bp)
		if i := strings.Index(name, "."); i >= 0 {
			name = name[:i]
		}
		out := path.Join(outputFolder, name+".md")
		if err := p.fsys.WriteFile(out, []byte(md), 0o644); err != nil {
			result.FailedPaths = append(result.FailedPaths, bp)
			continue
		}
		result.ExportedPaths = append(result.ExportedPaths, out)
	}
	return result, nil
}

// BlueprintMarkdown renders a single Blueprint's markdown summary.
func (p *Project) BlueprintMarkdown(blueprintPath string) (string, error) {
	info, ok, err := p.index.Get(blueprintPath)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("asset not found: %s", blueprintPath)
	}
	if info.ClassPath != blueprintClass {
		return "", fmt.Errorf("asset is not a Blueprint: %s", blueprintPath)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", info.AssetName)
	fmt.Fprintf(&b, "- Object path: `%s`\n", info.ObjectPath)
	fmt.Fprintf(&b, "- Package: `%s`\n", info.PackagePath)
	if parent := info.Tags["ParentClass"]; parent != "" {
		fmt.Fprintf(&b, "- Parent class: `%s`\n", parent)
	}

	deps, err := p.index.Dependencies(info.ObjectPath, true, true)
	if err != nil {
		return "", err
	}
	if len(deps) > 0 {
		b.WriteString("\n## Dependencies\n\n")
		for _, d := range deps {
			fmt.Fprintf(&b, "- `%s`\n", d)
		}
	}

	if t3d, err := p.ExportAsset(info.ObjectPath, "T3D"); err == nil {
		b.WriteString("\n## Serialized form\n\n```\n")
		b.WriteString(t3d)
		if !strings.HasSuffix(t3d, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("```\n")
	}
	return b.String(), nil
}
