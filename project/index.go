package project

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

// AssetInfo describes a single asset registry entry.
type AssetInfo struct {
	ObjectPath  string            `json:"objectPath"`
	AssetName   string            `json:"assetName"`
	ClassPath   string            `json:"classPath"`
	PackagePath string            `json:"packagePath"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// DependencyKind distinguishes direct references from searchable ones.
type DependencyKind string

const (
	HardDependency DependencyKind = "hard"
	SoftDependency DependencyKind = "soft"
)

// TreeNode is one entry of a flattened dependency tree.
type TreeNode struct {
	AssetPath    string   `json:"assetPath"`
	Depth        int      `json:"depth"`
	Dependencies []string `json:"dependencies"`
}

// SearchQuery selects assets from the index. At least one of
// PackagePaths or PackageNames must be non-empty.
type SearchQuery struct {
	PackagePaths []string
	PackageNames []string
	ClassPaths   []string
	Recursive    bool
	IncludeTags  bool
	MaxResults   int
	Offset       int
}

// Index is an SQLite-backed asset registry mirror. It records each
// asset's identity plus the hard and soft dependency edges between
// assets.
type Index struct {
	db *sql.DB
}

// OpenIndex opens (or creates) an asset index at the given path.
// Use ":memory:" for an in-memory index.
func OpenIndex(dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	idx := &Index{db: db}
	if err := idx.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return idx, nil
}

// initSchema creates the necessary tables if they don't exist.
func (idx *Index) initSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS assets (
    object_path  TEXT PRIMARY KEY,
    asset_name   TEXT NOT NULL,
    class_path   TEXT NOT NULL,
    package_path TEXT NOT NULL,
    tags         TEXT
);

CREATE INDEX IF NOT EXISTS idx_assets_package ON assets(package_path);
CREATE INDEX IF NOT EXISTS idx_assets_class ON assets(class_path);

CREATE TABLE IF NOT EXISTS deps (
    from_path TEXT NOT NULL,
    to_path   TEXT NOT NULL,
    kind      TEXT NOT NULL DEFAULT 'hard',
    PRIMARY KEY (from_path, to_path, kind)
);

CREATE INDEX IF NOT EXISTS idx_deps_from ON deps(from_path);
CREATE INDEX IF NOT EXISTS idx_deps_to ON deps(to_path);
`
	_, err := idx.db.Exec(schema)
	return err
}

// Close releases the underlying database handle.
func (idx *Index) Close() error {
	return idx.db.Close()
}

func encodeTags(tags map[string]string) (string, error) {
	if len(tags) == 0 {
		return "", nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeTags(src string, dest *map[string]string) error {
	if src == "" {
		*dest = nil
		return nil
	}
	return json.Unmarshal([]byte(src), dest)
}

// Add inserts or updates an asset entry.
func (idx *Index) Add(info AssetInfo) error {
	if info.ObjectPath == "" {
		return fmt.Errorf("asset has empty object path")
	}
	tags, err := encodeTags(info.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	_, err = idx.db.Exec(`
INSERT INTO assets (object_path, asset_name, class_path, package_path, tags)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(object_path) DO UPDATE SET
    asset_name = excluded.asset_name,
    class_path = excluded.class_path,
    package_path = excluded.package_path,
    tags = excluded.tags`,
		info.ObjectPath, info.AssetName, info.ClassPath, info.PackagePath, tags)
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// AddDependency records that from depends on to.
func (idx *Index) AddDependency(from, to string, kind DependencyKind) error {
	_, err := idx.db.Exec(`
INSERT INTO deps (from_path, to_path, kind) VALUES (?, ?, ?)
ON CONFLICT(from_path, to_path, kind) DO NOTHING`,
		from, to, string(kind))
	if err != nil {
		return fmt.Errorf("insert dependency: %w", err)
	}
	return nil
}

// Get looks up a single asset by object path. Lookups also accept the
// package form without the trailing ".Name" suffix.
func (idx *Index) Get(assetPath string) (AssetInfo, bool, error) {
	row := idx.db.QueryRow(`
SELECT object_path, asset_name, class_path, package_path, COALESCE(tags, '')
FROM assets
WHERE object_path = ? OR package_path = ?
LIMIT 1`, assetPath, assetPath)

	var info AssetInfo
	var tags string
	err := row.Scan(&info.ObjectPath, &info.AssetName, &info.ClassPath, &info.PackagePath, &tags)
	if err == sql.ErrNoRows {
		return AssetInfo{}, false, nil
	}
	if err != nil {
		return AssetInfo{}, false, fmt.Errorf("query asset: %w", err)
	}
	if err := decodeTags(tags, &info.Tags); err != nil {
		return AssetInfo{}, false, fmt.Errorf("decode tags: %w", err)
	}
	return info, true, nil
}

// matchName reports whether a package path matches a requested name.
// Names support '*' and '?' wildcards; names without wildcards match
// exactly or as a case-insensitive substring.
func matchName(packagePath, name string) bool {
	if name == "" {
		return false
	}
	if strings.ContainsAny(name, "*?") {
		return matchWildcard(strings.ToLower(packagePath), strings.ToLower(name))
	}
	if packagePath == name {
		return true
	}
	return strings.Contains(strings.ToLower(packagePath), strings.ToLower(name))
}

func matchWildcard(s, pattern string) bool {
	// Iterative glob match with single-star backtracking.
	var si, pi, starPi, starSi int
	starPi = -1
	for si < len(s) {
		switch {
		case pi < len(pattern) && (pattern[pi] == '?' || pattern[pi] == s[si]):
			si++
			pi++
		case pi < len(pattern) && pattern[pi] == '*':
			starPi = pi
			starSi = si
			pi++
		case starPi >= 0:
			pi = starPi + 1
			starSi++
			si = starSi
		default:
			return false
		}
	}
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}

func underPath(packagePath, dir string, recursive bool) bool {
	dir = strings.TrimSuffix(dir, "/")
	if !strings.HasPrefix(packagePath, dir+"/") {
		return packagePath == dir
	}
	if recursive {
		return true
	}
	rest := strings.TrimPrefix(packagePath, dir+"/")
	return !strings.Contains(rest, "/")
}

// Search returns assets matching the query, ordered by object path.
func (idx *Index) Search(q SearchQuery) ([]AssetInfo, error) {
	if len(q.PackagePaths) == 0 && len(q.PackageNames) == 0 {
		return nil, fmt.Errorf("at least one of packagePaths or packageNames is required")
	}

	rows, err := idx.db.Query(`
SELECT object_path, asset_name, class_path, package_path, COALESCE(tags, '')
FROM assets
ORDER BY object_path`)
	if err != nil {
		return nil, fmt.Errorf("query assets: %w", err)
	}
	defer rows.Close()

	classFilter := make(map[string]bool, len(q.ClassPaths))
	for _, cp := range q.ClassPaths {
		classFilter[cp] = true
	}

	var results []AssetInfo
	for rows.Next() {
		var info AssetInfo
		var tags string
		if err := rows.Scan(&info.ObjectPath, &info.AssetName, &info.ClassPath, &info.PackagePath, &tags); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		if len(classFilter) > 0 && !classFilter[info.ClassPath] {
			continue
		}
		matched := false
		for _, dir := range q.PackagePaths {
			if underPath(info.PackagePath, dir, q.Recursive) {
				matched = true
				break
			}
		}
		if !matched {
			for _, name := range q.PackageNames {
				if matchName(info.PackagePath, name) {
					matched = true
					break
				}
			}
		}
		if !matched {
			continue
		}
		if q.IncludeTags {
			if err := decodeTags(tags, &info.Tags); err != nil {
				return nil, fmt.Errorf("decode tags: %w", err)
			}
		}
		results = append(results, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assets: %w", err)
	}

	if q.Offset > 0 {
		if q.Offset >= len(results) {
			return nil, nil
		}
		results = results[q.Offset:]
	}
	if q.MaxResults > 0 && len(results) > q.MaxResults {
		results = results[:q.MaxResults]
	}
	return results, nil
}

func (idx *Index) edges(column, assetPath string, includeHard, includeSoft bool) ([]string, error) {
	kinds := make([]string, 0, 2)
	if includeHard {
		kinds = append(kinds, string(HardDependency))
	}
	if includeSoft {
		kinds = append(kinds, string(SoftDependency))
	}
	if len(kinds) == 0 {
		return nil, nil
	}

	other := "to_path"
	if column == "to_path" {
		other = "from_path"
	}
	query := fmt.Sprintf(`
SELECT DISTINCT %s FROM deps
WHERE %s = ? AND kind IN (%s)
ORDER BY %s`, other, column, placeholders(len(kinds)), other)

	args := []any{assetPath}
	for _, k := range kinds {
		args = append(args, k)
	}
	rows, err := idx.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query deps: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan dep: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// Dependencies returns the assets that assetPath depends on.
func (idx *Index) Dependencies(assetPath string, includeHard, includeSoft bool) ([]string, error) {
	return idx.edges("from_path", assetPath, includeHard, includeSoft)
}

// References returns the assets that depend on assetPath.
func (idx *Index) References(assetPath string, includeHard, includeSoft bool) ([]string, error) {
	return idx.edges("to_path", assetPath, includeHard, includeSoft)
}

// DependencyTree walks dependencies breadth-first from assetPath down
// to maxDepth levels, returning the flattened node list, the total
// node count, and the deepest level reached. Each asset appears at
// most once, at the shallowest depth it was discovered.
func (idx *Index) DependencyTree(assetPath string, maxDepth int, includeHard, includeSoft bool) ([]TreeNode, int, error) {
	if maxDepth < 1 {
		maxDepth = 1
	}

	seen := map[string]bool{assetPath: true}
	frontier := []string{assetPath}
	depths := map[string]int{assetPath: 0}
	var nodes []TreeNode
	maxReached := 0

	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]
		depth := depths[current]

		var children []string
		if depth < maxDepth {
			var err error
			children, err = idx.Dependencies(current, includeHard, includeSoft)
			if err != nil {
				return nil, 0, err
			}
		}
		sort.Strings(children)
		nodes = append(nodes, TreeNode{AssetPath: current, Depth: depth, Dependencies: children})
		if depth > maxReached {
			maxReached = depth
		}

		for _, child := range children {
			if seen[child] {
				continue
			}
			seen[child] = true
			depths[child] = depth + 1
			frontier = append(frontier, child)
		}
	}
	return nodes, maxReached, nil
}
