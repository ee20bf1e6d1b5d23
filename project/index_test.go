package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := OpenIndex(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestIndexAddAndGet(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.Add(AssetInfo{
		ObjectPath:  "/Game/Blueprints/BP_Player.BP_Player",
		AssetName:   "BP_Player",
		ClassPath:   "/Script/Engine.Blueprint",
		PackagePath: "/Game/Blueprints/BP_Player",
		Tags:        map[string]string{"ParentClass": "Character"},
	}))

	info, ok, err := idx.Get("/Game/Blueprints/BP_Player.BP_Player")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "BP_Player", info.AssetName)
	assert.Equal(t, "Character", info.Tags["ParentClass"])

	// lookup by package path without the object suffix also works
	info, ok, err = idx.Get("/Game/Blueprints/BP_Player")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "/Game/Blueprints/BP_Player.BP_Player", info.ObjectPath)

	_, ok, err = idx.Get("/Game/Missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIndexAddUpdatesExisting(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.Add(AssetInfo{
		ObjectPath:  "/Game/T.T",
		AssetName:   "T",
		ClassPath:   "/Script/Engine.Texture2D",
		PackagePath: "/Game/T",
	}))
	require.NoError(t, idx.Add(AssetInfo{
		ObjectPath:  "/Game/T.T",
		AssetName:   "T",
		ClassPath:   "/Script/Engine.StaticMesh",
		PackagePath: "/Game/T",
	}))

	info, ok, err := idx.Get("/Game/T.T")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "/Script/Engine.StaticMesh", info.ClassPath)
}

func seedAssets(t *testing.T, idx *Index) {
	t.Helper()
	for _, a := range []AssetInfo{
		{ObjectPath: "/Game/Blueprints/BP_Player.BP_Player", AssetName: "BP_Player", ClassPath: "/Script/Engine.Blueprint", PackagePath: "/Game/Blueprints/BP_Player", Tags: map[string]string{"ParentClass": "Character"}},
		{ObjectPath: "/Game/Blueprints/AI/BP_Enemy.BP_Enemy", AssetName: "BP_Enemy", ClassPath: "/Script/Engine.Blueprint", PackagePath: "/Game/Blueprints/AI/BP_Enemy", Tags: map[string]string{"ParentClass": "Pawn"}},
		{ObjectPath: "/Game/Textures/T_Grass.T_Grass", AssetName: "T_Grass", ClassPath: "/Script/Engine.Texture2D", PackagePath: "/Game/Textures/T_Grass"},
		{ObjectPath: "/Game/Meshes/SM_Rock.SM_Rock", AssetName: "SM_Rock", ClassPath: "/Script/Engine.StaticMesh", PackagePath: "/Game/Meshes/SM_Rock"},
	} {
		require.NoError(t, idx.Add(a))
	}
}

func TestIndexSearchByPackagePath(t *testing.T) {
	idx := newTestIndex(t)
	seedAssets(t, idx)

	results, err := idx.Search(SearchQuery{PackagePaths: []string{"/Game/Blueprints"}, Recursive: true})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// non-recursive skips the AI subfolder
	results, err = idx.Search(SearchQuery{PackagePaths: []string{"/Game/Blueprints"}, Recursive: false})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "BP_Player", results[0].AssetName)
}

func TestIndexSearchByPackageName(t *testing.T) {
	idx := newTestIndex(t)
	seedAssets(t, idx)

	// wildcard
	results, err := idx.Search(SearchQuery{PackageNames: []string{"*BP_*"}})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// substring, case-insensitive
	results, err = idx.Search(SearchQuery{PackageNames: []string{"grass"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "T_Grass", results[0].AssetName)

	// exact package path
	results, err = idx.Search(SearchQuery{PackageNames: []string{"/Game/Meshes/SM_Rock"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestIndexSearchClassFilterAndPaging(t *testing.T) {
	idx := newTestIndex(t)
	seedAssets(t, idx)

	results, err := idx.Search(SearchQuery{
		PackagePaths: []string{"/Game"},
		ClassPaths:   []string{"/Script/Engine.Blueprint"},
		Recursive:    true,
	})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	page, err := idx.Search(SearchQuery{
		PackagePaths: []string{"/Game"},
		Recursive:    true,
		MaxResults:   2,
		Offset:       2,
	})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	empty, err := idx.Search(SearchQuery{
		PackagePaths: []string{"/Game"},
		Recursive:    true,
		Offset:       100,
	})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestIndexSearchRequiresSelector(t *testing.T) {
	idx := newTestIndex(t)

	_, err := idx.Search(SearchQuery{})
	require.Error(t, err)
}

func TestIndexDependenciesAndReferences(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.AddDependency("/Game/A.A", "/Game/B.B", HardDependency))
	require.NoError(t, idx.AddDependency("/Game/A.A", "/Game/C.C", SoftDependency))
	require.NoError(t, idx.AddDependency("/Game/B.B", "/Game/C.C", HardDependency))

	deps, err := idx.Dependencies("/Game/A.A", true, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"/Game/B.B"}, deps)

	deps, err = idx.Dependencies("/Game/A.A", true, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"/Game/B.B", "/Game/C.C"}, deps)

	refs, err := idx.References("/Game/C.C", true, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"/Game/A.A", "/Game/B.B"}, refs)

	none, err := idx.Dependencies("/Game/A.A", false, false)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestIndexDependencyTree(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.AddDependency("/Game/A.A", "/Game/B.B", HardDependency))
	require.NoError(t, idx.AddDependency("/Game/B.B", "/Game/C.C", HardDependency))
	// cycle back to A must not loop
	require.NoError(t, idx.AddDependency("/Game/C.C", "/Game/A.A", HardDependency))

	nodes, maxDepth, err := idx.DependencyTree("/Game/A.A", 10, true, false)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, 2, maxDepth)
	assert.Equal(t, "/Game/A.A", nodes[0].AssetPath)
	assert.Equal(t, 0, nodes[0].Depth)
	assert.Equal(t, []string{"/Game/B.B"}, nodes[0].Dependencies)

	// depth limit stops expansion
	nodes, maxDepth, err = idx.DependencyTree("/Game/A.A", 1, true, false)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, 1, maxDepth)
	assert.Empty(t, nodes[1].Dependencies)
}

func TestMatchWildcard(t *testing.T) {
	tests := []struct {
		s, pattern string
		want       bool
	}{
		{"bp_player", "bp_*", true},
		{"bp_player", "*player*", true},
		{"bp_player", "bp_?layer", true},
		{"bp_player", "sm_*", false},
		{"abc", "*", true},
		{"", "*", true},
		{"abc", "a?c", true},
		{"abc", "a?d", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchWildcard(tt.s, tt.pattern), "%q vs %q", tt.s, tt.pattern)
	}
}
