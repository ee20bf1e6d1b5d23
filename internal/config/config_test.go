package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, DefaultRoutePath, cfg.RoutePath)
	assert.Equal(t, "unrealmcp", cfg.ServerName)
	assert.Equal(t, "UntitledProject", cfg.Project.Name)
	assert.Equal(t, ":memory:", cfg.Project.IndexPath)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_addr: 127.0.0.1:4000
server_name: myproject-mcp
instructions: Ask before importing.
project:
  name: MyProject
  version: "2.1"
  content_dir: Game/Content
  index_path: Saved/assets.db
  log_file: Saved/Logs/MyProject.log
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:4000", cfg.ListenAddr)
	assert.Equal(t, DefaultRoutePath, cfg.RoutePath, "unset fields keep defaults")
	assert.Equal(t, "myproject-mcp", cfg.ServerName)
	assert.Equal(t, "Ask before importing.", cfg.Instructions)
	assert.Equal(t, "MyProject", cfg.Project.Name)
	assert.Equal(t, "Saved/assets.db", cfg.Project.IndexPath)
	assert.Equal(t, "Saved/Logs/MyProject.log", cfg.Project.LogFile)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoadExplicitEmptyAddrBackfilled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`listen_addr: ""`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
}
