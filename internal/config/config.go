// Package config loads the unrealmcp server configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultListenAddr is used when the config file does not set one.
const DefaultListenAddr = "127.0.0.1:30069"

// DefaultRoutePath is the HTTP path the MCP route binds to.
const DefaultRoutePath = "/mcp"

// ProjectConfig locates the editor project state the server exposes.
type ProjectConfig struct {
	Name       string `yaml:"name"`
	Version    string `yaml:"version"`
	ContentDir string `yaml:"content_dir"`
	IndexPath  string `yaml:"index_path"`
	LogFile    string `yaml:"log_file,omitempty"`
}

// Config represents the contents of the server config file.
type Config struct {
	ListenAddr   string        `yaml:"listen_addr"`
	RoutePath    string        `yaml:"route_path"`
	ServerName   string        `yaml:"server_name"`
	Version      string        `yaml:"version"`
	Instructions string        `yaml:"instructions,omitempty"`
	Project      ProjectConfig `yaml:"project"`
}

// Load reads the config from path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.RoutePath == "" {
		cfg.RoutePath = DefaultRoutePath
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		ListenAddr: DefaultListenAddr,
		RoutePath:  DefaultRoutePath,
		ServerName: "unrealmcp",
		Version:    "0.1.0",
		Project: ProjectConfig{
			Name:       "UntitledProject",
			Version:    "0.0.0",
			ContentDir: "Content",
			IndexPath:  ":memory:",
		},
	}
}
