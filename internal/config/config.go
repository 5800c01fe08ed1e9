package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// ConfigFileName is the project file macadam looks for when a directory is
// given instead of a file path.
const ConfigFileName = "macadam.toml"

// Paths contains directory and file location configuration. Relative values
// are resolved against the project root during normalization.
type Paths struct {
	ManifestPath  string `toml:"manifest_path"`
	ContentDir    string `toml:"content_dir"`
	DebugDir      string `toml:"debug_dir"`
	AssetListPath string `toml:"asset_list_path"`
}

// Remote contains configuration for the remote asset-hosting service.
type Remote struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	GroupID uint64 `toml:"group_id"`
	UserID  uint64 `toml:"user_id"`
}

// Codegen contains configuration for generated binding output.
type Codegen struct {
	LuauPath       string `toml:"luau_path"`
	TypeScriptPath string `toml:"typescript_path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// InputRule declares a set of image inputs and the per-input settings that
// apply to every file it matches. Globs use doublestar syntax and are
// evaluated relative to the project root.
type InputRule struct {
	Glob     string `toml:"glob"`
	BasePath string `toml:"base_path"`
	Codegen  bool   `toml:"codegen"`
	Packable bool   `toml:"packable"`
}

// Config encapsulates all configuration values for a macadam project.
type Config struct {
	Name    string      `toml:"name"`
	Paths   Paths       `toml:"paths"`
	Remote  Remote      `toml:"remote"`
	Codegen Codegen     `toml:"codegen"`
	Logging Logging     `toml:"logging"`
	Inputs  []InputRule `toml:"inputs"`

	root string
}

// Load locates, parses, and validates a project configuration. The path may
// name the config file itself, a directory containing one, or be empty to
// use the working directory. The returned config has all path fields
// resolved against the project root.
func Load(path string) (*Config, string, error) {
	resolvedPath, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", err
	}

	cfg := Default()

	file, err := os.Open(resolvedPath)
	if err != nil {
		return nil, "", fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, "", fmt.Errorf("parse config %s: %w", resolvedPath, err)
	}

	cfg.root = filepath.Dir(resolvedPath)

	if err := cfg.normalize(); err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, resolvedPath, nil
}

// ProjectRoot returns the directory containing the loaded config file.
func (c *Config) ProjectRoot() string { return c.root }

// SetProjectRoot overrides the project root. Intended for tests that build
// configs without a file on disk.
func (c *Config) SetProjectRoot(root string) { c.root = root }

// SampleConfig returns the embedded sample configuration text.
func SampleConfig() string { return sampleConfig }

// WriteSample writes the sample configuration to path, refusing to clobber
// an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func resolveConfigPath(path string) (string, error) {
	if path == "" {
		path = "."
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("no macadam project found at %s", expanded)
		}
		return "", fmt.Errorf("stat config: %w", err)
	}

	if info.IsDir() {
		candidate := filepath.Join(expanded, ConfigFileName)
		if _, err := os.Stat(candidate); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("no %s found in %s", ConfigFileName, expanded)
			}
			return "", fmt.Errorf("stat config: %w", err)
		}
		return candidate, nil
	}
	return expanded, nil
}

func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(path)
}
