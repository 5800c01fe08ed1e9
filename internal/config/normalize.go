package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// normalize resolves relative paths against the project root, applies
// environment fallbacks, and canonicalizes input rules.
func (c *Config) normalize() error {
	if c.root == "" {
		root, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine project root: %w", err)
		}
		c.root = root
	}

	c.Name = strings.TrimSpace(c.Name)
	c.Paths.ManifestPath = c.resolve(c.Paths.ManifestPath, defaultManifestPath)
	c.Paths.DebugDir = c.resolve(c.Paths.DebugDir, defaultDebugDir)
	c.Paths.AssetListPath = c.resolve(c.Paths.AssetListPath, defaultAssetListPath)
	if strings.TrimSpace(c.Paths.ContentDir) != "" {
		c.Paths.ContentDir = c.resolve(c.Paths.ContentDir, "")
	}
	c.Codegen.LuauPath = c.resolve(c.Codegen.LuauPath, defaultLuauPath)
	c.Codegen.TypeScriptPath = c.resolve(c.Codegen.TypeScriptPath, defaultTypeScriptPath)

	c.Remote.BaseURL = strings.TrimRight(strings.TrimSpace(c.Remote.BaseURL), "/")
	if c.Remote.BaseURL == "" {
		c.Remote.BaseURL = defaultRemoteBaseURL
	}
	if strings.TrimSpace(c.Remote.APIKey) == "" {
		c.Remote.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	}
	if c.Remote.UserID == 0 {
		if raw := strings.TrimSpace(os.Getenv(EnvUserID)); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("parse %s: %w", EnvUserID, err)
			}
			c.Remote.UserID = parsed
		}
	}

	for i := range c.Inputs {
		rule := &c.Inputs[i]
		rule.Glob = filepath.ToSlash(strings.TrimSpace(rule.Glob))
		rule.BasePath = filepath.ToSlash(strings.Trim(strings.TrimSpace(rule.BasePath), "/"))
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	return nil
}

func (c *Config) resolve(path, fallback string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = fallback
	}
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.root, path)
}
