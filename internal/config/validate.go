package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProject(); err != nil {
		return err
	}
	if err := c.validateInputs(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateProject() error {
	if c.Name == "" {
		return errors.New("name must be set (it scopes local content and debug uploads)")
	}
	return nil
}

// ValidateRemote checks the settings needed for the remote sync target. It
// is separate from Validate because local, debug, and none targets do not
// need credentials.
func (c *Config) ValidateRemote() error {
	if strings.TrimSpace(c.Remote.APIKey) == "" {
		return fmt.Errorf("remote.api_key is required for the remote target (set %s or edit %s)", EnvAPIKey, ConfigFileName)
	}
	if c.Remote.GroupID != 0 && c.Remote.UserID != 0 {
		return errors.New("remote.group_id and remote.user_id cannot both be set")
	}
	if c.Remote.GroupID == 0 && c.Remote.UserID == 0 {
		return fmt.Errorf("one of remote.group_id or remote.user_id is required (or set %s)", EnvUserID)
	}
	return nil
}

func (c *Config) validateInputs() error {
	if len(c.Inputs) == 0 {
		return errors.New("at least one [[inputs]] rule must be declared")
	}
	for i, rule := range c.Inputs {
		if rule.Glob == "" {
			return fmt.Errorf("inputs[%d]: glob must be set", i)
		}
		if !doublestar.ValidatePattern(rule.Glob) {
			return fmt.Errorf("inputs[%d]: malformed glob %q", i, rule.Glob)
		}
		if rule.Codegen && rule.BasePath == "" {
			return fmt.Errorf("inputs[%d]: base_path must be set when codegen is enabled", i)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
