package main

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"macadam/internal/config"
	"macadam/internal/logging"
)

// commandContext lazily loads the project configuration and builds the
// logger so commands that never need either (config init, help) stay
// cheap.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolvedPath, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolvedPath
	})
	return c.config, c.configErr
}

// ensureLogger builds the process logger. Console format falls back to
// JSON when stderr is not a terminal, so piped output stays parseable.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		format := "console"
		level := "info"
		if cfg, err := c.ensureConfig(); err == nil {
			format = cfg.Logging.Format
			level = cfg.Logging.Level
		}
		if format == "console" && !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
			format = "json"
		}
		c.logger, c.loggerErr = logging.New(logging.Options{Format: format, Level: level})
	})
	return c.logger, c.loggerErr
}
