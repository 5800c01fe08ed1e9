package testsupport

import (
	"path/filepath"
	"testing"

	"macadam/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a unique temp directory per test,
// with one catch-all input rule. It defaults common fields and applies any
// provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Name = "test-project"
	cfgVal.Paths.ManifestPath = filepath.Join(base, "macadam-manifest.toml")
	cfgVal.Paths.ContentDir = filepath.Join(base, "content")
	cfgVal.Paths.DebugDir = filepath.Join(base, "debug")
	cfgVal.Paths.AssetListPath = filepath.Join(base, "asset-list.txt")
	cfgVal.Codegen.LuauPath = filepath.Join(base, "assets.luau")
	cfgVal.Codegen.TypeScriptPath = filepath.Join(base, "assets.d.ts")
	cfgVal.Inputs = []config.InputRule{
		{Glob: "assets/**/*.png", BasePath: "assets", Codegen: true},
	}
	cfgVal.SetProjectRoot(base)

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithInputRules replaces the input rules on the test config.
func WithInputRules(rules ...config.InputRule) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Inputs = rules
	}
}

// WithRemote sets remote credentials on the test config.
func WithRemote(baseURL, apiKey string, userID uint64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Remote.BaseURL = baseURL
		b.cfg.Remote.APIKey = apiKey
		b.cfg.Remote.UserID = userID
	}
}
