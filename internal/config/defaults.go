package config

const (
	defaultManifestPath   = "macadam-manifest.toml"
	defaultDebugDir       = ".macadam-debug"
	defaultAssetListPath  = "asset-list.txt"
	defaultLuauPath       = "assets.luau"
	defaultTypeScriptPath = "assets.d.ts"
	defaultRemoteBaseURL  = "https://apis.macadam.dev/assets/v1"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Environment variables honored as fallbacks when the corresponding flag or
// config field is absent.
const (
	EnvAPIKey = "MACADAM_API_KEY"
	EnvUserID = "MACADAM_USER_ID"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ManifestPath:  defaultManifestPath,
			DebugDir:      defaultDebugDir,
			AssetListPath: defaultAssetListPath,
		},
		Remote: Remote{
			BaseURL: defaultRemoteBaseURL,
		},
		Codegen: Codegen{
			LuauPath:       defaultLuauPath,
			TypeScriptPath: defaultTypeScriptPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
