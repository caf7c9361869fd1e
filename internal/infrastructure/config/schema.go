// Package config loads the chaoxe configuration from TOML files and
// CHAOXE_* environment variables.
package config

import (
	"github.com/chaoxe/miniapp/internal/infrastructure/bridge"
)

// Config is the complete chaoxe configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging" toml:"logging" json:"logging" jsonschema:"description=Log output settings"`
	API        APIConfig        `mapstructure:"api" toml:"api" json:"api" jsonschema:"description=REST backend client"`
	Images     ImagesConfig     `mapstructure:"images" toml:"images" json:"images" jsonschema:"description=Image URL normalisation"`
	Navigation NavigationConfig `mapstructure:"navigation" toml:"navigation" json:"navigation" jsonschema:"description=Page routes and stack"`
	Bridge     BridgeConfig     `mapstructure:"bridge" toml:"bridge" json:"bridge" jsonschema:"description=Embedded view bridge"`
	DevServer  DevServerConfig  `mapstructure:"dev_server" toml:"dev_server" json:"dev_server" jsonschema:"description=Local development server"`
	Headless   HeadlessConfig   `mapstructure:"headless" toml:"headless" json:"headless" jsonschema:"description=Headless Chrome host"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json,default=console"`
}

// APIConfig configures the REST client.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url" toml:"base_url" json:"base_url" jsonschema:"format=uri"`
	// Dev sends requests through the dev server proxy.
	Dev            bool   `mapstructure:"dev" toml:"dev" json:"dev"`
	DevOrigin      string `mapstructure:"dev_origin" toml:"dev_origin" json:"dev_origin"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" toml:"timeout_seconds" json:"timeout_seconds" jsonschema:"minimum=1"`
}

// ImagesConfig configures the image resolver.
type ImagesConfig struct {
	BaseURL string `mapstructure:"base_url" toml:"base_url" json:"base_url" jsonschema:"format=uri"`
	// Defaults overrides the placeholder per category.
	Defaults    map[string]string `mapstructure:"defaults" toml:"defaults" json:"defaults,omitempty"`
	Parallelism int               `mapstructure:"parallelism" toml:"parallelism" json:"parallelism" jsonschema:"minimum=1"`
	// ProbeCacheSize bounds the number of cached image size lookups; 0 disables the cache.
	ProbeCacheSize       int `mapstructure:"probe_cache_size" toml:"probe_cache_size" json:"probe_cache_size" jsonschema:"minimum=0"`
	ProbeCacheTTLSeconds int `mapstructure:"probe_cache_ttl_seconds" toml:"probe_cache_ttl_seconds" json:"probe_cache_ttl_seconds" jsonschema:"minimum=0"`
}

// NavigationConfig configures the page router.
type NavigationConfig struct {
	// Routes maps route names to page paths.
	Routes   map[string]string `mapstructure:"routes" toml:"routes" json:"routes,omitempty"`
	Tabs     []string          `mapstructure:"tabs" toml:"tabs" json:"tabs"`
	MaxDepth int               `mapstructure:"max_depth" toml:"max_depth" json:"max_depth" jsonschema:"minimum=1"`
}

// BridgeConfig configures the injected page script and view styles.
type BridgeConfig struct {
	Script bridge.ScriptOptions `mapstructure:"script" toml:"script" json:"script"`
	Styles bridge.Styles        `mapstructure:"styles" toml:"styles" json:"styles"`
	// PlaceholderTitle is the title shown before the page reports its own.
	PlaceholderTitle string `mapstructure:"placeholder_title" toml:"placeholder_title" json:"placeholder_title"`
}

// DevServerConfig configures `chaoxe serve`.
type DevServerConfig struct {
	Listen         string   `mapstructure:"listen" toml:"listen" json:"listen"`
	ProxyTarget    string   `mapstructure:"proxy_target" toml:"proxy_target" json:"proxy_target" jsonschema:"format=uri"`
	AllowedOrigins []string `mapstructure:"allowed_origins" toml:"allowed_origins" json:"allowed_origins"`
	// MaxSessions caps the bridge sessions kept by the server.
	MaxSessions int `mapstructure:"max_sessions" toml:"max_sessions" json:"max_sessions" jsonschema:"minimum=1,default=64"`
	// SessionTTLSeconds closes bridge sessions idle for longer.
	SessionTTLSeconds int `mapstructure:"session_ttl_seconds" toml:"session_ttl_seconds" json:"session_ttl_seconds" jsonschema:"minimum=1,default=1800"`
}

// HeadlessConfig configures the headless Chrome host.
type HeadlessConfig struct {
	ExecPath           string `mapstructure:"exec_path" toml:"exec_path" json:"exec_path"`
	ShowWindow         bool   `mapstructure:"show_window" toml:"show_window" json:"show_window"`
	LoadTimeoutSeconds int    `mapstructure:"load_timeout_seconds" toml:"load_timeout_seconds" json:"load_timeout_seconds" jsonschema:"minimum=1"`
}
