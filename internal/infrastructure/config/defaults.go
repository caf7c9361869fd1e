package config

import (
	"github.com/chaoxe/miniapp/internal/domain/entity"
	"github.com/chaoxe/miniapp/internal/infrastructure/api"
	"github.com/chaoxe/miniapp/internal/infrastructure/bridge"
	"github.com/chaoxe/miniapp/internal/infrastructure/images"
	"github.com/chaoxe/miniapp/internal/infrastructure/pagestack"
)

const (
	defaultAPITimeoutSeconds  = 15
	defaultImageParallelism   = 8
	defaultProbeCacheSize     = 256
	defaultProbeCacheTTL      = 600
	defaultLoadTimeoutSeconds = 20
	defaultDevServerListen    = "127.0.0.1:8080"
	defaultDevServerOrigin    = "http://localhost:8080"
	defaultDevServerProxy     = "https://chyxe.cn/chaoxe-api"
	defaultDevServerSessions  = 64
	defaultDevServerTTL       = 1800
	defaultLogLevel           = "info"
	defaultLogFormat          = "console"
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	routes := make(map[string]string)
	for name, path := range entity.DefaultRoutes() {
		routes[string(name)] = path
	}
	var tabs []string
	for _, name := range entity.DefaultTabRoutes() {
		tabs = append(tabs, string(name))
	}
	defaults := make(map[string]string)
	for cat, path := range entity.DefaultImages() {
		defaults[string(cat)] = path
	}

	return &Config{
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		API: APIConfig{
			BaseURL:        api.DefaultBaseURL,
			DevOrigin:      defaultDevServerOrigin,
			TimeoutSeconds: defaultAPITimeoutSeconds,
		},
		Images: ImagesConfig{
			BaseURL:              images.DefaultBaseURL,
			Defaults:             defaults,
			Parallelism:          defaultImageParallelism,
			ProbeCacheSize:       defaultProbeCacheSize,
			ProbeCacheTTLSeconds: defaultProbeCacheTTL,
		},
		Navigation: NavigationConfig{
			Routes:   routes,
			Tabs:     tabs,
			MaxDepth: pagestack.DefaultMaxDepth,
		},
		Bridge: BridgeConfig{
			Script:           bridge.DefaultScriptOptions(),
			Styles:           bridge.DefaultStyles(),
			PlaceholderTitle: entity.PlaceholderTitle,
		},
		DevServer: DevServerConfig{
			Listen:            defaultDevServerListen,
			ProxyTarget:       defaultDevServerProxy,
			AllowedOrigins:    []string{"*"},
			MaxSessions:       defaultDevServerSessions,
			SessionTTLSeconds: defaultDevServerTTL,
		},
		Headless: HeadlessConfig{
			LoadTimeoutSeconds: defaultLoadTimeoutSeconds,
		},
	}
}
