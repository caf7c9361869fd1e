package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	dir       string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// ManagerOption customises a Manager.
type ManagerOption func(*Manager)

// WithConfigDir reads and creates config.toml in dir instead of the XDG
// config directory.
func WithConfigDir(dir string) ManagerOption {
	return func(m *Manager) {
		m.dir = dir
	}
}

// NewManager creates a new configuration manager.
func NewManager(opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		viper:     viper.New(),
		callbacks: make([]func(*Config), 0),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.dir == "" {
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		m.dir = configDir
	}

	v := m.viper
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(m.dir)
	v.AddConfigPath(".")

	// CHAOXE_API_BASE_URL, CHAOXE_DEV_SERVER_LISTEN, ...
	v.SetEnvPrefix("CHAOXE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "CHAOXE_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind CHAOXE_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "CHAOXE_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind CHAOXE_LOG_FORMAT: %w", err)
	}

	return m, nil
}

// Load loads the configuration from file and environment variables. A
// missing file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile = filepath.Join(m.dir, configFileName)
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			m.dir,
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	switch strings.ToLower(config.Logging.Format) {
	case "json":
		config.Logging.Format = "json"
	default:
		config.Logging.Format = defaultLogFormat
	}

	config.API.BaseURL = strings.TrimRight(strings.TrimSpace(config.API.BaseURL), "/")
	config.Images.BaseURL = strings.TrimRight(strings.TrimSpace(config.Images.BaseURL), "/")
	config.DevServer.ProxyTarget = strings.TrimRight(strings.TrimSpace(config.DevServer.ProxyTarget), "/")
	config.Bridge.Script.HostObject = strings.TrimSpace(config.Bridge.Script.HostObject)

	if config.API.TimeoutSeconds <= 0 {
		config.API.TimeoutSeconds = defaultAPITimeoutSeconds
	}
	if config.Images.Parallelism <= 0 {
		config.Images.Parallelism = defaultImageParallelism
	}
	if config.Headless.LoadTimeoutSeconds <= 0 {
		config.Headless.LoadTimeoutSeconds = defaultLoadTimeoutSeconds
	}
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(m.dir, configFileName)
}

// createDefaultConfig writes the defaults and their JSON schema to the
// config directory.
func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(m.dir, dirPerm); err != nil {
		return err
	}

	configFile := filepath.Join(m.dir, configFileName)
	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return err
	}
	if err := GenerateSchemaFile(filepath.Join(m.dir, schemaFileName)); err != nil {
		return err
	}
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setLoggingDefaults(defaults)
	m.setAPIDefaults(defaults)
	m.setImagesDefaults(defaults)
	m.setNavigationDefaults(defaults)
	m.setBridgeDefaults(defaults)
	m.setDevServerDefaults(defaults)
	m.setHeadlessDefaults(defaults)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}

func (m *Manager) setAPIDefaults(defaults *Config) {
	m.viper.SetDefault("api.base_url", defaults.API.BaseURL)
	m.viper.SetDefault("api.dev", defaults.API.Dev)
	m.viper.SetDefault("api.dev_origin", defaults.API.DevOrigin)
	m.viper.SetDefault("api.timeout_seconds", defaults.API.TimeoutSeconds)
}

func (m *Manager) setImagesDefaults(defaults *Config) {
	m.viper.SetDefault("images.base_url", defaults.Images.BaseURL)
	m.viper.SetDefault("images.defaults", defaults.Images.Defaults)
	m.viper.SetDefault("images.parallelism", defaults.Images.Parallelism)
	m.viper.SetDefault("images.probe_cache_size", defaults.Images.ProbeCacheSize)
	m.viper.SetDefault("images.probe_cache_ttl_seconds", defaults.Images.ProbeCacheTTLSeconds)
}

func (m *Manager) setNavigationDefaults(defaults *Config) {
	m.viper.SetDefault("navigation.routes", defaults.Navigation.Routes)
	m.viper.SetDefault("navigation.tabs", defaults.Navigation.Tabs)
	m.viper.SetDefault("navigation.max_depth", defaults.Navigation.MaxDepth)
}

func (m *Manager) setBridgeDefaults(defaults *Config) {
	s := defaults.Bridge.Styles
	m.viper.SetDefault("bridge.script.host_object", defaults.Bridge.Script.HostObject)
	m.viper.SetDefault("bridge.script.scroll_fix", defaults.Bridge.Script.ScrollFix)
	m.viper.SetDefault("bridge.placeholder_title", defaults.Bridge.PlaceholderTitle)
	m.viper.SetDefault("bridge.styles.progress.color", s.Progress.Color)
	m.viper.SetDefault("bridge.styles.scroll_enabled", s.ScrollEnabled)
	m.viper.SetDefault("bridge.styles.scales_page_to_fit", s.ScalesPageToFit)
	m.viper.SetDefault("bridge.styles.user_interaction_enabled", s.UserInteractionEnabled)
	m.viper.SetDefault("bridge.styles.allows_inline_media_playback", s.AllowsInlineMediaPlayback)
	m.viper.SetDefault("bridge.styles.allows_airplay_for_media_playback", s.AllowsAirPlayForMediaPlayback)
	m.viper.SetDefault("bridge.styles.allows_picture_in_picture_media_playback", s.AllowsPictureInPictureMediaPlayback)
	m.viper.SetDefault("bridge.styles.allows_link_preview", s.AllowsLinkPreview)
}

func (m *Manager) setDevServerDefaults(defaults *Config) {
	m.viper.SetDefault("dev_server.listen", defaults.DevServer.Listen)
	m.viper.SetDefault("dev_server.proxy_target", defaults.DevServer.ProxyTarget)
	m.viper.SetDefault("dev_server.allowed_origins", defaults.DevServer.AllowedOrigins)
	m.viper.SetDefault("dev_server.max_sessions", defaults.DevServer.MaxSessions)
	m.viper.SetDefault("dev_server.session_ttl_seconds", defaults.DevServer.SessionTTLSeconds)
}

func (m *Manager) setHeadlessDefaults(defaults *Config) {
	m.viper.SetDefault("headless.exec_path", defaults.Headless.ExecPath)
	m.viper.SetDefault("headless.show_window", defaults.Headless.ShowWindow)
	m.viper.SetDefault("headless.load_timeout_seconds", defaults.Headless.LoadTimeoutSeconds)
}
