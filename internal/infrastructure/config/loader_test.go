package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, "wx.miniProgram", mgr.viper.GetString("bridge.script.host_object"))
	assert.Equal(t, "#FE2741", mgr.viper.GetString("bridge.styles.progress.color"))
	assert.Equal(t, "/pages/webview/webview", mgr.viper.GetStringMapString("navigation.routes")["webview"])
}

func TestManager_LoadCreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir))
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	assert.FileExists(t, filepath.Join(dir, "config.toml"))
	assert.FileExists(t, filepath.Join(dir, "config.schema.json"))

	cfg := mgr.Get()
	defaults := DefaultConfig()
	assert.Equal(t, defaults.API.BaseURL, cfg.API.BaseURL)
	assert.Equal(t, defaults.Images.BaseURL, cfg.Images.BaseURL)
	assert.Equal(t, defaults.Navigation.MaxDepth, cfg.Navigation.MaxDepth)
	assert.Equal(t, defaults.Bridge.Script, cfg.Bridge.Script)
	assert.Equal(t, defaults.Bridge.Styles, cfg.Bridge.Styles)
	assert.Equal(t, "/pages/index/index", cfg.Navigation.Routes["home"])
}

func TestManager_LoadReadsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := `[api]
base_url = "https://api.example.com/"
timeout_seconds = 3

[bridge.script]
host_object = "my.host"
scroll_fix = false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))
	t.Setenv("CHAOXE_LOG_LEVEL", "DEBUG")
	t.Setenv("CHAOXE_DEV_SERVER_LISTEN", "0.0.0.0:9000")

	mgr, err := NewManager(WithConfigDir(dir))
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 3, cfg.API.TimeoutSeconds)
	assert.Equal(t, "my.host", cfg.Bridge.Script.HostObject)
	assert.False(t, cfg.Bridge.Script.ScrollFix)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "0.0.0.0:9000", cfg.DevServer.Listen)
	assert.Equal(t, filepath.Join(dir, "config.toml"), mgr.GetConfigFile())
}

func TestManager_LoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	content := `[bridge.script]
host_object = "wx.mini-program"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	mgr, err := NewManager(WithConfigDir(dir))
	require.NoError(t, err)

	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bridge.script.host_object")
}

func TestManager_GetBeforeLoadReturnsDefaults(t *testing.T) {
	mgr, err := NewManager(WithConfigDir(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().API.BaseURL, mgr.Get().API.BaseURL)
}

func TestManager_WatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[images]\nparallelism = 2\n"), 0o600))

	mgr, err := NewManager(WithConfigDir(dir))
	require.NoError(t, err)
	require.NoError(t, mgr.Load())
	require.Equal(t, 2, mgr.Get().Images.Parallelism)

	changed := make(chan *Config, 16)
	mgr.OnConfigChange(func(c *Config) {
		select {
		case changed <- c:
		default:
		}
	})
	require.NoError(t, mgr.Watch())
	require.NoError(t, mgr.Watch())

	require.NoError(t, os.WriteFile(path, []byte("[images]\nparallelism = 5\n"), 0o600))

	// A rewrite can surface as several events; wait for the final content.
	deadline := time.After(5 * time.Second)
	for observed := false; !observed; {
		select {
		case c := <-changed:
			observed = c.Images.Parallelism == 5
		case <-deadline:
			t.Fatal("config change not observed")
		}
	}
	assert.Eventually(t, func() bool { return mgr.Get().Images.Parallelism == 5 }, time.Second, 10*time.Millisecond)
}

func TestNormalizeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Format = "JSON"
	cfg.Logging.Level = " "
	cfg.API.TimeoutSeconds = 0
	cfg.Images.BaseURL = "https://img.example.com/"

	normalizeConfig(cfg)

	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, defaultAPITimeoutSeconds, cfg.API.TimeoutSeconds)
	assert.Equal(t, "https://img.example.com", cfg.Images.BaseURL)
}
