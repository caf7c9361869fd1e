package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "relative api url", mutate: func(c *Config) { c.API.BaseURL = "/api" }, wantErr: "api.base_url"},
		{name: "dev origin checked in dev mode", mutate: func(c *Config) {
			c.API.Dev = true
			c.API.DevOrigin = "localhost"
		}, wantErr: "api.dev_origin"},
		{name: "relative image default", mutate: func(c *Config) { c.Images.Defaults["banner"] = "x.jpg" }, wantErr: "images.defaults.banner"},
		{name: "negative probe cache", mutate: func(c *Config) { c.Images.ProbeCacheSize = -1 }, wantErr: "images.probe_cache_size"},
		{name: "route without slash", mutate: func(c *Config) { c.Navigation.Routes["home"] = "pages/index" }, wantErr: "navigation.routes.home"},
		{name: "zero depth", mutate: func(c *Config) { c.Navigation.MaxDepth = 0 }, wantErr: "navigation.max_depth"},
		{name: "bad host object", mutate: func(c *Config) { c.Bridge.Script.HostObject = "a..b" }, wantErr: "bridge.script.host_object"},
		{name: "bad colour", mutate: func(c *Config) { c.Bridge.Styles.Progress.Color = "red" }, wantErr: "bridge.styles.progress.color"},
		{name: "empty listen", mutate: func(c *Config) { c.DevServer.Listen = "" }, wantErr: "dev_server.listen"},
		{name: "no sessions", mutate: func(c *Config) { c.DevServer.MaxSessions = 0 }, wantErr: "dev_server.max_sessions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
