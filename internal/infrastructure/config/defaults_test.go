package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "https://chyxe.cn/chaoxe-api", cfg.API.BaseURL)
	assert.Equal(t, "https://chyxe.cn/app/assets/images", cfg.Images.BaseURL)
	assert.Equal(t, []string{"home", "service"}, cfg.Navigation.Tabs)
	assert.Equal(t, "/static/banner-default.jpg", cfg.Images.Defaults["banner"])
	assert.True(t, cfg.Bridge.Script.ScrollFix)
	assert.Equal(t, "详情", cfg.Bridge.PlaceholderTitle)

	require.NoError(t, validateConfig(cfg))
}
