package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateAPI(config)...)
	validationErrors = append(validationErrors, validateImages(config)...)
	validationErrors = append(validationErrors, validateNavigation(config)...)
	validationErrors = append(validationErrors, validateBridge(config)...)
	validationErrors = append(validationErrors, validateDevServer(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateLogging(config *Config) []string {
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "none", "off":
		return nil
	default:
		return []string{fmt.Sprintf("logging.level %q is not a known level", config.Logging.Level)}
	}
}

func validateAbsoluteURL(field, raw string) []string {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return []string{fmt.Sprintf("%s must be an absolute http(s) URL, got %q", field, raw)}
	}
	return nil
}

func validateAPI(config *Config) []string {
	var validationErrors []string
	validationErrors = append(validationErrors, validateAbsoluteURL("api.base_url", config.API.BaseURL)...)
	if config.API.Dev {
		validationErrors = append(validationErrors, validateAbsoluteURL("api.dev_origin", config.API.DevOrigin)...)
	}
	return validationErrors
}

func validateImages(config *Config) []string {
	var validationErrors []string
	validationErrors = append(validationErrors, validateAbsoluteURL("images.base_url", config.Images.BaseURL)...)
	if config.Images.ProbeCacheSize < 0 {
		validationErrors = append(validationErrors, "images.probe_cache_size must not be negative")
	}
	if config.Images.ProbeCacheTTLSeconds < 0 {
		validationErrors = append(validationErrors, "images.probe_cache_ttl_seconds must not be negative")
	}
	for cat, path := range config.Images.Defaults {
		if path != "" && !strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "http") {
			validationErrors = append(validationErrors,
				fmt.Sprintf("images.defaults.%s must be an absolute path or URL, got %q", cat, path))
		}
	}
	return validationErrors
}

func validateNavigation(config *Config) []string {
	var validationErrors []string
	if config.Navigation.MaxDepth < 1 {
		validationErrors = append(validationErrors, "navigation.max_depth must be at least 1")
	}
	for name, path := range config.Navigation.Routes {
		if !strings.HasPrefix(path, "/") {
			validationErrors = append(validationErrors,
				fmt.Sprintf("navigation.routes.%s must start with '/', got %q", name, path))
		}
	}
	return validationErrors
}

func validateBridge(config *Config) []string {
	if err := config.Bridge.Script.Validate(); err != nil {
		return []string{fmt.Sprintf("bridge.script.host_object: %v", err)}
	}
	if c := config.Bridge.Styles.Progress.Color; c != "" && !strings.HasPrefix(c, "#") {
		return []string{fmt.Sprintf("bridge.styles.progress.color must be a hex colour, got %q", c)}
	}
	return nil
}

func validateDevServer(config *Config) []string {
	var validationErrors []string
	if config.DevServer.Listen == "" {
		validationErrors = append(validationErrors, "dev_server.listen must not be empty")
	}
	validationErrors = append(validationErrors, validateAbsoluteURL("dev_server.proxy_target", config.DevServer.ProxyTarget)...)
	if config.DevServer.MaxSessions < 1 {
		validationErrors = append(validationErrors, "dev_server.max_sessions must be at least 1")
	}
	if config.DevServer.SessionTTLSeconds < 1 {
		validationErrors = append(validationErrors, "dev_server.session_ttl_seconds must be at least 1")
	}
	return validationErrors
}
