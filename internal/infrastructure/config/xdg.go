package config

import (
	"os"
	"path/filepath"
)

const (
	appName        = "chaoxe"
	configFileName = "config.toml"
	schemaFileName = "config.schema.json"

	dirPerm  = 0o755
	filePerm = 0o644
)

// GetConfigDir returns $XDG_CONFIG_HOME/chaoxe (default ~/.config/chaoxe).
// With ENV=dev it returns .dev/chaoxe under the working directory.
func GetConfigDir() (string, error) {
	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(cwd, ".dev", appName), nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, appName), nil
}

// GetConfigFile returns the path of the main configuration file.
func GetConfigFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFileName), nil
}

// GetDataHome returns $XDG_DATA_HOME (default ~/.local/share).
func GetDataHome() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return dataHome, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share"), nil
}

// GetManDir returns the per-user section 1 man page directory.
func GetManDir() (string, error) {
	dataHome, err := GetDataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataHome, "man", "man1"), nil
}
