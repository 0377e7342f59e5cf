package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/assetrack/internal/constants"
	"github.com/mrz1836/assetrack/internal/errors"
)

// GlobalConfigDir returns the path to the global assetrack directory.
// This is typically ~/.assetrack on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.AssetrackHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
// This is always .assetrack.yaml in the current directory.
func ProjectConfigPath() string {
	return constants.ProjectConfigName
}

// ResolveDataDir returns cfg's data directory, falling back to ~/.assetrack.
func ResolveDataDir(cfg *Config) (string, error) {
	if cfg != nil && cfg.Storage.DataDir != "" {
		return expandHome(cfg.Storage.DataDir)
	}
	return GlobalConfigDir()
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) (string, error) {
	if len(path) < 2 || path[:2] != "~/" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, path[2:]), nil
}
