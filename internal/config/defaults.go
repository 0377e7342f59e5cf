package config

import (
	"github.com/mrz1836/assetrack/internal/constants"
)

// Default log rotation settings.
const (
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)

// DefaultConfig returns a new Config with default values.
// These defaults are used as the base layer that can be overridden by
// config files, environment variables, and CLI flags.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			// DataDir: empty resolves to ~/.assetrack in the store.
			LockTimeout: constants.DefaultLockTimeout,
		},
		View: ViewConfig{
			DefaultSort:  constants.SortFolder,
			ShowProgress: true,
		},
		Log: LogConfig{
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			MaxAgeDays: DefaultLogMaxAgeDays,
		},
	}
}
