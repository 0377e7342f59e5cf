// Package config provides configuration management for assetrack with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (ASSETRACK_* prefix)
//  3. Project config (./.assetrack.yaml)
//  4. Global config (~/.assetrack/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for assetrack.
type Config struct {
	// Identity describes the current user.
	Identity IdentityConfig `yaml:"identity" mapstructure:"identity"`

	// Storage contains settings for the project store.
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// View contains settings for the tree view and browser.
	View ViewConfig `yaml:"view" mapstructure:"view"`

	// Log contains settings for the rotating log file.
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// IdentityConfig describes who is running assetrack.
type IdentityConfig struct {
	// Email is recorded as the actor of every change and matched by the
	// "mine" filter against item assignees. Empty disables that filter.
	Email string `yaml:"email" mapstructure:"email"`
}

// StorageConfig contains settings for the on-disk project store.
type StorageConfig struct {
	// DataDir is the store root. Empty means ~/.assetrack.
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// LockTimeout is how long a write waits for the project lock.
	// Default: 5s, Valid range: 100ms-5m
	LockTimeout time.Duration `yaml:"lock_timeout" mapstructure:"lock_timeout"`
}

// ViewConfig contains settings for tree output.
type ViewConfig struct {
	// DefaultSort is the sort key used when --sort is not given.
	// Default: "folder"
	DefaultSort string `yaml:"default_sort" mapstructure:"default_sort"`

	// Width caps the rendered row width. Zero uses the terminal width.
	// Valid: 0 or 40-400
	Width int `yaml:"width" mapstructure:"width"`

	// ShowProgress prints a completion bar under the tree.
	// Default: true
	ShowProgress bool `yaml:"show_progress" mapstructure:"show_progress"`
}

// LogConfig contains rotation settings for the CLI log file.
type LogConfig struct {
	// MaxSizeMB is the size at which the log file rotates.
	// Default: 10, Valid range: 1-1024
	MaxSizeMB int `yaml:"max_size_mb" mapstructure:"max_size_mb"`

	// MaxBackups is the number of rotated files kept.
	// Default: 3, Valid range: 0-100
	MaxBackups int `yaml:"max_backups" mapstructure:"max_backups"`

	// MaxAgeDays is how long rotated files are kept.
	// Default: 28, Valid range: 0-365
	MaxAgeDays int `yaml:"max_age_days" mapstructure:"max_age_days"`
}
