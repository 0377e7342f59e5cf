package config

import (
	"slices"
	"time"

	"github.com/mrz1836/assetrack/internal/constants"
	"github.com/mrz1836/assetrack/internal/errors"
)

// Validation bounds.
const (
	minLockTimeout = 100 * time.Millisecond
	maxLockTimeout = 5 * time.Minute
	minViewWidth   = 40
	maxViewWidth   = 400
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - storage.lock_timeout must be between 100ms and 5m
//   - view.default_sort must be a known sort key
//   - view.width must be 0 or between 40 and 400
//   - log.max_size_mb must be between 1 and 1024
//   - log.max_backups must be between 0 and 100
//   - log.max_age_days must be between 0 and 365
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateStorageConfig(&cfg.Storage); err != nil {
		return err
	}

	if err := validateViewConfig(&cfg.View); err != nil {
		return err
	}

	return validateLogConfig(&cfg.Log)
}

func validateStorageConfig(cfg *StorageConfig) error {
	if cfg.LockTimeout < minLockTimeout || cfg.LockTimeout > maxLockTimeout {
		return errors.Wrapf(errors.ErrConfigInvalidStorage,
			"storage.lock_timeout must be between %s and %s, got %s", minLockTimeout, maxLockTimeout, cfg.LockTimeout)
	}
	return nil
}

func validateViewConfig(cfg *ViewConfig) error {
	if !slices.Contains(constants.ValidSortNames(), cfg.DefaultSort) {
		return errors.Wrapf(errors.ErrInvalidSortKey,
			"view.default_sort must be one of %v, got %q", constants.ValidSortNames(), cfg.DefaultSort)
	}

	if cfg.Width != 0 && (cfg.Width < minViewWidth || cfg.Width > maxViewWidth) {
		return errors.Wrapf(errors.ErrConfigInvalidView,
			"view.width must be 0 or between %d and %d, got %d", minViewWidth, maxViewWidth, cfg.Width)
	}
	return nil
}

func validateLogConfig(cfg *LogConfig) error {
	if cfg.MaxSizeMB < 1 || cfg.MaxSizeMB > 1024 {
		return errors.Wrapf(errors.ErrConfigInvalidLog,
			"log.max_size_mb must be between 1 and 1024, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups < 0 || cfg.MaxBackups > 100 {
		return errors.Wrapf(errors.ErrConfigInvalidLog,
			"log.max_backups must be between 0 and 100, got %d", cfg.MaxBackups)
	}
	if cfg.MaxAgeDays < 0 || cfg.MaxAgeDays > 365 {
		return errors.Wrapf(errors.ErrConfigInvalidLog,
			"log.max_age_days must be between 0 and 365, got %d", cfg.MaxAgeDays)
	}
	return nil
}
