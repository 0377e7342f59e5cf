package constants

// Log file names.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.assetrack/logs/assetrack.log
	CLILogFileName = "assetrack.log"
)

// Configuration file names.
const (
	// GlobalConfigName is the name of the global configuration file.
	// This file is located in the assetrack home directory.
	GlobalConfigName = "config.yaml"

	// ProjectConfigName is the name of the project-specific configuration file.
	// This file is located in the current working directory.
	ProjectConfigName = ".assetrack.yaml"
)

// EnvPrefix is the prefix for environment variable overrides (ASSETRACK_*).
const EnvPrefix = "ASSETRACK"
