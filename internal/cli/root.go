// Package cli provides the command-line interface for assetrack.
//
// Every subcommand receives an ExecutionContext (merged configuration, the
// project store and the output format) resolved once by the root command's
// PersistentPreRunE. Handlers are split into a cobra wrapper and a run function
// taking the ExecutionContext, so tests drive them against a temporary store.
package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/assetrack/internal/errors"
	"github.com/mrz1836/assetrack/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the initialized logger for use by subcommands.
// It is set during PersistentPreRunE and should be accessed via GetLogger.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// IMPORTANT: This function MUST only be called after the root command's
// PersistentPreRunE has executed. Calling it before initialization returns a
// zero-value logger that discards all log output.
//
// This function is safe for concurrent use.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd creates and returns the root command for the assetrack CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "assetrack",
		Short: "Track delivery of project assets, folder by folder",
		Long: `assetrack tracks the files a project is waiting on. Import a list of asset
paths, then follow each one from pending to received to implemented in a
collapsible folder tree.

Features:
  • Folder tree built from slash-delimited paths, with per-folder counts
  • Search, "assigned to me" and high-churn filters, four sort orders
  • Moving an asset back to an earlier status asks for a written reason
  • Interactive browser with optimistic updates`,
		Version: formatVersion(info),
		// RunE displays help so PersistentPreRunE still validates flags.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			cfg, err := LoadConfig(cmd.Context(), flags)
			if err != nil {
				return err
			}

			logger := InitLogger(flags.Verbose, flags.Quiet, cfg.Log)
			globalLoggerMu.Lock()
			globalLogger = logger
			globalLoggerMu.Unlock()

			ec, err := newExecutionContext(cfg, flags.Output, logger)
			if err != nil {
				return err
			}
			cmd.SetContext(WithExecutionContext(cmd.Context(), ec))

			logger.Debug().
				Str("data_dir", ec.DataDir).
				Str("identity", ec.Identity()).
				Str("command", cmd.CommandPath()).
				Msg("command context resolved")
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)

	AddProjectCommand(cmd)
	AddImportCommand(cmd)
	AddTreeCommand(cmd)
	AddStatusCommand(cmd)
	AddAssignCommand(cmd)
	AddNoteCommand(cmd)
	AddRemoveCommand(cmd)
	AddHistoryCommand(cmd)
	AddShowCommand(cmd)
	AddBrowseCommand(cmd)
	AddConfigCommand(cmd)
	AddCompletionCommand(cmd)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	defer CloseLogFile()
	return cmd.ExecuteContext(ctx)
}

// ReportError prints err to w with its user-facing message and suggested
// action. The original error text follows in parentheses when the message
// replaced it.
func ReportError(w io.Writer, err error) {
	if err == nil {
		return
	}
	ae := tui.FromError(err)
	if ae.Message != err.Error() {
		ae = ae.WithContext(err.Error())
	}
	tui.NewOutput(w, tui.FormatText).Error(ae)
}
