package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/mrz1836/assetrack/internal/config"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
	"github.com/mrz1836/assetrack/internal/store"
	"github.com/mrz1836/assetrack/internal/tui"
)

// unknownActor is recorded in history when no identity is configured.
const unknownActor = "unknown"

// ExecutionContext holds the resolved configuration and store for one command run.
type ExecutionContext struct {
	// Config is the merged configuration with flag overrides applied.
	Config *config.Config

	// DataDir is the resolved store root.
	DataDir string

	// Store is the project store rooted at DataDir.
	Store *store.FileStore

	// OutputFormat is "text" or "json".
	OutputFormat string

	// Logger is the CLI logger.
	Logger zerolog.Logger
}

// executionContextKey is the context key for ExecutionContext.
type executionContextKey struct{}

// LoadConfig loads configuration with the global flag overrides applied.
//
// Precedence, highest first:
//   - --identity and --data-dir flags
//   - ASSETRACK_* environment variables
//   - project config (./.assetrack.yaml)
//   - global config (~/.assetrack/config.yaml)
//   - built-in defaults
func LoadConfig(ctx context.Context, flags *GlobalFlags) (*config.Config, error) {
	overrides := &config.Config{
		Identity: config.IdentityConfig{Email: flags.Identity},
		Storage:  config.StorageConfig{DataDir: flags.DataDir},
	}

	cfg, err := config.LoadWithOverrides(ctx, overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newExecutionContext opens the store described by cfg.
func newExecutionContext(cfg *config.Config, outputFormat string, logger zerolog.Logger) (*ExecutionContext, error) {
	dataDir, err := config.ResolveDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}

	s, err := store.NewFileStore(dataDir,
		store.WithLockTimeout(cfg.Storage.LockTimeout),
		store.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return &ExecutionContext{
		Config:       cfg,
		DataDir:      dataDir,
		Store:        s,
		OutputFormat: outputFormat,
		Logger:       logger,
	}, nil
}

// WithExecutionContext returns a new context with the ExecutionContext attached.
func WithExecutionContext(ctx context.Context, ec *ExecutionContext) context.Context {
	return context.WithValue(ctx, executionContextKey{}, ec)
}

// GetExecutionContext retrieves the ExecutionContext from the context.
// Returns nil if no execution context was set.
func GetExecutionContext(ctx context.Context) *ExecutionContext {
	ec, _ := ctx.Value(executionContextKey{}).(*ExecutionContext)
	return ec
}

// requireExecutionContext is GetExecutionContext for command handlers.
func requireExecutionContext(ctx context.Context) (*ExecutionContext, error) {
	ec := GetExecutionContext(ctx)
	if ec == nil {
		return nil, atlaserrors.Wrap(atlaserrors.ErrConfigNil, "command context not initialized")
	}
	return ec, nil
}

// Identity returns the configured identity, possibly empty.
func (ec *ExecutionContext) Identity() string {
	return ec.Config.Identity.Email
}

// Actor returns the name recorded as the author of changes.
func (ec *ExecutionContext) Actor() string {
	if id := ec.Identity(); id != "" {
		return id
	}
	return unknownActor
}

// JSON reports whether machine-readable output was requested.
func (ec *ExecutionContext) JSON() bool {
	return ec.OutputFormat == OutputJSON
}

// Output returns a tui.Output writing to w in the requested format.
func (ec *ExecutionContext) Output(w io.Writer) tui.Output {
	return tui.NewOutput(w, ec.OutputFormat)
}
