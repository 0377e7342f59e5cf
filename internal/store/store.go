// Package store persists projects, their items and the status audit log on the
// local filesystem, and executes the mutation requests emitted by the view-model.
//
// Layout under the data directory:
//
//	projects/<name>/project.yaml     project and items
//	projects/<name>/history.jsonl    audit log, one JSON object per line
//	projects/<name>/view-state.yaml  collapsed folders of the tree view
//	projects/<name>/project.lock     lock file guarding writes
//
// Writes hold the project lock and replace files atomically.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/assetrack/internal/clock"
	"github.com/mrz1836/assetrack/internal/constants"
	"github.com/mrz1836/assetrack/internal/domain"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
	"github.com/mrz1836/assetrack/internal/flock"
	"github.com/mrz1836/assetrack/internal/render"
)

// Directory and file permission constants.
const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// maxProjectNameLength bounds project directory names.
const maxProjectNameLength = 64

var validProjectNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Store defines the persistence operations the CLI and TUI depend on.
type Store interface {
	// CreateProject creates an empty project. Returns ErrProjectExists if taken.
	CreateProject(ctx context.Context, name, createdBy string) (*domain.Project, error)

	// GetProject returns project metadata.
	GetProject(ctx context.Context, name string) (*domain.Project, error)

	// ListProjects returns all readable projects sorted by name.
	ListProjects(ctx context.Context) ([]*domain.Project, error)

	// ImportPaths adds one item per new path.
	ImportPaths(ctx context.Context, project, actor string, paths []string) (*ImportResult, error)

	// ListItems returns the project's items in stored order.
	ListItems(ctx context.Context, project string) ([]*domain.Item, error)

	// GetItem finds an item by ID or by path.
	GetItem(ctx context.Context, project, ref string) (*domain.Item, error)

	// Apply executes a mutation and returns the updated item (nil after a delete).
	Apply(ctx context.Context, project, actor string, m domain.Mutation) (*domain.Item, error)

	// History returns audit entries oldest first. An empty itemID returns all.
	History(ctx context.Context, project, itemID string) ([]*domain.HistoryEntry, error)

	// LoadViewState returns the saved collapse state, or defaults.
	LoadViewState(ctx context.Context, project string) (*render.CollapseState, error)

	// SaveViewState persists the collapse state.
	SaveViewState(ctx context.Context, project string, state *render.CollapseState) error
}

// projectDoc is the on-disk form of project.yaml.
type projectDoc struct {
	SchemaVersion string         `yaml:"schema_version"`
	Project       domain.Project `yaml:"project"`
	Items         []*domain.Item `yaml:"items"`
}

// FileStore implements Store on the local filesystem.
type FileStore struct {
	dataDir     string
	clock       clock.Clock
	lockTimeout time.Duration
	logger      zerolog.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithClock sets the clock used for timestamps.
func WithClock(c clock.Clock) Option {
	return func(s *FileStore) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLockTimeout sets how long writers wait for the project lock.
func WithLockTimeout(d time.Duration) Option {
	return func(s *FileStore) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *FileStore) {
		s.logger = l.With().Str("component", "store").Logger()
	}
}

// NewFileStore creates a FileStore rooted at dataDir.
// If dataDir is empty, uses the default ~/.assetrack directory.
func NewFileStore(dataDir string, opts ...Option) (*FileStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		dataDir = filepath.Join(home, constants.AssetrackHome)
	}
	s := &FileStore{
		dataDir:     dataDir,
		clock:       clock.RealClock{},
		lockTimeout: constants.DefaultLockTimeout,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DataDir returns the root directory of the store.
func (s *FileStore) DataDir() string {
	return s.dataDir
}

// ValidateProjectName checks that name is a usable directory slug.
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name %w", atlaserrors.ErrEmptyValue)
	}
	if len(name) > maxProjectNameLength || !validProjectNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", atlaserrors.ErrInvalidProjectName, name)
	}
	return nil
}

// Helper methods for path construction

func (s *FileStore) projectsDir() string {
	return filepath.Join(s.dataDir, constants.ProjectsDir)
}

func (s *FileStore) projectDir(name string) string {
	return filepath.Join(s.projectsDir(), name)
}

func (s *FileStore) projectFilePath(name string) string {
	return filepath.Join(s.projectDir(name), constants.ProjectFileName)
}

func (s *FileStore) historyFilePath(name string) string {
	return filepath.Join(s.projectDir(name), constants.HistoryFileName)
}

func (s *FileStore) viewStateFilePath(name string) string {
	return filepath.Join(s.projectDir(name), constants.ViewStateFileName)
}

func (s *FileStore) lockFilePath(name string) string {
	return filepath.Join(s.projectDir(name), constants.LockFileName)
}

// withLock runs fn while holding the project lock.
func (s *FileStore) withLock(ctx context.Context, name string, fn func() error) error {
	lock, err := flock.Acquire(ctx, s.lockFilePath(name), s.lockTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if relErr := lock.Release(); relErr != nil {
			s.logger.Warn().Err(relErr).Str("project", name).Msg("failed to release project lock")
		}
	}()
	return fn()
}

// checkProject validates name and confirms the project directory exists.
func (s *FileStore) checkProject(name string) error {
	if err := ValidateProjectName(name); err != nil {
		return err
	}
	if _, err := os.Stat(s.projectFilePath(name)); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", atlaserrors.ErrProjectNotFound, name)
	}
	return nil
}

// readDoc loads project.yaml. Callers hold the lock when they intend to write.
func (s *FileStore) readDoc(name string) (*projectDoc, error) {
	data, err := os.ReadFile(s.projectFilePath(name)) //#nosec G304 -- path is constructed from a validated name
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", atlaserrors.ErrProjectNotFound, name)
		}
		return nil, fmt.Errorf("failed to read project '%s': %w", name, err)
	}

	var doc projectDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse project '%s': %w: %w", name, atlaserrors.ErrProjectCorrupted, err)
	}
	if doc.Project.Name == "" {
		return nil, fmt.Errorf("failed to parse project '%s': %w: missing project section", name, atlaserrors.ErrProjectCorrupted)
	}
	return &doc, nil
}

func (s *FileStore) writeDoc(name string, doc *projectDoc) error {
	doc.SchemaVersion = constants.ProjectSchemaVersion
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode project '%s': %w", name, err)
	}
	if err := atomicWrite(s.projectFilePath(name), data); err != nil {
		return fmt.Errorf("failed to write project '%s': %w", name, err)
	}
	return nil
}

// atomicWrite writes data to a file atomically using write-then-rename.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

var _ Store = (*FileStore)(nil)
