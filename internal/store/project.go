package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/assetrack/internal/domain"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
)

// listConcurrency bounds parallel project file reads in ListProjects.
const listConcurrency = 4

// CreateProject creates an empty project named name.
func (s *FileStore) CreateProject(ctx context.Context, name, createdBy string) (*domain.Project, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := ValidateProjectName(name); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if err := os.MkdirAll(s.projectDir(name), dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create project directory: %w", err)
	}

	project := &domain.Project{
		ID:        newProjectID(),
		Name:      name,
		CreatedBy: createdBy,
		CreatedAt: s.clock.Now(),
	}

	err := s.withLock(ctx, name, func() error {
		if _, err := os.Stat(s.projectFilePath(name)); err == nil {
			return fmt.Errorf("%w: %s", atlaserrors.ErrProjectExists, name)
		}
		return s.writeDoc(name, &projectDoc{Project: *project, Items: []*domain.Item{}})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project '%s': %w", name, err)
	}

	s.logger.Debug().Str("project", name).Str("project_id", project.ID).Msg("project created")
	return project, nil
}

// GetProject returns project metadata.
func (s *FileStore) GetProject(ctx context.Context, name string) (*domain.Project, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := s.checkProject(name); err != nil {
		return nil, err
	}
	doc, err := s.readDoc(name)
	if err != nil {
		return nil, err
	}
	project := doc.Project
	return &project, nil
}

// ListProjects reads every project directory concurrently and returns the
// readable projects sorted by name. Unreadable projects are logged and skipped.
func (s *FileStore) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	entries, err := os.ReadDir(s.projectsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.Project{}, nil
		}
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var (
		mu       sync.Mutex
		projects = make([]*domain.Project, 0, len(entries))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for _, entry := range entries {
		if !entry.IsDir() || ValidateProjectName(entry.Name()) != nil {
			continue
		}
		name := entry.Name()
		g.Go(func() error {
			p, getErr := s.GetProject(gctx, name)
			if getErr != nil {
				if errors.Is(getErr, context.Canceled) || errors.Is(getErr, context.DeadlineExceeded) {
					return getErr
				}
				s.logger.Warn().Err(getErr).Str("project", name).Msg("skipping unreadable project")
				return nil
			}
			mu.Lock()
			projects = append(projects, p)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Name < projects[j].Name
	})
	return projects, nil
}
