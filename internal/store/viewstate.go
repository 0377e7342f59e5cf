package store

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/assetrack/internal/render"
)

// LoadViewState returns the saved collapse state. A missing file yields the
// default state. A corrupt file also yields the default state, together with
// the parse error so the caller can report it.
func (s *FileStore) LoadViewState(ctx context.Context, project string) (*render.CollapseState, error) {
	select {
	case <-ctx.Done():
		return render.NewCollapseState(), ctx.Err()
	default:
	}

	if err := s.checkProject(project); err != nil {
		return render.NewCollapseState(), err
	}

	data, err := os.ReadFile(s.viewStateFilePath(project)) //#nosec G304 -- path is constructed internally
	if err != nil {
		if os.IsNotExist(err) {
			return render.NewCollapseState(), nil
		}
		return render.NewCollapseState(), fmt.Errorf("failed to read view state for '%s': %w", project, err)
	}

	state := render.NewCollapseState()
	if err := yaml.Unmarshal(data, state); err != nil {
		return render.NewCollapseState(), fmt.Errorf("failed to parse view state for '%s': %w", project, err)
	}
	return state, nil
}

// SaveViewState persists state under the project lock.
func (s *FileStore) SaveViewState(ctx context.Context, project string, state *render.CollapseState) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := s.checkProject(project); err != nil {
		return err
	}
	if state == nil {
		state = render.NewCollapseState()
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode view state: %w", err)
	}
	return s.withLock(ctx, project, func() error {
		return atomicWrite(s.viewStateFilePath(project), data)
	})
}
