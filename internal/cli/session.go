package cli

import (
	"context"
	"fmt"

	"github.com/mrz1836/assetrack/internal/constants"
	"github.com/mrz1836/assetrack/internal/domain"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
	"github.com/mrz1836/assetrack/internal/pipeline"
	"github.com/mrz1836/assetrack/internal/render"
	"github.com/mrz1836/assetrack/internal/store"
	"github.com/mrz1836/assetrack/internal/transition"
	"github.com/mrz1836/assetrack/internal/viewmodel"
)

// openSession loads a project's items into a fresh view-model session seeded
// with the saved collapse state.
func openSession(ctx context.Context, ec *ExecutionContext, project string, q pipeline.Query) (*viewmodel.Session, error) {
	items, err := ec.Store.ListItems(ctx, project)
	if err != nil {
		return nil, err
	}

	state, err := ec.Store.LoadViewState(ctx, project)
	if err != nil {
		ec.Logger.Warn().Err(err).Str("project", project).Msg("ignoring unreadable view state")
		state = render.NewCollapseState()
	}

	q.Identity = ec.Identity()
	s := viewmodel.New(
		viewmodel.WithLogger(ec.Logger),
		viewmodel.WithCollapseState(state),
		viewmodel.WithQuery(q),
	)
	s.SetItems(items)
	return s, nil
}

// resolveItem finds ref (an ID or a path) among the session's items.
func resolveItem(s *viewmodel.Session, ref string) (*domain.Item, error) {
	it := store.FindItem(s.Items(), ref)
	if it == nil {
		return nil, fmt.Errorf("%w: %s", atlaserrors.ErrItemNotFound, ref)
	}
	return it, nil
}

// parseStatusArg parses a status argument, marking failures as invalid input.
func parseStatusArg(raw string) (constants.ItemStatus, error) {
	status, err := transition.ParseStatus(raw)
	if err != nil {
		return "", atlaserrors.NewExitCode2Error(err)
	}
	return status, nil
}

// rejection converts a rejected outcome into an invalid-input error.
func rejection(out transition.Outcome) error {
	cause := out.Cause
	if cause == nil {
		cause = atlaserrors.ErrInvalidArgument
	}
	return atlaserrors.NewExitCode2Error(fmt.Errorf("%w: %s", cause, out.Reason))
}
