package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/assetrack/internal/domain"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
	"github.com/mrz1836/assetrack/internal/pipeline"
	"github.com/mrz1836/assetrack/internal/viewmodel"
)

// AddAssignCommand adds the assign command to the root command.
func AddAssignCommand(root *cobra.Command) {
	var clearAssignee bool

	cmd := &cobra.Command{
		Use:   "assign <project> <item> [assignee]",
		Short: "Set or clear an item's assignee",
		Long: `Set or clear who is responsible for an item. The assignee is free text,
usually an email address; 'tree --mine' matches it against your identity.

Examples:
  assetrack assign website-redesign web/img/hero.png dana@example.com
  assetrack assign website-redesign web/img/hero.png --clear`,
		Args:              cobra.RangeArgs(2, 3),
		ValidArgsFunction: completeArgs(argProject, argItem),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec, err := requireExecutionContext(cmd.Context())
			if err != nil {
				return err
			}

			var assignee *string
			switch {
			case clearAssignee && len(args) == 3:
				return atlaserrors.NewExitCode2Error(fmt.Errorf("%w: pass an assignee or --clear, not both", atlaserrors.ErrInvalidArgument))
			case !clearAssignee && len(args) == 2:
				return atlaserrors.NewExitCode2Error(fmt.Errorf("%w: missing assignee (or use --clear)", atlaserrors.ErrInvalidArgument))
			case !clearAssignee:
				assignee = &args[2]
			}
			return runAssign(cmd.Context(), ec, cmd.OutOrStdout(), args[0], args[1], assignee)
		},
	}

	cmd.Flags().BoolVar(&clearAssignee, "clear", false, "remove the assignee")

	root.AddCommand(cmd)
}

func runAssign(ctx context.Context, ec *ExecutionContext, w io.Writer, project, ref string, assignee *string) error {
	return applyItemEdit(ctx, ec, w, project, ref, func(s *viewmodel.Session, it *domain.Item) (domain.Mutation, error) {
		return requested(s.RequestAssignee(it.ID, assignee))
	}, func(updated *domain.Item) string {
		if updated.Assignee == nil {
			return fmt.Sprintf("%s: assignee cleared", updated.Path)
		}
		return fmt.Sprintf("%s: assigned to %s", updated.Path, *updated.Assignee)
	})
}

// applyItemEdit resolves ref, asks the session for the mutation built by
// request, applies it and reports the result. describe receives the updated
// item, or the original item after a delete.
func applyItemEdit(
	ctx context.Context,
	ec *ExecutionContext,
	w io.Writer,
	project, ref string,
	request func(*viewmodel.Session, *domain.Item) (domain.Mutation, error),
	describe func(*domain.Item) string,
) error {
	s, err := openSession(ctx, ec, project, pipeline.Query{})
	if err != nil {
		return err
	}
	it, err := resolveItem(s, ref)
	if err != nil {
		return err
	}

	m, err := request(s, it)
	if err != nil {
		return err
	}

	updated, err := ec.Store.Apply(ctx, project, ec.Actor(), m)
	if err != nil {
		return err
	}
	if updated == nil {
		updated = it
	}

	out := ec.Output(w)
	if ec.JSON() {
		return out.JSON(struct {
			Mutation domain.Mutation `json:"mutation"`
			Item     *domain.Item    `json:"item"`
		}{Mutation: m, Item: updated})
	}
	out.Success(describe(updated))
	return nil
}

// requested converts a session request result into an error return.
func requested(m domain.Mutation, ok bool) (domain.Mutation, error) {
	if !ok {
		return domain.Mutation{}, fmt.Errorf("%w: %s", atlaserrors.ErrItemNotFound, m.ItemID)
	}
	return m, nil
}
