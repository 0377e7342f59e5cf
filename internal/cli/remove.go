package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/assetrack/internal/domain"
	"github.com/mrz1836/assetrack/internal/tui"
	"github.com/mrz1836/assetrack/internal/viewmodel"
)

// errRemoveDeclined stops a delete the user did not confirm.
var errRemoveDeclined = stderrors.New("delete declined") //nolint:gochecknoglobals // package-local sentinel

// RemoveConfirmer asks whether to delete an item.
// Used for dependency injection in tests.
type RemoveConfirmer func(message string, defaultYes bool) (bool, error)

// AddRemoveCommand adds the rm command to the root command.
func AddRemoveCommand(root *cobra.Command) {
	var force bool

	cmd := &cobra.Command{
		Use:     "rm <project> <item>",
		Aliases: []string{"remove"},
		Short:   "Delete an item",
		Long: `Delete an item from a project. Its history rows are kept.

In a terminal you are asked to confirm; pass --force to skip the question.

Examples:
  assetrack rm website-redesign web/img/old-hero.png --force`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeArgs(argProject, argItem),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec, err := requireExecutionContext(cmd.Context())
			if err != nil {
				return err
			}
			var confirm RemoveConfirmer
			if !force && tui.IsInteractive() && !ec.JSON() {
				confirm = tui.Confirm
			}
			return runRemove(cmd.Context(), ec, cmd.OutOrStdout(), args[0], args[1], confirm)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without asking")

	root.AddCommand(cmd)
}

// runRemove deletes ref. A nil confirm deletes without asking.
func runRemove(ctx context.Context, ec *ExecutionContext, w io.Writer, project, ref string, confirm RemoveConfirmer) error {
	var target string
	err := applyItemEdit(ctx, ec, w, project, ref, func(s *viewmodel.Session, it *domain.Item) (domain.Mutation, error) {
		target = it.Path
		if confirm != nil {
			ok, err := confirm(fmt.Sprintf("Delete %s?", it.Path), false)
			if err != nil {
				return domain.Mutation{}, err
			}
			if !ok {
				return domain.Mutation{}, errRemoveDeclined
			}
		}
		return requested(s.RequestDelete(it.ID))
	}, func(deleted *domain.Item) string {
		return fmt.Sprintf("Deleted %s", deleted.Path)
	})

	if stderrors.Is(err, errRemoveDeclined) {
		ec.Output(w).Info(fmt.Sprintf("Kept %s", target))
		return nil
	}
	return err
}
