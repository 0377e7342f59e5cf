package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/assetrack/internal/domain"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
	"github.com/mrz1836/assetrack/internal/tui"
	"github.com/mrz1836/assetrack/internal/viewmodel"
)

// NoteEditor opens an editor prefilled with the current note and returns the
// edited text. Used for dependency injection in tests.
type NoteEditor func(prompt, initial string) (string, error)

// AddNoteCommand adds the note command to the root command.
func AddNoteCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "note <project> <item> [text]...",
		Short: "Replace an item's note",
		Long: `Replace an item's free-text note. Remaining arguments are joined with spaces.
An empty note ("") clears it. Without text, a terminal opens an editor holding
the current note. Note changes are not recorded in history.

Note that moving an item back to an earlier status also replaces its note with
the rework reason.

Examples:
  assetrack note website-redesign web/img/hero.png "waiting on the retina export"
  assetrack note website-redesign web/img/hero.png`,
		Args:              cobra.MinimumNArgs(2),
		ValidArgsFunction: completeArgs(argProject, argItem),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec, err := requireExecutionContext(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) > 2 {
				return runNote(cmd.Context(), ec, cmd.OutOrStdout(), args[0], args[1], strings.Join(args[2:], " "))
			}
			var edit NoteEditor
			if tui.IsInteractive() && !ec.JSON() {
				edit = tui.TextArea
			}
			return runNoteEditor(cmd.Context(), ec, cmd.OutOrStdout(), args[0], args[1], edit)
		},
	}
	root.AddCommand(cmd)
}

func runNote(ctx context.Context, ec *ExecutionContext, w io.Writer, project, ref, text string) error {
	return editNote(ctx, ec, w, project, ref, func(*domain.Item) (string, error) {
		return text, nil
	})
}

// runNoteEditor takes the new note from edit, which sees the current one.
func runNoteEditor(ctx context.Context, ec *ExecutionContext, w io.Writer, project, ref string, edit NoteEditor) error {
	if edit == nil {
		return atlaserrors.NewExitCode2Error(fmt.Errorf("%w: missing note text", atlaserrors.ErrInvalidArgument))
	}
	return editNote(ctx, ec, w, project, ref, func(it *domain.Item) (string, error) {
		text, err := edit("Note for "+it.Path, it.Note)
		if stderrors.Is(err, atlaserrors.ErrMenuCanceled) {
			return "", atlaserrors.NewExitCode2Error(err)
		}
		return text, err
	})
}

func editNote(ctx context.Context, ec *ExecutionContext, w io.Writer, project, ref string, textFor func(*domain.Item) (string, error)) error {
	return applyItemEdit(ctx, ec, w, project, ref, func(s *viewmodel.Session, it *domain.Item) (domain.Mutation, error) {
		text, err := textFor(it)
		if err != nil {
			return domain.Mutation{}, err
		}
		text = strings.TrimSpace(text)

		if it.RevisionCount > 0 && it.Note != "" && it.Note != text {
			// The rework reason lives in the note; after this edit only history keeps it.
			ec.Logger.Warn().Str("item_id", it.ID).Int("revision_count", it.RevisionCount).Msg("replacing note of a reworked item")
			if !ec.JSON() {
				ec.Output(w).Warning(fmt.Sprintf("Replacing the rework reason %q; 'assetrack history' still has it.", it.Note))
			}
		}
		return requested(s.RequestNote(it.ID, text))
	}, func(updated *domain.Item) string {
		if updated.Note == "" {
			return fmt.Sprintf("%s: note cleared", updated.Path)
		}
		return fmt.Sprintf("%s: note updated", updated.Path)
	})
}
