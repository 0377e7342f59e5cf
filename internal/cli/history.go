package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/assetrack/internal/domain"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
	"github.com/mrz1836/assetrack/internal/hierarchy"
	"github.com/mrz1836/assetrack/internal/store"
	"github.com/mrz1836/assetrack/internal/tui"
)

// HistoryFlags holds flags for the history command.
type HistoryFlags struct {
	// Markdown renders the log as styled markdown instead of a table.
	Markdown bool
	// Limit keeps only the newest entries. Zero keeps all.
	Limit int
}

// AddHistoryCommand adds the history command to the root command.
func AddHistoryCommand(root *cobra.Command) {
	flags := &HistoryFlags{}

	cmd := &cobra.Command{
		Use:   "history <project> [item]",
		Short: "Show the status change log",
		Long: `Show every status change in a project, newest first, or only those of one
item. Rework reasons are shown with the change that required them. Deleted
items can still be looked up by path.

Examples:
  assetrack history website-redesign
  assetrack history website-redesign web/img/hero.png --markdown`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completeArgs(argProject, argItem),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec, err := requireExecutionContext(cmd.Context())
			if err != nil {
				return err
			}
			ref := ""
			if len(args) == 2 {
				ref = args[1]
			}
			return runHistory(cmd.Context(), ec, cmd.OutOrStdout(), args[0], ref, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.Markdown, "markdown", false, "render as styled markdown")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "n", 0, "show only the newest N entries")

	root.AddCommand(cmd)
}

func runHistory(ctx context.Context, ec *ExecutionContext, w io.Writer, project, ref string, flags *HistoryFlags) error {
	if flags.Limit < 0 {
		return atlaserrors.NewExitCode2Error(fmt.Errorf("%w: --limit must not be negative", atlaserrors.ErrInvalidArgument))
	}

	entries, err := itemHistory(ctx, ec.Store, project, ref)
	if err != nil {
		return err
	}
	if flags.Limit > 0 && len(entries) > flags.Limit {
		entries = entries[len(entries)-flags.Limit:]
	}

	out := ec.Output(w)
	if ec.JSON() {
		return out.JSON(entries)
	}

	if flags.Markdown {
		title := project + " history"
		if ref != "" {
			title = hierarchy.Normalize(ref) + " history"
		}
		_, err := io.WriteString(w, tui.RenderMarkdown(tui.HistoryMarkdown(title, entries)))
		return err
	}

	if len(entries) == 0 {
		out.Info("No status changes yet.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		h := entries[i]
		rows = append(rows, []string{
			h.CreatedAt.Local().Format("2006-01-02 15:04"),
			h.ItemPath,
			fmt.Sprintf("%s → %s", h.OldStatus, h.NewStatus),
			h.Actor,
			h.Comment,
		})
	}
	out.Table([]string{"WHEN", "ITEM", "CHANGE", "BY", "REASON"}, rows)
	return nil
}

// itemHistory returns the audit entries of ref, oldest first. An empty ref
// returns the whole project log. A ref that matches no current item is looked
// up in the log by ID and by path, so deleted items keep their history.
func itemHistory(ctx context.Context, s *store.FileStore, project, ref string) ([]*domain.HistoryEntry, error) {
	if ref == "" {
		return s.History(ctx, project, "")
	}

	items, err := s.ListItems(ctx, project)
	if err != nil {
		return nil, err
	}
	if it := store.FindItem(items, ref); it != nil {
		return s.History(ctx, project, it.ID)
	}

	all, err := s.History(ctx, project, "")
	if err != nil {
		return nil, err
	}
	path := hierarchy.Normalize(ref)
	var matched []*domain.HistoryEntry
	for _, h := range all {
		if h.ItemID == ref || h.ItemPath == path {
			matched = append(matched, h)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: %s", atlaserrors.ErrItemNotFound, ref)
	}
	return matched, nil
}
