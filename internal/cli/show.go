package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/assetrack/internal/domain"
	"github.com/mrz1836/assetrack/internal/tui"
)

// itemDetail is the JSON form of 'show'.
type itemDetail struct {
	Item    *domain.Item           `json:"item"`
	History []*domain.HistoryEntry `json:"history"`
}

// AddShowCommand adds the show command to the root command.
func AddShowCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show <project> <item>",
		Short: "Show one item with its note and history",
		Long: `Show an item's status, assignee, timestamps, note and status history.

Examples:
  assetrack show website-redesign web/img/hero.png
  assetrack show website-redesign item-6f1c... --output json`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeArgs(argProject, argItem),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec, err := requireExecutionContext(cmd.Context())
			if err != nil {
				return err
			}
			return runShow(cmd.Context(), ec, cmd.OutOrStdout(), args[0], args[1])
		},
	}
	root.AddCommand(cmd)
}

func runShow(ctx context.Context, ec *ExecutionContext, w io.Writer, project, ref string) error {
	it, err := ec.Store.GetItem(ctx, project, ref)
	if err != nil {
		return err
	}
	history, err := ec.Store.History(ctx, project, it.ID)
	if err != nil {
		return err
	}

	if ec.JSON() {
		if history == nil {
			history = []*domain.HistoryEntry{}
		}
		return ec.Output(w).JSON(itemDetail{Item: it, History: history})
	}

	_, err = io.WriteString(w, tui.RenderMarkdown(tui.ItemMarkdown(it, history)))
	return err
}
