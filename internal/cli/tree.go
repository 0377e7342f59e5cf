package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/assetrack/internal/hierarchy"
	"github.com/mrz1836/assetrack/internal/pipeline"
	"github.com/mrz1836/assetrack/internal/render"
	"github.com/mrz1836/assetrack/internal/tui"
)

// TreeFlags holds flags for the tree command.
type TreeFlags struct {
	Search    string
	Mine      bool
	Churn     bool
	Sort      string
	Collapse  []string
	ExpandAll bool
	Progress  bool
}

// treeOutput is the JSON form of 'tree'.
type treeOutput struct {
	Project    string         `json:"project"`
	Search     string         `json:"search,omitempty"`
	Filters    []string       `json:"filters"`
	Sort       string         `json:"sort"`
	Completion tui.Completion `json:"completion"`
	Tree       *render.View   `json:"tree"`
}

// AddTreeCommand adds the tree command to the root command.
func AddTreeCommand(root *cobra.Command) {
	flags := &TreeFlags{}

	cmd := &cobra.Command{
		Use:   "tree <project>",
		Short: "Show the project's items as a folder tree",
		Long: `Show the project's items grouped into folders by path.

Search matches names, paths and assignees case-insensitively. Filters combine:
--mine keeps items assigned to your identity, --churn keeps items reworked
more than twice. Folders collapsed in the browser stay collapsed here.

Examples:
  assetrack tree website-redesign
  assetrack tree website-redesign --search hero --sort recency
  assetrack tree website-redesign --mine --collapse web/img
  assetrack tree website-redesign --output json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeArgs(argProject),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec, err := requireExecutionContext(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("progress") {
				flags.Progress = ec.Config.View.ShowProgress
			}
			return runTree(cmd.Context(), ec, cmd.OutOrStdout(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Search, "search", "s", "", "case-insensitive text matched against name, path and assignee")
	cmd.Flags().BoolVar(&flags.Mine, "mine", false, "only items assigned to your identity")
	cmd.Flags().BoolVar(&flags.Churn, "churn", false, "only items reworked more than twice")
	cmd.Flags().StringVar(&flags.Sort, "sort", "", "sort order (folder|recency|status|churn); default from view.default_sort")
	cmd.Flags().StringArrayVar(&flags.Collapse, "collapse", nil, "collapse a folder path (repeatable)")
	cmd.Flags().BoolVar(&flags.ExpandAll, "expand-all", false, "ignore saved collapsed folders")
	cmd.Flags().BoolVar(&flags.Progress, "progress", true, "print a completion bar under the tree")

	root.AddCommand(cmd)
}

// buildQuery turns tree flags into a pipeline query. An explicit --sort must
// be valid; the configured default is already validated.
func buildQuery(ec *ExecutionContext, flags *TreeFlags) (pipeline.Query, error) {
	sortName := flags.Sort
	if sortName == "" {
		sortName = ec.Config.View.DefaultSort
	}
	key, err := pipeline.ParseSortKey(sortName)
	if err != nil {
		return pipeline.Query{}, err
	}

	var filters []pipeline.Filter
	if flags.Mine {
		filters = append(filters, pipeline.FilterMine)
	}
	if flags.Churn {
		filters = append(filters, pipeline.FilterHighChurn)
	}

	return pipeline.Query{
		Search:  flags.Search,
		Filters: pipeline.NewFilterSet(filters...),
		Sort:    key,
	}, nil
}

func runTree(ctx context.Context, ec *ExecutionContext, w io.Writer, project string, flags *TreeFlags) error {
	q, err := buildQuery(ec, flags)
	if err != nil {
		return err
	}

	s, err := openSession(ctx, ec, project, q)
	if err != nil {
		return err
	}

	state := s.CollapseState()
	if flags.ExpandAll {
		state.Reset()
	}
	for _, path := range flags.Collapse {
		state.SetExpanded(hierarchy.Normalize(path), false)
	}

	view := s.View()
	completion := tui.CountCompletion(s.Items())

	if flags.Mine && ec.Identity() == "" {
		ec.Logger.Warn().Msg("identity not set; --mine shows everyone's items")
	}

	out := ec.Output(w)
	if ec.JSON() {
		filterNames := make([]string, 0, q.Filters.Len())
		for _, f := range q.Filters.List() {
			filterNames = append(filterNames, string(f))
		}
		return out.JSON(treeOutput{
			Project:    project,
			Search:     q.Search,
			Filters:    filterNames,
			Sort:       q.Sort.String(),
			Completion: completion,
			Tree:       view,
		})
	}

	if len(view.Children) == 0 {
		if len(s.Items()) == 0 {
			out.Info("No items yet. Run 'assetrack import " + project + " <file>' to add some.")
		} else {
			out.Info("No items match.")
		}
		return nil
	}

	width := outputWidth(ec)
	detail := fmt.Sprintf("%d items · sorted by %s", completion.Total, q.Sort)
	if _, err := io.WriteString(w, tui.RenderHeader(project, detail, width)+"\n\n"); err != nil {
		return err
	}

	writer := tui.NewTreeWriter(tui.WithTreeWidth(width))
	if err := writer.Write(w, view); err != nil {
		return err
	}

	if flags.Progress {
		bar := tui.NewProgressBar(progressWidth)
		if _, err := io.WriteString(w, "\n"+bar.RenderCompletion(completion)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// progressWidth is the completion bar width in cells.
const progressWidth = 30

// outputWidth returns the configured width, else the terminal width, else
// zero (no truncation) when stdout is not a terminal.
func outputWidth(ec *ExecutionContext) int {
	if ec.Config.View.Width > 0 {
		return ec.Config.View.Width
	}
	return tui.GetTerminalWidth()
}
