package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/assetrack/internal/domain"
	"github.com/mrz1836/assetrack/internal/tui"
)

// projectSummary is one row of 'project list'.
type projectSummary struct {
	Name        string `json:"name"`
	Items       int    `json:"items"`
	Implemented int    `json:"implemented"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
}

// AddProjectCommand adds the project command group to the root command.
func AddProjectCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create and list projects",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty project",
		Long: `Create an empty project. Names use lowercase letters, digits, '-' and '_'.

Examples:
  assetrack project create website-redesign`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec, err := requireExecutionContext(cmd.Context())
			if err != nil {
				return err
			}
			return runProjectCreate(cmd.Context(), ec, cmd.OutOrStdout(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects with their completion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ec, err := requireExecutionContext(cmd.Context())
			if err != nil {
				return err
			}
			return runProjectList(cmd.Context(), ec, cmd.OutOrStdout())
		},
	})

	root.AddCommand(cmd)
}

func runProjectCreate(ctx context.Context, ec *ExecutionContext, w io.Writer, name string) error {
	p, err := ec.Store.CreateProject(ctx, name, ec.Actor())
	if err != nil {
		return err
	}

	out := ec.Output(w)
	if ec.JSON() {
		return out.JSON(p)
	}
	out.Success(fmt.Sprintf("Created project %s", p.Name))
	out.Info(fmt.Sprintf("Import asset paths with: assetrack import %s <file>", p.Name))
	return nil
}

func runProjectList(ctx context.Context, ec *ExecutionContext, w io.Writer) error {
	projects, err := ec.Store.ListProjects(ctx)
	if err != nil {
		return err
	}

	summaries := make([]projectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, summarizeProject(ctx, ec, p))
	}

	out := ec.Output(w)
	if ec.JSON() {
		return out.JSON(summaries)
	}
	if len(summaries) == 0 {
		out.Info("No projects. Run 'assetrack project create <name>' to create one.")
		return nil
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Name,
			fmt.Sprintf("%d/%d", s.Implemented, s.Items),
			s.CreatedBy,
			s.CreatedAt,
		})
	}
	out.Table([]string{"PROJECT", "DONE", "CREATED BY", "CREATED"}, rows)
	return nil
}

// summarizeProject counts a project's items. A project whose items cannot be
// read is listed with zero counts.
func summarizeProject(ctx context.Context, ec *ExecutionContext, p *domain.Project) projectSummary {
	s := projectSummary{
		Name:      p.Name,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt.UTC().Format("2006-01-02"),
	}

	items, err := ec.Store.ListItems(ctx, p.Name)
	if err != nil {
		ec.Logger.Warn().Err(err).Str("project", p.Name).Msg("failed to read project items")
		return s
	}
	c := tui.CountCompletion(items)
	s.Items = c.Total
	s.Implemented = c.Implemented
	return s
}
