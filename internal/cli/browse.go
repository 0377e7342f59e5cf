package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mrz1836/assetrack/internal/domain"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
	"github.com/mrz1836/assetrack/internal/pipeline"
	"github.com/mrz1836/assetrack/internal/store"
	"github.com/mrz1836/assetrack/internal/tui"
	"github.com/mrz1836/assetrack/internal/viewmodel"
)

// storeBackend adapts the project store to the browser's Backend.
type storeBackend struct {
	store   *store.FileStore
	project string
	actor   string
}

// Apply implements tui.Backend.
func (b *storeBackend) Apply(ctx context.Context, m domain.Mutation) error {
	_, err := b.store.Apply(ctx, b.project, b.actor, m)
	return err
}

// Load implements tui.Backend.
func (b *storeBackend) Load(ctx context.Context) ([]*domain.Item, error) {
	return b.store.ListItems(ctx, b.project)
}

var _ tui.Backend = (*storeBackend)(nil)

// programRunner runs a Bubble Tea model to completion.
// Used for dependency injection in tests.
type programRunner func(ctx context.Context, model tea.Model) (tea.Model, error)

// runProgram runs model full screen until it quits.
func runProgram(ctx context.Context, model tea.Model) (tea.Model, error) {
	return tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
}

// AddBrowseCommand adds the browse command to the root command.
func AddBrowseCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "browse <project>",
		Short: "Browse and update a project interactively",
		Long: `Open a full-screen folder tree of the project.

Keys:
  ↑/↓ j/k     move          enter/space  fold or unfold a folder
  /           search        esc          clear search
  m           mine filter   c            churn filter
  o           cycle sort    1 2 3        set pending / received / implemented
  q           quit

Moving an item back to an earlier status asks for a reason in the footer.
Folded folders are remembered for the next session and for 'tree'.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeArgs(argProject),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec, err := requireExecutionContext(cmd.Context())
			if err != nil {
				return err
			}
			if !tui.IsInteractive() {
				return atlaserrors.NewExitCode2Error(fmt.Errorf("%w: browse needs a terminal; use 'assetrack tree' instead",
					atlaserrors.ErrUserInputRequired))
			}
			return runBrowse(cmd.Context(), ec, cmd.OutOrStdout(), args[0], runProgram)
		},
	}
	root.AddCommand(cmd)
}

func runBrowse(ctx context.Context, ec *ExecutionContext, w io.Writer, project string, run programRunner) error {
	q := pipeline.Query{Sort: pipeline.SortKey(ec.Config.View.DefaultSort)}
	session, err := openSession(ctx, ec, project, q)
	if err != nil {
		return err
	}

	backend := &storeBackend{store: ec.Store, project: project, actor: ec.Actor()}
	browser := tui.NewBrowser(ctx, session, backend, tui.BrowserConfig{
		Title:        project,
		Width:        ec.Config.View.Width,
		ShowProgress: ec.Config.View.ShowProgress,
	})

	ec.Logger.Debug().Str("project", project).Int("items", len(session.Items())).Msg("browser starting")
	if _, err := run(ctx, browser); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}

	return finishBrowse(ctx, ec, w, project, session, browser)
}

// finishBrowse saves the folder state and reports a write failure that was
// still on screen when the browser closed.
func finishBrowse(ctx context.Context, ec *ExecutionContext, w io.Writer, project string, session *viewmodel.Session, browser *tui.Browser) error {
	if err := ec.Store.SaveViewState(ctx, project, session.CollapseState()); err != nil {
		ec.Logger.Warn().Err(err).Str("project", project).Msg("failed to save folder state")
	}
	if err := browser.Err(); err != nil {
		ec.Output(w).Warning(fmt.Sprintf("last change was not saved: %v", err))
	}
	return nil
}
