package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/assetrack/internal/constants"
	"github.com/mrz1836/assetrack/internal/domain"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
	"github.com/mrz1836/assetrack/internal/pipeline"
	"github.com/mrz1836/assetrack/internal/transition"
	"github.com/mrz1836/assetrack/internal/tui"
)

// JustificationPrompter asks the user why an item goes back to an earlier status.
// Used for dependency injection in tests.
type JustificationPrompter func(p transition.Prompt) (string, error)

// StatusSelector asks the user for an item's new status when none is given.
// Used for dependency injection in tests.
type StatusSelector func(assetName string, current constants.ItemStatus) (constants.ItemStatus, error)

// StatusFlags holds flags for the status command.
type StatusFlags struct {
	// Reason justifies a backward change without prompting.
	Reason string
}

// AddStatusCommand adds the status command to the root command.
func AddStatusCommand(root *cobra.Command) {
	flags := &StatusFlags{}

	cmd := &cobra.Command{
		Use:   "status <project> <item> [pending|received|implemented]",
		Short: "Change an item's status",
		Long: `Change an item's status. The item is referenced by ID or by path.

Moving forward (pending → received → implemented) applies immediately. Moving
back to an earlier status marks the item for rework and needs a reason of at
least 10 characters: you are prompted for it in a terminal, otherwise pass
--reason. The reason replaces the item's note and is kept in its history.
Without a status, a terminal shows a menu of statuses to pick from.

Examples:
  assetrack status website-redesign web/img/hero.png received
  assetrack status website-redesign web/img/hero.png
  assetrack status website-redesign web/img/hero.png pending --reason "wrong crop, needs 16:9"`,
		Args:              cobra.RangeArgs(2, 3),
		ValidArgsFunction: completeArgs(argProject, argItem, argStatus),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec, err := requireExecutionContext(cmd.Context())
			if err != nil {
				return err
			}
			req := statusRequest{
				project: args[0],
				ref:     args[1],
				reason:  flags.Reason,
			}
			if len(args) == 3 {
				req.status = args[2]
			}
			var prompt JustificationPrompter
			if tui.IsInteractive() && !ec.JSON() {
				prompt = tui.PromptJustification
				req.selectStatus = tui.SelectStatus
			}
			return runStatus(cmd.Context(), ec, cmd.OutOrStdout(), req, prompt)
		},
	}

	cmd.Flags().StringVarP(&flags.Reason, "reason", "r", "", "why the item goes back to an earlier status")

	root.AddCommand(cmd)
}

// statusRequest carries the status command's arguments. An empty status is
// asked for through selectStatus.
type statusRequest struct {
	project      string
	ref          string
	status       string
	reason       string
	selectStatus StatusSelector
}

// statusResult is the JSON form of 'status'.
type statusResult struct {
	Item      *domain.Item `json:"item"`
	From      string       `json:"from"`
	To        string       `json:"to"`
	Justified bool         `json:"justified"`
}

func runStatus(ctx context.Context, ec *ExecutionContext, w io.Writer, req statusRequest, prompt JustificationPrompter) error {
	var to constants.ItemStatus
	if req.status != "" {
		var err error
		if to, err = parseStatusArg(req.status); err != nil {
			return err
		}
	} else if req.selectStatus == nil {
		return atlaserrors.NewExitCode2Error(fmt.Errorf("%w: missing status (one of %v)",
			atlaserrors.ErrInvalidArgument, constants.ValidItemStatuses()))
	}

	s, err := openSession(ctx, ec, req.project, pipeline.Query{})
	if err != nil {
		return err
	}
	it, err := resolveItem(s, req.ref)
	if err != nil {
		return err
	}
	from := it.Status

	if to == "" {
		to, err = req.selectStatus(it.Name, from)
		if err != nil {
			if stderrors.Is(err, atlaserrors.ErrMenuCanceled) {
				return atlaserrors.NewExitCode2Error(err)
			}
			return err
		}
	}

	outcome := s.RequestStatus(it.ID, to)
	if outcome.Rejected {
		return rejection(outcome)
	}

	if outcome.Prompt != nil {
		outcome, err = justify(s.SubmitJustification, it.ID, *outcome.Prompt, req.reason, prompt)
		if err != nil {
			s.CancelTransition(it.ID)
			return err
		}
	} else if req.reason != "" {
		ec.Logger.Debug().Str("item", it.Path).Msg("reason ignored for forward status change")
	}

	updated, err := ec.Store.Apply(ctx, req.project, ec.Actor(), *outcome.Command)
	if err != nil {
		return err
	}

	justified := outcome.Command.Kind == domain.MutationSetStatusWithJustification
	out := ec.Output(w)
	if ec.JSON() {
		return out.JSON(statusResult{Item: updated, From: string(from), To: string(to), Justified: justified})
	}

	out.Success(fmt.Sprintf("%s: %s → %s", updated.Path, from, to))
	if justified {
		out.Info(fmt.Sprintf("Rework #%d recorded", updated.RevisionCount))
	}
	return nil
}

// justify obtains a justification from reason or the prompt and submits it.
func justify(
	submit func(itemID, text string) transition.Outcome,
	itemID string,
	p transition.Prompt,
	reason string,
	prompt JustificationPrompter,
) (transition.Outcome, error) {
	text := reason
	if text == "" {
		if prompt == nil {
			return transition.Outcome{}, atlaserrors.NewExitCode2Error(fmt.Errorf("%w: %s goes back from %s to %s",
				atlaserrors.ErrJustificationRequired, p.AssetName, p.From, p.To))
		}
		var err error
		text, err = prompt(p)
		if err != nil {
			if stderrors.Is(err, atlaserrors.ErrMenuCanceled) {
				return transition.Outcome{}, atlaserrors.NewExitCode2Error(err)
			}
			return transition.Outcome{}, err
		}
	}

	out := submit(itemID, text)
	if out.Rejected {
		return out, rejection(out)
	}
	return out, nil
}
