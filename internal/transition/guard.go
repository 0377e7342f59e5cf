package transition

import (
	"fmt"

	"github.com/mrz1836/assetrack/internal/clock"
	"github.com/mrz1836/assetrack/internal/constants"
	"github.com/mrz1836/assetrack/internal/domain"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
)

// State is the guard's state.
type State string

// Guard states.
const (
	// StateIdle accepts a new request.
	StateIdle State = "idle"

	// StateAwaitingJustification holds a backward request until a valid
	// justification is submitted or the request is canceled.
	StateAwaitingJustification State = "awaiting_justification"
)

// String returns the string representation of the State.
func (s State) String() string {
	return string(s)
}

// Request asks to move one item from one status to another.
type Request struct {
	ItemID    string
	AssetName string
	From      constants.ItemStatus
	To        constants.ItemStatus
}

// Prompt asks the user to justify a backward transition.
type Prompt struct {
	AssetName string
	From      constants.ItemStatus
	To        constants.ItemStatus
}

// Outcome is the result of a guard operation. At most one of Command and
// Prompt is set. A rejected outcome carries neither and leaves the state as it
// was; Cause holds the sentinel error for errors.Is checks.
type Outcome struct {
	State    State
	Command  *domain.Mutation
	Prompt   *Prompt
	Rejected bool
	Reason   string
	Cause    error
}

// Guard is the per-request state machine:
//
//	Idle --request(forward or same)--> Idle, emits set_status
//	Idle --request(backward)--> AwaitingJustification, emits Prompt
//	AwaitingJustification --submit(valid)--> Idle, emits set_status_with_justification
//	AwaitingJustification --submit(short)--> AwaitingJustification, rejected
//	AwaitingJustification --cancel--> Idle
//
// The guard only gates requests. Incrementing the revision count and writing
// the audit row are the item store's job when it applies the command.
//
// Guard is not safe for concurrent use. Independent requests use independent guards.
type Guard struct {
	clock   clock.Clock
	state   State
	pending *Request
}

// NewGuard creates an idle guard. A nil clock uses the system clock.
func NewGuard(clk clock.Clock) *Guard {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Guard{clock: clk, state: StateIdle}
}

// State returns the current state.
func (g *Guard) State() State {
	return g.state
}

// Pending returns the request awaiting justification, if any.
func (g *Guard) Pending() (Request, bool) {
	if g.pending == nil {
		return Request{}, false
	}
	return *g.pending, true
}

// Request classifies req. Forward and same-rank moves produce a set_status
// command immediately; backward moves produce a Prompt and wait for Submit.
func (g *Guard) Request(req Request) Outcome {
	if g.state == StateAwaitingJustification {
		return g.reject(atlaserrors.ErrTransitionPending,
			fmt.Sprintf("%s is waiting for a justification", g.pending.AssetName))
	}
	if !req.From.IsValid() || !req.To.IsValid() {
		return g.reject(atlaserrors.ErrInvalidStatus,
			fmt.Sprintf("cannot move %s from %q to %q", req.AssetName, req.From, req.To))
	}

	if IsBackward(req.From, req.To) {
		pending := req
		g.pending = &pending
		g.state = StateAwaitingJustification
		return Outcome{
			State:  g.state,
			Prompt: &Prompt{AssetName: req.AssetName, From: req.From, To: req.To},
		}
	}

	cmd := domain.SetStatus(req.ItemID, req.To, g.timestampPatch(req.To))
	return Outcome{State: g.state, Command: &cmd}
}

// Submit offers a justification for the pending backward request.
func (g *Guard) Submit(justification string) Outcome {
	if g.state != StateAwaitingJustification || g.pending == nil {
		return g.reject(atlaserrors.ErrNoPendingTransition, "nothing is waiting for a justification")
	}
	if err := ValidateJustification(justification); err != nil {
		return g.reject(err, fmt.Sprintf("justification must be at least %d characters", constants.MinJustificationLength))
	}

	req := *g.pending
	cmd := domain.SetStatusWithJustification(req.ItemID, req.To, justification)
	g.pending = nil
	g.state = StateIdle
	return Outcome{State: g.state, Command: &cmd}
}

// Cancel discards the pending request. Canceling an idle guard is a no-op.
func (g *Guard) Cancel() Outcome {
	g.pending = nil
	g.state = StateIdle
	return Outcome{State: g.state}
}

func (g *Guard) reject(cause error, reason string) Outcome {
	return Outcome{State: g.state, Rejected: true, Reason: reason, Cause: cause}
}

// timestampPatch stamps the lifecycle field matching the target status.
// A move to pending stamps nothing.
func (g *Guard) timestampPatch(to constants.ItemStatus) *domain.TimestampPatch {
	now := g.clock.Now()
	switch to {
	case constants.ItemStatusReceived:
		return &domain.TimestampPatch{ReceivedAt: &now}
	case constants.ItemStatusImplemented:
		return &domain.TimestampPatch{ImplementedAt: &now}
	case constants.ItemStatusPending:
	}
	return nil
}
