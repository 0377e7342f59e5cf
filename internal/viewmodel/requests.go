package viewmodel

import (
	"fmt"

	"github.com/mrz1836/assetrack/internal/constants"
	"github.com/mrz1836/assetrack/internal/domain"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
	"github.com/mrz1836/assetrack/internal/transition"
)

// RequestStatus asks to move itemID to status. Forward moves return a
// set_status command at once. Backward moves open a guard for the item and
// return a prompt; the command follows from SubmitJustification.
func (s *Session) RequestStatus(itemID string, to constants.ItemStatus) transition.Outcome {
	it := s.find(itemID)
	if it == nil {
		return notFound(itemID)
	}

	g, open := s.guards[itemID]
	if !open {
		g = transition.NewGuard(s.clock)
	}
	out := g.Request(transition.Request{ItemID: it.ID, AssetName: it.Name, From: it.Status, To: to})
	if out.State == transition.StateAwaitingJustification {
		s.guards[itemID] = g
	}
	return out
}

// SubmitJustification offers the justification for itemID's open request.
func (s *Session) SubmitJustification(itemID, text string) transition.Outcome {
	g, ok := s.guards[itemID]
	if !ok {
		return transition.Outcome{
			State:    transition.StateIdle,
			Rejected: true,
			Reason:   "no status change is waiting for a justification",
			Cause:    atlaserrors.ErrNoPendingTransition,
		}
	}
	out := g.Submit(text)
	if out.State == transition.StateIdle {
		delete(s.guards, itemID)
	}
	return out
}

// CancelTransition discards itemID's open request, if any.
func (s *Session) CancelTransition(itemID string) transition.Outcome {
	g, ok := s.guards[itemID]
	if !ok {
		return transition.Outcome{State: transition.StateIdle}
	}
	delete(s.guards, itemID)
	return g.Cancel()
}

// Pending returns the open backward request for itemID.
func (s *Session) Pending(itemID string) (transition.Request, bool) {
	g, ok := s.guards[itemID]
	if !ok {
		return transition.Request{}, false
	}
	return g.Pending()
}

// PendingCount returns how many items await a justification.
func (s *Session) PendingCount() int {
	return len(s.guards)
}

// RequestAssignee builds a set_assignee command. A nil assignee clears it.
func (s *Session) RequestAssignee(itemID string, assignee *string) (domain.Mutation, bool) {
	if s.find(itemID) == nil {
		return domain.Mutation{}, false
	}
	return domain.SetAssignee(itemID, assignee), true
}

// RequestNote builds a set_note command.
func (s *Session) RequestNote(itemID, note string) (domain.Mutation, bool) {
	if s.find(itemID) == nil {
		return domain.Mutation{}, false
	}
	return domain.SetNote(itemID, note), true
}

// RequestDelete builds a delete_item command and drops any open guard.
func (s *Session) RequestDelete(itemID string) (domain.Mutation, bool) {
	if s.find(itemID) == nil {
		return domain.Mutation{}, false
	}
	delete(s.guards, itemID)
	return domain.DeleteItem(itemID), true
}

func notFound(itemID string) transition.Outcome {
	return transition.Outcome{
		State:    transition.StateIdle,
		Rejected: true,
		Reason:   fmt.Sprintf("no item with ID %s", itemID),
		Cause:    atlaserrors.ErrItemNotFound,
	}
}
