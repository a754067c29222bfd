// Package booking contains the pure domain rules of the flight desk:
// the selection state machine, hold urgency classification, the agent
// queue ordering and the derivation of booking units from a leg's
// passenger assignments.  Nothing in this package performs I/O; all
// time-dependent behavior takes the current time as an argument so the
// rules stay deterministic and trivially testable.
package booking

import "fmt"

// SelectionStatus enumerates the lifecycle states of a passenger's
// flight selection.  A selection starts as StatusPending when the
// client picks an option, moves to StatusHeld once an agent secures
// the price, and ends in StatusTicketed when a PNR is issued.
// StatusCancelled is the terminal failure state; it is entered when a
// newer selection supersedes this one or when the choice is withdrawn.
type SelectionStatus string

const (
	StatusPending   SelectionStatus = "PENDING"
	StatusHeld      SelectionStatus = "HELD"
	StatusTicketed  SelectionStatus = "TICKETED"
	StatusCancelled SelectionStatus = "CANCELLED"
)

// Active reports whether the status still represents live agent work.
// Ticketed and cancelled selections are terminal and never appear in
// the queue.
func (s SelectionStatus) Active() bool {
	return s == StatusPending || s == StatusHeld
}

// Valid reports whether the string is one of the four known statuses.
func (s SelectionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusHeld, StatusTicketed, StatusCancelled:
		return true
	}
	return false
}

// ErrInvalidTransition is returned by the guard functions below when a
// requested transition is not permitted from the current status.  The
// message names both states so handlers can surface it verbatim.
type ErrInvalidTransition struct {
	From SelectionStatus
	To   SelectionStatus
}

func (e ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// MarkHeld validates the pending -> held transition.  Holding is only
// meaningful for selections an agent has not yet touched.
func MarkHeld(current SelectionStatus) (SelectionStatus, error) {
	if current != StatusPending {
		return current, ErrInvalidTransition{From: current, To: StatusHeld}
	}
	return StatusHeld, nil
}

// MarkTicketed validates the transition into the ticketed state.  A
// hold is not a prerequisite: an agent may ticket a pending selection
// directly.
func MarkTicketed(current SelectionStatus) (SelectionStatus, error) {
	if current != StatusPending && current != StatusHeld {
		return current, ErrInvalidTransition{From: current, To: StatusTicketed}
	}
	return StatusTicketed, nil
}

// RevertToPending validates the bounded reversal back to pending.  It
// is allowed from held and from ticketed (reverting a ticketed
// selection does not delete its PNR; the ticketing record remains a
// fact of record).  Reverting an already-pending or a cancelled
// selection is rejected.
func RevertToPending(current SelectionStatus) (SelectionStatus, error) {
	if current != StatusHeld && current != StatusTicketed {
		return current, ErrInvalidTransition{From: current, To: StatusPending}
	}
	return StatusPending, nil
}

// Cancel validates the transition into the cancelled state.  Any
// non-ticketed selection may be cancelled; ticketed selections must be
// reverted first.
func Cancel(current SelectionStatus) (SelectionStatus, error) {
	if current == StatusTicketed || current == StatusCancelled {
		return current, ErrInvalidTransition{From: current, To: StatusCancelled}
	}
	return StatusCancelled, nil
}
