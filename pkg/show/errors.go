package show

import "fmt"

// InvalidTransitionError reports an off-table (state, event) pair
type InvalidTransitionError struct {
	State State
	Event Event
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: no edge for event %q from state %q", e.Event, e.State)
}

// TerminalStateError reports an attempt to move a finished show
type TerminalStateError struct {
	ID    string
	Event Event
}

func (e TerminalStateError) Error() string {
	return fmt.Sprintf("show %q is finished: event %q rejected", e.ID, e.Event)
}

// DuplicateIDError reports an identifier collision in a collection
type DuplicateIDError struct {
	ID string
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate show id %q", e.ID)
}
