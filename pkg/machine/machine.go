package machine

import "errors"

type State interface {
	~string
}

type Event interface {
	~string
}

// Allowable maps where a from state is allowed to go for a given event
type Allowable[S State, E Event] struct {
	from S
	on   E
	to   S
}

// StateMachine manages the state of a context
type StateMachine[S State, E Event] struct {
	fromState S
	edges     []Allowable[S, E]
}

var (
	ErrInvalidTransition = errors.New("invalid state transition")
)

// TransitionBuilder helps in creating a from-on-to relationship for state transitions
type TransitionBuilder[S State, E Event] struct {
	transition Allowable[S, E]
}

func New[S State, E Event](currentState S, transitions ...Allowable[S, E]) *StateMachine[S, E] {
	return &StateMachine[S, E]{fromState: currentState, edges: transitions}
}

// From initializes a transition from a specific state
func From[S State, E Event](from S) *TransitionBuilder[S, E] {
	return &TransitionBuilder[S, E]{transition: Allowable[S, E]{from: from}}
}

// On sets the event driving the transition
func (tb *TransitionBuilder[S, E]) On(on E) *TransitionBuilder[S, E] {
	tb.transition.on = on
	return tb
}

// To sets the destination state and returns the configured transition
func (tb *TransitionBuilder[S, E]) To(to S) Allowable[S, E] {
	tb.transition.to = to
	return tb.transition
}

// Fire determines the destination state for an event fired from the current state
func (m *StateMachine[S, E]) Fire(e E) (S, error) {
	for _, transition := range m.edges {
		// can't transition from one state to another state if we're not in the same from state
		if transition.from != m.fromState {
			continue
		}

		if transition.on == e {
			return transition.to, nil
		}
	}

	var zero S
	return zero, ErrInvalidTransition
}

// ToState determines if a given state is reachable from the current state by any event
func (m *StateMachine[S, E]) ToState(s S) error {
	for _, transition := range m.edges {
		if transition.from != m.fromState {
			continue
		}

		if transition.to == s {
			return nil
		}
	}

	return ErrInvalidTransition
}
