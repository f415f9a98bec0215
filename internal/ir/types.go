package ir

import (
	"cmp"
	"strings"
)

// ControlID names an input control (a button, a recognized hand pose)
type ControlID string

// StateID indexes a state within a MachineConfig arena
type StateID int

const (
	// NoState marks the absence of a state (the root's parent)
	NoState StateID = -1
	// RootState is the implicit root of every machine
	RootState StateID = 0
)

// Event is an immutable input value: which control changed, in which
// direction, and whether an upstream consumer already handled it.
type Event struct {
	Control  ControlID
	Down     bool
	Captured bool
}

// Compare orders events by control, then direction (up before down),
// then captured flag (uncaptured first). It returns -1, 0 or +1.
func (e Event) Compare(o Event) int {
	if c := cmp.Compare(e.Control, o.Control); c != 0 {
		return c
	}
	if c := compareBool(e.Down, o.Down); c != 0 {
		return c
	}
	return compareBool(e.Captured, o.Captured)
}

// String renders the event in compact notation: "trigger+" for a press,
// "trigger-" for a release, with a trailing "!" when captured.
func (e Event) String() string {
	var b strings.Builder
	b.WriteString(string(e.Control))
	if e.Down {
		b.WriteByte('+')
	} else {
		b.WriteByte('-')
	}
	if e.Captured {
		b.WriteByte('!')
	}
	return b.String()
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// Model is the per-state data produced on entry. Every model can reach the
// model of its enclosing state; the root model returns nil.
type Model interface {
	Parent() Model
}

// EntryFunc produces a state's model from its parent's model
type EntryFunc func(e Event, parent Model) Model

// ExitFunc releases a state's model
type ExitFunc func(e Event, m Model)

// GuardFunc decides whether a matched transition fires, given the current leaf model
type GuardFunc func(current Model) bool

// ComputeFunc picks a target at dispatch time. ok=false drops the event.
type ComputeFunc func(e Event, current Model) (target StateID, ok bool)

// TransitionKind distinguishes the three transition variants
type TransitionKind int

const (
	// TransitionFixed always moves to Target
	TransitionFixed TransitionKind = iota
	// TransitionGuarded moves to Target when Guard holds
	TransitionGuarded
	// TransitionComputed asks Compute for the target
	TransitionComputed
)

// String returns the string representation of TransitionKind
func (k TransitionKind) String() string {
	switch k {
	case TransitionFixed:
		return "fixed"
	case TransitionGuarded:
		return "guarded"
	case TransitionComputed:
		return "computed"
	default:
		return "unknown"
	}
}
