package ir

import "slices"

// TransitionConfig is a transition registered on a state for one event
type TransitionConfig struct {
	Event   Event
	Kind    TransitionKind
	Target  StateID // Unused for computed transitions
	Guard   GuardFunc
	Compute ComputeFunc
}

// NewTransitionConfig creates an unconditional transition
func NewTransitionConfig(event Event, target StateID) *TransitionConfig {
	return &TransitionConfig{
		Event:  event,
		Kind:   TransitionFixed,
		Target: target,
	}
}

// Resolve returns the target for this transition given the current leaf
// model. ok=false means the transition declined and the event is dropped.
func (t *TransitionConfig) Resolve(e Event, current Model) (StateID, bool) {
	switch t.Kind {
	case TransitionGuarded:
		if !t.Guard(current) {
			return NoState, false
		}
		return t.Target, true
	case TransitionComputed:
		return t.Compute(e, current)
	default:
		return t.Target, true
	}
}

// Table holds a state's transitions sorted by event order
type Table struct {
	entries []*TransitionConfig
}

func compareEntry(t *TransitionConfig, e Event) int {
	return t.Event.Compare(e)
}

// Insert adds a transition. It returns false, leaving the table unchanged,
// when a transition for the same event is already registered.
func (t *Table) Insert(trans *TransitionConfig) bool {
	i, found := slices.BinarySearchFunc(t.entries, trans.Event, compareEntry)
	if found {
		return false
	}
	t.entries = slices.Insert(t.entries, i, trans)
	return true
}

// Lookup returns the transition registered for the event, or nil
func (t *Table) Lookup(e Event) *TransitionConfig {
	i, found := slices.BinarySearchFunc(t.entries, e, compareEntry)
	if !found {
		return nil
	}
	return t.entries[i]
}

// Len returns the number of registered transitions
func (t *Table) Len() int {
	return len(t.entries)
}

// All returns the transitions in event order
func (t *Table) All() []*TransitionConfig {
	return slices.Clone(t.entries)
}
