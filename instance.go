package interactkit

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/interactkit/internal/ir"
)

// ErrCompleted is raised when a completed instance is used again.
var ErrCompleted = errors.New("interactkit: instance already completed")

// Instance drives one interacting entity (one hand, one controller) through
// a shared Machine. It owns the active leaf state and the model chain from
// the root down to that leaf. An Instance is not safe for concurrent use.
type Instance[T any] struct {
	machine *Machine[T]
	config  *ir.MachineConfig
	leaf    StateID
	chain   []Model // chain[i] is the model of the leaf's ancestor at depth i
	done    bool
	logger  *slog.Logger
	hooks   Hooks
}

// NewInstance creates an instance and enters the machine's initial state.
// initial is handed to every entry function on the way down; seed becomes
// the root model's Seed.
func NewInstance[T any](machine *Machine[T], initial Event, seed T, opts ...Option) *Instance[T] {
	o := newOptions(opts)
	i := &Instance[T]{
		machine: machine,
		config:  machine.config,
		leaf:    ir.RootState,
		chain:   []Model{&Root[T]{Seed: seed}},
		logger:  o.logger.With("machine", machine.config.ID),
		hooks:   ComposeHooks(o.hooks...),
	}
	i.enter(initial, i.config.PathBelow(ir.RootState, i.config.Initial))

	if i.hooks.OnStart != nil {
		i.hooks.OnStart(i.stateEvent(i.leaf, initial))
	}
	i.logger.Debug("instance started", "state", i.LeafName())
	return i
}

// Machine returns the shared definition
func (i *Instance[T]) Machine() *Machine[T] { return i.machine }

// Leaf returns the active leaf state
func (i *Instance[T]) Leaf() StateID { return i.leaf }

// LeafName returns the name of the active leaf state
func (i *Instance[T]) LeafName() string { return i.config.Name(i.leaf) }

// Model returns the active leaf's model
func (i *Instance[T]) Model() Model { return i.chain[len(i.chain)-1] }

// Path returns the active state names from the root down to the leaf
func (i *Instance[T]) Path() []string {
	ids := i.config.GetPath(i.leaf)
	names := make([]string, len(ids))
	for n, id := range ids {
		names[n] = i.config.Name(id)
	}
	return names
}

// Matches reports whether the named state is the leaf or one of its ancestors
func (i *Instance[T]) Matches(name string) bool {
	id, ok := i.config.Lookup(name)
	if !ok {
		return false
	}
	return id == i.leaf || i.config.IsDescendantOf(i.leaf, id)
}

// Done reports whether Complete has run
func (i *Instance[T]) Done() bool { return i.done }

// Dispatch resolves e against the leaf and its ancestors and, if a
// transition applies, runs the exit and entry cascade. It reports whether a
// transition fired. Events with no applicable transition are ignored.
func (i *Instance[T]) Dispatch(e Event) bool {
	i.mustBeLive("Dispatch")

	target, ok := i.resolve(e)
	if !ok {
		return false
	}
	i.transition(e, target)
	return true
}

// UpdateModels runs the per-frame Update of the leaf model, if it has one.
// Ancestor models are not updated.
func (i *Instance[T]) UpdateModels() {
	i.mustBeLive("UpdateModels")
	if u, ok := i.Model().(Updater); ok {
		u.Update()
	}
}

// Complete exits every state from the leaf up to the root and marks the
// instance terminal. Exit functions receive the zero Event. Calling
// Complete again has no effect.
func (i *Instance[T]) Complete() {
	if i.done {
		return
	}
	last := i.leaf
	i.exitTo(Event{}, ir.RootState)
	i.done = true

	if i.hooks.OnComplete != nil {
		i.hooks.OnComplete(i.stateEvent(last, Event{}))
	}
	i.logger.Debug("instance completed", "from", i.config.Name(last))
}

func (i *Instance[T]) mustBeLive(op string) {
	if i.done {
		panic(fmt.Errorf("%s on machine %q: %w", op, i.config.ID, ErrCompleted))
	}
}

// resolve finds the closest registration for e, walking from the leaf to
// the root. The first registration found decides; a declining guard or
// computed transition drops the event.
func (i *Instance[T]) resolve(e Event) (StateID, bool) {
	current := i.Model()
	for s := i.config.GetState(i.leaf); s != nil; s = i.config.GetState(s.Parent) {
		trans := s.Transitions.Lookup(e)
		if trans == nil {
			continue
		}
		target, ok := trans.Resolve(e, current)
		if !ok {
			if i.hooks.OnDropped != nil {
				i.hooks.OnDropped(i.stateEvent(s.ID, e))
			}
			i.logger.Debug("event dropped", "state", i.LeafName(), "scope", s.Name, "event", e.String())
			return ir.NoState, false
		}
		return target, true
	}

	if i.hooks.OnIgnored != nil {
		i.hooks.OnIgnored(i.stateEvent(i.leaf, e))
	}
	i.logger.Debug("event ignored", "state", i.LeafName(), "event", e.String())
	return ir.NoState, false
}

// transition moves the leaf to target through the lowest common ancestor.
// A self-transition exits and re-enters the leaf.
func (i *Instance[T]) transition(e Event, target StateID) {
	from := i.leaf
	lca := i.config.FindLCA(from, target)
	if target == from && from != ir.RootState {
		lca = i.config.GetState(from).Parent
	}

	i.exitTo(e, lca)
	i.enter(e, i.config.PathBelow(lca, target))

	if i.hooks.OnTransition != nil {
		i.hooks.OnTransition(&TransitionEvent{
			Machine: i.config.ID,
			From:    i.config.Name(from),
			To:      i.config.Name(target),
			Event:   e,
		})
	}
	i.logger.Debug("transition", "from", i.config.Name(from), "to", i.config.Name(target), "event", e.String())
}

// exitTo exits states leaf-first up to, but not including, ancestor.
func (i *Instance[T]) exitTo(e Event, ancestor StateID) {
	for i.leaf != ancestor && i.leaf != ir.RootState {
		s := i.config.GetState(i.leaf)
		last := len(i.chain) - 1
		if s.Exit != nil {
			s.Exit(e, i.chain[last])
		}
		i.chain[last] = nil
		i.chain = i.chain[:last]
		i.leaf = s.Parent

		if i.hooks.OnExit != nil {
			i.hooks.OnExit(i.stateEvent(s.ID, e))
		}
	}
}

// enter runs entry functions along path, root-most first.
func (i *Instance[T]) enter(e Event, path []StateID) {
	for _, id := range path {
		s := i.config.GetState(id)
		i.chain = append(i.chain, s.Entry(e, i.Model()))
		i.leaf = id

		if i.hooks.OnEnter != nil {
			i.hooks.OnEnter(i.stateEvent(id, e))
		}
	}
}

func (i *Instance[T]) stateEvent(id StateID, e Event) *StateEvent {
	return &StateEvent{Machine: i.config.ID, State: i.config.Name(id), Event: e}
}
