package interactkit

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/interactkit/internal/ir"
)

// ErrSealed is raised when a builder is modified after Build.
var ErrSealed = errors.New("interactkit: machine builder already built")

// draft is the shared, type-erased state behind a MachineBuilder and the
// State handles it hands out.
type draft struct {
	config *ir.MachineConfig
	issues *ir.ValidationError
	sealed bool
}

func (d *draft) mustBeOpen() {
	if d.sealed {
		panic(ErrSealed)
	}
}

// MachineBuilder provides a fluent API for constructing state machines.
// T is the type of the seed passed to every instance's root model.
type MachineBuilder[T any] struct {
	d *draft
}

// Target is any state handle produced by a MachineBuilder
type Target interface {
	ID() StateID
	Name() string
	owner() *draft
}

// State is a typed handle on a declared state. M is the type of the model
// the state's entry function produces.
type State[M Model] struct {
	d  *draft
	id StateID
}

// NewMachine creates a new MachineBuilder with the given ID
func NewMachine[T any](id string) *MachineBuilder[T] {
	return &MachineBuilder[T]{
		d: &draft{
			config: ir.NewMachineConfig(id),
			issues: &ir.ValidationError{},
		},
	}
}

// Root returns the handle of the implicit root state. Its model is the
// instance's *Root[T]; its entry and exit are no-ops.
func (b *MachineBuilder[T]) Root() State[*Root[T]] {
	return State[*Root[T]]{d: b.d, id: ir.RootState}
}

// WithInitial sets the state every instance starts in
func (b *MachineBuilder[T]) WithInitial(initial Target) *MachineBuilder[T] {
	b.d.mustBeOpen()
	if id, ok := b.d.resolve(initial, "initial"); ok {
		b.d.config.Initial = id
	}
	return b
}

// Build validates the definition and returns the immutable machine.
// The builder cannot be modified afterwards.
func (b *MachineBuilder[T]) Build() (*Machine[T], error) {
	b.d.mustBeOpen()
	b.d.sealed = true

	errs := &ir.ValidationError{Issues: append([]ir.ValidationIssue(nil), b.d.issues.Issues...)}
	if verr := ir.Validate(b.d.config); verr != nil {
		errs.Issues = append(errs.Issues, verr.Issues...)
	}
	if errs.HasIssues() {
		return nil, errs
	}
	return &Machine[T]{config: b.d.config}, nil
}

// MustBuild is Build for definitions known to be valid; it panics otherwise.
func (b *MachineBuilder[T]) MustBuild() *Machine[T] {
	m, err := b.Build()
	if err != nil {
		panic(fmt.Errorf("interactkit: build %q: %w", b.d.config.ID, err))
	}
	return m
}

// Child declares a state under parent. entry builds the state's model from
// the parent's model; exit, which may be nil, releases it.
func Child[P, M Model](parent State[P], name string, entry func(e Event, parent P) M, exit func(e Event, m M)) State[M] {
	d := parent.d
	if d == nil {
		panic("interactkit: Child called on a zero State")
	}
	d.mustBeOpen()

	var enter ir.EntryFunc
	if entry != nil {
		enter = func(e Event, pm Model) Model {
			return entry(e, pm.(P))
		}
	}
	var leave ir.ExitFunc
	if exit != nil {
		leave = func(e Event, m Model) {
			exit(e, m.(M))
		}
	}
	return State[M]{d: d, id: d.config.AddState(name, parent.id, enter, leave)}
}

// ID returns the state's index in its machine
func (s State[M]) ID() StateID { return s.id }

// Name returns the state's diagnostic name
func (s State[M]) Name() string {
	if s.d == nil {
		return ""
	}
	return s.d.config.Name(s.id)
}

func (s State[M]) owner() *draft { return s.d }

// On registers an unconditional transition from this state to target
func (s State[M]) On(e Event, target Target) State[M] {
	s.d.mustBeOpen()
	if id, ok := s.d.resolve(target, s.path(e)...); ok {
		s.d.register(s.id, ir.NewTransitionConfig(e, id))
	}
	return s
}

// OnIf registers a transition that fires only when guard holds for the
// instance's current leaf model. A false guard drops the event: ancestors
// are not consulted.
func (s State[M]) OnIf(e Event, target Target, guard func(current Model) bool) State[M] {
	s.d.mustBeOpen()
	if id, ok := s.d.resolve(target, s.path(e)...); ok {
		s.d.register(s.id, &ir.TransitionConfig{
			Event:  e,
			Kind:   ir.TransitionGuarded,
			Target: id,
			Guard:  guard,
		})
	}
	return s
}

// OnFunc registers a transition whose target is computed at dispatch time.
// Returning ok=false drops the event: ancestors are not consulted.
func (s State[M]) OnFunc(e Event, compute func(e Event, current Model) (target Target, ok bool)) State[M] {
	s.d.mustBeOpen()
	d := s.d
	var fn ir.ComputeFunc
	if compute != nil {
		fn = func(e Event, current Model) (StateID, bool) {
			target, ok := compute(e, current)
			if !ok || target == nil {
				return ir.NoState, false
			}
			if target.owner() == nil {
				panic(fmt.Errorf("interactkit: computed transition on %q returned an unset state",
					d.config.Name(s.id)))
			}
			if target.owner() != d {
				panic(fmt.Errorf("interactkit: computed transition on %q returned state %q of another machine",
					d.config.Name(s.id), target.Name()))
			}
			return target.ID(), true
		}
	}
	s.d.register(s.id, &ir.TransitionConfig{
		Event:   e,
		Kind:    ir.TransitionComputed,
		Target:  ir.NoState,
		Compute: fn,
	})
	return s
}

func (s State[M]) path(e Event) []string {
	return []string{"states", s.d.config.Name(s.id), "on", e.String()}
}

// resolve checks that target belongs to this builder
func (d *draft) resolve(target Target, path ...string) (StateID, bool) {
	if target == nil || target.owner() == nil {
		d.issues.AddIssue(ir.ErrCodeInvalidTarget, "target state is not set", path...)
		return ir.NoState, false
	}
	if target.owner() != d {
		d.issues.AddIssue(ir.ErrCodeForeignState,
			fmt.Sprintf("state '%s' belongs to another machine", target.Name()), path...)
		return ir.NoState, false
	}
	return target.ID(), true
}

func (d *draft) register(from StateID, trans *ir.TransitionConfig) {
	state := d.config.GetState(from)
	if !state.Transitions.Insert(trans) {
		d.issues.AddIssue(ir.ErrCodeDuplicateTransition,
			fmt.Sprintf("state '%s' already has a transition for %s", state.Name, trans.Event),
			"states", state.Name, "on", trans.Event.String())
	}
}
