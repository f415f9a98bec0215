package interactkit

import "github.com/felixgeelhaar/interactkit/internal/ir"

// Re-export non-generic types from internal/ir for public API
type (
	// ControlID names an input control (a button, a recognized pose)
	ControlID = ir.ControlID
	// StateID indexes a state within a machine
	StateID = ir.StateID
	// Event is an immutable input value; see ir.Event for its ordering
	Event = ir.Event
	// Model is the per-state data produced on entry
	Model = ir.Model
)

// Re-export constants
const (
	NoState   = ir.NoState
	RootState = ir.RootState
)

// Press returns the event for a control going down.
func Press(c ControlID) Event {
	return Event{Control: c, Down: true}
}

// Release returns the event for a control going up.
func Release(c ControlID) Event {
	return Event{Control: c}
}

// Captured returns a copy of e marked as already handled upstream.
// Captured and uncaptured events are distinct transition keys.
func Captured(e Event) Event {
	e.Captured = true
	return e
}

// Updater is implemented by models that do per-frame work.
// Only the leaf model's Update runs on each frame.
type Updater interface {
	Update()
}

// Root is the model of the root state. It carries the seed supplied when
// the instance was created, typically the owning input source.
type Root[T any] struct {
	Seed T
}

// Parent returns nil: the root model has no enclosing model.
func (r *Root[T]) Parent() Model { return nil }

// Nested links a model to the model of its enclosing state. Embed it in a
// model struct to satisfy Model and gain a typed Outer accessor.
//
//	type Recording struct {
//	    interactkit.Nested[*Idle]
//	    loop *Loop
//	}
type Nested[P Model] struct {
	outer P
}

// Within returns the link to an enclosing model.
func Within[P Model](outer P) Nested[P] {
	return Nested[P]{outer: outer}
}

// Parent implements Model.
func (n Nested[P]) Parent() Model { return n.outer }

// Outer returns the enclosing model with its concrete type.
func (n Nested[P]) Outer() P { return n.outer }

// As walks the model chain upwards from m (inclusive) and returns the
// nearest model of type M.
func As[M Model](m Model) (M, bool) {
	for m != nil {
		if v, ok := m.(M); ok {
			return v, true
		}
		m = m.Parent()
	}
	var zero M
	return zero, false
}

// SeedOf returns the seed held by the root of m's chain.
func SeedOf[T any](m Model) (T, bool) {
	root, ok := As[*Root[T]](m)
	if !ok {
		var zero T
		return zero, false
	}
	return root.Seed, true
}
