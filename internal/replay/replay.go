// Package replay drives an instance through a parsed script, one host frame
// at a time, and records what happened.
package replay

import (
	"github.com/felixgeelhaar/interactkit"
	"github.com/felixgeelhaar/interactkit/internal/parser"
)

// Step records the outcome of one dispatched event.
type Step struct {
	Frame int
	Event interactkit.Event
	Fired bool
	Leaf  string
}

// Result is the record of a replay.
type Result struct {
	Machine   string
	Initial   string
	Steps     []Step
	Frames    int
	Final     string // leaf before Complete
	Completed bool
}

// Fired counts dispatched events that caused a transition.
func (r *Result) Fired() int {
	n := 0
	for _, s := range r.Steps {
		if s.Fired {
			n++
		}
	}
	return n
}

// Run creates an instance of m seeded with seed and plays script against it.
// Each frame dispatches its events in order, then updates the leaf model once.
func Run[T any](m *interactkit.Machine[T], seed T, script *parser.Script, opts ...interactkit.Option) *Result {
	inst := interactkit.NewInstance(m, script.Initial, seed, opts...)
	res := &Result{
		Machine: m.ID(),
		Initial: inst.LeafName(),
		Frames:  len(script.Frames),
	}

	for n, frame := range script.Frames {
		for _, e := range frame.Events {
			fired := inst.Dispatch(e)
			res.Steps = append(res.Steps, Step{
				Frame: n,
				Event: e,
				Fired: fired,
				Leaf:  inst.LeafName(),
			})
		}
		inst.UpdateModels()
	}

	res.Final = inst.LeafName()
	if script.Complete {
		inst.Complete()
		res.Completed = true
	}
	return res
}
