// Package interactkit is a hierarchical, typed, event-driven state machine
// engine for per-entity interaction logic: one Machine per interaction kind,
// one Instance per hand or controller.
//
// A Machine is declared once with a MachineBuilder: states form a tree under
// an implicit root, each state supplies an entry function building its model
// from the parent's model, and transitions are registered per (state, event).
// An Instance dispatches events with closest-scope-wins lookup, runs the
// exit/entry cascade through the lowest common ancestor, and calls the leaf
// model's Update once per frame.
//
//	b := interactkit.NewMachine[*Controller]("looper")
//	idle := interactkit.Child(b.Root(), "idle", enterIdle, nil)
//	rec := interactkit.Child(idle, "recording", enterRecording, exitRecording)
//	idle.On(interactkit.Press("trigger"), rec)
//	rec.On(interactkit.Release("trigger"), idle)
//	machine, err := b.WithInitial(idle).Build()
//
//	inst := interactkit.NewInstance(machine, interactkit.Release("trigger"), ctrl)
//	inst.Dispatch(interactkit.Press("trigger"))
//	inst.UpdateModels()
//	inst.Complete()
package interactkit
