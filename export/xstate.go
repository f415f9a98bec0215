// Package export converts machine definitions to external formats: XState
// JSON for the Stately visualizer, Mermaid state diagrams and a plain YAML
// tree.
package export

import (
	"encoding/json"

	"github.com/felixgeelhaar/interactkit/internal/ir"
)

// Definition is implemented by *interactkit.Machine for every seed type
type Definition interface {
	Config() *ir.MachineConfig
}

// XStateExporter converts a machine definition to XState-compatible JSON.
// The exported JSON can be used with:
// - XState Visualizer (stately.ai/viz)
// - XState v5 compatible tools
//
// Guards and computed targets are opaque functions, so they are exported
// by kind only.
type XStateExporter struct {
	machine *ir.MachineConfig
	initial map[ir.StateID]ir.StateID // state -> child on the initial path
}

// NewXStateExporter creates a new exporter for the given machine
func NewXStateExporter(def Definition) *XStateExporter {
	cfg := def.Config()
	e := &XStateExporter{machine: cfg, initial: make(map[ir.StateID]ir.StateID)}
	for _, id := range cfg.GetPath(cfg.Initial) {
		if s := cfg.GetState(id); s != nil && s.Parent != ir.NoState {
			e.initial[s.Parent] = id
		}
	}
	return e
}

// XStateMachine represents an XState machine configuration
type XStateMachine struct {
	ID      string                      `json:"id"`
	Initial string                      `json:"initial,omitempty"`
	States  map[string]XStateNode       `json:"states"`
	On      map[string]XStateTransition `json:"on,omitempty"`
}

// XStateNode represents a single state in XState format
type XStateNode struct {
	ID      string                      `json:"id"`
	Initial string                      `json:"initial,omitempty"` // only along the initial path
	States  map[string]XStateNode       `json:"states,omitempty"`
	Exit    []string                    `json:"exit,omitempty"`
	On      map[string]XStateTransition `json:"on,omitempty"`
}

// XStateTransition represents a transition in XState format
type XStateTransition struct {
	Target string `json:"target,omitempty"` // empty for computed transitions
	Guard  string `json:"guard,omitempty"`
}

// Export converts the machine to XState format
func (e *XStateExporter) Export() (*XStateMachine, error) {
	root := e.buildStateNode(ir.RootState)
	return &XStateMachine{
		ID:      e.machine.ID,
		Initial: root.Initial,
		States:  root.States,
		On:      root.On,
	}, nil
}

// ExportJSON returns the machine as a JSON string
func (e *XStateExporter) ExportJSON() (string, error) {
	machine, err := e.Export()
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(machine)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// ExportJSONIndent returns the machine as a formatted JSON string
func (e *XStateExporter) ExportJSONIndent(prefix, indent string) (string, error) {
	machine, err := e.Export()
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(machine, prefix, indent)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (e *XStateExporter) buildStateNode(id ir.StateID) XStateNode {
	state := e.machine.GetState(id)
	if state == nil {
		return XStateNode{}
	}

	node := XStateNode{ID: state.Name}
	if child, ok := e.initial[id]; ok {
		node.Initial = e.machine.Name(child)
	}

	if len(state.Children) > 0 {
		node.States = make(map[string]XStateNode, len(state.Children))
		for _, child := range state.Children {
			node.States[e.machine.Name(child)] = e.buildStateNode(child)
		}
	}

	if state.Exit != nil {
		node.Exit = []string{"exit"}
	}

	for _, trans := range state.Transitions.All() {
		if node.On == nil {
			node.On = make(map[string]XStateTransition)
		}
		t := XStateTransition{}
		switch trans.Kind {
		case ir.TransitionComputed:
			t.Guard = "computed"
		case ir.TransitionGuarded:
			t.Guard = "guarded"
			t.Target = "#" + e.machine.Name(trans.Target)
		default:
			t.Target = "#" + e.machine.Name(trans.Target)
		}
		node.On[trans.Event.String()] = t
	}

	return node
}
