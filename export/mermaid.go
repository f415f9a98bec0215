package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/interactkit/internal/ir"
)

// MermaidExporter renders a machine as a Mermaid stateDiagram-v2. The root
// is drawn as a composite state so transitions registered on it have a
// source. Computed transitions lead to a <<choice>> node.
type MermaidExporter struct {
	machine *ir.MachineConfig
}

// NewMermaidExporter creates a new exporter for the given machine
func NewMermaidExporter(def Definition) *MermaidExporter {
	return &MermaidExporter{machine: def.Config()}
}

// Export returns the diagram source
func (e *MermaidExporter) Export() string {
	var b strings.Builder
	_ = e.Render(&b)
	return b.String()
}

// Render writes the diagram source to w
func (e *MermaidExporter) Render(w io.Writer) error {
	p := &printer{w: w}
	p.line(0, "stateDiagram-v2")
	p.line(1, "%% "+e.machine.ID)
	e.writeState(p, ir.RootState, 1)
	return p.err
}

func (e *MermaidExporter) writeState(p *printer, id ir.StateID, indent int) {
	state := e.machine.GetState(id)
	name := mermaidID(state.Name)

	if len(state.Children) == 0 {
		p.line(indent, name)
	} else {
		p.line(indent, "state "+name+" {")
		if child, ok := e.initialChild(id); ok {
			p.line(indent+1, "[*] --> "+mermaidID(e.machine.Name(child)))
		}
		for _, child := range state.Children {
			e.writeState(p, child, indent+1)
		}
		p.line(indent, "}")
	}

	for n, trans := range state.Transitions.All() {
		label := trans.Event.String()
		switch trans.Kind {
		case ir.TransitionComputed:
			choice := fmt.Sprintf("%s_choice%d", name, n)
			p.line(indent, "state "+choice+" <<choice>>")
			p.line(indent, fmt.Sprintf("%s --> %s : %s", name, choice, label))
			continue
		case ir.TransitionGuarded:
			label += " [guard]"
		}
		p.line(indent, fmt.Sprintf("%s --> %s : %s", name, mermaidID(e.machine.Name(trans.Target)), label))
	}
}

func (e *MermaidExporter) initialChild(id ir.StateID) (ir.StateID, bool) {
	for _, s := range e.machine.GetPath(e.machine.Initial) {
		if e.machine.GetState(s).Parent == id {
			return s, true
		}
	}
	return ir.NoState, false
}

// mermaidID replaces characters Mermaid does not accept in state ids
func mermaidID(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, name)
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(indent int, s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("    ", indent), s)
}
