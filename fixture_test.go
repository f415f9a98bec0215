package interactkit

import "strings"

// node is a generic test model that records its lifecycle.
type node struct {
	Nested[Model]
	name    string
	entered Event
	updates int
}

func (n *node) Update() { n.updates++ }

type journal struct {
	calls []string
}

func (j *journal) take() []string {
	out := j.calls
	j.calls = nil
	return out
}

func (j *journal) String() string { return strings.Join(j.calls, ",") }

func tracked[P Model](j *journal, parent State[P], name string) State[*node] {
	return Child(parent, name,
		func(e Event, p P) *node {
			j.calls = append(j.calls, "enter:"+name)
			return &node{Nested: Within[Model](p), name: name, entered: e}
		},
		func(e Event, n *node) {
			j.calls = append(j.calls, "exit:"+name)
		})
}

const (
	ctrlGo    ControlID = "go"
	ctrlBack  ControlID = "back"
	ctrlReset ControlID = "reset"
	ctrlNoise ControlID = "noise"
)

type tree struct {
	b         *MachineBuilder[string]
	j         *journal
	top       State[*node]
	left      State[*node]
	leftLeaf  State[*node]
	right     State[*node]
	rightLeaf State[*node]
	other     State[*node]
}

// newTree declares:
//
//	root
//	├── top
//	│   ├── left
//	│   │   └── leftLeaf
//	│   └── right
//	│       └── rightLeaf
//	└── other
func newTree() *tree {
	j := &journal{}
	b := NewMachine[string]("tree")
	t := &tree{b: b, j: j}
	t.top = tracked(j, b.Root(), "top")
	t.left = tracked(j, t.top, "left")
	t.leftLeaf = tracked(j, t.left, "leftLeaf")
	t.right = tracked(j, t.top, "right")
	t.rightLeaf = tracked(j, t.right, "rightLeaf")
	t.other = tracked(j, b.Root(), "other")
	b.WithInitial(t.leftLeaf)
	return t
}

func gotoEvent(s Target) Event {
	return Press(ControlID("goto." + s.Name()))
}

// withGotos registers a root-level jump to every state.
func (t *tree) withGotos() *tree {
	root := t.b.Root()
	for _, s := range []Target{t.top, t.left, t.leftLeaf, t.right, t.rightLeaf, t.other} {
		root.On(gotoEvent(s), s)
	}
	return t
}

func recoverError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}
