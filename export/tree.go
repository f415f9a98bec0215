package export

import (
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/interactkit/internal/ir"
)

// Tree is a format-neutral view of a machine definition
type Tree struct {
	Machine string   `yaml:"machine" json:"machine"`
	Initial []string `yaml:"initial" json:"initial"` // path from the root
	Root    TreeNode `yaml:"root" json:"root"`
}

// TreeNode is one state of a Tree
type TreeNode struct {
	Name   string     `yaml:"name" json:"name"`
	Exit   bool       `yaml:"exit,omitempty" json:"exit,omitempty"`
	On     []TreeEdge `yaml:"on,omitempty" json:"on,omitempty"`
	States []TreeNode `yaml:"states,omitempty" json:"states,omitempty"`
}

// TreeEdge is one registered transition
type TreeEdge struct {
	Event  string `yaml:"event" json:"event"`
	Kind   string `yaml:"kind" json:"kind"`
	Target string `yaml:"target,omitempty" json:"target,omitempty"`
}

// NewTree builds the tree view of def
func NewTree(def Definition) *Tree {
	cfg := def.Config()
	t := &Tree{Machine: cfg.ID, Root: treeNode(cfg, ir.RootState)}
	for _, id := range cfg.GetPath(cfg.Initial) {
		t.Initial = append(t.Initial, cfg.Name(id))
	}
	return t
}

// YAML encodes the tree as YAML
func (t *Tree) YAML() ([]byte, error) {
	return yaml.Marshal(t)
}

func treeNode(cfg *ir.MachineConfig, id ir.StateID) TreeNode {
	s := cfg.GetState(id)
	node := TreeNode{Name: s.Name, Exit: s.Exit != nil}
	for _, trans := range s.Transitions.All() {
		edge := TreeEdge{Event: trans.Event.String(), Kind: trans.Kind.String()}
		if trans.Kind != ir.TransitionComputed {
			edge.Target = cfg.Name(trans.Target)
		}
		node.On = append(node.On, edge)
	}
	for _, child := range s.Children {
		node.States = append(node.States, treeNode(cfg, child))
	}
	return node
}
