package ir

// RootName is the diagnostic name of the implicit root state
const RootName = "root"

// MachineConfig is the immutable internal representation of a machine.
// States live in an arena indexed by StateID; a state's parent always has a
// smaller index, so the tree cannot contain cycles.
type MachineConfig struct {
	ID      string
	Initial StateID
	States  []*StateConfig
}

// StateConfig represents a single state node
type StateConfig struct {
	ID          StateID
	Name        string
	Parent      StateID // NoState for the root
	Depth       int     // 0 for the root
	Children    []StateID
	Entry       EntryFunc // nil only for the root
	Exit        ExitFunc  // Optional
	Transitions Table
}

// NewMachineConfig creates a MachineConfig holding only the root state
func NewMachineConfig(id string) *MachineConfig {
	return &MachineConfig{
		ID:      id,
		Initial: NoState,
		States: []*StateConfig{{
			ID:     RootState,
			Name:   RootName,
			Parent: NoState,
		}},
	}
}

// AddState appends a child of parent to the arena and returns its ID.
// The caller guarantees parent is already present.
func (m *MachineConfig) AddState(name string, parent StateID, entry EntryFunc, exit ExitFunc) StateID {
	p := m.States[parent]
	id := StateID(len(m.States))
	m.States = append(m.States, &StateConfig{
		ID:     id,
		Name:   name,
		Parent: parent,
		Depth:  p.Depth + 1,
		Entry:  entry,
		Exit:   exit,
	})
	p.Children = append(p.Children, id)
	return id
}

// GetState returns the state config for the given ID, or nil if not found
func (m *MachineConfig) GetState(id StateID) *StateConfig {
	if id < 0 || int(id) >= len(m.States) {
		return nil
	}
	return m.States[id]
}

// Lookup returns the first state registered under name
func (m *MachineConfig) Lookup(name string) (StateID, bool) {
	for _, s := range m.States {
		if s.Name == name {
			return s.ID, true
		}
	}
	return NoState, false
}

// Name returns the diagnostic name of a state, or "" if not found
func (m *MachineConfig) Name(id StateID) string {
	if s := m.GetState(id); s != nil {
		return s.Name
	}
	return ""
}

// GetAncestors returns all ancestor state IDs from immediate parent to root
func (m *MachineConfig) GetAncestors(id StateID) []StateID {
	var ancestors []StateID
	current := m.GetState(id)
	for current != nil && current.Parent != NoState {
		ancestors = append(ancestors, current.Parent)
		current = m.GetState(current.Parent)
	}
	return ancestors
}

// GetPath returns the full path from root to the given state
func (m *MachineConfig) GetPath(id StateID) []StateID {
	ancestors := m.GetAncestors(id)
	path := make([]StateID, len(ancestors)+1)
	for i, a := range ancestors {
		path[len(ancestors)-1-i] = a
	}
	path[len(path)-1] = id
	return path
}

// PathBelow returns the states strictly below ancestor down to and including
// target, in root-to-leaf order. It is empty when target == ancestor.
func (m *MachineConfig) PathBelow(ancestor, target StateID) []StateID {
	var rev []StateID
	for id := target; id != ancestor && id != NoState; id = m.States[id].Parent {
		rev = append(rev, id)
	}
	out := make([]StateID, len(rev))
	for i, id := range rev {
		out[len(rev)-1-i] = id
	}
	return out
}

// IsDescendantOf checks if id is a strict descendant of ancestor
func (m *MachineConfig) IsDescendantOf(id, ancestor StateID) bool {
	for _, a := range m.GetAncestors(id) {
		if a == ancestor {
			return true
		}
	}
	return false
}

// FindLCA finds the lowest common ancestor of two states. A state counts as
// its own ancestor, so FindLCA(a, descendantOfA) == a.
func (m *MachineConfig) FindLCA(a, b StateID) StateID {
	sa, sb := m.GetState(a), m.GetState(b)
	if sa == nil || sb == nil {
		return NoState
	}
	for sa.Depth > sb.Depth {
		sa = m.States[sa.Parent]
	}
	for sb.Depth > sa.Depth {
		sb = m.States[sb.Parent]
	}
	for sa.ID != sb.ID {
		sa = m.States[sa.Parent]
		sb = m.States[sb.Parent]
	}
	return sa.ID
}
