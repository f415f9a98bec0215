package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct{ parent Model }

func (s *stubModel) Parent() Model { return s.parent }

func stubEntry(_ Event, parent Model) Model { return &stubModel{parent: parent} }

// createHierarchicalMachine builds:
//
//	root
//	├── active
//	│   ├── idle
//	│   └── working
//	│       ├── loading
//	│       └── processing
//	└── done
func createHierarchicalMachine() (*MachineConfig, map[string]StateID) {
	m := NewMachineConfig("test")
	ids := map[string]StateID{"root": RootState}
	add := func(name, parent string) {
		ids[name] = m.AddState(name, ids[parent], stubEntry, nil)
	}
	add("active", "root")
	add("idle", "active")
	add("working", "active")
	add("loading", "working")
	add("processing", "working")
	add("done", "root")
	m.Initial = ids["idle"]
	return m, ids
}

func TestMachineConfig_ArenaLayout(t *testing.T) {
	m, ids := createHierarchicalMachine()

	root := m.GetState(RootState)
	require.NotNil(t, root)
	assert.Equal(t, RootName, root.Name)
	assert.Equal(t, NoState, root.Parent)
	assert.Equal(t, []StateID{ids["active"], ids["done"]}, root.Children)

	loading := m.GetState(ids["loading"])
	assert.Equal(t, 3, loading.Depth)
	assert.Equal(t, ids["working"], loading.Parent)

	assert.Nil(t, m.GetState(NoState))
	assert.Nil(t, m.GetState(StateID(len(m.States))))
}

func TestMachineConfig_Lookup(t *testing.T) {
	m, ids := createHierarchicalMachine()

	id, ok := m.Lookup("processing")
	assert.True(t, ok)
	assert.Equal(t, ids["processing"], id)
	assert.Equal(t, "processing", m.Name(id))

	_, ok = m.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, "", m.Name(StateID(99)))
}

func TestMachineConfig_GetAncestors(t *testing.T) {
	m, ids := createHierarchicalMachine()

	assert.Equal(t, []StateID{ids["working"], ids["active"], RootState}, m.GetAncestors(ids["loading"]))
	assert.Empty(t, m.GetAncestors(RootState))
}

func TestMachineConfig_GetPath(t *testing.T) {
	m, ids := createHierarchicalMachine()

	assert.Equal(t, []StateID{RootState, ids["active"], ids["working"], ids["processing"]},
		m.GetPath(ids["processing"]))
	assert.Equal(t, []StateID{RootState}, m.GetPath(RootState))
}

func TestMachineConfig_PathBelow(t *testing.T) {
	m, ids := createHierarchicalMachine()

	assert.Equal(t, []StateID{ids["working"], ids["loading"]}, m.PathBelow(ids["active"], ids["loading"]))
	assert.Empty(t, m.PathBelow(ids["active"], ids["active"]))
	assert.Equal(t, []StateID{ids["done"]}, m.PathBelow(RootState, ids["done"]))
}

func TestMachineConfig_IsDescendantOf(t *testing.T) {
	m, ids := createHierarchicalMachine()

	assert.True(t, m.IsDescendantOf(ids["loading"], ids["active"]))
	assert.True(t, m.IsDescendantOf(ids["loading"], RootState))
	assert.False(t, m.IsDescendantOf(ids["loading"], ids["loading"]))
	assert.False(t, m.IsDescendantOf(ids["idle"], ids["working"]))
}

func TestMachineConfig_FindLCA(t *testing.T) {
	m, ids := createHierarchicalMachine()

	tests := []struct {
		a, b string
		want string
	}{
		{"loading", "processing", "working"},
		{"loading", "idle", "active"},
		{"loading", "done", "root"},
		{"working", "loading", "working"},
		{"loading", "active", "active"},
		{"idle", "idle", "idle"},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, ids[tt.want], m.FindLCA(ids[tt.a], ids[tt.b]))
		})
	}

	assert.Equal(t, NoState, m.FindLCA(ids["idle"], StateID(42)))
}
