package interactkit

import (
	"sync"

	"github.com/felixgeelhaar/interactkit/internal/ir"
)

// Machine is an immutable state machine definition. It is shared read-only
// by every Instance created from it.
type Machine[T any] struct {
	config *ir.MachineConfig
}

// ID returns the machine identifier
func (m *Machine[T]) ID() string { return m.config.ID }

// Initial returns the state instances start in
func (m *Machine[T]) Initial() StateID { return m.config.Initial }

// StateName returns the diagnostic name of a state
func (m *Machine[T]) StateName(id StateID) string { return m.config.Name(id) }

// Lookup finds a state by name
func (m *Machine[T]) Lookup(name string) (StateID, bool) { return m.config.Lookup(name) }

// Config exposes the internal representation for exporters. It is shared
// by every instance of the machine; callers must not modify it.
func (m *Machine[T]) Config() *ir.MachineConfig { return m.config }

// Lazy returns a function that builds a machine on first call and returns
// the same result afterwards. It is safe for concurrent first use; prefer
// building at startup and passing the machine explicitly.
func Lazy[T any](build func() (*Machine[T], error)) func() (*Machine[T], error) {
	return sync.OnceValues(build)
}
