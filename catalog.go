package interactkit

import (
	"errors"
	"fmt"
)

var errNilMachine = errors.New("builder returned no machine")

// Catalog holds one machine per interaction kind (one per controller type,
// one per hand-pose set). Register every kind at startup, call Build once,
// then hand machines to instances with Get.
type Catalog[K comparable, T any] struct {
	order    []K
	builders map[K]func() (*Machine[T], error)
	machines map[K]*Machine[T]
}

// NewCatalog creates an empty catalog
func NewCatalog[K comparable, T any]() *Catalog[K, T] {
	return &Catalog[K, T]{
		builders: make(map[K]func() (*Machine[T], error)),
		machines: make(map[K]*Machine[T]),
	}
}

// Register adds a kind. Registering a kind twice replaces its builder.
func (c *Catalog[K, T]) Register(kind K, build func() (*Machine[T], error)) *Catalog[K, T] {
	if _, ok := c.builders[kind]; !ok {
		c.order = append(c.order, kind)
	}
	c.builders[kind] = build
	return c
}

// Build constructs every registered kind that is not built yet. All
// failures are reported together.
func (c *Catalog[K, T]) Build() error {
	var errs []error
	for _, kind := range c.order {
		if _, ok := c.machines[kind]; ok {
			continue
		}
		m, err := c.builders[kind]()
		if err == nil && m == nil {
			err = errNilMachine
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("kind %v: %w", kind, err))
			continue
		}
		c.machines[kind] = m
	}
	return errors.Join(errs...)
}

// Get returns the built machine for kind
func (c *Catalog[K, T]) Get(kind K) (*Machine[T], bool) {
	m, ok := c.machines[kind]
	return m, ok
}

// Kinds returns registered kinds in registration order
func (c *Catalog[K, T]) Kinds() []K {
	return append([]K(nil), c.order...)
}
