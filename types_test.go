package interactkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventConstructors(t *testing.T) {
	assert.Equal(t, Event{Control: "grip", Down: true}, Press("grip"))
	assert.Equal(t, Event{Control: "grip"}, Release("grip"))
	assert.Equal(t, Event{Control: "grip", Down: true, Captured: true}, Captured(Press("grip")))
	assert.NotEqual(t, 0, Press("grip").Compare(Captured(Press("grip"))))
}

func TestAs_WalksChain(t *testing.T) {
	root := &Root[int]{Seed: 4}
	mid := &node{Nested: Within[Model](root), name: "mid"}
	leaf := &node{Nested: Within[Model](mid), name: "leaf"}

	n, ok := As[*node](leaf)
	assert.True(t, ok)
	assert.Same(t, leaf, n, "the model itself counts")

	r, ok := As[*Root[int]](leaf)
	assert.True(t, ok)
	assert.Same(t, root, r)

	_, ok = As[*Root[string]](leaf)
	assert.False(t, ok)

	seed, ok := SeedOf[int](leaf)
	assert.True(t, ok)
	assert.Equal(t, 4, seed)

	_, ok = SeedOf[string](leaf)
	assert.False(t, ok)

	assert.Nil(t, root.Parent())
	assert.Same(t, mid, leaf.Outer())
}
