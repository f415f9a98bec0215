package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/interactkit"
	"github.com/felixgeelhaar/interactkit/examples/looper"
	"github.com/felixgeelhaar/interactkit/internal/parser"
)

const recordScript = `
kind: looper/touch
initial: trigger-
frames:
  - events: [trigger+!]
  - events: [trigger+]
  - repeat: 3
  - events: [trigger-, grip+]
`

func TestRun_RecordsSteps(t *testing.T) {
	script, err := parser.ParseScript([]byte(recordScript))
	require.NoError(t, err)
	m, err := looper.NewMachine("touch", looper.TouchButtons)
	require.NoError(t, err)

	c := &looper.Controller{}
	res := Run(m, c, script)

	assert.Equal(t, "looper/touch", res.Machine)
	assert.Equal(t, "idle", res.Initial)
	assert.Equal(t, 6, res.Frames)
	require.Len(t, res.Steps, 4)

	assert.Equal(t, Step{Frame: 0, Event: interactkit.Captured(interactkit.Press("trigger")), Fired: false, Leaf: "idle"}, res.Steps[0])
	assert.Equal(t, Step{Frame: 1, Event: interactkit.Press("trigger"), Fired: true, Leaf: "recording"}, res.Steps[1])
	assert.Equal(t, Step{Frame: 5, Event: interactkit.Release("trigger"), Fired: true, Leaf: "idle"}, res.Steps[2])
	// the new loop sits at the controller, so grip picks it up
	assert.Equal(t, Step{Frame: 5, Event: interactkit.Press("grip"), Fired: true, Leaf: "holding"}, res.Steps[3])

	assert.Equal(t, 3, res.Fired())
	assert.Equal(t, "holding", res.Final)
	assert.True(t, res.Completed)

	assert.Equal(t, 0, c.Slots)
	require.Len(t, c.Loops, 1)
	assert.Equal(t, 4, c.Loops[0].Frames, "frame 1 plus three idle frames")
}

func TestRun_WithoutComplete(t *testing.T) {
	script, err := parser.ParseScript([]byte("frames:\n  - events: [trigger+]\ncomplete: false\n"))
	require.NoError(t, err)
	m, err := looper.NewMachine("touch", looper.TouchButtons)
	require.NoError(t, err)

	c := &looper.Controller{}
	res := Run(m, c, script)

	assert.False(t, res.Completed)
	assert.Equal(t, "recording", res.Final)
	assert.Equal(t, 1, c.Slots, "recording still holds its slot")
}

func TestRun_PassesOptions(t *testing.T) {
	script, err := parser.ParseScript([]byte("frames:\n  - events: [trigger+, trigger-]\n"))
	require.NoError(t, err)
	m, err := looper.NewMachine("touch", looper.TouchButtons)
	require.NoError(t, err)

	var transitions []string
	Run(m, &looper.Controller{}, script, interactkit.WithHooks(interactkit.Hooks{
		OnTransition: func(e *interactkit.TransitionEvent) {
			transitions = append(transitions, e.From+">"+e.To)
		},
	}))
	assert.Equal(t, []string{"idle>recording", "recording>idle"}, transitions)
}
