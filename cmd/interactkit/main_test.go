package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestKindsCmd(t *testing.T) {
	out, err := execute(t, "kinds")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "handpose"))
	assert.True(t, strings.HasPrefix(lines[1], "looper/touch"))
	assert.True(t, strings.HasPrefix(lines[2], "looper/vive"))
	assert.Contains(t, lines[0], "6 states, initial idle")
}

func TestExportCmd_SingleKind(t *testing.T) {
	out, err := execute(t, "export", "looper/vive")
	require.NoError(t, err)

	var machine map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &machine))
	assert.Equal(t, "looper/vive", machine["id"])
}

func TestExportCmd_AllKindsAsMermaid(t *testing.T) {
	out, err := execute(t, "export", "--format", "mermaid")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "stateDiagram-v2"))
}

func TestExportCmd_Errors(t *testing.T) {
	_, err := execute(t, "export", "--format", "dot")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "export", "nope")
	assert.ErrorContains(t, err, `unknown kind "nope"`)
}

func TestSimulateCmd_Looper(t *testing.T) {
	path := writeScript(t, `
kind: looper/touch
seed:
  name: right
  position: 0.5
frames:
  - events: [trigger+]
  - repeat: 2
  - events: [trigger-]
`)
	out, err := execute(t, "simulate", "--no-color", path)
	require.NoError(t, err)

	assert.Contains(t, out, "looper/touch start in idle\n")
	assert.Contains(t, out, "fired -> recording")
	assert.Contains(t, out, "final idle after 4 frames (2 transitions)")
	assert.Contains(t, out, "completed\n")
	assert.Contains(t, out, "slots=0 loops=1")
}

func TestSimulateCmd_HandposeWithMetrics(t *testing.T) {
	path := writeScript(t, `
seed:
  tracked: true
  target:
    name: drums
frames:
  - events: [pose.open+, pose.point+, pose.pinch+]
  - events: [pose.wave+]
`)
	out, err := execute(t, "simulate", "--no-color", "--metrics", "--kind", "handpose", path)
	require.NoError(t, err)

	assert.Contains(t, out, "ignored -> toggled")
	assert.Contains(t, out, "target=drums muted=true level=0.00")
	assert.Contains(t, out, `interactkit_transitions_total{from="pointing",machine="handpose",to="toggled"} 1`)
	assert.Contains(t, out, `interactkit_events_ignored_total{machine="handpose"} 1`)
}

func TestSimulateCmd_Errors(t *testing.T) {
	_, err := execute(t, "simulate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read script")

	path := writeScript(t, "kind: looper/touch\nseed:\n  position: [1, 2]\n")
	_, err = execute(t, "simulate", path)
	assert.ErrorContains(t, err, "decode seed")

	_, err = execute(t, "--log-level", "loud", "kinds")
	assert.ErrorContains(t, err, "unknown log level")
}
