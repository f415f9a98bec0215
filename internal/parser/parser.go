// Package parser reads the compact event notation and replay scripts.
//
// An event is written as a control name followed by "+" (pressed) or "-"
// (released), optionally followed by "!" when captured upstream:
//
//	trigger+     grip-     pose.open+!
package parser

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/interactkit/internal/ir"
)

// ParseEvent parses a single event in compact notation.
func ParseEvent(s string) (ir.Event, error) {
	s = strings.TrimSpace(s)
	var e ir.Event

	if strings.HasSuffix(s, "!") {
		e.Captured = true
		s = s[:len(s)-1]
	}
	switch {
	case strings.HasSuffix(s, "+"):
		e.Down = true
	case strings.HasSuffix(s, "-"):
	default:
		return ir.Event{}, fmt.Errorf("event %q: missing direction suffix '+' or '-'", s)
	}

	control := s[:len(s)-1]
	if control == "" {
		return ir.Event{}, fmt.Errorf("event %q: missing control name", s)
	}
	if i := strings.IndexFunc(control, unicode.IsSpace); i >= 0 {
		return ir.Event{}, fmt.Errorf("event %q: control name contains whitespace", s)
	}
	e.Control = ir.ControlID(control)
	return e, nil
}

// ParseEvents parses each token with ParseEvent.
func ParseEvents(tokens []string) ([]ir.Event, error) {
	events := make([]ir.Event, 0, len(tokens))
	for i, tok := range tokens {
		e, err := ParseEvent(tok)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, e)
	}
	return events, nil
}

// Frame is one host-loop frame: zero or more events dispatched in order,
// followed by a single model update.
type Frame struct {
	Events []ir.Event
}

// Script is a replayable sequence of frames for one instance.
type Script struct {
	Kind     string
	Seed     map[string]any
	Initial  ir.Event
	Frames   []Frame
	Complete bool // Complete the instance after the last frame
}

type rawFrame struct {
	Events []string `yaml:"events"`
	Repeat int      `yaml:"repeat"`
}

type rawScript struct {
	Kind     string         `yaml:"kind"`
	Seed     map[string]any `yaml:"seed"`
	Initial  string         `yaml:"initial"`
	Frames   []rawFrame     `yaml:"frames"`
	Complete *bool          `yaml:"complete"`
}

// ParseScript decodes a YAML replay script.
//
//	kind: looper/touch
//	initial: trigger-
//	frames:
//	  - events: [trigger+]
//	  - repeat: 3
//	  - events: [trigger-]
//
// A frame with repeat: n stands for n frames without events. Scripts
// complete the instance at the end unless complete: false is given.
func ParseScript(data []byte) (*Script, error) {
	var raw rawScript
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}

	s := &Script{
		Kind:     raw.Kind,
		Seed:     raw.Seed,
		Complete: raw.Complete == nil || *raw.Complete,
	}
	if raw.Initial != "" {
		e, err := ParseEvent(raw.Initial)
		if err != nil {
			return nil, fmt.Errorf("initial: %w", err)
		}
		s.Initial = e
	}

	for i, rf := range raw.Frames {
		if rf.Repeat < 0 {
			return nil, fmt.Errorf("frame %d: negative repeat %d", i, rf.Repeat)
		}
		events, err := ParseEvents(rf.Events)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		if rf.Repeat > 0 && len(events) > 0 {
			return nil, fmt.Errorf("frame %d: repeat cannot be combined with events", i)
		}
		if rf.Repeat > 0 {
			for range rf.Repeat {
				s.Frames = append(s.Frames, Frame{})
			}
			continue
		}
		s.Frames = append(s.Frames, Frame{Events: events})
	}
	return s, nil
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}
