package export

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects an output format
type Format string

// Supported formats
const (
	FormatXState  Format = "xstate"
	FormatMermaid Format = "mermaid"
	FormatYAML    Format = "yaml"
)

// Formats lists every supported format
func Formats() []Format {
	return []Format{FormatXState, FormatMermaid, FormatYAML}
}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !slices.Contains(Formats(), f) {
		return "", fmt.Errorf("unknown format %q (want one of %v)", s, Formats())
	}
	return f, nil
}

// Options configures Write and WriteAll.
type Options struct {
	Format Format

	// PrettyPrint enables indented JSON output
	PrettyPrint bool

	// Indent is the string used for indentation (default: "  ")
	Indent string
}

// Write exports a single machine to w.
func Write(w io.Writer, def Definition, opts Options) error {
	switch opts.Format {
	case FormatMermaid:
		return NewMermaidExporter(def).Render(w)
	case FormatYAML:
		return writeYAML(w, NewTree(def))
	case FormatXState, "":
		machine, err := NewXStateExporter(def).Export()
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		return writeJSON(w, machine, opts)
	}
	return fmt.Errorf("unknown format %q", opts.Format)
}

// WriteAll exports several machines, keyed by kind. JSON and YAML output is
// a single document with kinds as keys; Mermaid output is one diagram per
// kind in key order.
func WriteAll(w io.Writer, defs map[string]Definition, opts Options) error {
	kinds := make([]string, 0, len(defs))
	for k := range defs {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	switch opts.Format {
	case FormatMermaid:
		for _, k := range kinds {
			if err := Write(w, defs[k], opts); err != nil {
				return fmt.Errorf("export %q failed: %w", k, err)
			}
		}
		return nil
	case FormatYAML:
		result := make(map[string]*Tree, len(defs))
		for _, k := range kinds {
			result[k] = NewTree(defs[k])
		}
		return writeYAML(w, result)
	case FormatXState, "":
		result := make(map[string]*XStateMachine, len(defs))
		for _, k := range kinds {
			machine, err := NewXStateExporter(defs[k]).Export()
			if err != nil {
				return fmt.Errorf("export %q failed: %w", k, err)
			}
			result[k] = machine
		}
		return writeJSON(w, result, opts)
	}
	return fmt.Errorf("unknown format %q", opts.Format)
}

func writeJSON(w io.Writer, v any, opts Options) error {
	var data []byte
	var err error

	if opts.PrettyPrint {
		indent := opts.Indent
		if indent == "" {
			indent = "  "
		}
		data, err = json.MarshalIndent(v, "", indent)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("JSON marshal failed: %w", err)
	}

	// trailing newline for terminal output
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("YAML encode failed: %w", err)
	}
	return enc.Close()
}
