package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/interactkit"
	"github.com/felixgeelhaar/interactkit/examples/handpose"
	"github.com/felixgeelhaar/interactkit/examples/looper"
	"github.com/felixgeelhaar/interactkit/export"
	"github.com/felixgeelhaar/interactkit/internal/parser"
	"github.com/felixgeelhaar/interactkit/internal/replay"
)

// kind hides the seed type of one bundled machine
type kind struct {
	def export.Definition
	run func(script *parser.Script, opts ...interactkit.Option) (*replay.Result, string, error)
}

type registry struct {
	names []string
	kinds map[string]kind
}

func (r *registry) add(name string, k kind) {
	r.names = append(r.names, name)
	r.kinds[name] = k
}

func (r *registry) get(name string) (kind, error) {
	k, ok := r.kinds[name]
	if !ok {
		return kind{}, fmt.Errorf("unknown kind %q (have %v)", name, r.names)
	}
	return k, nil
}

func (r *registry) definitions(names []string) (map[string]export.Definition, error) {
	if len(names) == 0 {
		names = r.names
	}
	defs := make(map[string]export.Definition, len(names))
	for _, name := range names {
		k, err := r.get(name)
		if err != nil {
			return nil, err
		}
		defs[name] = k.def
	}
	return defs, nil
}

type controllerSeed struct {
	Name     string  `yaml:"name"`
	Position float64 `yaml:"position"`
}

type handSeed struct {
	Side    string  `yaml:"side"`
	Y       float64 `yaml:"y"`
	Tracked bool    `yaml:"tracked"`
	Target  *struct {
		Name  string  `yaml:"name"`
		Muted bool    `yaml:"muted"`
		Level float64 `yaml:"level"`
	} `yaml:"target"`
}

func newRegistry() (*registry, error) {
	r := &registry{kinds: make(map[string]kind)}

	loopers := looper.NewCatalog()
	if err := loopers.Build(); err != nil {
		return nil, err
	}
	for _, name := range loopers.Kinds() {
		m, _ := loopers.Get(name)
		r.add("looper/"+name, kind{
			def: m,
			run: func(script *parser.Script, opts ...interactkit.Option) (*replay.Result, string, error) {
				var s controllerSeed
				if err := decodeSeed(script.Seed, &s); err != nil {
					return nil, "", err
				}
				c := &looper.Controller{Name: s.Name, Position: s.Position}
				res := replay.Run(m, c, script, opts...)
				return res, fmt.Sprintf("slots=%d loops=%d", c.Slots, len(c.Loops)), nil
			},
		})
	}

	hands, err := handpose.NewMachine()
	if err != nil {
		return nil, err
	}
	r.add("handpose", kind{
		def: hands,
		run: func(script *parser.Script, opts ...interactkit.Option) (*replay.Result, string, error) {
			var s handSeed
			if err := decodeSeed(script.Seed, &s); err != nil {
				return nil, "", err
			}
			h := &handpose.Hand{Side: s.Side, Y: s.Y, Tracked: s.Tracked}
			if s.Target != nil {
				h.Target = &handpose.Track{Name: s.Target.Name, Muted: s.Target.Muted, Level: s.Target.Level}
			}
			res := replay.Run(hands, h, script, opts...)
			summary := "target=none"
			if h.Target != nil {
				summary = fmt.Sprintf("target=%s muted=%t level=%.2f", h.Target.Name, h.Target.Muted, h.Target.Level)
			}
			return res, summary, nil
		},
	})

	slices.Sort(r.names)
	return r, nil
}

// decodeSeed converts a script's free-form seed into a typed value
func decodeSeed(seed map[string]any, out any) error {
	if len(seed) == 0 {
		return nil
	}
	data, err := yaml.Marshal(seed)
	if err != nil {
		return fmt.Errorf("encode seed: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode seed: %w", err)
	}
	return nil
}

func newKindsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the bundled interaction kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range a.kinds.names {
				cfg := a.kinds.kinds[name].def.Config()
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %d states, initial %s\n",
					name, len(cfg.States), cfg.Name(cfg.Initial))
			}
			return nil
		},
	}
}
