package main

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/interactkit"
	"github.com/felixgeelhaar/interactkit/internal/parser"
	"github.com/felixgeelhaar/interactkit/internal/replay"
	"github.com/felixgeelhaar/interactkit/metrics"
)

func newSimulateCmd(a *app) *cobra.Command {
	var (
		kindName    string
		noColor     bool
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "simulate <script.yaml>",
		Short: "Replay a frame script against a kind",
		Long: `Creates one instance of the script's kind, dispatches each frame's events
in order followed by a single model update, and prints every step.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := parser.LoadScript(args[0])
			if err != nil {
				return err
			}
			if kindName != "" {
				script.Kind = kindName
			}
			k, err := a.kinds.get(script.Kind)
			if err != nil {
				return err
			}

			opts := []interactkit.Option{interactkit.WithLogger(a.logger)}
			reg := prometheus.NewRegistry()
			if showMetrics {
				collector, err := metrics.NewCollector(reg)
				if err != nil {
					return err
				}
				opts = append(opts, interactkit.WithHooks(collector.Hooks()))
			}

			res, summary, err := k.run(script, opts...)
			if err != nil {
				return fmt.Errorf("kind %s: %w", script.Kind, err)
			}
			a.logger.Info("simulation finished", "kind", script.Kind, "frames", res.Frames, "fired", res.Fired())

			var out *termenv.Output
			if noColor {
				out = termenv.NewOutput(cmd.OutOrStdout(), termenv.WithProfile(termenv.Ascii))
			} else {
				out = termenv.NewOutput(cmd.OutOrStdout())
			}
			printResult(out, res, summary)

			if showMetrics {
				return writeMetrics(cmd.OutOrStdout(), reg)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&kindName, "kind", "k", "", "Override the script's kind")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print collected metrics in Prometheus text format")
	return cmd
}

func printResult(out *termenv.Output, res *replay.Result, summary string) {
	fmt.Fprintf(out, "%s start in %s\n", res.Machine, out.String(res.Initial).Bold())
	for _, s := range res.Steps {
		mark := out.String("ignored").Faint()
		if s.Fired {
			mark = out.String("fired").Foreground(out.Color("2"))
		}
		fmt.Fprintf(out, "frame %3d  %-16s %s -> %s\n", s.Frame, s.Event, mark, s.Leaf)
	}
	fmt.Fprintf(out, "final %s after %d frames (%d transitions)\n", out.String(res.Final).Bold(), res.Frames, res.Fired())
	if res.Completed {
		fmt.Fprintln(out, "completed")
	}
	fmt.Fprintln(out, summary)
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, f := range families {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return nil
}
