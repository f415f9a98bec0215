package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/interactkit/internal/logging"
)

// app carries state shared by every subcommand
type app struct {
	logger *slog.Logger
	kinds  *registry
}

func newRootCmd() *cobra.Command {
	a := &app{logger: logging.NewNop()}
	var level string

	root := &cobra.Command{
		Use:   "interactkit",
		Short: "Inspect and replay hierarchical interaction machines",
		Long: `interactkit lists the bundled interaction kinds, exports their state
hierarchies and replays scripted input against them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logging.ParseLevel(level)
			if err != nil {
				return err
			}
			a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), lvl)

			kinds, err := newRegistry()
			if err != nil {
				return err
			}
			a.kinds = kinds
			return nil
		},
	}
	root.PersistentFlags().StringVar(&level, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newKindsCmd(a),
		newExportCmd(a),
		newSimulateCmd(a),
	)
	return root
}
