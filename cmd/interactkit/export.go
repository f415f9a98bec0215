package main

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/interactkit/export"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		pretty bool
		indent string
	)

	cmd := &cobra.Command{
		Use:   "export [kind...]",
		Short: "Export state hierarchies",
		Long: `Writes the state hierarchy of the named kinds (all kinds when none are
given) as XState JSON, a Mermaid state diagram or a YAML tree.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			opts := export.Options{Format: f, PrettyPrint: pretty, Indent: indent}

			if len(args) == 1 {
				k, err := a.kinds.get(args[0])
				if err != nil {
					return err
				}
				return export.Write(cmd.OutOrStdout(), k.def, opts)
			}
			defs, err := a.kinds.definitions(args)
			if err != nil {
				return err
			}
			return export.WriteAll(cmd.OutOrStdout(), defs, opts)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatXState), "Output format (xstate, mermaid, yaml)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&indent, "indent", "  ", "Indentation string (used with --pretty)")
	return cmd
}
