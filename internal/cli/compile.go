package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cryptix/tenet/internal/compiler"
)

// NewCompileCommand compiles a CUE model and dumps the IR.
func NewCompileCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compile <model.cue>",
		Short: "Compile a CUE model to IR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := compiler.CompileFile(args[0])
			if err != nil {
				return err
			}
			if verrs := compiler.Validate(spec); len(verrs) > 0 {
				for _, verr := range verrs {
					fmt.Fprintln(cmd.ErrOrStderr(), verr.Error())
				}
				return fmt.Errorf("%d validation error(s)", len(verrs))
			}

			if opts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), spec)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "model: %s\n", spec.Name)
			fmt.Fprintf(out, "cells: %d\n", len(spec.Cells))
			for _, cell := range spec.Cells {
				if cell.Const != nil {
					fmt.Fprintf(out, "  %s (%s, const %v)\n", cell.Name, cell.Kind, *cell.Const)
				} else {
					fmt.Fprintf(out, "  %s (%s)\n", cell.Name, cell.Kind)
				}
			}
			fmt.Fprintf(out, "constraints: %d\n", len(spec.Constraints))
			for _, con := range spec.Constraints {
				fmt.Fprintf(out, "  %s: %s(%s, %s) -> %s\n", con.Name, con.Kind, con.A, con.B, con.Out)
			}
			if spec.Problem != nil {
				fmt.Fprintf(out, "problem: %d vars, %d constraints\n",
					len(spec.Problem.Vars), len(spec.Problem.Constraints))
			}
			return nil
		},
	}
}
