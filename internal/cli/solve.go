package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cryptix/tenet/internal/compiler"
	"github.com/cryptix/tenet/internal/solver"
)

// NewSolveCommand runs a model's finite-domain problem through the
// solver.
func NewSolveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "solve <model.cue>",
		Short: "Solve a model's finite-domain problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := compiler.CompileFile(args[0])
			if err != nil {
				return err
			}
			if verrs := compiler.Validate(spec); len(verrs) > 0 {
				return fmt.Errorf("model is invalid: %s", verrs[0].Error())
			}
			if spec.Problem == nil {
				return fmt.Errorf("model has no problem section")
			}

			domains, constraints, err := compiler.Problem(spec.Problem)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			assignment, err := solver.Solve(domains, constraints)
			if err != nil {
				if !solver.IsNoSolution(err) {
					return err
				}
				if opts.Format == "json" {
					return printJSON(out, map[string]any{"no_solution": true})
				}
				fmt.Fprintln(out, "no solution")
				return nil
			}

			if opts.Format == "json" {
				byName := make(map[string]int64, len(assignment))
				for name, v := range assignment {
					byName[string(name)] = v
				}
				return printJSON(out, map[string]any{"assignment": byName})
			}

			byName := make(map[string]int64, len(assignment))
			for name, v := range assignment {
				byName[string(name)] = v
			}
			for _, name := range sortedKeys(byName) {
				fmt.Fprintf(out, "%s = %d\n", name, byName[name])
			}
			return nil
		},
	}
}
