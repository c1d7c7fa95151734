package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cryptix/tenet/internal/harness"
)

// NewRunCommand executes a conformance scenario against a real
// network and reports the outcome.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	var showTrace bool

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a conformance scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := harness.Run(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.Format == "json" {
				snap, err := result.Snapshot()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(snap))
			} else {
				fmt.Fprintf(out, "scenario: %s\n", result.Scenario)
				for _, name := range sortedKeys(result.Cells) {
					fmt.Fprintf(out, "  %s = %s\n", name, result.Cells[name])
				}
				if result.Solution != nil {
					fmt.Fprintln(out, "solution:")
					for _, name := range sortedKeys(result.Solution) {
						fmt.Fprintf(out, "  %s = %d\n", name, result.Solution[name])
					}
				}
				if result.NoSolution {
					fmt.Fprintln(out, "no solution")
				}
				if showTrace {
					for _, ev := range result.Trace {
						fmt.Fprintln(out, formatEvent(ev))
					}
				}
			}

			if !result.Passed() {
				for _, failure := range result.Failures {
					fmt.Fprintln(cmd.ErrOrStderr(), failure)
				}
				return fmt.Errorf("%d expectation(s) failed", len(result.Failures))
			}
			if opts.Format != "json" {
				fmt.Fprintln(out, "ok")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showTrace, "trace", false, "print the full event trace")
	return cmd
}
