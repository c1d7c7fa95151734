package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cryptix/tenet/internal/compiler"
)

// NewValidateCommand checks a CUE model against schema rules, printing
// every problem found.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <model.cue>",
		Short: "Validate a CUE model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := compiler.CompileFile(args[0])
			if err != nil {
				return err
			}

			verrs := compiler.Validate(spec)
			if len(verrs) == 0 {
				if opts.Format == "json" {
					return printJSON(cmd.OutOrStdout(), map[string]any{"valid": true})
				}
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			}

			if opts.Format == "json" {
				if err := printJSON(cmd.OutOrStdout(), map[string]any{
					"valid":  false,
					"errors": verrs,
				}); err != nil {
					return err
				}
			} else {
				for _, verr := range verrs {
					fmt.Fprintln(cmd.OutOrStdout(), verr.Error())
				}
			}
			return fmt.Errorf("%d validation error(s)", len(verrs))
		},
	}
}
