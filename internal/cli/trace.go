package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cryptix/tenet/internal/ir"
	"github.com/cryptix/tenet/internal/store"
)

// NewTraceCommand dumps a trace store's event log.
func NewTraceCommand(opts *RootOptions) *cobra.Command {
	var (
		kind   string
		cell   int64
		counts bool
	)

	cmd := &cobra.Command{
		Use:   "trace <trace.db>",
		Short: "Inspect a provenance trace store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(args[0])
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if counts {
				byKind, err := st.CountByKind(ctx)
				if err != nil {
					return err
				}
				if opts.Format == "json" {
					return printJSON(out, byKind)
				}
				for _, k := range sortedKeys(byKind) {
					fmt.Fprintf(out, "%-8s %d\n", k, byKind[k])
				}
				return nil
			}

			var events []ir.TraceEvent
			switch {
			case kind != "":
				events, err = st.ReadEventsByKind(ctx, kind)
			case cell != 0:
				events, err = st.ReadCellEvents(ctx, cell)
			default:
				events, err = st.ReadEvents(ctx)
			}
			if err != nil {
				return err
			}

			if opts.Format == "json" {
				return printJSON(out, events)
			}
			for _, ev := range events {
				fmt.Fprintln(out, formatEvent(ev))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "only events of this kind")
	cmd.Flags().Int64Var(&cell, "cell", 0, "only events touching this cell id")
	cmd.Flags().BoolVar(&counts, "counts", false, "print event counts per kind")
	return cmd
}
