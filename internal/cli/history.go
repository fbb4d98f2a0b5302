package cli

import (
	"fmt"
	"text/tabwriter"

	"pillpal/internal/domain/doses"

	"github.com/spf13/cobra"
)

func historyCommand(st *state) *cobra.Command {
	var order string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the dose history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := doses.ParseOrder(order)
			if err != nil {
				return err
			}

			a, err := st.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			history := a.tracker.History(cmd.Context(), o)
			if len(history) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No doses recorded yet.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TAKEN AT\tMEDICATION\tDOSAGE")
			for _, d := range history {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", doses.FormatTimestamp(d.Timestamp), d.MedicationName, d.Dosage)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&order, "order", string(doses.NewestFirst), "desc (newest first) or asc")
	return cmd
}
