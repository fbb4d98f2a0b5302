package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func infoCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "info <medication>",
		Short: "Show a plain-language description of what a medication is commonly used for",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := st.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			m, err := a.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Fetching information for %s...\n", m.Name)
			res := <-a.medinfo.LookupAsync(cmd.Context(), m)

			if !res.OK() {
				fmt.Fprintln(cmd.OutOrStdout(), res.Error)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", res.MedicationName, res.Content)
			return nil
		},
	}
}
