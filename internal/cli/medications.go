package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pillpal/internal/domain/medications"
	"pillpal/internal/domain/tracker"

	"github.com/spf13/cobra"
)

type medicationFlags struct {
	name          string
	dosage        string
	frequency     string
	times         []string
	reminder      string
	clearReminder bool
}

func (f *medicationFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "Medication name")
	fl.StringVar(&f.dosage, "dosage", "", "Dosage, e.g. 200mg")
	fl.StringVar(&f.frequency, "frequency", medications.FrequencyOnceDaily,
		"One of: "+strings.Join(frequencyLabels(), ", "))
	fl.StringSliceVar(&f.times, "times", nil, "Times of day: Morning, Afternoon, Evening")
	fl.StringVar(&f.reminder, "reminder", "", "Daily reminder time HH:MM (24h)")
}

func addCommand(st *state) *cobra.Command {
	var f medicationFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a medication",
		Example: `  pillpal add --name Ibuprofen --dosage 200mg --frequency "Twice daily" --times Morning,Evening --reminder 09:00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := st.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			in := medications.Input{
				Name:       f.name,
				Dosage:     f.dosage,
				Frequency:  f.frequency,
				TimesOfDay: toTimes(f.times),
			}
			if f.reminder != "" {
				rt := f.reminder
				in.ReminderTime = &rt
			}

			m, err := a.tracker.AddMedication(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) id=%s\n", m.Name, m.Dosage, m.ID)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func editCommand(st *state) *cobra.Command {
	var f medicationFlags

	cmd := &cobra.Command{
		Use:   "edit <medication>",
		Short: "Edit a medication; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := st.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			current, err := a.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			in := medications.InputFrom(current)
			fl := cmd.Flags()
			if fl.Changed("name") {
				in.Name = f.name
			}
			if fl.Changed("dosage") {
				in.Dosage = f.dosage
			}
			if fl.Changed("frequency") {
				in.Frequency = f.frequency
			}
			if fl.Changed("times") {
				in.TimesOfDay = toTimes(f.times)
			}
			if fl.Changed("reminder") {
				rt := f.reminder
				in.ReminderTime = &rt
			}
			if f.clearReminder {
				in.ReminderTime = nil
			}

			m, err := a.tracker.UpdateMedication(cmd.Context(), current.ID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s): %s\n", m.Name, m.Dosage, m.Schedule)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&f.clearReminder, "clear-reminder", false, "Remove the daily reminder")
	cmd.MarkFlagsMutuallyExclusive("reminder", "clear-reminder")
	return cmd
}

func listCommand(st *state) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List medications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := medications.ParseFilter(filter)
			if err != nil {
				return err
			}

			a, err := st.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			meds := a.tracker.Medications(cmd.Context(), f)
			if len(meds) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No medications.")
				return nil
			}
			return printMedications(cmd.OutOrStdout(), meds)
		},
	}
	cmd.Flags().StringVar(&filter, "filter", string(medications.FilterAll), "All, Morning, Afternoon or Evening")
	return cmd
}

func deleteCommand(st *state) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <medication>",
		Short: "Delete a medication and its dose history",
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

			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), tracker.DeletePrompt(m.Name)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			if err := a.tracker.DeleteMedication(cmd.Context(), m.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", m.Name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func takeCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "take <medication>",
		Short: "Mark a dose as taken now",
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
			d, err := a.tracker.RecordDose(cmd.Context(), m.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Took %s (%s).\n", d.MedicationName, d.Dosage)
			return nil
		},
	}
}

func printMedications(w io.Writer, meds []medications.Medication) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDOSAGE\tSCHEDULE\tREMINDER")
	for _, m := range meds {
		reminder := "-"
		if m.ReminderTime != nil {
			reminder = *m.ReminderTime
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Dosage, m.Schedule, reminder)
	}
	return tw.Flush()
}

// confirm pregunta por stdin; solo "y" o "yes" confirman.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func toTimes(in []string) []medications.TimeOfDay {
	out := make([]medications.TimeOfDay, 0, len(in))
	for _, s := range in {
		out = append(out, medications.TimeOfDay(strings.TrimSpace(s)))
	}
	return out
}

func frequencyLabels() []string {
	out := make([]string, 0, len(medications.Frequencies))
	for _, f := range medications.Frequencies {
		out = append(out, f.Label)
	}
	return out
}
