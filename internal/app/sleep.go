package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
	"github.com/blackwell-systems/mindcoach/internal/output"
)

var (
	sleepDate   string
	sleepWake   string
	sleepCycles int
)

var sleepCmd = &cobra.Command{
	Use:   "sleep",
	Short: "Plan tonight's sleep window",
	Long: `Work back from the target wake time on the next morning by whole
90-minute sleep cycles plus time to fall asleep.`,
	Example: `  mindcoach sleep
  mindcoach sleep --wake 06:30 --cycles 6`,
	RunE: runSleep,
}

func init() {
	sleepCmd.Flags().StringVar(&sleepDate, "date", "today", "Night to plan (the evening of this day)")
	sleepCmd.Flags().StringVar(&sleepWake, "wake", "", "Wake time HH:MM (default: sleep.wake_time)")
	sleepCmd.Flags().IntVar(&sleepCycles, "cycles", 0, "Sleep cycles (default: sleep.cycles)")
	rootCmd.AddCommand(sleepCmd)
}

func runSleep(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	day, err := parseDate(sleepDate, s.now, s.loc)
	if err != nil {
		return fmt.Errorf("--date: %w", err)
	}
	prefs, err := s.cfg.SleepPrefs()
	if err != nil {
		return fmt.Errorf("sleep config: %w", err)
	}
	if sleepWake != "" {
		if prefs.TargetWake, err = agenda.ParseClock(sleepWake); err != nil {
			return fmt.Errorf("--wake: %w", err)
		}
	}
	if sleepCycles > 0 {
		prefs.Cycles = sleepCycles
	}

	plan := agenda.ProposeSleepWindow(day, s.loc, prefs)

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, plan)
	}
	fmt.Fprintln(out, output.Section("Sleep plan for the night of "+day.Format("Mon 02 Jan")))
	fmt.Fprintf(out, " %s %s\n", output.StyleLabel.Render("In bed by"), output.StyleBold.Render(clock(plan.Start, s.loc)))
	fmt.Fprintf(out, " %s %s\n", output.StyleLabel.Render("Wake at"), clock(plan.End, s.loc))
	fmt.Fprintf(out, " %s %d × 90 min + %d min to fall asleep\n", output.StyleLabel.Render("Cycles"), plan.Cycles, prefs.BufferMinutes)
	fmt.Fprintf(out, " %s %s\n", output.StyleLabel.Render("Time in bed"), formatDuration(plan.End.Sub(plan.Start)))
	return nil
}

