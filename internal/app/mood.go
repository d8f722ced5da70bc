package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/mindcoach/internal/output"
	"github.com/blackwell-systems/mindcoach/internal/store"
)

var (
	moodEnergy int
	moodStress int
	moodNote   string
	moodAt     string
)

var moodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Log energy and stress",
}

var moodLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Record how you feel on a 1-10 scale",
	Long: `Record self-reported energy and stress on a 1-10 scale. Either may be
omitted. The latest sample from the past day feeds recommend.`,
	Example: `  mindcoach mood log --energy 3 --stress 7`,
	RunE:    runMoodLog,
}

func init() {
	moodLogCmd.Flags().IntVar(&moodEnergy, "energy", 0, "Energy, 1-10")
	moodLogCmd.Flags().IntVar(&moodStress, "stress", 0, "Stress, 1-10")
	moodLogCmd.Flags().StringVar(&moodNote, "note", "", "Note")
	moodLogCmd.Flags().StringVar(&moodAt, "at", "", "When (default: now)")
	moodCmd.AddCommand(moodLogCmd)
	rootCmd.AddCommand(moodCmd)
}

// scaleFlag returns nil for an unset flag and validates the 1-10 range.
func scaleFlag(cmd *cobra.Command, name string, v int) (*int, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	if v < 1 || v > 10 {
		return nil, fmt.Errorf("--%s must be between 1 and 10, got %d", name, v)
	}
	return &v, nil
}

func runMoodLog(cmd *cobra.Command, args []string) error {
	energy, err := scaleFlag(cmd, "energy", moodEnergy)
	if err != nil {
		return err
	}
	stress, err := scaleFlag(cmd, "stress", moodStress)
	if err != nil {
		return err
	}
	if energy == nil && stress == nil {
		return fmt.Errorf("give --energy, --stress, or both")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	m := store.Mood{LoggedAt: s.now, Energy: energy, Stress: stress, Note: moodNote}
	if moodAt != "" {
		if m.LoggedAt, err = parseDateTime(moodAt, s.now, s.loc); err != nil {
			return fmt.Errorf("--at: %w", err)
		}
	}
	if err := s.db.InsertMood(cmd.Context(), &m); err != nil {
		return err
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), m)
	}
	fmt.Fprintf(cmd.OutOrStdout(), " %s energy %s, stress %s\n",
		output.StyleSuccess.Render("Logged"), scaleText(m.Energy), scaleText(m.Stress))
	return nil
}

func scaleText(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d/10", *v)
}
