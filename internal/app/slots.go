package app

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
	"github.com/blackwell-systems/mindcoach/internal/output"
)

var (
	slotsDate       string
	slotsMinMinutes int
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Show free time for a day",
	Long: `Show the free windows between events within the configured planning
day. Windows shorter than the minimum are not reported.`,
	Example: `  mindcoach slots
  mindcoach slots --date tomorrow --min 30`,
	RunE: runSlots,
}

func init() {
	slotsCmd.Flags().StringVar(&slotsDate, "date", "today", "Day to inspect")
	slotsCmd.Flags().IntVar(&slotsMinMinutes, "min", 0, "Minimum window length in minutes (default: free_slots.min_minutes)")
	rootCmd.AddCommand(slotsCmd)
}

func runSlots(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	day, err := parseDate(slotsDate, s.now, s.loc)
	if err != nil {
		return fmt.Errorf("--date: %w", err)
	}
	minMinutes := slotsMinMinutes
	if minMinutes <= 0 {
		minMinutes = s.cfg.FreeSlots.MinMinutes
	}

	bounds := s.bounds(day)
	events, err := s.eventsOn(cmd.Context(), day, bounds)
	if err != nil {
		return err
	}
	slots := agenda.FreeSlots(events, bounds, minMinutes)

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, struct {
			Date   string              `json:"date"`
			Bounds agenda.DayBounds    `json:"bounds"`
			Slots  []agenda.TimeWindow `json:"slots"`
		}{day.Format(time.DateOnly), bounds, slots})
	}

	fmt.Fprintln(out, output.Section(fmt.Sprintf("Free time %s (%s-%s)",
		day.Format("Mon 02 Jan"), clock(bounds.StartOfDay, s.loc), clock(bounds.EndOfDay, s.loc))))
	if len(slots) == 0 {
		fmt.Fprintln(out, output.StyleMuted.Render(fmt.Sprintf(" No free window of %d minutes or more.", minMinutes)))
		return nil
	}

	var total time.Duration
	tbl := output.NewTable("Window", "Length")
	for _, w := range slots {
		total += w.Duration()
		tbl.AddRow(clock(w.Start, s.loc)+"-"+clock(w.End, s.loc), formatDuration(w.Duration()))
	}
	fmt.Fprint(out, indent(tbl.Render()))
	fmt.Fprintf(out, "\n %s free in %s\n", output.StyleBold.Render(formatDuration(total)),
		english.Plural(len(slots), "window", "windows"))
	return nil
}

// formatDuration renders whole minutes as "1h05m" or "45m".
func formatDuration(d time.Duration) string {
	m := int(d.Round(time.Minute) / time.Minute)
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", m/60, m%60)
}
