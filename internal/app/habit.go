package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
	"github.com/blackwell-systems/mindcoach/internal/habits"
	"github.com/blackwell-systems/mindcoach/internal/output"
)

var (
	habitDescription string
	habitGoal        int
	habitAt          string
	habitPartial     bool
	habitAdherence   float64
	habitNotes       string
	habitAll         bool
	habitDays        int
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Track habits, streaks, and weekly goals",
}

var habitAddCmd = &cobra.Command{
	Use:     "add <name>",
	Short:   "Create a habit",
	Args:    cobra.ExactArgs(1),
	Example: `  mindcoach habit add Visualization --goal 5`,
	RunE:    runHabitAdd,
}

var habitLogCmd = &cobra.Command{
	Use:   "log <habit>",
	Short: "Log a completion",
	Long: `Log a full completion of a habit, or a partial one with --partial.
--adherence records an exact value between 0 and 1.`,
	Example: `  mindcoach habit log Visualization
  mindcoach habit log Stretching --partial --at yesterday`,
	Args: cobra.ExactArgs(1),
	RunE: runHabitLog,
}

var habitListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show streaks, weekly progress, and adherence",
	RunE:  runHabitList,
}

var habitGoalCmd = &cobra.Command{
	Use:   "goal <habit> <0-7>",
	Short: "Change a habit's weekly goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runHabitGoal,
}

var habitDeactivateCmd = &cobra.Command{
	Use:   "deactivate <habit>",
	Short: "Stop tracking a habit, keeping its history",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitDeactivate,
}

func init() {
	habitAddCmd.Flags().StringVar(&habitDescription, "description", "", "Description")
	habitAddCmd.Flags().IntVar(&habitGoal, "goal", 3, "Weekly goal (0-7)")

	habitLogCmd.Flags().StringVar(&habitAt, "at", "", "When it was done (default: now)")
	habitLogCmd.Flags().BoolVar(&habitPartial, "partial", false, "Record a partial completion")
	habitLogCmd.Flags().Float64Var(&habitAdherence, "adherence", -1, "Exact adherence, 0-1")
	habitLogCmd.Flags().StringVar(&habitNotes, "notes", "", "Notes")

	habitListCmd.Flags().BoolVar(&habitAll, "all", false, "Include deactivated habits")
	habitListCmd.Flags().IntVar(&habitDays, "days", 0, "Adherence series length (default: habits.series_days)")

	habitCmd.AddCommand(habitAddCmd, habitLogCmd, habitListCmd, habitGoalCmd, habitDeactivateCmd)
	rootCmd.AddCommand(habitCmd)
}

func runHabitAdd(cmd *cobra.Command, args []string) error {
	h := habits.Habit{Name: args[0], Description: habitDescription, IsActive: true}
	if err := h.SetGoal(habitGoal); err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.db.InsertHabit(cmd.Context(), &h); err != nil {
		return err
	}
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), h)
	}
	fmt.Fprintf(cmd.OutOrStdout(), " %s %s (%d/week)\n", output.StyleSuccess.Render("Created"), output.StyleBold.Render(h.Name), h.WeeklyGoal)
	return nil
}

// logAdherence resolves the adherence flags to a value in [0, 1].
func logAdherence() (float64, error) {
	switch {
	case habitAdherence >= 0:
		if habitAdherence > 1 {
			return 0, fmt.Errorf("--adherence must be between 0 and 1, got %g", habitAdherence)
		}
		return habitAdherence, nil
	case habitPartial:
		return habits.AdherencePartial, nil
	default:
		return habits.AdherenceFull, nil
	}
}

func runHabitLog(cmd *cobra.Command, args []string) error {
	adherence, err := logAdherence()
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	h, err := s.db.FindHabit(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !h.IsActive {
		return fmt.Errorf("habit %q is deactivated", h.Name)
	}

	at := s.now
	if habitAt != "" {
		if at, err = parseDateTime(habitAt, s.now, s.loc); err != nil {
			return fmt.Errorf("--at: %w", err)
		}
	}
	entry := habits.LogEntry{HabitID: h.ID, PerformedAt: at, Adherence: adherence, Notes: habitNotes}
	if err := s.db.InsertLog(cmd.Context(), &entry); err != nil {
		return err
	}

	logs, err := s.allLogs(cmd.Context())
	if err != nil {
		return err
	}
	streak := habits.CurrentStreak(h.ID, logs, s.now)

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), struct {
			Entry  habits.LogEntry `json:"entry"`
			Streak int             `json:"streak"`
		}{entry, streak})
	}
	fmt.Fprintf(cmd.OutOrStdout(), " %s %s (%s)  streak: %d\n",
		output.StyleSuccess.Render("Logged"), output.StyleBold.Render(h.Name),
		strconv.FormatFloat(adherence, 'f', -1, 64), streak)
	return nil
}

func runHabitList(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	days := habitDays
	if days <= 0 {
		days = s.cfg.SeriesDays()
	}

	all, err := s.db.ListHabits(cmd.Context(), habitAll)
	if err != nil {
		return err
	}
	logs, err := s.allLogs(cmd.Context())
	if err != nil {
		return err
	}

	weekStart := s.weekStart()
	week := habits.CurrentWeekInterval(s.now, weekStart)
	stats := habits.Summarize(all, logs, s.now, weekStart, days)
	combined := habits.CombinedWeekProgress(all, logs, week)
	best := habits.BestCurrentStreak(all, logs, s.now)
	overall := habits.AdherenceSeries(logs, "", days, s.now)

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, struct {
			Week       agenda.TimeWindow `json:"week"`
			Habits     []habits.Stats    `json:"habits"`
			Combined   habits.Progress   `json:"combined"`
			BestStreak int               `json:"best_streak"`
			Series     []float64         `json:"series"`
		}{week, stats, combined, best, overall})
	}

	fmt.Fprintln(out, output.Section(fmt.Sprintf("Habits, week of %s", week.Start.Format("Mon 02 Jan"))))
	if len(stats) == 0 {
		fmt.Fprintln(out, output.StyleMuted.Render(" No habits yet. Create one with: mindcoach habit add <name>"))
		return nil
	}

	tbl := output.NewTable("Habit", "Streak", "This week", fmt.Sprintf("Last %d days", days), "Last done")
	for _, st := range stats {
		name := st.Habit.Name
		if !st.Habit.IsActive {
			name = output.StyleMuted.Render(name + " (inactive)")
		}
		last := "never"
		if !st.LastDone.IsZero() {
			last = output.Relative(st.LastDone, s.now)
		}
		tbl.AddRow(name, strconv.Itoa(st.Streak), output.GoalBar(st.Week.Done, st.Week.Goal, 10), output.Sparkline(st.Series), last)
	}
	fmt.Fprint(out, indent(tbl.Render()))

	fmt.Fprintln(out)
	fmt.Fprintf(out, " %s %s\n", output.StyleLabel.Render("All habits this week"), output.GoalBar(combined.Done, combined.Goal, 20))
	fmt.Fprintf(out, " %s %d days\n", output.StyleLabel.Render("Best current streak"), best)
	fmt.Fprintf(out, " %s %s\n", output.StyleLabel.Render("Daily adherence"), output.Sparkline(overall))
	return nil
}

// allLogs loads every habit log. Streaks have no upper bound, so any
// cutoff would cap them.
func (s *session) allLogs(ctx context.Context) ([]habits.LogEntry, error) {
	return s.db.ListLogs(ctx, time.Time{})
}

func runHabitGoal(cmd *cobra.Command, args []string) error {
	goal, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("goal must be a number: %w", err)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	h, err := s.db.FindHabit(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := h.SetGoal(goal); err != nil {
		return err
	}
	if err := s.db.UpdateHabit(cmd.Context(), h); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), " %s now %d/week\n", output.StyleBold.Render(h.Name), h.WeeklyGoal)
	return nil
}

func runHabitDeactivate(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	h, err := s.db.FindHabit(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	h.Deactivate()
	if err := s.db.UpdateHabit(cmd.Context(), h); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), " %s deactivated; history kept\n", output.StyleBold.Render(h.Name))
	return nil
}
