package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
	"github.com/blackwell-systems/mindcoach/internal/coach"
	"github.com/blackwell-systems/mindcoach/internal/output"
	"github.com/blackwell-systems/mindcoach/internal/store"
)

var (
	recommendWholeDay bool
	recommendHistory  int
	recommendDone     string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Pick one well-being recommendation for today",
	Long: `Build today's context (events, free time, latest mood, the next
competition) and return exactly one recommendation. Rules are checked in
priority order: pre-competition breathing, low-energy reset, journaling,
micro reset, and a fallback. Every recommendation shown is recorded.

Free time already past is not offered unless --whole-day is set.`,
	Example: `  mindcoach recommend
  mindcoach recommend --history 10
  mindcoach recommend --done 6f1c...`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().BoolVar(&recommendWholeDay, "whole-day", false, "Consider the whole planning day, not just what is left")
	recommendCmd.Flags().IntVar(&recommendHistory, "history", 0, "Show the last N recommendations instead")
	recommendCmd.Flags().StringVar(&recommendDone, "done", "", "Mark a recommendation as done")
	rootCmd.AddCommand(recommendCmd)
}

// recommendResult is the --json shape of recommend.
type recommendResult struct {
	ID             string                 `json:"id"`
	Recommendation coach.Recommendation   `json:"recommendation"`
	FreeSlots      []agenda.TimeWindow    `json:"free_slots"`
	Mindfulness    []coach.SuggestionSlot `json:"mindfulness"`
	Pending        []string               `json:"pending_assessments"`
}

func runRecommend(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	switch {
	case recommendDone != "":
		if err := s.db.CompleteRecommendation(cmd.Context(), recommendDone); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), " "+output.StyleSuccess.Render("Done:"), recommendDone)
		return nil
	case recommendHistory > 0:
		return showRecommendHistory(cmd, s, recommendHistory)
	}

	policy, err := s.cfg.JournalSlot()
	if err != nil {
		return err
	}
	snap, err := s.loadSnapshot(cmd.Context(), !recommendWholeDay)
	if err != nil {
		return err
	}

	engine := coach.NewEngine(coach.WithJournalSlot(policy))
	rec := engine.Recommend(&snap.coach, snap.coach.FreeWindows)
	id, err := s.db.InsertRecommendation(cmd.Context(), rec, s.now)
	if err != nil {
		return err
	}

	res := recommendResult{
		ID:             id,
		Recommendation: rec,
		FreeSlots:      snap.coach.FreeWindows,
		Mindfulness:    coach.ProposeMindfulnessSlots(&snap.coach),
		Pending:        make([]string, 0, len(snap.pending)),
	}
	for _, in := range snap.pending {
		res.Pending = append(res.Pending, in.Code)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, res)
	}

	fmt.Fprintln(out, output.Section("Today's recommendation"))
	fmt.Fprintf(out, " %s\n", output.StyleBold.Render(rec.Title))
	fmt.Fprintf(out, " %s\n", rec.Body)
	fmt.Fprintf(out, " %s %s  %s\n",
		output.StyleLabel.Render("When:"), clock(rec.ScheduledAt, s.loc), formatCoachDuration(rec.Duration))
	fmt.Fprintf(out, " %s %s\n", output.StyleLabel.Render("Action:"), rec.ActionLabel)
	fmt.Fprintln(out, output.StyleMuted.Render(" "+string(rec.Rule)+" · "+id))

	if len(res.Mindfulness) > 0 {
		fmt.Fprintln(out, output.Section("Mindfulness slots"))
		tbl := output.NewTable("At", "Protocol", "Length")
		for _, sl := range res.Mindfulness {
			tbl.AddRow(clock(sl.At, s.loc), protocolName(sl.Protocol), formatCoachDuration(sl.Duration))
		}
		fmt.Fprint(out, indent(tbl.Render()))
	}

	if len(res.Pending) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, " %s %s\n", output.StyleWarning.Render("Assessments available:"), strings.Join(res.Pending, ", "))
	}
	return nil
}

func showRecommendHistory(cmd *cobra.Command, s *session, limit int) error {
	recs, err := s.db.ListRecommendations(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if flagJSON {
		if recs == nil {
			recs = []store.RecommendationRecord{}
		}
		return writeJSON(out, recs)
	}

	fmt.Fprintln(out, output.Section("Recent recommendations"))
	if len(recs) == 0 {
		fmt.Fprintln(out, output.StyleMuted.Render(" None yet."))
		return nil
	}
	tbl := output.NewTable("Shown", "Title", "Rule", "Status", "ID")
	for _, r := range recs {
		status := r.Status
		if status == store.StatusDone {
			status = output.StyleSuccess.Render(status)
		}
		tbl.AddRow(output.Relative(r.CreatedAt, s.now), r.Title, string(r.Rule), status, r.ID)
	}
	fmt.Fprint(out, indent(tbl.Render()))
	return nil
}

// formatCoachDuration keeps seconds for sub-minute protocols like the 90 s
// reset.
func formatCoachDuration(d time.Duration) string {
	if d%time.Minute != 0 {
		return d.String()
	}
	return formatDuration(d)
}

func protocolName(p coach.Protocol) string {
	switch p {
	case coach.ProtocolBoxBreathing:
		return "Box breathing"
	case coach.ProtocolBodyScanLight:
		return "Light body scan"
	case coach.ProtocolMicroReset:
		return "90-second reset"
	default:
		return string(p)
	}
}
