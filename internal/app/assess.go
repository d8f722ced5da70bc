package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/mindcoach/internal/assessment"
	"github.com/blackwell-systems/mindcoach/internal/output"
	"github.com/blackwell-systems/mindcoach/internal/store"
)

var (
	assessAnswers string
	assessLimit   int
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Take and review questionnaires",
}

var assessListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show instruments and whether each can be taken",
	RunE:  runAssessList,
}

var assessShowCmd = &cobra.Command{
	Use:   "show <instrument>",
	Short: "Print an instrument's items in answer order",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssessShow,
}

var assessTakeCmd = &cobra.Command{
	Use:   "take <instrument>",
	Short: "Score and save a set of answers",
	Long: `Score answers given in item order as a comma-separated list of 1-5
values. Leave a position empty, or use "-", to skip an item. Free-tier
users wait between attempts; see assess list.`,
	Example: `  mindcoach assess take self_esteem --answers 4,3,2,4,-,4,3,1,2,4`,
	Args:    cobra.ExactArgs(1),
	RunE:    runAssessTake,
}

var assessHistoryCmd = &cobra.Command{
	Use:   "history [instrument]",
	Short: "Show past results with the change since the previous attempt",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAssessHistory,
}

func init() {
	assessTakeCmd.Flags().StringVar(&assessAnswers, "answers", "", "Comma-separated answers, 1-5")
	_ = assessTakeCmd.MarkFlagRequired("answers")
	assessHistoryCmd.Flags().IntVar(&assessLimit, "limit", 10, "Number of results")

	assessCmd.AddCommand(assessListCmd, assessShowCmd, assessTakeCmd, assessHistoryCmd)
	rootCmd.AddCommand(assessCmd)
}

// instrumentStatus is one row of assess list.
type instrumentStatus struct {
	Code   string `json:"code"`
	Title  string `json:"title"`
	Items  int    `json:"items"`
	Status string `json:"status"`
}

func (s *session) tier() (assessment.Tier, error) {
	return assessment.ParseTier(s.cfg.Assessments.Tier)
}

func runAssessList(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	tier, err := s.tier()
	if err != nil {
		return err
	}
	latest, err := s.db.LatestTaken(cmd.Context())
	if err != nil {
		return err
	}

	var rows []instrumentStatus
	tbl := output.NewTable("Code", "Instrument", "Items", "Status")
	for _, in := range assessment.Instruments() {
		var last *time.Time
		if t, ok := latest[in.Code]; ok {
			last = &t
		}
		st := in.StatusWithin(last, tier, s.now, s.cfg.RetakeInterval())
		rows = append(rows, instrumentStatus{Code: in.Code, Title: in.Title, Items: len(in.Items), Status: st.String()})
		tbl.AddRow(in.Code, in.ShortTitle, strconv.Itoa(len(in.Items)), s.describeStatus(st))
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, rows)
	}
	fmt.Fprintln(out, output.Section(fmt.Sprintf("Assessments (%s tier)", tier)))
	fmt.Fprint(out, indent(tbl.Render()))
	return nil
}

func (s *session) describeStatus(st assessment.Status) string {
	switch v := st.(type) {
	case assessment.NeverTaken:
		return output.StyleSuccess.Render("not taken yet")
	case assessment.Available:
		if v.LastTaken != nil {
			return output.StyleSuccess.Render("available") + output.StyleMuted.Render(", last "+output.Relative(*v.LastTaken, s.now))
		}
		return output.StyleSuccess.Render("available")
	case assessment.LockedUntil:
		return output.StyleWarning.Render("locked") + output.StyleMuted.Render(" until "+v.Until.In(s.loc).Format("02 Jan")+", "+output.Relative(v.Until, s.now))
	default:
		return st.String()
	}
}

func runAssessShow(cmd *cobra.Command, args []string) error {
	in, err := assessment.Lookup(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, in)
	}
	fmt.Fprintln(out, output.Section(in.Title))
	fmt.Fprintf(out, " %s\n", in.Description)
	fmt.Fprintln(out, output.StyleMuted.Render(" Answer each item from 1 (not at all) to 5 (extremely)."))
	fmt.Fprintln(out)
	for i, it := range in.Items {
		fmt.Fprintf(out, " %2d. %s\n", i+1, it.Prompt)
	}
	return nil
}

// parseAnswers reads a comma-separated answer list. Empty positions and "-"
// are unanswered.
func parseAnswers(s string) ([]assessment.Answer, error) {
	parts := strings.Split(s, ",")
	answers := make([]assessment.Answer, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == "-" {
			answers[i] = assessment.Unanswered
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %q is not a number", i+1, p)
		}
		answers[i] = assessment.Answer(v)
	}
	return answers, nil
}

func runAssessTake(cmd *cobra.Command, args []string) error {
	in, err := assessment.Lookup(args[0])
	if err != nil {
		return err
	}
	answers, err := parseAnswers(assessAnswers)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	tier, err := s.tier()
	if err != nil {
		return err
	}
	latest, err := s.db.LatestTaken(cmd.Context())
	if err != nil {
		return err
	}
	var last *time.Time
	if t, ok := latest[in.Code]; ok {
		last = &t
	}
	st := in.StatusWithin(last, tier, s.now, s.cfg.RetakeInterval())
	if locked, ok := st.(assessment.LockedUntil); ok {
		return fmt.Errorf("%s is locked until %s (%s)", in.Code, locked.Until.In(s.loc).Format("Mon 02 Jan 2006"), output.Relative(locked.Until, s.now))
	}

	result, err := in.Score(answers)
	if err != nil {
		return fmt.Errorf("scoring %s: %w", in.Code, err)
	}
	summary := assessment.NewSummary(in.Code, tier, s.now, last != nil, result)
	id, err := s.db.SaveAssessment(cmd.Context(), summary, result.PerItem)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, store.AssessmentRecord{ID: id, Summary: summary})
	}
	fmt.Fprintln(out, output.Section(in.Title))
	for _, sub := range result.Subscales {
		fmt.Fprintf(out, " %s %s\n", output.StyleLabel.Render(sub.Title), output.ScoreBar(sub.Normalized, 20))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, " %s %s\n", output.StyleLabel.Render("Overall"), output.ScoreBar(result.Overall, 20))
	fmt.Fprintln(out, output.StyleMuted.Render(" saved "+id))
	return nil
}

func runAssessHistory(cmd *cobra.Command, args []string) error {
	code := ""
	if len(args) == 1 {
		in, err := assessment.Lookup(args[0])
		if err != nil {
			return err
		}
		code = in.Code
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	// Older rows beyond the limit are still needed for the last change column.
	limit := max(assessLimit, 1)
	records, err := s.db.ListAssessments(cmd.Context(), code, 0)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		if len(records) > limit {
			records = records[:limit]
		}
		if records == nil {
			records = []store.AssessmentRecord{}
		}
		return writeJSON(out, records)
	}

	fmt.Fprintln(out, output.Section("Assessment history"))
	if len(records) == 0 {
		fmt.Fprintln(out, output.StyleMuted.Render(" No results yet."))
		return nil
	}

	tbl := output.NewTable("Taken", "Instrument", "Overall", "Change")
	shown := 0
	for i, r := range records {
		if shown == limit {
			break
		}
		change := output.StyleMuted.Render("first")
		if prev, ok := previousOf(records[i+1:], r.Instrument); ok {
			change = output.TrendArrow(r.Overall-prev.Overall, true)
		}
		tbl.AddRow(r.TakenAt.In(s.loc).Format("2006-01-02"), r.Instrument, fmt.Sprintf("%.0f", r.Overall), change)
		shown++
	}
	fmt.Fprint(out, indent(tbl.Render()))
	return nil
}

// previousOf returns the first record of instrument in older, which is
// ordered newest first.
func previousOf(older []store.AssessmentRecord, instrument string) (store.AssessmentRecord, bool) {
	for _, r := range older {
		if r.Instrument == instrument {
			return r, true
		}
	}
	return store.AssessmentRecord{}, false
}
