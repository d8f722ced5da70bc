package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
	"github.com/blackwell-systems/mindcoach/internal/output"
)

var (
	eventTitle    string
	eventStart    string
	eventEnd      string
	eventDuration time.Duration
	eventKind     string
	eventNotes    string
	eventRepeat   string
	eventOn       string
	eventUntil    string
	eventDate     string
	eventDays     int
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Add, list, and delete calendar events",
}

var eventAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an event",
	Long: `Add a calendar event. Times accept "HH:MM" (today), "tomorrow 09:00",
"+2d 18:30", "2006-01-02 15:04", or RFC 3339. Recurring events repeat
daily, weekly, biweekly, or monthly until --until, or for three months.`,
	Example: `  mindcoach event add --title "Regional final" --start "tomorrow 10:00" --kind competition
  mindcoach event add --title Gym --start "07:00" --duration 90m --kind training --repeat weekly --on mon,wed,fri`,
	RunE: runEventAdd,
}

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events for one or more days",
	RunE:  runEventList,
}

var eventDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventDelete,
}

func init() {
	f := eventAddCmd.Flags()
	f.StringVar(&eventTitle, "title", "", "Event title")
	f.StringVar(&eventStart, "start", "", "Start time")
	f.StringVar(&eventEnd, "end", "", "End time (default: start + duration)")
	f.DurationVar(&eventDuration, "duration", agenda.DefaultEventDuration, "Duration when --end is not given")
	f.StringVar(&eventKind, "kind", string(agenda.KindOther), "Kind: class, training, competition, exam, other")
	f.StringVar(&eventNotes, "notes", "", "Notes")
	f.StringVar(&eventRepeat, "repeat", "", "Repeat: daily, weekly, biweekly, monthly")
	f.StringVar(&eventOn, "on", "", "Weekdays for weekly repeats, e.g. mon,wed")
	f.StringVar(&eventUntil, "until", "", "Last date of a repeating event")
	_ = eventAddCmd.MarkFlagRequired("title")
	_ = eventAddCmd.MarkFlagRequired("start")

	eventListCmd.Flags().StringVar(&eventDate, "date", "today", "First day to list")
	eventListCmd.Flags().IntVar(&eventDays, "days", 1, "Number of days to list")

	eventCmd.AddCommand(eventAddCmd, eventListCmd, eventDeleteCmd)
	rootCmd.AddCommand(eventCmd)
}

func runEventAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	ev, err := buildEvent(s)
	if err != nil {
		return err
	}
	if err := s.db.InsertEvent(cmd.Context(), &ev); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, ev)
	}
	fmt.Fprintf(out, " %s %s %s-%s %s\n",
		output.StyleSuccess.Render("Added"), output.StyleBold.Render(ev.Title),
		ev.Start.In(s.loc).Format("Mon 02 Jan 15:04"), clock(ev.End, s.loc),
		output.StyleMuted.Render(ev.ID))
	return nil
}

func buildEvent(s *session) (agenda.CalendarEvent, error) {
	start, err := parseDateTime(eventStart, s.now, s.loc)
	if err != nil {
		return agenda.CalendarEvent{}, fmt.Errorf("--start: %w", err)
	}
	end := start.Add(eventDuration)
	if eventEnd != "" {
		if end, err = parseDateTime(eventEnd, start, s.loc); err != nil {
			return agenda.CalendarEvent{}, fmt.Errorf("--end: %w", err)
		}
	}
	if end.Before(start) {
		return agenda.CalendarEvent{}, fmt.Errorf("event ends (%s) before it starts (%s)", clock(end, s.loc), clock(start, s.loc))
	}

	ev := agenda.CalendarEvent{
		Title: eventTitle,
		Start: start,
		End:   end,
		Kind:  agenda.ParseKind(strings.ToLower(eventKind)),
		Notes: eventNotes,
	}

	freq, err := agenda.ParseFrequency(eventRepeat)
	if err != nil {
		return agenda.CalendarEvent{}, fmt.Errorf("--repeat: %w", err)
	}
	if freq == agenda.FrequencyNone {
		return ev, nil
	}

	rec := &agenda.Recurrence{Frequency: freq}
	if eventOn != "" {
		for _, name := range strings.Split(eventOn, ",") {
			d, err := agenda.ParseWeekday(name)
			if err != nil {
				return agenda.CalendarEvent{}, fmt.Errorf("--on: %w", err)
			}
			rec.RepeatDays = append(rec.RepeatDays, d)
		}
	}
	if eventUntil != "" {
		until, err := parseDateTime(eventUntil, s.now, s.loc)
		if err != nil {
			return agenda.CalendarEvent{}, fmt.Errorf("--until: %w", err)
		}
		// A date-only value includes that whole day.
		if until.Equal(agenda.StartOfDay(until, s.loc)) {
			until = until.AddDate(0, 0, 1).Add(-time.Second)
		}
		rec.Until = &until
	}
	ev.Recurrence = rec
	return ev, nil
}

func runEventList(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	first, err := parseDate(eventDate, s.now, s.loc)
	if err != nil {
		return fmt.Errorf("--date: %w", err)
	}
	days := max(eventDays, 1)

	type dayEvents struct {
		Date   string                 `json:"date"`
		Events []agenda.CalendarEvent `json:"events"`
	}
	var result []dayEvents
	for i := 0; i < days; i++ {
		day := first.AddDate(0, 0, i)
		events, err := s.eventsOn(cmd.Context(), day, agenda.FullDay(day, s.loc))
		if err != nil {
			return err
		}
		result = append(result, dayEvents{Date: day.Format(time.DateOnly), Events: events})
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, result)
	}
	for _, d := range result {
		fmt.Fprintln(out, output.Section(d.Date))
		if len(d.Events) == 0 {
			fmt.Fprintln(out, output.StyleMuted.Render(" No events."))
			continue
		}
		tbl := output.NewTable("Time", "Kind", "Title", "ID")
		for _, ev := range d.Events {
			title := ev.Title
			if ev.Recurrence.IsRecurring() || ev.ParentID != "" {
				title += " ↻"
			}
			tbl.AddRow(clock(ev.Start, s.loc)+"-"+clock(ev.End, s.loc), string(ev.Kind), title, eventRef(ev))
		}
		fmt.Fprint(out, indent(tbl.Render()))
	}
	return nil
}

// eventRef is the ID to pass to event delete; occurrences delete their
// master.
func eventRef(ev agenda.CalendarEvent) string {
	if ev.ParentID != "" {
		return ev.ParentID
	}
	return ev.ID
}

func runEventDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.db.DeleteEvent(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), " Deleted", args[0])
	return nil
}

func indent(s string) string {
	lines := strings.SplitAfter(s, "\n")
	var sb strings.Builder
	for _, l := range lines {
		if l != "" {
			sb.WriteString(" " + l)
		}
	}
	return sb.String()
}
