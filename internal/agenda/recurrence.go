package agenda

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// Frequency is how often a recurring event repeats.
type Frequency string

// Supported recurrence frequencies.
const (
	FrequencyNone     Frequency = "none"
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// DefaultHorizonMonths bounds expansion of recurrences without an end date.
const DefaultHorizonMonths = 3

// minOccurrenceDuration is the shortest duration given to a generated
// occurrence.
const minOccurrenceDuration = time.Minute

// Recurrence describes how a master event repeats.
type Recurrence struct {
	Frequency  Frequency      `json:"frequency"`
	RepeatDays []time.Weekday `json:"repeat_days,omitempty"`
	Until      *time.Time     `json:"until,omitempty"`
}

// IsRecurring reports whether the recurrence produces any occurrences.
func (r *Recurrence) IsRecurring() bool {
	return r != nil && r.Frequency != "" && r.Frequency != FrequencyNone
}

// ParseFrequency validates a frequency string.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FrequencyNone:
		return FrequencyNone, nil
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported frequency %q", s)
	}
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// Expand generates the occurrences of a recurring master event that start
// strictly after the master and no later than the recurrence end date, or
// horizonMonths after the master when there is none. Weekly and biweekly
// rules repeat on RepeatDays (the master's weekday when empty); biweekly
// weeks are counted from the week containing the master, with weeks
// beginning on weekStart. Occurrence IDs are derived from the master ID and
// start time so expansion is deterministic.
func Expand(master CalendarEvent, horizonMonths int, weekStart time.Weekday) ([]CalendarEvent, error) {
	rec := master.Recurrence
	if !rec.IsRecurring() {
		return nil, nil
	}
	if horizonMonths <= 0 {
		horizonMonths = DefaultHorizonMonths
	}

	horizon := master.Start.AddDate(0, horizonMonths, 0)
	if rec.Until != nil {
		horizon = *rec.Until
	}
	if !horizon.After(master.Start) {
		return nil, nil
	}

	opt := rrule.ROption{
		Dtstart:  master.Start,
		Until:    horizon,
		Interval: 1,
		Wkst:     rruleWeekdays[weekStart],
	}

	switch rec.Frequency {
	case FrequencyDaily:
		opt.Freq = rrule.DAILY
	case FrequencyWeekly, FrequencyBiweekly:
		opt.Freq = rrule.WEEKLY
		if rec.Frequency == FrequencyBiweekly {
			opt.Interval = 2
		}
		days := rec.RepeatDays
		if len(days) == 0 {
			days = []time.Weekday{master.Start.Weekday()}
		}
		seen := make(map[time.Weekday]bool)
		for _, d := range days {
			if !seen[d] {
				seen[d] = true
				opt.Byweekday = append(opt.Byweekday, rruleWeekdays[d])
			}
		}
	case FrequencyMonthly:
		opt.Freq = rrule.MONTHLY
	default:
		return nil, fmt.Errorf("unsupported frequency %q", rec.Frequency)
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("building recurrence rule: %w", err)
	}

	duration := master.End.Sub(master.Start)
	if duration < minOccurrenceDuration {
		duration = minOccurrenceDuration
	}

	var out []CalendarEvent
	for _, start := range rule.Between(master.Start, horizon, true) {
		if !start.After(master.Start) {
			continue
		}
		out = append(out, CalendarEvent{
			ID:       fmt.Sprintf("%s@%s", master.ID, start.UTC().Format("20060102T150405Z")),
			Title:    master.Title,
			Start:    start,
			End:      start.Add(duration),
			Kind:     master.Kind,
			Notes:    master.Notes,
			ParentID: master.ID,
		})
	}
	return out, nil
}

// ExpandAll returns events with every recurring master's occurrences
// appended after it. Expansion failures are returned with the master ID.
func ExpandAll(events []CalendarEvent, horizonMonths int, weekStart time.Weekday) ([]CalendarEvent, error) {
	out := make([]CalendarEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, ev)
		occurrences, err := Expand(ev, horizonMonths, weekStart)
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", ev.ID, err)
		}
		out = append(out, occurrences...)
	}
	return out, nil
}
