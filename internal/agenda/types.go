// Package agenda provides calendar event types, day bounds, and free time
// computation for a single local day.
package agenda

import (
	"fmt"
	"time"
)

// EventKind classifies a calendar event.
type EventKind string

// Known event kinds.
const (
	KindClass       EventKind = "class"
	KindTraining    EventKind = "training"
	KindCompetition EventKind = "competition"
	KindExam        EventKind = "exam"
	KindOther       EventKind = "other"
)

// ParseKind maps a user-supplied string to an EventKind. Unknown values
// map to KindOther.
func ParseKind(s string) EventKind {
	switch EventKind(s) {
	case KindClass, KindTraining, KindCompetition, KindExam:
		return EventKind(s)
	default:
		return KindOther
	}
}

// CalendarEvent is a read-only event supplied by the calendar source.
// Callers substitute Start+1h for a missing end before handing events in.
type CalendarEvent struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Kind  EventKind `json:"kind"`
	Notes string    `json:"notes,omitempty"`

	// Recurrence is set on master events that repeat.
	Recurrence *Recurrence `json:"recurrence,omitempty"`

	// ParentID links a generated occurrence back to its master event.
	ParentID string `json:"parent_id,omitempty"`
}

// DefaultEventDuration is applied by callers when an event has no end.
const DefaultEventDuration = time.Hour

// TimeWindow is a half-open span of time [Start, End).
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns End - Start.
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t falls inside the window (start inclusive,
// end exclusive).
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// ContainsWindow reports whether other lies entirely within w.
func (w TimeWindow) ContainsWindow(other TimeWindow) bool {
	return !other.Start.Before(w.Start) && !other.End.After(w.End)
}

// Overlaps reports whether the two windows share any instant.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// DayBounds is the local start and end of a single calendar day. All free
// windows are clipped to this range.
type DayBounds struct {
	StartOfDay time.Time `json:"start_of_day"`
	EndOfDay   time.Time `json:"end_of_day"`
}

// Window returns the bounds as a TimeWindow.
func (b DayBounds) Window() TimeWindow {
	return TimeWindow{Start: b.StartOfDay, End: b.EndOfDay}
}

// Clock is a time of day used for configured day bounds and wake times.
type Clock struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// ParseClock parses an "HH:MM" time of day.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time of day %q (want HH:MM): %w", s, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On returns the instant at this clock time on the local date of day.
func (c Clock) On(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, loc)
}

// StartOfDay returns local midnight for the date of t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayBoundsFor returns the bounds of the local date of day between start
// and end. An end clock at or before the start clock (e.g. 00:00) means the
// end of the day.
func DayBoundsFor(day time.Time, loc *time.Location, start, end Clock) DayBounds {
	from := start.On(day, loc)
	to := end.On(day, loc)
	if !to.After(from) {
		to = StartOfDay(day, loc).AddDate(0, 0, 1)
	}
	return DayBounds{StartOfDay: from, EndOfDay: to}
}

// FullDay returns bounds spanning local midnight to the next midnight.
func FullDay(day time.Time, loc *time.Location) DayBounds {
	start := StartOfDay(day, loc)
	return DayBounds{StartOfDay: start, EndOfDay: start.AddDate(0, 0, 1)}
}
