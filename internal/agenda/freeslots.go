package agenda

import (
	"sort"
	"time"
)

// DefaultMinFreeMinutes is the shortest gap reported as a free slot.
const DefaultMinFreeMinutes = 15

// FreeSlots returns the disjoint, chronologically ordered gaps between
// events within bounds that last at least minMinutes. Events are read, never
// modified. An inverted event (start after end) is treated as ending at its
// start, so it never produces a negative or overlapping window.
func FreeSlots(events []CalendarEvent, bounds DayBounds, minMinutes int) []TimeWindow {
	if minMinutes < 0 {
		minMinutes = 0
	}
	minDuration := time.Duration(minMinutes) * time.Minute

	sorted := make([]CalendarEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var slots []TimeWindow
	emit := func(start, end time.Time) {
		w := TimeWindow{Start: start, End: end}
		if w.Duration() > 0 && w.Duration() >= minDuration {
			slots = append(slots, w)
		}
	}

	cursor := bounds.StartOfDay
	for _, ev := range sorted {
		if !cursor.Before(bounds.EndOfDay) {
			break
		}
		if ev.Start.After(cursor) {
			emit(cursor, minTime(ev.Start, bounds.EndOfDay))
		}
		end := ev.End
		if end.Before(ev.Start) {
			end = ev.Start
		}
		if end.After(cursor) {
			cursor = end
		}
	}

	if cursor.Before(bounds.EndOfDay) {
		emit(cursor, bounds.EndOfDay)
	}

	return slots
}

// EventsOn returns the events whose span intersects bounds, ordered by
// start time.
func EventsOn(events []CalendarEvent, bounds DayBounds) []CalendarEvent {
	day := bounds.Window()
	var out []CalendarEvent
	for _, ev := range events {
		span := TimeWindow{Start: ev.Start, End: ev.End}
		if span.Overlaps(day) || (span.Duration() == 0 && day.Contains(ev.Start)) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
