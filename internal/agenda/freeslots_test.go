package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// at returns 2024-04-01 hh:mm UTC.
func at(hh, mm int) time.Time {
	return time.Date(2024, 4, 1, hh, mm, 0, 0, time.UTC)
}

func ev(id string, kind EventKind, start, end time.Time) CalendarEvent {
	return CalendarEvent{ID: id, Title: id, Kind: kind, Start: start, End: end}
}

func bounds(startH, endH int) DayBounds {
	return DayBounds{StartOfDay: at(startH, 0), EndOfDay: at(endH, 0)}
}

// --- FreeSlots ---

func TestFreeSlots_NoEvents(t *testing.T) {
	slots := FreeSlots(nil, bounds(8, 22), 15)
	require.Len(t, slots, 1)
	assert.Equal(t, at(8, 0), slots[0].Start)
	assert.Equal(t, at(22, 0), slots[0].End)
}

func TestFreeSlots_SingleCompetition(t *testing.T) {
	events := []CalendarEvent{ev("comp", KindCompetition, at(10, 0), at(11, 0))}
	slots := FreeSlots(events, bounds(8, 22), 15)
	require.Len(t, slots, 2)
	assert.Equal(t, TimeWindow{Start: at(8, 0), End: at(10, 0)}, slots[0])
	assert.Equal(t, TimeWindow{Start: at(11, 0), End: at(22, 0)}, slots[1])
}

func TestFreeSlots_EventCoversDay(t *testing.T) {
	events := []CalendarEvent{ev("all", KindOther, at(6, 0), at(23, 0))}
	assert.Empty(t, FreeSlots(events, bounds(8, 22), 15))
}

func TestFreeSlots_ShortGapDiscarded(t *testing.T) {
	events := []CalendarEvent{
		ev("a", KindClass, at(9, 0), at(10, 0)),
		ev("b", KindClass, at(10, 10), at(11, 0)),
	}
	slots := FreeSlots(events, bounds(9, 12), 15)
	require.Len(t, slots, 1)
	assert.Equal(t, TimeWindow{Start: at(11, 0), End: at(12, 0)}, slots[0])
}

func TestFreeSlots_OverlappingEvents(t *testing.T) {
	events := []CalendarEvent{
		ev("long", KindTraining, at(9, 0), at(12, 0)),
		ev("inner", KindClass, at(10, 0), at(11, 0)),
	}
	slots := FreeSlots(events, bounds(8, 14), 15)
	require.Len(t, slots, 2)
	assert.Equal(t, TimeWindow{Start: at(8, 0), End: at(9, 0)}, slots[0])
	assert.Equal(t, TimeWindow{Start: at(12, 0), End: at(14, 0)}, slots[1])
}

func TestFreeSlots_UnsortedInput(t *testing.T) {
	events := []CalendarEvent{
		ev("late", KindClass, at(15, 0), at(16, 0)),
		ev("early", KindClass, at(9, 0), at(10, 0)),
	}
	slots := FreeSlots(events, bounds(8, 17), 15)
	require.Len(t, slots, 3)
	assert.Equal(t, at(8, 0), slots[0].Start)
	assert.Equal(t, at(10, 0), slots[1].Start)
	assert.Equal(t, at(16, 0), slots[2].Start)
	// Input order untouched.
	assert.Equal(t, "late", events[0].ID)
}

func TestFreeSlots_InvertedEventDoesNotCrash(t *testing.T) {
	events := []CalendarEvent{ev("bad", KindOther, at(12, 0), at(11, 0))}
	slots := FreeSlots(events, bounds(8, 16), 15)
	for _, s := range slots {
		assert.True(t, s.Duration() >= 0)
	}
	require.Len(t, slots, 2)
	assert.Equal(t, TimeWindow{Start: at(8, 0), End: at(12, 0)}, slots[0])
	assert.Equal(t, TimeWindow{Start: at(12, 0), End: at(16, 0)}, slots[1])
}

func TestFreeSlots_EventsOutsideBounds(t *testing.T) {
	events := []CalendarEvent{
		ev("before", KindOther, at(6, 0), at(9, 0)),
		ev("after", KindOther, at(21, 0), at(23, 0)),
	}
	slots := FreeSlots(events, bounds(8, 22), 15)
	require.Len(t, slots, 1)
	assert.Equal(t, TimeWindow{Start: at(9, 0), End: at(21, 0)}, slots[0])
}

func TestFreeSlots_EventAfterBoundsClipsWindow(t *testing.T) {
	events := []CalendarEvent{ev("tomorrow", KindOther, at(23, 0), at(23, 30))}
	slots := FreeSlots(events, bounds(8, 22), 15)
	require.Len(t, slots, 1)
	assert.Equal(t, at(22, 0), slots[0].End)
}

func TestFreeSlots_Properties(t *testing.T) {
	events := []CalendarEvent{
		ev("a", KindClass, at(8, 30), at(9, 10)),
		ev("b", KindTraining, at(9, 0), at(10, 0)),
		ev("c", KindExam, at(10, 5), at(11, 0)),
		ev("d", KindOther, at(13, 0), at(13, 10)),
		ev("e", KindCompetition, at(18, 0), at(20, 0)),
	}
	b := bounds(7, 22)
	minMinutes := 15
	slots := FreeSlots(events, b, minMinutes)

	for i, s := range slots {
		assert.GreaterOrEqual(t, s.Duration(), time.Duration(minMinutes)*time.Minute, "slot %d too short", i)
		assert.True(t, b.Window().ContainsWindow(s), "slot %d outside bounds", i)
		if i > 0 {
			assert.False(t, slots[i-1].End.After(s.Start), "slots %d and %d overlap or are unordered", i-1, i)
		}
		for _, e := range events {
			assert.False(t, s.Overlaps(TimeWindow{Start: e.Start, End: e.End}), "slot %d overlaps %s", i, e.ID)
		}
	}

	// With no minimum, slots plus events cover the whole day.
	all := FreeSlots(events, b, 0)
	covered := time.Duration(0)
	for _, s := range all {
		covered += s.Duration()
	}
	busy := []TimeWindow{{at(8, 30), at(10, 0)}, {at(10, 5), at(11, 0)}, {at(13, 0), at(13, 10)}, {at(18, 0), at(20, 0)}}
	for _, w := range busy {
		covered += w.Duration()
	}
	assert.Equal(t, b.Window().Duration(), covered)
}

func TestFreeSlots_NegativeMinimumTreatedAsZero(t *testing.T) {
	events := []CalendarEvent{ev("a", KindClass, at(9, 0), at(9, 55))}
	slots := FreeSlots(events, bounds(9, 10), -5)
	require.Len(t, slots, 1)
	assert.Equal(t, 5*time.Minute, slots[0].Duration())
}

// --- DayBounds ---

func TestDayBoundsFor(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	day := time.Date(2024, 4, 1, 2, 0, 0, 0, time.UTC) // 23:00 on Mar 31 locally
	b := DayBoundsFor(day, loc, Clock{Hour: 6}, Clock{Hour: 23})
	assert.Equal(t, time.Date(2024, 3, 31, 6, 0, 0, 0, loc), b.StartOfDay)
	assert.Equal(t, time.Date(2024, 3, 31, 23, 0, 0, 0, loc), b.EndOfDay)
}

func TestDayBoundsFor_MidnightEnd(t *testing.T) {
	b := DayBoundsFor(at(12, 0), time.UTC, Clock{}, Clock{})
	assert.Equal(t, at(0, 0), b.StartOfDay)
	assert.Equal(t, at(0, 0).AddDate(0, 0, 1), b.EndOfDay)
	assert.Equal(t, FullDay(at(12, 0), time.UTC), b)
}

// --- EventsOn ---

func TestEventsOn_FiltersAndSorts(t *testing.T) {
	events := []CalendarEvent{
		ev("late", KindClass, at(20, 0), at(21, 0)),
		ev("yesterday", KindClass, at(0, 0).Add(-3*time.Hour), at(0, 0).Add(-2*time.Hour)),
		ev("early", KindClass, at(7, 0), at(8, 0)),
	}
	got := EventsOn(events, FullDay(at(12, 0), time.UTC))
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].ID)
	assert.Equal(t, "late", got[1].ID)
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("06:30")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 6, Minute: 30}, c)
	assert.Equal(t, "06:30", c.String())

	_, err = ParseClock("25:00")
	assert.Error(t, err)
	_, err = ParseClock("noon")
	assert.Error(t, err)
}
