package habits

import (
	"time"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
)

// dayKey identifies a calendar date in a location.
type dayKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time, loc *time.Location) dayKey {
	y, m, d := t.In(loc).Date()
	return dayKey{y, m, d}
}

// CurrentStreak counts consecutive local days, ending with today's date,
// on which habitID has at least one log. A day without a log breaks the
// chain, so a habit not yet logged today has a streak of 0. Days are taken
// in today's location.
func CurrentStreak(habitID string, logs []LogEntry, today time.Time) int {
	loc := today.Location()
	days := make(map[dayKey]bool)
	for _, l := range logs {
		if l.HabitID == habitID {
			days[keyOf(l.PerformedAt, loc)] = true
		}
	}

	streak := 0
	day := agenda.StartOfDay(today, loc)
	for days[keyOf(day, loc)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// WeekProgress sums clamped adherence for the habit's logs inside week
// (start inclusive, end exclusive). The goal is the habit's weekly goal,
// never negative.
func WeekProgress(habit Habit, logs []LogEntry, week agenda.TimeWindow) Progress {
	var done float64
	for _, l := range logs {
		if l.HabitID == habit.ID && week.Contains(l.PerformedAt) {
			done += clamp01(l.Adherence)
		}
	}
	goal := habit.WeeklyGoal
	if goal < 0 {
		goal = 0
	}
	return Progress{Done: done, Goal: goal}
}

// AdherenceSeries returns one value per local day for the days ending with
// today, oldest first. A day's value is the mean adherence of its matching
// logs clamped to [0, 1], or 0 when there are none. An empty habitID
// matches every habit. days <= 0 yields an empty series.
func AdherenceSeries(logs []LogEntry, habitID string, days int, today time.Time) []float64 {
	if days <= 0 {
		return []float64{}
	}
	loc := today.Location()

	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[dayKey]*bucket)
	for _, l := range logs {
		if habitID != "" && l.HabitID != habitID {
			continue
		}
		k := keyOf(l.PerformedAt, loc)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{}
			buckets[k] = b
		}
		b.sum += l.Adherence
		b.count++
	}

	start := agenda.StartOfDay(today, loc).AddDate(0, 0, -(days - 1))
	series := make([]float64, days)
	for i := range series {
		b, ok := buckets[keyOf(start.AddDate(0, 0, i), loc)]
		if !ok || b.count == 0 {
			continue
		}
		series[i] = clamp01(b.sum / float64(b.count))
	}
	return series
}

// CurrentWeekInterval returns the seven local days containing reference,
// starting on firstWeekday.
func CurrentWeekInterval(reference time.Time, firstWeekday time.Weekday) agenda.TimeWindow {
	loc := reference.Location()
	day := agenda.StartOfDay(reference, loc)
	offset := (int(day.Weekday()) - int(firstWeekday) + 7) % 7
	start := day.AddDate(0, 0, -offset)
	return agenda.TimeWindow{Start: start, End: start.AddDate(0, 0, 7)}
}
