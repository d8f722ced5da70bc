package habits

import (
	"sort"
	"time"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
)

// Active returns the habits that have not been deactivated, in input order.
func Active(habits []Habit) []Habit {
	var out []Habit
	for _, h := range habits {
		if h.IsActive {
			out = append(out, h)
		}
	}
	return out
}

// CombinedWeekProgress sums done and goal across active habits.
func CombinedWeekProgress(habits []Habit, logs []LogEntry, week agenda.TimeWindow) Progress {
	var total Progress
	for _, h := range Active(habits) {
		p := WeekProgress(h, logs, week)
		total.Done += p.Done
		total.Goal += p.Goal
	}
	return total
}

// BestCurrentStreak returns the longest current streak among active habits.
func BestCurrentStreak(habits []Habit, logs []LogEntry, today time.Time) int {
	best := 0
	for _, h := range Active(habits) {
		if s := CurrentStreak(h.ID, logs, today); s > best {
			best = s
		}
	}
	return best
}

// Summarize computes per-habit stats for every habit, active ones first,
// then by name.
func Summarize(habits []Habit, logs []LogEntry, today time.Time, firstWeekday time.Weekday, days int) []Stats {
	week := CurrentWeekInterval(today, firstWeekday)

	lastDone := make(map[string]time.Time)
	for _, l := range logs {
		if l.PerformedAt.After(lastDone[l.HabitID]) {
			lastDone[l.HabitID] = l.PerformedAt
		}
	}

	stats := make([]Stats, 0, len(habits))
	for _, h := range habits {
		stats = append(stats, Stats{
			Habit:    h,
			Streak:   CurrentStreak(h.ID, logs, today),
			Week:     WeekProgress(h, logs, week),
			Series:   AdherenceSeries(logs, h.ID, days, today),
			LastDone: lastDone[h.ID],
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Habit.IsActive != stats[j].Habit.IsActive {
			return stats[i].Habit.IsActive
		}
		return stats[i].Habit.Name < stats[j].Habit.Name
	})
	return stats
}
