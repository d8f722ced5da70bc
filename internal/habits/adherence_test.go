package habits

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// today is Wednesday 2024-04-10 at 18:00 UTC.
var today = time.Date(2024, 4, 10, 18, 0, 0, 0, time.UTC)

// daysAgo returns 09:00 on the date n days before today.
func daysAgo(n int) time.Time {
	return time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC).AddDate(0, 0, -n)
}

func logAt(habitID string, when time.Time, adherence float64) LogEntry {
	return LogEntry{ID: habitID + when.Format(time.RFC3339), HabitID: habitID, PerformedAt: when, Adherence: adherence}
}

// --- CurrentStreak ---

func TestCurrentStreak_TruthTable(t *testing.T) {
	tests := []struct {
		name string
		logs []LogEntry
		want int
	}{
		{"today and yesterday", []LogEntry{logAt("h", daysAgo(0), 1), logAt("h", daysAgo(1), 1)}, 2},
		{"yesterday only", []LogEntry{logAt("h", daysAgo(1), 1)}, 0},
		{"no logs", nil, 0},
		{"gap breaks chain", []LogEntry{logAt("h", daysAgo(0), 1), logAt("h", daysAgo(2), 1)}, 1},
		{"partial counts", []LogEntry{logAt("h", daysAgo(0), 0.5), logAt("h", daysAgo(1), 0.5), logAt("h", daysAgo(2), 1)}, 3},
		{"other habit ignored", []LogEntry{logAt("other", daysAgo(0), 1)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentStreak("h", tt.logs, today))
		})
	}
}

func TestCurrentStreak_MultipleLogsSameDay(t *testing.T) {
	logs := []LogEntry{
		logAt("h", daysAgo(0), 1),
		logAt("h", daysAgo(0).Add(time.Hour), 0.5),
		logAt("h", daysAgo(1), 1),
	}
	assert.Equal(t, 2, CurrentStreak("h", logs, today))
}

func TestCurrentStreak_UsesLocalDays(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	localToday := time.Date(2024, 4, 10, 20, 0, 0, 0, loc)
	// 02:00 UTC on Apr 11 is 21:00 on Apr 10 locally.
	logs := []LogEntry{logAt("h", time.Date(2024, 4, 11, 2, 0, 0, 0, time.UTC), 1)}
	assert.Equal(t, 1, CurrentStreak("h", logs, localToday))
}

// --- WeekProgress ---

func TestWeekProgress_SumsClampedAdherenceInWindow(t *testing.T) {
	week := CurrentWeekInterval(today, time.Monday)
	habit := Habit{ID: "h", WeeklyGoal: 5, IsActive: true}
	logs := []LogEntry{
		logAt("h", daysAgo(0), 1),
		logAt("h", daysAgo(1), 0.5),
		logAt("h", daysAgo(2), 1.7),  // clamped to 1
		logAt("h", daysAgo(2), -0.3), // clamped to 0
		logAt("h", daysAgo(3), 1),    // Sunday of the previous week
		logAt("x", daysAgo(0), 1),
	}
	p := WeekProgress(habit, logs, week)
	assert.InDelta(t, 2.5, p.Done, 1e-9)
	assert.Equal(t, 5, p.Goal)
	assert.InDelta(t, 0.5, p.Ratio(), 1e-9)
}

func TestWeekProgress_NegativeGoalClamped(t *testing.T) {
	p := WeekProgress(Habit{ID: "h", WeeklyGoal: -3}, nil, CurrentWeekInterval(today, time.Monday))
	assert.Equal(t, 0, p.Goal)
	assert.Equal(t, 0.0, p.Done)
	assert.Equal(t, 0.0, p.Ratio())
}

func TestWeekProgress_EndIsExclusive(t *testing.T) {
	week := CurrentWeekInterval(today, time.Monday)
	logs := []LogEntry{logAt("h", week.End, 1), logAt("h", week.Start, 1)}
	p := WeekProgress(Habit{ID: "h", WeeklyGoal: 3}, logs, week)
	assert.Equal(t, 1.0, p.Done)
}

// --- AdherenceSeries ---

func TestAdherenceSeries_LengthAndOrder(t *testing.T) {
	logs := []LogEntry{
		logAt("h", daysAgo(0), 1),
		logAt("h", daysAgo(29), 0.5),
		logAt("h", daysAgo(30), 1), // outside the window
	}
	series := AdherenceSeries(logs, "h", 30, today)
	require.Len(t, series, 30)
	assert.Equal(t, 0.5, series[0])
	assert.Equal(t, 1.0, series[29])
	for i, v := range series {
		assert.True(t, v >= 0 && v <= 1, "value %d out of range: %f", i, v)
	}
}

func TestAdherenceSeries_AveragesPerDayAcrossHabits(t *testing.T) {
	logs := []LogEntry{
		logAt("a", daysAgo(0), 1),
		logAt("b", daysAgo(0), 0.5),
		logAt("a", daysAgo(1), 2), // clamped after averaging
	}
	series := AdherenceSeries(logs, "", 3, today)
	assert.Equal(t, []float64{0, 1, 0.75}, series)

	onlyB := AdherenceSeries(logs, "b", 3, today)
	assert.Equal(t, []float64{0, 0, 0.5}, onlyB)
}

func TestAdherenceSeries_NonPositiveDays(t *testing.T) {
	assert.Empty(t, AdherenceSeries(nil, "", 0, today))
	assert.Empty(t, AdherenceSeries(nil, "", -4, today))
}

func TestAdherenceSeries_Idempotent(t *testing.T) {
	logs := []LogEntry{logAt("h", daysAgo(0), 0.3), logAt("h", daysAgo(4), 0.9)}
	before := append([]LogEntry(nil), logs...)
	a := AdherenceSeries(logs, "h", 7, today)
	b := AdherenceSeries(logs, "h", 7, today)
	assert.Equal(t, a, b)
	assert.Equal(t, before, logs)
}

// --- CurrentWeekInterval ---

func TestCurrentWeekInterval_FirstWeekday(t *testing.T) {
	monday := CurrentWeekInterval(today, time.Monday)
	assert.Equal(t, time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC), monday.Start)
	assert.Equal(t, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), monday.End)

	sunday := CurrentWeekInterval(today, time.Sunday)
	assert.Equal(t, time.Date(2024, 4, 7, 0, 0, 0, 0, time.UTC), sunday.Start)

	// Reference on the first weekday itself starts that day.
	onMonday := CurrentWeekInterval(time.Date(2024, 4, 8, 23, 59, 0, 0, time.UTC), time.Monday)
	assert.Equal(t, time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC), onMonday.Start)
}

func TestCurrentWeekInterval_ContainsReference(t *testing.T) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		w := CurrentWeekInterval(today, d)
		assert.True(t, w.Contains(today), "first weekday %s", d)
		assert.Equal(t, 7*24*time.Hour, w.Duration())
	}
}

// --- Habit lifecycle ---

func TestHabit_SetGoal(t *testing.T) {
	h := Habit{ID: "h", WeeklyGoal: 3}
	require.NoError(t, h.SetGoal(7))
	assert.Equal(t, 7, h.WeeklyGoal)

	err := h.SetGoal(8)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGoalOutOfRange))
	assert.Equal(t, 7, h.WeeklyGoal)

	assert.ErrorIs(t, h.SetGoal(-1), ErrGoalOutOfRange)
}

func TestHabit_Deactivate(t *testing.T) {
	h := Habit{ID: "h", IsActive: true}
	h.Deactivate()
	assert.False(t, h.IsActive)
}

// --- Dashboard ---

func TestCombinedWeekProgress_OnlyActive(t *testing.T) {
	habits := []Habit{
		{ID: "a", WeeklyGoal: 5, IsActive: true},
		{ID: "b", WeeklyGoal: 4, IsActive: true},
		{ID: "c", WeeklyGoal: 7, IsActive: false},
	}
	logs := []LogEntry{logAt("a", daysAgo(0), 1), logAt("b", daysAgo(1), 0.5), logAt("c", daysAgo(0), 1)}
	p := CombinedWeekProgress(habits, logs, CurrentWeekInterval(today, time.Monday))
	assert.InDelta(t, 1.5, p.Done, 1e-9)
	assert.Equal(t, 9, p.Goal)
}

func TestBestCurrentStreak(t *testing.T) {
	habits := []Habit{
		{ID: "a", IsActive: true},
		{ID: "b", IsActive: true},
		{ID: "c", IsActive: false},
	}
	logs := []LogEntry{
		logAt("a", daysAgo(0), 1),
		logAt("b", daysAgo(0), 1), logAt("b", daysAgo(1), 1),
		logAt("c", daysAgo(0), 1), logAt("c", daysAgo(1), 1), logAt("c", daysAgo(2), 1),
	}
	assert.Equal(t, 2, BestCurrentStreak(habits, logs, today))
	assert.Equal(t, 0, BestCurrentStreak(nil, logs, today))
}

func TestSummarize_OrdersActiveFirst(t *testing.T) {
	habits := []Habit{
		{ID: "z", Name: "Zeta", IsActive: false},
		{ID: "b", Name: "Breathing", IsActive: true, WeeklyGoal: 5},
		{ID: "a", Name: "Alpha", IsActive: true, WeeklyGoal: 2},
	}
	logs := []LogEntry{logAt("b", daysAgo(0), 1), logAt("b", daysAgo(3), 1)}
	stats := Summarize(habits, logs, today, time.Monday, 7)
	require.Len(t, stats, 3)
	assert.Equal(t, "Alpha", stats[0].Habit.Name)
	assert.Equal(t, "Breathing", stats[1].Habit.Name)
	assert.Equal(t, "Zeta", stats[2].Habit.Name)

	b := stats[1]
	assert.Equal(t, 1, b.Streak)
	assert.Equal(t, 1.0, b.Week.Done)
	assert.Len(t, b.Series, 7)
	assert.Equal(t, daysAgo(0), b.LastDone)
	assert.True(t, stats[0].LastDone.IsZero())
}

func TestActive_EmptyInput(t *testing.T) {
	assert.Empty(t, Active(nil))
	assert.Empty(t, Active([]Habit{{ID: "x"}}))
}
