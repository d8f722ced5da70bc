// Package habits provides streak, weekly-goal, and daily adherence analysis
// over habit completion logs.
package habits

import (
	"errors"
	"fmt"
	"time"
)

// MaxWeeklyGoal is the largest weekly goal a habit may carry.
const MaxWeeklyGoal = 7

// DefaultSeriesDays is the default length of an adherence series.
const DefaultSeriesDays = 30

// ErrGoalOutOfRange is returned when a weekly goal falls outside [0, 7].
var ErrGoalOutOfRange = errors.New("weekly goal out of range")

// Habit is a user-defined habit. Deactivated habits stay in the log history.
type Habit struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	WeeklyGoal  int    `json:"weekly_goal"`
	IsActive    bool   `json:"is_active"`
}

// SetGoal updates the weekly goal, rejecting values outside [0, 7].
func (h *Habit) SetGoal(goal int) error {
	if goal < 0 || goal > MaxWeeklyGoal {
		return fmt.Errorf("%w: %d (want 0-%d)", ErrGoalOutOfRange, goal, MaxWeeklyGoal)
	}
	h.WeeklyGoal = goal
	return nil
}

// Deactivate soft-deletes the habit.
func (h *Habit) Deactivate() {
	h.IsActive = false
}

// LogEntry records one full or partial completion of a habit.
type LogEntry struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	PerformedAt time.Time `json:"performed_at"`

	// Adherence is how completely the habit was performed, 0-1.
	Adherence float64 `json:"adherence"`

	Notes string `json:"notes,omitempty"`
}

// Adherence values recorded for a full and a partial completion.
const (
	AdherenceFull    = 1.0
	AdherencePartial = 0.5
)

// Progress is done-versus-goal for one week.
type Progress struct {
	Done float64 `json:"done"`
	Goal int     `json:"goal"`
}

// Ratio returns Done/Goal clamped to [0, 1], or 0 when there is no goal.
func (p Progress) Ratio() float64 {
	if p.Goal <= 0 {
		return 0
	}
	return clamp01(p.Done / float64(p.Goal))
}

// Stats summarizes one habit for display.
type Stats struct {
	Habit    Habit     `json:"habit"`
	Streak   int       `json:"streak"`
	Week     Progress  `json:"week"`
	Series   []float64 `json:"series"`
	LastDone time.Time `json:"last_done"`
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
