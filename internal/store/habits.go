package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/mindcoach/internal/habits"
)

// InsertHabit stores a new habit, assigning an ID when it has none.
func (db *DB) InsertHabit(ctx context.Context, h *habits.Habit) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO habits (id, name, description, weekly_goal, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		h.ID, h.Name, h.Description, h.WeeklyGoal, h.IsActive, formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("inserting habit: %w", err)
	}
	return nil
}

// UpdateHabit writes back a habit's mutable fields.
func (db *DB) UpdateHabit(ctx context.Context, h *habits.Habit) error {
	res, err := db.conn.ExecContext(ctx,
		"UPDATE habits SET name = ?, description = ?, weekly_goal = ?, is_active = ? WHERE id = ?",
		h.Name, h.Description, h.WeeklyGoal, h.IsActive, h.ID,
	)
	if err != nil {
		return fmt.Errorf("updating habit: %w", err)
	}
	return rowsAffected(res, "habit", h.ID)
}

// FindHabit looks a habit up by ID, then by case-insensitive name.
func (db *DB) FindHabit(ctx context.Context, ref string) (*habits.Habit, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, name, description, weekly_goal, is_active FROM habits
		WHERE id = ? OR lower(name) = ?
		ORDER BY id = ? DESC, created_at
		LIMIT 1`,
		ref, strings.ToLower(ref), ref,
	)
	var h habits.Habit
	err := row.Scan(&h.ID, &h.Name, &h.Description, &h.WeeklyGoal, &h.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("habit %q: %w", ref, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ListHabits returns habits ordered by creation. Inactive habits are
// included only when includeInactive is set.
func (db *DB) ListHabits(ctx context.Context, includeInactive bool) ([]habits.Habit, error) {
	query := "SELECT id, name, description, weekly_goal, is_active FROM habits"
	if !includeInactive {
		query += " WHERE is_active"
	}
	query += " ORDER BY created_at, id"

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing habits: %w", err)
	}
	defer rows.Close()

	var out []habits.Habit
	for rows.Next() {
		var h habits.Habit
		if err := rows.Scan(&h.ID, &h.Name, &h.Description, &h.WeeklyGoal, &h.IsActive); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// InsertLog stores a habit log entry, assigning an ID when it has none.
func (db *DB) InsertLog(ctx context.Context, l *habits.LogEntry) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO habit_logs (id, habit_id, performed_at, adherence, notes) VALUES (?, ?, ?, ?, ?)",
		l.ID, l.HabitID, formatTime(l.PerformedAt), l.Adherence, l.Notes,
	)
	if err != nil {
		return fmt.Errorf("inserting habit log: %w", err)
	}
	return nil
}

// ListLogs returns every log entry performed at or after since, oldest
// first.
func (db *DB) ListLogs(ctx context.Context, since time.Time) ([]habits.LogEntry, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, habit_id, performed_at, adherence, notes FROM habit_logs
		WHERE performed_at >= ?
		ORDER BY performed_at, id`,
		formatTime(since),
	)
	if err != nil {
		return nil, fmt.Errorf("listing habit logs: %w", err)
	}
	defer rows.Close()

	var out []habits.LogEntry
	for rows.Next() {
		var (
			l  habits.LogEntry
			at string
		)
		if err := rows.Scan(&l.ID, &l.HabitID, &at, &l.Adherence, &l.Notes); err != nil {
			return nil, err
		}
		if l.PerformedAt, err = parseTime(at); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
