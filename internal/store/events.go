package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
)

// InsertEvent stores an event, assigning an ID when it has none.
func (db *DB) InsertEvent(ctx context.Context, ev *agenda.CalendarEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	freq := agenda.FrequencyNone
	var days string
	var until sql.NullString
	if ev.Recurrence.IsRecurring() {
		freq = ev.Recurrence.Frequency
		days = encodeWeekdays(ev.Recurrence.RepeatDays)
		until = nullTime(ev.Recurrence.Until)
	}
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO events (id, title, start_at, end_at, kind, notes, frequency, repeat_days, until_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Title, formatTime(ev.Start), formatTime(ev.End), string(ev.Kind), ev.Notes,
		string(freq), days, until,
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// ListEvents returns one-off events overlapping [from, to) and every
// recurring master that starts before to, ordered by start. Callers expand
// the masters.
func (db *DB) ListEvents(ctx context.Context, from, to time.Time) ([]agenda.CalendarEvent, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, start_at, end_at, kind, notes, frequency, repeat_days, until_at
		FROM events
		WHERE start_at < ? AND (end_at > ? OR frequency != 'none')
		ORDER BY start_at, id`,
		formatTime(to), formatTime(from),
	)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []agenda.CalendarEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// DeleteEvent removes an event by ID.
func (db *DB) DeleteEvent(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return rowsAffected(res, "event", id)
}

func scanEvent(rows *sql.Rows) (agenda.CalendarEvent, error) {
	var (
		ev               agenda.CalendarEvent
		start, end, kind string
		freq, days       string
		until            sql.NullString
	)
	if err := rows.Scan(&ev.ID, &ev.Title, &start, &end, &kind, &ev.Notes, &freq, &days, &until); err != nil {
		return ev, err
	}
	var err error
	if ev.Start, err = parseTime(start); err != nil {
		return ev, err
	}
	if ev.End, err = parseTime(end); err != nil {
		return ev, err
	}
	ev.Kind = agenda.ParseKind(kind)

	if f := agenda.Frequency(freq); f != agenda.FrequencyNone {
		rec := &agenda.Recurrence{Frequency: f, RepeatDays: decodeWeekdays(days)}
		if until.Valid {
			t, err := parseTime(until.String)
			if err != nil {
				return ev, err
			}
			rec.Until = &t
		}
		ev.Recurrence = rec
	}
	return ev, nil
}

func encodeWeekdays(days []time.Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func decodeWeekdays(s string) []time.Weekday {
	if s == "" {
		return nil
	}
	var days []time.Weekday
	for _, p := range strings.Split(s, ",") {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 6 {
			continue
		}
		days = append(days, time.Weekday(n))
	}
	return days
}
