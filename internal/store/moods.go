package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InsertMood stores a mood sample, assigning an ID when it has none.
func (db *DB) InsertMood(ctx context.Context, m *Mood) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO moods (id, logged_at, energy, stress, note) VALUES (?, ?, ?, ?, ?)",
		m.ID, formatTime(m.LoggedAt), nullInt(m.Energy), nullInt(m.Stress), m.Note,
	)
	if err != nil {
		return fmt.Errorf("inserting mood: %w", err)
	}
	return nil
}

// LatestMood returns the most recent sample logged at or before ref, or nil
// if there is none.
func (db *DB) LatestMood(ctx context.Context, ref time.Time) (*Mood, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, logged_at, energy, stress, note FROM moods
		WHERE logged_at <= ?
		ORDER BY logged_at DESC, id DESC
		LIMIT 1`,
		formatTime(ref),
	)
	var (
		m              Mood
		at             string
		energy, stress sql.NullInt64
	)
	err := row.Scan(&m.ID, &at, &energy, &stress, &m.Note)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if m.LoggedAt, err = parseTime(at); err != nil {
		return nil, err
	}
	m.Energy = intPtr(energy)
	m.Stress = intPtr(stress)
	return &m, nil
}
