package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/blackwell-systems/mindcoach/internal/coach"
)

// InsertJournalEntry stores a journal entry and its signals.
func (db *DB) InsertJournalEntry(ctx context.Context, e *JournalEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	var intent sql.NullString
	if e.Signals.Intent != nil {
		b, err := json.Marshal(e.Signals.Intent)
		if err != nil {
			return fmt.Errorf("encoding journal intent: %w", err)
		}
		intent = sql.NullString{String: string(b), Valid: true}
	}
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO journal_entries (id, written_at, body, tags, sentiment, intent) VALUES (?, ?, ?, ?, ?, ?)",
		e.ID, formatTime(e.WrittenAt), e.Body, strings.Join(e.Signals.Tags, ","), e.Signals.Sentiment, intent,
	)
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}
	return nil
}

// ListJournalEntries returns the newest entries first, at most limit.
func (db *DB) ListJournalEntries(ctx context.Context, limit int) ([]JournalEntry, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, written_at, body, tags, sentiment, intent FROM journal_entries
		ORDER BY written_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	defer rows.Close()

	var out []JournalEntry
	for rows.Next() {
		var (
			e        JournalEntry
			at, tags string
			intent   sql.NullString
		)
		if err := rows.Scan(&e.ID, &at, &e.Body, &tags, &e.Signals.Sentiment, &intent); err != nil {
			return nil, err
		}
		if e.WrittenAt, err = parseTime(at); err != nil {
			return nil, err
		}
		e.Signals.Tags = []string{}
		if tags != "" {
			e.Signals.Tags = strings.Split(tags, ",")
		}
		if intent.Valid {
			var in coach.Intent
			if err := json.Unmarshal([]byte(intent.String), &in); err != nil {
				return nil, fmt.Errorf("decoding journal intent %s: %w", e.ID, err)
			}
			e.Signals.Intent = &in
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
