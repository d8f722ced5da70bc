package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/mindcoach/internal/coach"
)

// InsertRecommendation records a recommendation that was shown and returns
// its ID.
func (db *DB) InsertRecommendation(ctx context.Context, rec coach.Recommendation, createdAt time.Time) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO recommendations (id, created_at, rule, title, body, action_label, scheduled_at, duration_ms, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, formatTime(createdAt), string(rec.Rule), rec.Title, rec.Body, rec.ActionLabel,
		formatTime(rec.ScheduledAt), rec.Duration.Milliseconds(), StatusOpen,
	)
	if err != nil {
		return "", fmt.Errorf("inserting recommendation: %w", err)
	}
	return id, nil
}

// ListRecommendations returns the newest recommendations first, at most
// limit.
func (db *DB) ListRecommendations(ctx context.Context, limit int) ([]RecommendationRecord, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, created_at, rule, title, body, action_label, scheduled_at, duration_ms, status
		FROM recommendations ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recommendations: %w", err)
	}
	defer rows.Close()

	var out []RecommendationRecord
	for rows.Next() {
		var (
			r              RecommendationRecord
			created, sched string
			rule           string
			durationMS     int64
		)
		if err := rows.Scan(&r.ID, &created, &rule, &r.Title, &r.Body, &r.ActionLabel, &sched, &durationMS, &r.Status); err != nil {
			return nil, err
		}
		if r.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		if r.ScheduledAt, err = parseTime(sched); err != nil {
			return nil, err
		}
		r.Rule = coach.RuleName(rule)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}

// CompleteRecommendation marks a recommendation done.
func (db *DB) CompleteRecommendation(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx,
		"UPDATE recommendations SET status = ? WHERE id = ?", StatusDone, id)
	if err != nil {
		return fmt.Errorf("completing recommendation: %w", err)
	}
	return rowsAffected(res, "recommendation", id)
}
