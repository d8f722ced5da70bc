package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/mindcoach/internal/assessment"
)

// SaveAssessment stores a summary and its per-item scores in one
// transaction and returns the new record ID.
func (db *DB) SaveAssessment(ctx context.Context, s assessment.Summary, items []assessment.ItemScore) (string, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encoding assessment summary: %w", err)
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO assessments (id, instrument, tier, taken_at, retake, overall, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, s.Instrument, string(s.Tier), formatTime(s.TakenAt), s.Retake, s.Overall, string(payload),
	); err != nil {
		return "", fmt.Errorf("inserting assessment: %w", err)
	}

	for _, it := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO assessment_items (assessment_id, subscale_id, item_code, raw, normalized)
			VALUES (?, ?, ?, ?, ?)`,
			id, it.SubscaleID, it.ItemCode, it.Raw, it.Normalized,
		); err != nil {
			return "", fmt.Errorf("inserting assessment item %s: %w", it.ItemCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// LatestTaken returns the most recent attempt per instrument code.
func (db *DB) LatestTaken(ctx context.Context) (map[string]time.Time, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT instrument, MAX(taken_at) FROM assessments GROUP BY instrument")
	if err != nil {
		return nil, fmt.Errorf("querying latest assessments: %w", err)
	}
	defer rows.Close()

	latest := make(map[string]time.Time)
	for rows.Next() {
		var code, at string
		if err := rows.Scan(&code, &at); err != nil {
			return nil, err
		}
		t, err := parseTime(at)
		if err != nil {
			return nil, err
		}
		latest[code] = t
	}
	return latest, rows.Err()
}

// ListAssessments returns stored summaries newest first. An empty
// instrument lists all; limit <= 0 means no limit.
func (db *DB) ListAssessments(ctx context.Context, instrument string, limit int) ([]AssessmentRecord, error) {
	query := "SELECT id, summary FROM assessments"
	var args []any
	if instrument != "" {
		query += " WHERE instrument = ?"
		args = append(args, instrument)
	}
	query += " ORDER BY taken_at DESC, id"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assessments: %w", err)
	}
	defer rows.Close()

	var out []AssessmentRecord
	for rows.Next() {
		var r AssessmentRecord
		var payload string
		if err := rows.Scan(&r.ID, &payload); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &r.Summary); err != nil {
			return nil, fmt.Errorf("decoding assessment %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// AssessmentItems returns the per-item scores of a stored assessment in
// answer order.
func (db *DB) AssessmentItems(ctx context.Context, id string) ([]assessment.ItemScore, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT subscale_id, item_code, raw, normalized FROM assessment_items
		WHERE assessment_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("listing assessment items: %w", err)
	}
	defer rows.Close()

	var out []assessment.ItemScore
	for rows.Next() {
		var it assessment.ItemScore
		if err := rows.Scan(&it.SubscaleID, &it.ItemCode, &it.Raw, &it.Normalized); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
