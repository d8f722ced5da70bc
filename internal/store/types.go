// Package store provides SQLite persistence for events, habits, moods,
// assessments, journal entries, and delivered recommendations.
package store

import (
	"time"

	"github.com/blackwell-systems/mindcoach/internal/assessment"
	"github.com/blackwell-systems/mindcoach/internal/coach"
)

// Mood is a self-reported energy and stress sample on a 1-10 scale.
type Mood struct {
	ID       string    `json:"id"`
	LoggedAt time.Time `json:"logged_at"`
	Energy   *int      `json:"energy,omitempty"`
	Stress   *int      `json:"stress,omitempty"`
	Note     string    `json:"note,omitempty"`
}

// AssessmentRecord is a stored assessment summary.
type AssessmentRecord struct {
	ID string `json:"id"`
	assessment.Summary
}

// JournalEntry is a journal entry with its extracted signals.
type JournalEntry struct {
	ID        string        `json:"id"`
	WrittenAt time.Time     `json:"written_at"`
	Body      string        `json:"body"`
	Signals   coach.Signals `json:"signals"`
}

// Recommendation statuses.
const (
	StatusOpen = "open"
	StatusDone = "done"
)

// RecommendationRecord is a recommendation that was shown to the user.
type RecommendationRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
	coach.Recommendation
}
