// Package assessment provides questionnaire scoring, the built-in instrument
// catalog, and the retake eligibility policy.
package assessment

import "time"

// Answer is a Likert response in [1, 5]. Unanswered marks a skipped item.
type Answer int

// Likert bounds and the unanswered marker.
const (
	Unanswered Answer = 0
	MinAnswer  Answer = 1
	MaxAnswer  Answer = 5
)

// Item is a static questionnaire item.
type Item struct {
	ID         string `json:"id"`
	Prompt     string `json:"prompt"`
	SubscaleID string `json:"subscale_id"`
	Reversed   bool   `json:"is_reversed"`
}

// Subscale is a named group of items measuring one facet.
type Subscale struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SubscaleResult is the aggregated score of one subscale.
type SubscaleResult struct {
	SubscaleID string  `json:"subscale_id"`
	Title      string  `json:"title"`
	Normalized float64 `json:"normalized"`
	RawSum     int     `json:"raw_sum"`
	Items      int     `json:"items"`
}

// ItemScore is the per-item payload kept for storage and debugging. Raw is
// the value after reversal.
type ItemScore struct {
	SubscaleID string  `json:"subscale_id"`
	ItemCode   string  `json:"item_code"`
	Raw        int     `json:"raw"`
	Normalized float64 `json:"normalized"`
}

// Result is the outcome of scoring one set of answers.
type Result struct {
	Subscales []SubscaleResult `json:"subscales"`
	Overall   float64          `json:"overall"`
	PerItem   []ItemScore      `json:"per_item"`
}

// Subscale returns the result for id, if present.
func (r *Result) Subscale(id string) (SubscaleResult, bool) {
	for _, s := range r.Subscales {
		if s.SubscaleID == id {
			return s, true
		}
	}
	return SubscaleResult{}, false
}

// Tier is the subscription tier that governs retake cooldowns.
type Tier string

// Subscription tiers.
const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// Summary is the typed record persisted after an assessment is taken.
type Summary struct {
	Instrument string           `json:"instrument"`
	Tier       Tier             `json:"tier"`
	TakenAt    time.Time        `json:"taken_at"`
	Retake     bool             `json:"retake"`
	Overall    float64          `json:"overall"`
	Subscales  []SubscaleResult `json:"subscales"`
}

// NewSummary builds the persisted summary for a scored result.
func NewSummary(instrument string, tier Tier, takenAt time.Time, retake bool, r *Result) Summary {
	subscales := make([]SubscaleResult, len(r.Subscales))
	copy(subscales, r.Subscales)
	return Summary{
		Instrument: instrument,
		Tier:       tier,
		TakenAt:    takenAt,
		Retake:     retake,
		Overall:    r.Overall,
		Subscales:  subscales,
	}
}
