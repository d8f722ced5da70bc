package coach

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
)

const maxPrompts = 3

var basePrompts = []string{
	"What was the most challenging part of today and how did you respond?",
	`Complete: "I feel ___ because ___; tomorrow I will ___."`,
}

const preCompetitionPrompt = "Before the competition: which calm signal will you use (a breath, an anchor word)?"

// SuggestPrompts returns up to three journal prompts for the day. A
// competition today adds a pre-competition prompt; otherwise an upcoming
// goal adds a goal reflection.
func SuggestPrompts(ctx *Context) []string {
	prompts := append([]string(nil), basePrompts...)
	for _, ev := range ctx.TodayEvents {
		if ev.Kind == agenda.KindCompetition {
			prompts = append(prompts, preCompetitionPrompt)
			break
		}
	}
	if ctx.UpcomingGoal != nil && ctx.UpcomingGoal.Title != "" {
		prompts = append(prompts, fmt.Sprintf("What did you do today that brings you closer to %s?", ctx.UpcomingGoal.Title))
	}
	if len(prompts) > maxPrompts {
		prompts = prompts[:maxPrompts]
	}
	return prompts
}

// Signals are lightweight features extracted from a journal entry.
type Signals struct {
	Tags      []string `json:"tags"`
	Sentiment int      `json:"sentiment"`
	Intent    *Intent  `json:"intent,omitempty"`
}

// Intent is a goal statement found in a journal entry. Position is the byte
// offset of the phrase that introduced it.
type Intent struct {
	Goal     string `json:"goal"`
	Position int    `json:"position"`
}

// Signal tags.
const (
	TagAnxiety     = "anxiety"
	TagCompetition = "competition"
)

var (
	anxietyStems     = []string{"anxious", "anxiety", "nerv"}
	competitionStems = []string{"competition", "tournament", "championship"}
	negativeStems    = []string{"worr"}
	positiveStems    = []string{"motivat", "confiden"}
	goalPhrases      = []string{"my goal is to ", "my goal is ", "i want to ", "i will "}
)

// ExtractSignals tags a journal entry by keyword, scores a coarse sentiment
// (-2 for worry, +2 for motivation or confidence), and pulls out the first
// goal statement, if any.
func ExtractSignals(body string) Signals {
	lower := strings.ToLower(body)
	s := Signals{Tags: []string{}}
	if containsAny(lower, anxietyStems) {
		s.Tags = append(s.Tags, TagAnxiety)
	}
	if containsAny(lower, competitionStems) {
		s.Tags = append(s.Tags, TagCompetition)
	}
	if containsAny(lower, negativeStems) {
		s.Sentiment -= 2
	}
	if containsAny(lower, positiveStems) {
		s.Sentiment += 2
	}
	s.Intent = parseIntent(lower)
	return s
}

func containsAny(s string, stems []string) bool {
	for _, stem := range stems {
		if strings.Contains(s, stem) {
			return true
		}
	}
	return false
}

// parseIntent returns the earliest goal phrase and the clause after it.
func parseIntent(lower string) *Intent {
	best := -1
	var phrase string
	for _, p := range goalPhrases {
		i := strings.Index(lower, p)
		if i >= 0 && (best < 0 || i < best) {
			best, phrase = i, p
		}
	}
	if best < 0 {
		return nil
	}
	rest := lower[best+len(phrase):]
	if end := strings.IndexAny(rest, ".,;!?\n"); end >= 0 {
		rest = rest[:end]
	}
	goal := strings.TrimSpace(rest)
	if goal == "" {
		return nil
	}
	return &Intent{Goal: goal, Position: best}
}
