package coach

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
)

// --- ProposeMindfulnessSlots ---

func TestProposeMindfulnessSlots(t *testing.T) {
	ctx := newCtx(
		agenda.CalendarEvent{Start: at(17, 0), End: at(18, 0), Kind: agenda.KindCompetition},
		agenda.CalendarEvent{Start: at(8, 0), End: at(9, 30), Kind: agenda.KindTraining},
		agenda.CalendarEvent{Start: at(11, 0), End: at(12, 0), Kind: agenda.KindClass},
	)
	ctx.FreeWindows = []agenda.TimeWindow{win(9, 30, 9, 40), win(12, 0, 13, 0)}
	ctx.Energy = intp(4)

	got := ProposeMindfulnessSlots(ctx)
	require.Len(t, got, 3)
	assert.Equal(t, SuggestionSlot{At: at(9, 40), Protocol: ProtocolBodyScanLight, Duration: 3 * time.Minute}, got[0])
	assert.Equal(t, SuggestionSlot{At: at(12, 5), Protocol: ProtocolMicroReset, Duration: 90 * time.Second}, got[1])
	assert.Equal(t, SuggestionSlot{At: at(16, 40), Protocol: ProtocolBoxBreathing, Duration: 3 * time.Minute}, got[2])
}

func TestProposeMindfulnessSlots_NoLowEnergyReset(t *testing.T) {
	ctx := newCtx()
	ctx.FreeWindows = []agenda.TimeWindow{win(12, 0, 13, 0)}
	assert.Empty(t, ProposeMindfulnessSlots(ctx))

	ctx.Energy = intp(7)
	assert.Empty(t, ProposeMindfulnessSlots(ctx))
}

// --- SuggestPrompts ---

func TestSuggestPrompts(t *testing.T) {
	plain := SuggestPrompts(newCtx())
	assert.Len(t, plain, 2)

	comp := agenda.CalendarEvent{Start: at(10, 0), End: at(11, 0), Kind: agenda.KindCompetition}
	withComp := SuggestPrompts(newCtx(comp, comp))
	require.Len(t, withComp, 3)
	assert.Contains(t, withComp[2], "competition")

	goal := newCtx()
	goal.UpcomingGoal = &Goal{Title: "the national championship", Date: at(0, 0).AddDate(0, 2, 0)}
	withGoal := SuggestPrompts(goal)
	require.Len(t, withGoal, 3)
	assert.Contains(t, withGoal[2], "the national championship")

	goal.TodayEvents = []agenda.CalendarEvent{comp}
	assert.Equal(t, withComp, SuggestPrompts(goal))

	// The shared base list is never modified.
	assert.Len(t, basePrompts, 2)
}

// --- ExtractSignals ---

func TestExtractSignals(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		tags      []string
		sentiment int
		goal      string
	}{
		{"empty", "", []string{}, 0, ""},
		{"nervous before tournament", "Felt nervous all day before the tournament.", []string{TagAnxiety, TagCompetition}, 0, ""},
		{"worried", "I'm worried about my knee", []string{}, -2, ""},
		{"worried but motivated", "Worried, but motivated", []string{}, 0, ""},
		{"confident with goal", "Feeling confident. My goal is to qualify for nationals, then rest.", []string{}, 2, "qualify for nationals"},
		{"will statement", "Tomorrow I will stretch before class", []string{}, 0, "stretch before class"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ExtractSignals(tt.body)
			assert.Equal(t, tt.tags, s.Tags)
			assert.Equal(t, tt.sentiment, s.Sentiment)
			if tt.goal == "" {
				assert.Nil(t, s.Intent)
				return
			}
			require.NotNil(t, s.Intent)
			assert.Equal(t, tt.goal, s.Intent.Goal)
		})
	}
}

func TestExtractSignals_IntentPosition(t *testing.T) {
	s := ExtractSignals("Long day. I want to sleep early.")
	require.NotNil(t, s.Intent)
	assert.Equal(t, 10, s.Intent.Position)
	assert.Equal(t, "sleep early", s.Intent.Goal)
}
