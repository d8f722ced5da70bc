package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
	"github.com/blackwell-systems/mindcoach/internal/config"
)

func TestSessionExpandUsesLocalWeekdays(t *testing.T) {
	loc := time.FixedZone("AEST", 10*60*60)
	s := &session{
		cfg: &config.Config{FirstWeekday: "monday", Recurrence: config.Recurrence{HorizonMonths: 1}},
		loc: loc,
	}

	// Monday 07:00 local is still Sunday in UTC, which is how the store
	// returns it.
	start := time.Date(2024, 6, 3, 7, 0, 0, 0, loc).UTC()
	stored := []agenda.CalendarEvent{{
		ID:         "swim",
		Title:      "Swim",
		Start:      start,
		End:        start.Add(time.Hour),
		Kind:       agenda.KindTraining,
		Recurrence: &agenda.Recurrence{Frequency: agenda.FrequencyWeekly, RepeatDays: []time.Weekday{time.Monday}},
	}}

	all, err := s.expand(stored)
	require.NoError(t, err)
	require.Greater(t, len(all), 1)
	for _, ev := range all {
		assert.Equal(t, time.Monday, ev.Start.In(loc).Weekday(), ev.Start)
		assert.Equal(t, 7, ev.Start.In(loc).Hour())
	}
	assert.True(t, all[1].Start.Equal(time.Date(2024, 6, 10, 7, 0, 0, 0, loc)))

	// The stored slice is left as it was.
	assert.Equal(t, time.UTC, stored[0].Start.Location())
}
