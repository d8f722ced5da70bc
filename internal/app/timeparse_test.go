package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	now := time.Date(2024, 6, 3, 23, 30, 0, 0, time.UTC) // 01:30 on 4 June in loc

	tests := []struct {
		input string
		want  time.Time
	}{
		{"today", time.Date(2024, 6, 4, 0, 0, 0, 0, loc)},
		{"Tomorrow 09:15", time.Date(2024, 6, 5, 9, 15, 0, 0, loc)},
		{"yesterday", time.Date(2024, 6, 3, 0, 0, 0, 0, loc)},
		{"+2d 18:30", time.Date(2024, 6, 6, 18, 30, 0, 0, loc)},
		{"-1d", time.Date(2024, 6, 3, 0, 0, 0, 0, loc)},
		{"07:45", time.Date(2024, 6, 4, 7, 45, 0, 0, loc)},
		{"2024-07-01", time.Date(2024, 7, 1, 0, 0, 0, 0, loc)},
		{"2024-07-01 10:00", time.Date(2024, 7, 1, 10, 0, 0, 0, loc)},
		{"2024-07-01T10:00", time.Date(2024, 7, 1, 10, 0, 0, 0, loc)},
		{"2024-07-01T10:00:00Z", time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDateTime(tt.input, now, loc)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestParseDateTimeErrors(t *testing.T) {
	now := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	for _, input := range []string{"", "soon", "+xd", "tomorrow 25:00", "2024-13-01"} {
		_, err := parseDateTime(input, now, time.UTC)
		assert.Error(t, err, input)
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)

	got, err := parseDate("", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDate("2024-06-10 15:00", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45m", formatDuration(45*time.Minute))
	assert.Equal(t, "1h05m", formatDuration(65*time.Minute))
	assert.Equal(t, "1m30s", formatCoachDuration(90*time.Second))
	assert.Equal(t, "3m", formatCoachDuration(3*time.Minute))
}
