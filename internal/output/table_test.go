package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisualLen(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain", "hello", 5},
		{"empty", "", 0},
		{"bold", "\x1b[1mhello\x1b[0m", 5},
		{"color", "\x1b[31mred\x1b[0m", 3},
		{"multiple sequences", "\x1b[1m\x1b[34mblue bold\x1b[0m", 9},
		{"block runes", "██░░", 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, visualLen(tc.input))
		})
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "hi        ", pad("hi", 10))
	assert.Equal(t, "hello", pad("hello", 5))
	assert.Equal(t, "toolong", pad("toolong", 3))
	assert.Equal(t, 6, visualLen(pad("█", 6)))
}

// --- Table ---

func TestTable_Render(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Habit", "Streak")
	tbl.AddRow("Breathing", "4")
	tbl.AddRow("Stretch", "0")

	out := tbl.Render()
	for _, want := range []string{"Habit", "Streak", "Breathing", "Stretch", "─"} {
		assert.Contains(t, out, want)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, tbl.Render(), tbl.String())
}

func TestTable_EmptyHeaders(t *testing.T) {
	assert.Empty(t, NewTable().Render())
}

func TestTable_AlignsStyledCells(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("A", "B")
	tbl.AddRow(GoalBar(2, 4, 4), "x")
	tbl.AddRow("short", "y")

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, visualLen(lines[2]), visualLen(lines[3]))
}

func TestSetNoColor(t *testing.T) {
	SetNoColor(true)
	assert.NotContains(t, StyleHeader.Render("test"), "\x1b[")
	assert.True(t, IsNoColor())
	SetNoColor(false)
	assert.False(t, IsNoColor())
}

func TestShouldDisableColor(t *testing.T) {
	assert.True(t, ShouldDisableColor(true, true))
	assert.True(t, ShouldDisableColor(false, false))

	t.Setenv("NO_COLOR", "1")
	assert.True(t, ShouldDisableColor(true, false))
}
