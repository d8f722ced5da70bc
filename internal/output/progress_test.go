package output

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScoreBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, "████░ 80/100", ScoreBar(80, 5))
	assert.Equal(t, "░░░░░ -10/100", ScoreBar(-10, 5))
	assert.Equal(t, "█████ 150/100", ScoreBar(150, 5))
}

func TestGoalBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, "██░░ 2.5/5", GoalBar(2.5, 5, 4))
	assert.Equal(t, "░░░░ 0/0", GoalBar(0, 0, 4))
}

func TestSparkline(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, "▁▅█", Sparkline([]float64{0, 0.5, 1}))
	assert.Equal(t, "▁█", Sparkline([]float64{-1, 2}))
	assert.Empty(t, Sparkline(nil))
}

func TestTrendArrow(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, "▲ +5.0", TrendArrow(5, true))
	assert.Equal(t, "▼ -2.5", TrendArrow(-2.5, true))
	assert.Equal(t, "─", TrendArrow(0, true))
}

func TestRelative(t *testing.T) {
	ref := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "3 weeks from now", Relative(ref.AddDate(0, 0, 21), ref))
	assert.Equal(t, "2 days ago", Relative(ref.AddDate(0, 0, -2), ref))
}

func TestSection(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)
	defer SetWidth(68)

	SetWidth(12)
	assert.Equal(t, "\n Today\n ──────────", Section("Today"))
}
