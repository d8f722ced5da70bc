package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// ScoreBar renders a visual progress bar for a 0-100 score.
// Example: "████████░░ 80/100"
func ScoreBar(score float64, width int) string {
	return fmt.Sprintf("%s %s", bar(score/100, width), StyleMuted.Render(fmt.Sprintf("%.0f/100", score)))
}

// GoalBar renders weekly goal progress as a bar plus "done/goal".
// A zero goal renders an empty bar.
func GoalBar(done float64, goal int, width int) string {
	ratio := 0.0
	if goal > 0 {
		ratio = done / float64(goal)
	}
	return fmt.Sprintf("%s %s", bar(ratio, width), StyleMuted.Render(fmt.Sprintf("%s/%d", trimFloat(done), goal)))
}

// bar draws a ratio in [0, 1], colored by how full it is.
func bar(ratio float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	b := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case ratio >= 0.7:
		return StyleSuccess.Render(b)
	case ratio >= 0.4:
		return StyleWarning.Render(b)
	default:
		return StyleError.Render(b)
	}
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values in [0, 1] as one block character each. Zero
// renders as the lowest block so the series keeps its length.
func Sparkline(values []float64) string {
	var sb strings.Builder
	top := len(sparkLevels) - 1
	for _, v := range values {
		i := int(v*float64(top) + 0.5)
		if i < 0 {
			i = 0
		}
		if i > top {
			i = top
		}
		sb.WriteRune(sparkLevels[i])
	}
	return StyleSuccess.Render(sb.String())
}

// TrendArrow returns a styled trend indicator for a delta value.
// Positive delta shows an up arrow, negative shows down, zero shows a dash.
// The improved parameter indicates whether higher values are better.
func TrendArrow(delta float64, higherIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	isPositive := delta > 0
	isImproved := (isPositive && higherIsBetter) || (!isPositive && !higherIsBetter)

	var arrow string
	if isPositive {
		arrow = fmt.Sprintf("▲ +%.1f", delta)
	} else {
		arrow = fmt.Sprintf("▼ %.1f", delta)
	}

	if isImproved {
		return StyleSuccess.Render(arrow)
	}
	return StyleError.Render(arrow)
}

// Relative describes t relative to ref, e.g. "3 weeks from now".
func Relative(t, ref time.Time) string {
	return humanize.RelTime(t, ref, "ago", "from now")
}

// ruleWidth is the width of section rules.
var ruleWidth = 66

// SetWidth sets the section rule width from the terminal width setting.
func SetWidth(width int) {
	if width > 2 {
		ruleWidth = width - 2
	}
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", ruleWidth))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
