// Package coach chooses a single actionable recommendation for the day and
// proposes mindfulness slots and journal prompts from a context snapshot.
package coach

import (
	"time"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
)

// Goal is an upcoming target event, such as a championship.
type Goal struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}

// Context is a read-only snapshot built fresh for each recommendation
// request. Energy and Stress are self-reported on a 1-10 scale and nil when
// not reported.
type Context struct {
	Now          time.Time              `json:"now"`
	Location     *time.Location         `json:"-"`
	TodayEvents  []agenda.CalendarEvent `json:"today_events"`
	FreeWindows  []agenda.TimeWindow    `json:"free_windows"`
	Energy       *int                   `json:"energy,omitempty"`
	Stress       *int                   `json:"stress,omitempty"`
	Sleep        *agenda.SleepPrefs     `json:"sleep,omitempty"`
	UpcomingGoal *Goal                  `json:"upcoming_goal,omitempty"`
}

// loc returns the context's location, falling back to the zone of Now.
func (c *Context) loc() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return c.Now.Location()
}

// RuleName identifies the rule that produced a recommendation.
type RuleName string

// Rule names in priority order.
const (
	RulePreCompetition RuleName = "pre_competition"
	RuleLowEnergy      RuleName = "low_energy"
	RuleJournaling     RuleName = "journaling"
	RuleMicroReset     RuleName = "micro_reset"
	RuleFallback       RuleName = "fallback"
)

// Recommendation is the single suggestion returned for a request.
type Recommendation struct {
	Title       string        `json:"title"`
	Body        string        `json:"body"`
	ScheduledAt time.Time     `json:"scheduled_at"`
	ActionLabel string        `json:"action_label"`
	Rule        RuleName      `json:"rule"`
	Duration    time.Duration `json:"duration"`
}

// Rule inspects the context and free slots and reports whether it applies.
// Rules never fail; a rule that does not apply returns false.
type Rule func(ctx *Context, slots []agenda.TimeWindow) (Recommendation, bool)

// SlotPolicy selects which qualifying slot the journaling rule uses.
type SlotPolicy string

// Slot policies.
const (
	SlotFirst   SlotPolicy = "first"
	SlotLargest SlotPolicy = "largest"
)

// ParseSlotPolicy validates a slot policy name.
func ParseSlotPolicy(s string) (SlotPolicy, bool) {
	switch SlotPolicy(s) {
	case SlotFirst, SlotLargest:
		return SlotPolicy(s), true
	default:
		return "", false
	}
}
