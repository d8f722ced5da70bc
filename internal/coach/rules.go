package coach

import (
	"fmt"
	"sort"
	"time"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
)

// Rule timing constants.
const (
	preCompetitionLead     = 20 * time.Minute
	preCompetitionDuration = 3 * time.Minute

	lowEnergyThreshold = 4
	lowEnergyMinSlot   = 15 * time.Minute
	lowEnergyFromHour  = 12 // local, both ends inclusive
	lowEnergyToHour    = 15
	lowEnergyDuration  = 3 * time.Minute

	journalMinSlot  = 20 * time.Minute
	journalDuration = 5 * time.Minute

	slotLeadIn         = 5 * time.Minute
	microResetLeadIn   = 2 * time.Minute
	microResetDuration = 90 * time.Second
)

// PreCompetition schedules a breathing protocol 20 minutes before the first
// competition today whose 3-minute window fits inside a free slot.
func PreCompetition(ctx *Context, slots []agenda.TimeWindow) (Recommendation, bool) {
	var comps []agenda.CalendarEvent
	for _, ev := range ctx.TodayEvents {
		if ev.Kind == agenda.KindCompetition {
			comps = append(comps, ev)
		}
	}
	sort.SliceStable(comps, func(i, j int) bool { return comps[i].Start.Before(comps[j].Start) })

	for _, c := range comps {
		target := c.Start.Add(-preCompetitionLead)
		window := agenda.TimeWindow{Start: target, End: target.Add(preCompetitionDuration)}
		for _, s := range slots {
			if !s.ContainsWindow(window) {
				continue
			}
			return Recommendation{
				Title: "Pre-competition breathing",
				Body: fmt.Sprintf("Box breathing from %s to %s settles your nerves before %s.",
					clock(window.Start, ctx.loc()), clock(window.End, ctx.loc()), eventName(c)),
				ScheduledAt: target,
				ActionLabel: "Start breathing",
				Rule:        RulePreCompetition,
				Duration:    preCompetitionDuration,
			}, true
		}
	}
	return Recommendation{}, false
}

// LowEnergy schedules an energizing breathing protocol in the first early
// afternoon slot of at least 15 minutes when reported energy is 4 or lower.
func LowEnergy(ctx *Context, slots []agenda.TimeWindow) (Recommendation, bool) {
	if ctx.Energy == nil || *ctx.Energy > lowEnergyThreshold {
		return Recommendation{}, false
	}
	loc := ctx.loc()
	for _, s := range slots {
		if s.Duration() < lowEnergyMinSlot {
			continue
		}
		local := s.Start.In(loc)
		y, mo, d := local.Date()
		from := time.Date(y, mo, d, lowEnergyFromHour, 0, 0, 0, loc)
		to := time.Date(y, mo, d, lowEnergyToHour, 0, 0, 0, loc)
		if s.Start.Before(from) || s.Start.After(to) {
			continue
		}
		at := s.Start.Add(slotLeadIn)
		return Recommendation{
			Title: "Energizing breathing",
			Body: fmt.Sprintf("Your energy is low (%d/10). Use the %s window for a short energizing breathing round.",
				*ctx.Energy, span(s, loc)),
			ScheduledAt: at,
			ActionLabel: "Recharge",
			Rule:        RuleLowEnergy,
			Duration:    lowEnergyDuration,
		}, true
	}
	return Recommendation{}, false
}

// Journaling returns a rule that schedules a 5-minute journaling prompt in a
// slot of at least 20 minutes chosen by policy.
func Journaling(policy SlotPolicy) Rule {
	return func(ctx *Context, slots []agenda.TimeWindow) (Recommendation, bool) {
		s, ok := pickSlot(slots, journalMinSlot, policy)
		if !ok {
			return Recommendation{}, false
		}
		return Recommendation{
			Title:       "Five-minute journal",
			Body:        fmt.Sprintf("Take five minutes in the %s window to write down how today went.", span(s, ctx.loc())),
			ScheduledAt: s.Start.Add(slotLeadIn),
			ActionLabel: "Write",
			Rule:        RuleJournaling,
			Duration:    journalDuration,
		}, true
	}
}

// MicroReset schedules a 90-second reset two minutes into the first slot.
func MicroReset(ctx *Context, slots []agenda.TimeWindow) (Recommendation, bool) {
	if len(slots) == 0 {
		return Recommendation{}, false
	}
	s := slots[0]
	return Recommendation{
		Title:       "90-second reset",
		Body:        fmt.Sprintf("Your day is tight. Take a 90-second reset in the %s gap.", span(s, ctx.loc())),
		ScheduledAt: s.Start.Add(microResetLeadIn),
		ActionLabel: "Reset",
		Rule:        RuleMicroReset,
		Duration:    microResetDuration,
	}, true
}

// Fallback recommends an immediate 90-second reset.
func Fallback(ctx *Context) Recommendation {
	return Recommendation{
		Title:       "90-second reset",
		Body:        "No free time left today. Pause now for a 90-second reset.",
		ScheduledAt: ctx.Now,
		ActionLabel: "Reset now",
		Rule:        RuleFallback,
		Duration:    microResetDuration,
	}
}

// pickSlot returns the first slot of at least minLen, or the largest one
// under SlotLargest. Ties go to the earliest slot.
func pickSlot(slots []agenda.TimeWindow, minLen time.Duration, policy SlotPolicy) (agenda.TimeWindow, bool) {
	var best agenda.TimeWindow
	found := false
	for _, s := range slots {
		if s.Duration() < minLen {
			continue
		}
		if !found {
			best, found = s, true
			if policy != SlotLargest {
				break
			}
			continue
		}
		if s.Duration() > best.Duration() {
			best = s
		}
	}
	return best, found
}

func clock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}

func span(w agenda.TimeWindow, loc *time.Location) string {
	return clock(w.Start, loc) + "-" + clock(w.End, loc)
}

func eventName(ev agenda.CalendarEvent) string {
	if ev.Title == "" {
		return "your competition"
	}
	return ev.Title
}
