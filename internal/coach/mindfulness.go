package coach

import (
	"sort"
	"time"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
)

// Protocol identifies a guided mindfulness protocol.
type Protocol string

// Built-in protocols.
const (
	ProtocolBoxBreathing  Protocol = "box_breathing"
	ProtocolBodyScanLight Protocol = "body_scan_light"
	ProtocolMicroReset    Protocol = "micro_reset_90s"
)

// SuggestionSlot is a proposed time for a mindfulness protocol.
type SuggestionSlot struct {
	At       time.Time     `json:"at"`
	Protocol Protocol      `json:"protocol"`
	Duration time.Duration `json:"duration"`
}

const (
	bodyScanDelay    = 10 * time.Minute
	bodyScanDuration = 3 * time.Minute
)

// ProposeMindfulnessSlots lists protocol slots for the day: box breathing
// 20 minutes before each competition, a light body scan 10 minutes after
// each training, and a 90-second reset 5 minutes into the first free window
// of at least 15 minutes when energy is 4 or lower. Results are ordered by
// time.
func ProposeMindfulnessSlots(ctx *Context) []SuggestionSlot {
	var out []SuggestionSlot
	for _, ev := range ctx.TodayEvents {
		switch ev.Kind {
		case agenda.KindCompetition:
			out = append(out, SuggestionSlot{
				At:       ev.Start.Add(-preCompetitionLead),
				Protocol: ProtocolBoxBreathing,
				Duration: preCompetitionDuration,
			})
		case agenda.KindTraining:
			out = append(out, SuggestionSlot{
				At:       ev.End.Add(bodyScanDelay),
				Protocol: ProtocolBodyScanLight,
				Duration: bodyScanDuration,
			})
		}
	}

	if ctx.Energy != nil && *ctx.Energy <= lowEnergyThreshold {
		for _, w := range ctx.FreeWindows {
			if w.Duration() >= lowEnergyMinSlot {
				out = append(out, SuggestionSlot{
					At:       w.Start.Add(slotLeadIn),
					Protocol: ProtocolMicroReset,
					Duration: microResetDuration,
				})
				break
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}
