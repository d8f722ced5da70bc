package agenda

import "time"

// SleepCycleLength is the nominal length of one sleep cycle.
const SleepCycleLength = 90 * time.Minute

// SleepPrefs are the person's sleep preferences.
type SleepPrefs struct {
	// TargetWake is the desired wake time on the following morning.
	TargetWake Clock `json:"target_wake"`

	// Cycles is the number of 90-minute cycles to plan for.
	Cycles int `json:"cycles"`

	// BufferMinutes is time allowed for falling asleep.
	BufferMinutes int `json:"buffer_minutes"`
}

// SleepPlan is a proposed sleep window.
type SleepPlan struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Cycles int       `json:"cycles"`
}

// ProposeSleepWindow plans the night after day: wake at the target time on
// the next local date, going to bed early enough for the requested cycles
// plus the buffer.
func ProposeSleepWindow(day time.Time, loc *time.Location, prefs SleepPrefs) SleepPlan {
	cycles := prefs.Cycles
	if cycles < 0 {
		cycles = 0
	}
	buffer := prefs.BufferMinutes
	if buffer < 0 {
		buffer = 0
	}

	wake := prefs.TargetWake.On(StartOfDay(day, loc).AddDate(0, 0, 1), loc)
	total := time.Duration(cycles)*SleepCycleLength + time.Duration(buffer)*time.Minute
	return SleepPlan{
		Start:  wake.Add(-total),
		End:    wake,
		Cycles: cycles,
	}
}
