// Package config provides configuration loading and defaults for mindcoach.
package config

// DefaultConfigDir is the default location for mindcoach configuration.
const DefaultConfigDir = "~/.config/mindcoach"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "mindcoach.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// EnvPrefix prefixes environment overrides, e.g. MINDCOACH_DAY_START.
const EnvPrefix = "mindcoach"

// DefaultTimezone is used when no timezone is configured. "Local" means the
// system zone.
const DefaultTimezone = "Local"

// DefaultFirstWeekday starts weeks on Monday.
const DefaultFirstWeekday = "monday"

// DefaultDay bounds the planning day for free slots.
var DefaultDay = Day{
	Start: "07:00",
	End:   "22:00",
}

// DefaultFreeSlots holds the free slot calculator defaults.
var DefaultFreeSlots = FreeSlots{
	MinMinutes: 15,
}

// DefaultCoach holds the recommendation defaults.
var DefaultCoach = Coach{
	JournalSlot: "first",
}

// DefaultHabits holds the habit dashboard defaults.
var DefaultHabits = Habits{
	SeriesDays: 30,
}

// DefaultAssessments holds the assessment defaults.
var DefaultAssessments = Assessments{
	Tier:        "free",
	RetakeWeeks: 8,
}

// DefaultSleep holds the sleep planning defaults.
var DefaultSleep = Sleep{
	WakeTime:      "07:00",
	Cycles:        5,
	BufferMinutes: 15,
}

// DefaultRecurrence holds the recurrence expansion defaults.
var DefaultRecurrence = Recurrence{
	HorizonMonths: 3,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
