package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
	"github.com/blackwell-systems/mindcoach/internal/assessment"
	"github.com/blackwell-systems/mindcoach/internal/coach"
	"github.com/blackwell-systems/mindcoach/internal/habits"
)

// Config is the top-level mindcoach configuration.
type Config struct {
	Timezone     string      `mapstructure:"timezone"`
	FirstWeekday string      `mapstructure:"first_weekday"`
	DBPath       string      `mapstructure:"db_path"`
	Day          Day         `mapstructure:"day"`
	FreeSlots    FreeSlots   `mapstructure:"free_slots"`
	Coach        Coach       `mapstructure:"coach"`
	Habits       Habits      `mapstructure:"habits"`
	Assessments  Assessments `mapstructure:"assessments"`
	Sleep        Sleep       `mapstructure:"sleep"`
	Recurrence   Recurrence  `mapstructure:"recurrence"`
	Output       Output      `mapstructure:"output"`
}

// Day bounds the planning day as HH:MM clock times. An end at or before the
// start runs to midnight.
type Day struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// FreeSlots configures the free slot calculator.
type FreeSlots struct {
	MinMinutes int `mapstructure:"min_minutes"`
}

// Coach configures the recommendation engine.
type Coach struct {
	JournalSlot string `mapstructure:"journal_slot"`
}

// Habits configures habit analytics.
type Habits struct {
	SeriesDays int `mapstructure:"series_days"`
}

// Assessments configures the subscription tier and retake cooldown.
type Assessments struct {
	Tier        string `mapstructure:"tier"`
	RetakeWeeks int    `mapstructure:"retake_weeks"`
}

// Sleep holds sleep preferences.
type Sleep struct {
	WakeTime      string `mapstructure:"wake_time"`
	Cycles        int    `mapstructure:"cycles"`
	BufferMinutes int    `mapstructure:"buffer_minutes"`
}

// Recurrence configures recurring event expansion.
type Recurrence struct {
	HorizonMonths int `mapstructure:"horizon_months"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a validated Config with all defaults applied. Environment
// variables prefixed with MINDCOACH_ override file values.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("timezone", DefaultTimezone)
	v.SetDefault("first_weekday", DefaultFirstWeekday)
	v.SetDefault("db_path", "")
	v.SetDefault("day.start", DefaultDay.Start)
	v.SetDefault("day.end", DefaultDay.End)
	v.SetDefault("free_slots.min_minutes", DefaultFreeSlots.MinMinutes)
	v.SetDefault("coach.journal_slot", DefaultCoach.JournalSlot)
	v.SetDefault("habits.series_days", DefaultHabits.SeriesDays)
	v.SetDefault("assessments.tier", DefaultAssessments.Tier)
	v.SetDefault("assessments.retake_weeks", DefaultAssessments.RetakeWeeks)
	v.SetDefault("sleep.wake_time", DefaultSleep.WakeTime)
	v.SetDefault("sleep.cycles", DefaultSleep.Cycles)
	v.SetDefault("sleep.buffer_minutes", DefaultSleep.BufferMinutes)
	v.SetDefault("recurrence.horizon_months", DefaultRecurrence.HorizonMonths)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(ConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.DBPath = expandPath(cfg.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks every value that the analytics core would otherwise have
// to guess about.
func (c *Config) Validate() error {
	var errs []error
	add := func(key string, err error) {
		errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalid, key, err))
	}

	if _, err := c.Location(); err != nil {
		add("timezone", err)
	}
	if _, err := c.Weekday(); err != nil {
		add("first_weekday", err)
	}
	if _, _, err := c.DayClocks(); err != nil {
		add("day", err)
	}
	if c.FreeSlots.MinMinutes < 0 {
		add("free_slots.min_minutes", fmt.Errorf("must be >= 0, got %d", c.FreeSlots.MinMinutes))
	}
	if _, err := c.JournalSlot(); err != nil {
		add("coach.journal_slot", err)
	}
	if c.Habits.SeriesDays < 1 {
		add("habits.series_days", fmt.Errorf("must be >= 1, got %d", c.Habits.SeriesDays))
	}
	if _, err := assessment.ParseTier(c.Assessments.Tier); err != nil {
		add("assessments.tier", err)
	}
	if c.Assessments.RetakeWeeks < 0 {
		add("assessments.retake_weeks", fmt.Errorf("must be >= 0, got %d", c.Assessments.RetakeWeeks))
	}
	if _, err := c.SleepPrefs(); err != nil {
		add("sleep", err)
	}
	if c.Recurrence.HorizonMonths < 1 {
		add("recurrence.horizon_months", fmt.Errorf("must be >= 1, got %d", c.Recurrence.HorizonMonths))
	}
	if c.Output.Width < 20 {
		add("output.width", fmt.Errorf("must be >= 20, got %d", c.Output.Width))
	}
	return errors.Join(errs...)
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Weekday resolves the first day of the week.
func (c *Config) Weekday() (time.Weekday, error) {
	return agenda.ParseWeekday(c.FirstWeekday)
}

// DayClocks parses the planning day bounds.
func (c *Config) DayClocks() (start, end agenda.Clock, err error) {
	if start, err = agenda.ParseClock(c.Day.Start); err != nil {
		return
	}
	end, err = agenda.ParseClock(c.Day.End)
	return
}

// JournalSlot resolves the journaling slot policy.
func (c *Config) JournalSlot() (coach.SlotPolicy, error) {
	p, ok := coach.ParseSlotPolicy(c.Coach.JournalSlot)
	if !ok {
		return "", fmt.Errorf("unknown policy %q (want first or largest)", c.Coach.JournalSlot)
	}
	return p, nil
}

// SleepPrefs builds sleep preferences from the sleep section.
func (c *Config) SleepPrefs() (agenda.SleepPrefs, error) {
	wake, err := agenda.ParseClock(c.Sleep.WakeTime)
	if err != nil {
		return agenda.SleepPrefs{}, err
	}
	if c.Sleep.Cycles < 1 || c.Sleep.Cycles > 8 {
		return agenda.SleepPrefs{}, fmt.Errorf("cycles must be in [1, 8], got %d", c.Sleep.Cycles)
	}
	if c.Sleep.BufferMinutes < 0 {
		return agenda.SleepPrefs{}, fmt.Errorf("buffer_minutes must be >= 0, got %d", c.Sleep.BufferMinutes)
	}
	return agenda.SleepPrefs{TargetWake: wake, Cycles: c.Sleep.Cycles, BufferMinutes: c.Sleep.BufferMinutes}, nil
}

// RetakeInterval returns the free-tier retake cooldown. Zero weeks is a
// real setting meaning no cooldown, not a fallback to the catalog default.
func (c *Config) RetakeInterval() *assessment.Interval {
	return &assessment.Interval{Weeks: c.Assessments.RetakeWeeks}
}

// SeriesDays returns the adherence series length, falling back to the
// package default.
func (c *Config) SeriesDays() int {
	if c.Habits.SeriesDays < 1 {
		return habits.DefaultSeriesDays
	}
	return c.Habits.SeriesDays
}

// DBPath returns the full path to the SQLite database.
func DBPath() string {
	return filepath.Join(ConfigDir(), DefaultDBName)
}

// Database returns the configured database path, or DBPath when unset.
func (c *Config) Database() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return DBPath()
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
