package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/mindcoach/internal/agenda"
	"github.com/blackwell-systems/mindcoach/internal/config"
	"github.com/blackwell-systems/mindcoach/internal/output"
	"github.com/blackwell-systems/mindcoach/internal/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the mindcoach setup is healthy",
	Long: `Run a series of health checks against your mindcoach configuration
and database. Prints a pass/fail line for each check and a summary of how
many checks passed.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	if flagNoColor {
		output.SetNoColor(true)
	}

	// Validation failures are a check result here, not a command error.
	cfg, err := config.Load(flagConfig)
	checks := []doctorCheck{checkConfig(err)}
	if err == nil {
		checks = append(checks,
			checkTimezone(cfg),
			checkPlanningDay(cfg),
			checkSleep(cfg),
		)
		checks = append(checks, checkDatabase(cmd.Context(), cfg)...)
	}

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, doctorOutput{Checks: checks, PassedCount: passed, TotalCount: len(checks)})
	}

	fmt.Fprintln(out, output.Section("Doctor"))
	fmt.Fprintln(out)
	for _, c := range checks {
		renderDoctorCheck(out, c)
	}

	fmt.Fprintln(out)
	summary := fmt.Sprintf("%d/%d checks passed", passed, len(checks))
	if passed == len(checks) {
		fmt.Fprintf(out, " %s\n\n", output.StyleSuccess.Render(summary))
	} else {
		fmt.Fprintf(out, " %s\n\n", output.StyleWarning.Render(summary))
	}
	return nil
}

// renderDoctorCheck prints a single check result line.
func renderDoctorCheck(w io.Writer, c doctorCheck) {
	indicator := output.StyleSuccess.Render("✓")
	if !c.Passed {
		indicator = output.StyleWarning.Render("✗")
	}
	fmt.Fprintf(w, "  %s  %-22s %s\n", indicator, output.StyleBold.Render(c.Name), output.StyleMuted.Render(c.Message))
}

func checkConfig(loadErr error) doctorCheck {
	if loadErr != nil {
		return doctorCheck{Name: "Configuration", Message: strings.ReplaceAll(loadErr.Error(), "\n", "; ")}
	}
	path := flagConfig
	if path == "" {
		path = config.ConfigDir() + "/" + config.DefaultConfigFile
		if _, err := os.Stat(path); err != nil {
			return doctorCheck{Name: "Configuration", Passed: true, Message: "defaults (no config file)"}
		}
	}
	return doctorCheck{Name: "Configuration", Passed: true, Message: path}
}

func checkTimezone(cfg *config.Config) doctorCheck {
	loc, err := cfg.Location()
	if err != nil {
		return doctorCheck{Name: "Timezone", Message: err.Error()}
	}
	wd, err := cfg.Weekday()
	if err != nil {
		return doctorCheck{Name: "Timezone", Message: err.Error()}
	}
	return doctorCheck{Name: "Timezone", Passed: true, Message: fmt.Sprintf("%s, weeks start %s", loc, wd)}
}

func checkPlanningDay(cfg *config.Config) doctorCheck {
	start, end, err := cfg.DayClocks()
	if err != nil {
		return doctorCheck{Name: "Planning day", Message: err.Error()}
	}
	return doctorCheck{Name: "Planning day", Passed: true,
		Message: fmt.Sprintf("%s-%s, free windows of %d+ min", start, end, cfg.FreeSlots.MinMinutes)}
}

func checkSleep(cfg *config.Config) doctorCheck {
	prefs, err := cfg.SleepPrefs()
	if err != nil {
		return doctorCheck{Name: "Sleep preferences", Message: err.Error()}
	}
	return doctorCheck{Name: "Sleep preferences", Passed: true,
		Message: fmt.Sprintf("wake %s, %d cycles, %d min buffer", prefs.TargetWake, prefs.Cycles, prefs.BufferMinutes)}
}

// checkDatabase opens the store and reports the schema, row counts, and
// whether every recurring event still expands.
func checkDatabase(ctx context.Context, cfg *config.Config) []doctorCheck {
	path := cfg.Database()
	db, err := store.Open(path)
	if err != nil {
		return []doctorCheck{{Name: "Database", Message: fmt.Sprintf("cannot open %s: %v", path, err)}}
	}
	defer func() { _ = db.Close() }()

	checks := []doctorCheck{{Name: "Database", Passed: true, Message: path}}

	v, err := db.SchemaVersion()
	switch {
	case err != nil:
		checks = append(checks, doctorCheck{Name: "Schema", Message: err.Error()})
	case v != store.LatestSchemaVersion():
		checks = append(checks, doctorCheck{Name: "Schema", Message: fmt.Sprintf("version %d, want %d", v, store.LatestSchemaVersion())})
	default:
		checks = append(checks, doctorCheck{Name: "Schema", Passed: true, Message: fmt.Sprintf("version %d", v)})
	}

	if counts, err := db.Counts(ctx); err != nil {
		checks = append(checks, doctorCheck{Name: "Data", Message: err.Error()})
	} else {
		checks = append(checks, doctorCheck{Name: "Data", Passed: true, Message: formatCounts(counts)})
	}

	checks = append(checks, checkRecurrences(ctx, db, cfg))
	return checks
}

// Bounds that select every stored event.
var (
	minTime = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	maxTime = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)

func checkRecurrences(ctx context.Context, db *store.DB, cfg *config.Config) doctorCheck {
	events, err := db.ListEvents(ctx, minTime, maxTime)
	if err != nil {
		return doctorCheck{Name: "Recurring events", Message: err.Error()}
	}
	wd, _ := cfg.Weekday()
	recurring := 0
	for _, ev := range events {
		if !ev.Recurrence.IsRecurring() {
			continue
		}
		recurring++
		if _, err := agenda.Expand(ev, cfg.Recurrence.HorizonMonths, wd); err != nil {
			return doctorCheck{Name: "Recurring events", Message: fmt.Sprintf("%q: %v", ev.Title, err)}
		}
	}
	return doctorCheck{Name: "Recurring events", Passed: true, Message: fmt.Sprintf("%d expand cleanly", recurring)}
}

func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %d", k, counts[k])
	}
	return strings.Join(parts, ", ")
}
