// Package app contains the Cobra command tree for mindcoach.
package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "mindcoach",
	Short: "Daily planning and well-being analytics for athletes",
	Long: `mindcoach finds free time in your day, picks one actionable
well-being recommendation, tracks habit adherence, and scores
self-assessment questionnaires. All data stays in a local SQLite database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "mindcoach", appVersion)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Use a subcommand:")
		fmt.Fprintln(out, "  recommend  Pick one recommendation for today")
		fmt.Fprintln(out, "  slots      Show today's free time")
		fmt.Fprintln(out, "  event      Add, list, and delete calendar events")
		fmt.Fprintln(out, "  habit      Track habits, streaks, and weekly goals")
		fmt.Fprintln(out, "  mood       Log energy and stress")
		fmt.Fprintln(out, "  assess     Take and review questionnaires")
		fmt.Fprintln(out, "  journal    Write entries and get prompts")
		fmt.Fprintln(out, "  sleep      Plan tonight's sleep window")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setupLogging installs the default slog logger on stderr. Warnings only,
// unless --verbose.
func setupLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/mindcoach/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
