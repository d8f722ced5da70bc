package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/mindcoach/internal/coach"
	"github.com/blackwell-systems/mindcoach/internal/output"
	"github.com/blackwell-systems/mindcoach/internal/store"
)

var journalLimit int

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Write entries and get prompts",
}

var journalAddCmd = &cobra.Command{
	Use:     "add <text>...",
	Short:   "Write a journal entry",
	Example: `  mindcoach journal add "Nervous about Saturday. My goal is to stay calm at the start."`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runJournalAdd,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent entries with their tags",
	RunE:  runJournalList,
}

var journalPromptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Suggest prompts for today",
	RunE:  runJournalPrompts,
}

func init() {
	journalListCmd.Flags().IntVar(&journalLimit, "limit", 10, "Number of entries")
	journalCmd.AddCommand(journalAddCmd, journalListCmd, journalPromptsCmd)
	rootCmd.AddCommand(journalCmd)
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	body := strings.TrimSpace(strings.Join(args, " "))
	if body == "" {
		return fmt.Errorf("entry is empty")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	e := store.JournalEntry{WrittenAt: s.now, Body: body, Signals: coach.ExtractSignals(body)}
	if err := s.db.InsertJournalEntry(cmd.Context(), &e); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, e)
	}
	fmt.Fprintf(out, " %s %s\n", output.StyleSuccess.Render("Saved"), signalsText(e.Signals))
	return nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	entries, err := s.db.ListJournalEntries(cmd.Context(), max(journalLimit, 1))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		if entries == nil {
			entries = []store.JournalEntry{}
		}
		return writeJSON(out, entries)
	}

	fmt.Fprintln(out, output.Section("Journal"))
	if len(entries) == 0 {
		fmt.Fprintln(out, output.StyleMuted.Render(" No entries yet."))
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(out, " %s  %s\n", output.StyleBold.Render(e.WrittenAt.In(s.loc).Format("Mon 02 Jan 15:04")), output.StyleMuted.Render(signalsText(e.Signals)))
		fmt.Fprintf(out, "   %s\n", e.Body)
	}
	return nil
}

func runJournalPrompts(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	snap, err := s.loadSnapshot(cmd.Context(), false)
	if err != nil {
		return err
	}
	prompts := coach.SuggestPrompts(&snap.coach)

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, prompts)
	}
	fmt.Fprintln(out, output.Section("Prompts for today"))
	for i, p := range prompts {
		fmt.Fprintf(out, " %d. %s\n", i+1, p)
	}
	return nil
}

func signalsText(sig coach.Signals) string {
	parts := []string{fmt.Sprintf("sentiment %+d", sig.Sentiment)}
	if len(sig.Tags) > 0 {
		parts = append(parts, "tags "+strings.Join(sig.Tags, ","))
	}
	if sig.Intent != nil {
		parts = append(parts, "goal: "+sig.Intent.Goal)
	}
	return strings.Join(parts, " · ")
}
