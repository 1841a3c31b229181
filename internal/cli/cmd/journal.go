package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/panekit/panekit/internal/cli/model"
	"github.com/panekit/panekit/internal/cli/styles"
	"github.com/panekit/panekit/internal/journal"
)

const defaultJournalLimit = 50

var (
	journalJSON  bool
	journalLimit int
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Browse recorded window events",
	Long: `View the window-event journal.

Every registry transition (register, raise, dismiss, focus change) is
persisted while the demo or the GTK shell runs with the journal enabled.

Run without arguments to open the interactive browser.`,
	RunE: runJournal,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.PersistentFlags().IntVar(&journalLimit, "limit", defaultJournalLimit, "maximum events to show")
}

func runJournal(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	j, err := app.OpenJournal()
	if err != nil {
		return err
	}

	m := model.NewJournalModel(app.Ctx(), app.Theme, model.JournalModelConfig{
		Journal: j,
		Limit:   journalLimit,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// journal list
var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded window events",
	Long:  `List the most recent window events, newest first.`,
	RunE:  runJournalList,
}

func init() {
	journalCmd.AddCommand(journalListCmd)
	journalListCmd.Flags().BoolVar(&journalJSON, "json", false, "output as JSON")
}

func runJournalList(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	j, err := app.OpenJournal()
	if err != nil {
		return err
	}

	entries, err := j.Recent(app.Ctx(), journalLimit)
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}

	if journalJSON {
		return outputJournalJSON(entries)
	}

	return outputJournalTable(entries)
}

func outputJournalJSON(entries []journal.Entry) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func outputJournalTable(entries []journal.Entry) error {
	if len(entries) == 0 {
		fmt.Println("No window events recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SEQ\tEVENT\tWINDOW\tZ\tMODAL\tPRI\tWHEN\tDETAIL")

	for _, e := range entries {
		modal := ""
		if e.Modal {
			modal = "yes"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%d\t%s\t%s\n",
			e.ID,
			e.Type,
			e.WindowID,
			e.ZOrder,
			modal,
			e.Priority,
			styles.RelativeTime(e.Time),
			e.Detail,
		)
	}

	return w.Flush()
}

// journal clear
var journalClearYes bool

var journalClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded window events",
	Long: `Delete every event from the journal database.

Requires --yes; the interactive browser ('panekit journal') offers the
same action behind a confirmation dialog.`,
	RunE: runJournalClear,
}

func init() {
	journalCmd.AddCommand(journalClearCmd)
	journalClearCmd.Flags().BoolVar(&journalClearYes, "yes", false, "skip confirmation")
}

func runJournalClear(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if !journalClearYes {
		return fmt.Errorf("refusing to clear the journal without --yes")
	}

	j, err := app.OpenJournal()
	if err != nil {
		return err
	}

	removed, err := j.Clear(app.Ctx())
	if err != nil {
		return err
	}

	fmt.Printf("Cleared %d events.\n", removed)
	return nil
}

// journal path
var journalPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the journal database path",
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		fmt.Println(app.Config.Journal.Path)
		return nil
	},
}

func init() {
	journalCmd.AddCommand(journalPathCmd)
}
