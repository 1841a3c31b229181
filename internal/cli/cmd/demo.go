package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/panekit/panekit/internal/cli/model"
	"github.com/panekit/panekit/internal/logging"
	"github.com/panekit/panekit/internal/ui/registry"
)

var demoEventLogSize int

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Drive a live window registry in the terminal",
	Long: `Run the interactive registry demo.

Four floating panels compete for one fake surface: a chat bubble, a
settings pane, a dropdown menu and a modal dialog. Keyboard input stands
in for pointer presses, so stacking, outside-press dismissal and focus
handoff can be watched live in the event pane.

When the journal is enabled, every transition is also persisted and can be
browsed later with 'panekit journal'.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().IntVar(&demoEventLogSize, "events", 0, "event pane history size (0 uses the default)")
}

func runDemo(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	policy := app.RegistryPolicy()

	var observers []registry.Observer
	if app.Config.Journal.Enabled {
		j, err := app.OpenJournal()
		if err != nil {
			// The demo works without persistence.
			logging.FromContext(app.Ctx()).Warn().Err(err).Msg("journal unavailable, demo events will not be persisted")
		} else {
			observers = append(observers, j)
		}
	}

	m := model.NewDemoModel(app.Ctx(), app.Theme, model.DemoModelConfig{
		Policy:       &policy,
		Observers:    observers,
		EventLogSize: demoEventLogSize,
	})
	defer func() { _ = m.Close() }()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
