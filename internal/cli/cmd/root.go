// Package cmd provides Cobra CLI commands for panekit.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/panekit/panekit/internal/build"
	"github.com/panekit/panekit/internal/cli"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "panekit",
		Short: "A window registry for floating panels",
		Long: `Panekit - stacking, focus and dismissal for floating panels.

Panekit coordinates floating panels layered over a main surface: chat
bubbles, settings panes, dropdown menus and modal dialogs. Panels register
once and the registry keeps their stacking order, dismisses them on outside
presses, and hands focus to the right survivor when one goes away.

Features:
  - Strictly monotonic stacking order, modals always on top
  - One pointer listener regardless of panel count
  - Outside-press dismissal with fail-safe handling of detached widgets
  - Priority-based focus handoff when panels close
  - Event journal backed by sqlite
  - GTK4 surface shell and a terminal simulator

Use 'panekit demo' to drive a live registry in the terminal, or explore
the subcommands for journal browsing and configuration.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			// Set build info from main.go
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// shellCmd is a placeholder for help - actual execution is in main.go
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Launch the GTK surface shell",
	Long: `Launch the GTK4 demonstration shell.

The shell opens a window with a main surface and a set of floating panels
wired into the registry: pointer presses and the Escape key behave exactly
as in the terminal demo, but on real widgets.`,
	Run: func(_ *cobra.Command, _ []string) {
		// This is handled by main.go before cobra runs
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
