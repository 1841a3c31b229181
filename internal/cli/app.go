// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/panekit/panekit/internal/build"
	"github.com/panekit/panekit/internal/cli/styles"
	"github.com/panekit/panekit/internal/config"
	"github.com/panekit/panekit/internal/journal"
	"github.com/panekit/panekit/internal/logging"
	"github.com/panekit/panekit/internal/ui/registry"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	// Journal opens lazily: most commands never touch the database.
	journal *journal.Journal

	// Context with logger
	ctx context.Context
}

// NewApp creates a new CLI application with all dependencies.
func NewApp() (*App, error) {
	cfg := loadConfig()

	// Create theme from config
	theme := styles.NewTheme(cfg)

	logLevel := cfg.Logging.Level
	if envLevel := os.Getenv("PANEKIT_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}

	logger := logging.NewFromConfigValues(logLevel, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)

	return &App{
		Config: cfg,
		Theme:  theme,
		ctx:    ctx,
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// RegistryPolicy maps the registry section of the config onto a policy.
func (a *App) RegistryPolicy() registry.Policy {
	return registry.Policy{
		ModalExclusive:        a.Config.Registry.ModalExclusive,
		FocusFollowsDismissal: a.Config.Registry.FocusFollowsDismissal,
		WarnUnknownIDs:        a.Config.Registry.WarnUnknownIDs,
	}
}

// OpenJournal opens the window-event journal, reusing an already-open
// handle. Fails when the journal is disabled in config.
func (a *App) OpenJournal() (*journal.Journal, error) {
	if a.journal != nil {
		return a.journal, nil
	}
	if !a.Config.Journal.Enabled {
		return nil, fmt.Errorf("journal is disabled in config")
	}

	j, err := journal.Open(a.ctx, journal.Options{Path: a.Config.Journal.Path})
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	a.journal = j
	return j, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.journal != nil {
		return a.journal.Close()
	}
	return nil
}

// loadConfig loads configuration from standard locations.
func loadConfig() *config.Config {
	if err := config.Init(); err != nil {
		// Fall back to defaults so the CLI stays usable without a config dir.
		return config.DefaultConfig()
	}
	return config.Get()
}
