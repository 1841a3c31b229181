package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/panekit/panekit/internal/build"
	"github.com/panekit/panekit/internal/cli/cmd"
	"github.com/panekit/panekit/internal/config"
	"github.com/panekit/panekit/internal/logging"
	"github.com/panekit/panekit/internal/ui/shell"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	// Run GUI mode for the shell command, before cobra parses anything
	if len(os.Args) > 1 && os.Args[1] == "shell" {
		os.Args = os.Args[:1]
		os.Exit(runShell())
		return
	}

	// Pass build info to CLI
	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})

	// Default: run CLI (shows help if no subcommand)
	cmd.Execute()
}

func runShell() int {
	runtime.LockOSThread()

	cfg := initConfig()
	ctx := initStartupContext(cfg)
	logging.InstallGLibLogHandler(*logging.FromContext(ctx))

	return shell.New(ctx, cfg).Run(os.Args)
}

func initConfig() *config.Config {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}
	return config.Get()
}

func initStartupContext(cfg *config.Config) context.Context {
	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info().
		Str("version", version).
		Str("commit", commit).
		Str("build_date", buildDate).
		Msg("starting panekit shell")
	return logging.WithContext(context.Background(), logger)
}
