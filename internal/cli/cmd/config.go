package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/panekit/panekit/internal/cli/styles"
	"github.com/panekit/panekit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View the effective configuration and manage the config file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Display the config file path and the settings currently in effect.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Create the config file with default settings.

An existing config file is never overwritten.`,
	RunE: runConfigInit,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Write the JSON schema for the config file",
	Long:  `Generate a JSON schema next to the config file, for editor completion.`,
	RunE:  runConfigSchema,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSchemaCmd)
	configCmd.AddCommand(configPathCmd)
}

// runConfigShow shows the config file path and the effective settings.
func runConfigShow(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewConfigRenderer(app.Theme)

	configFile, err := config.GetConfigFile()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}

	fmt.Print(renderer.RenderConfigInfo(configFile))
	fmt.Println(renderer.RenderSummary(app.Config))

	return nil
}

// runConfigInit writes a default config file unless one already exists.
func runConfigInit(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewConfigRenderer(app.Theme)

	configFile, err := config.GetConfigFile()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}

	if _, statErr := os.Stat(configFile); statErr == nil {
		fmt.Println(renderer.RenderExists(configFile))
		return nil
	}

	// Loading through a fresh manager creates the default file on first run.
	mgr, err := config.NewManager()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	if err := mgr.Load(); err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}

	fmt.Println(renderer.RenderCreated(configFile))
	return nil
}

// runConfigSchema generates the JSON schema for editor completion.
func runConfigSchema(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewConfigRenderer(app.Theme)

	if err := config.GenerateSchemaFile(); err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}

	schemaFile, err := config.SchemaFile()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}

	fmt.Println(renderer.RenderSchema(schemaFile))
	return nil
}

// runConfigPath prints the config file path, for scripting.
func runConfigPath(_ *cobra.Command, _ []string) error {
	configFile, err := config.GetConfigFile()
	if err != nil {
		return err
	}
	fmt.Println(configFile)
	return nil
}
