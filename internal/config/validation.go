package config

import (
	"fmt"
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateAppearance(config)...)

	// If there are validation errors, return them
	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level %q must be one of trace, debug, info, warn, error", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "text", "json":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format %q must be text or json", config.Logging.Format))
	}
	return validationErrors
}

func validateAppearance(config *Config) []string {
	var validationErrors []string
	switch config.Appearance.ColorScheme {
	case ColorSchemeAuto, ColorSchemeLight, ColorSchemeDark:
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("appearance.color_scheme %q must be auto, light or dark", config.Appearance.ColorScheme))
	}
	validationErrors = append(validationErrors, validatePaletteHex("appearance.light_palette", config.Appearance.LightPalette)...)
	validationErrors = append(validationErrors, validatePaletteHex("appearance.dark_palette", config.Appearance.DarkPalette)...)
	return validationErrors
}

func validatePaletteHex(section string, palette ColorPalette) []string {
	colors := []struct {
		name  string
		value string
	}{
		{"background", palette.Background},
		{"surface", palette.Surface},
		{"text", palette.Text},
		{"muted", palette.Muted},
		{"accent", palette.Accent},
		{"border", palette.Border},
		{"error", palette.Error},
		{"warning", palette.Warning},
		{"success", palette.Success},
	}

	var validationErrors []string
	for _, color := range colors {
		if !hexColorPattern.MatchString(color.value) {
			validationErrors = append(validationErrors,
				fmt.Sprintf("%s.%s %q is not a hex color", section, color.name, color.value))
		}
	}
	return validationErrors
}

// normalizeConfig coerces near-valid values so hand-edited configs fail soft.
func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	switch config.Logging.Level {
	case "":
		config.Logging.Level = defaultLogLevel
	case "warning":
		config.Logging.Level = "warn"
	}

	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	switch config.Logging.Format {
	case "":
		config.Logging.Format = defaultLogFormat
	case "console":
		config.Logging.Format = "text"
	}

	config.Appearance.ColorScheme = ColorScheme(strings.ToLower(strings.TrimSpace(string(config.Appearance.ColorScheme))))
	if config.Appearance.ColorScheme == "" {
		config.Appearance.ColorScheme = ColorSchemeAuto
	}

	if config.Journal.RecentLimit <= 0 {
		config.Journal.RecentLimit = defaultJournalRecentLimit
	}
}
