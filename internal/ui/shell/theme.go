package shell

import (
	"os"
	"strings"

	"github.com/jwijenbergh/puregotk/v4/gtk"

	"github.com/panekit/panekit/internal/config"
)

// detectSystemDarkMode checks if the system prefers dark mode. It checks the
// GTK_THEME environment variable first, then the gtk-application-prefer-dark-theme
// setting. Returns true when detection fails.
func detectSystemDarkMode() bool {
	gtkTheme := os.Getenv("GTK_THEME")
	if gtkTheme != "" {
		if strings.Contains(strings.ToLower(gtkTheme), "dark") {
			return true
		}
		// GTK_THEME is set but not dark, assume light
		return false
	}

	settings := gtk.SettingsGetDefault()
	if settings != nil {
		return settings.GetPropertyGtkApplicationPreferDarkTheme()
	}

	return true
}

// resolvePalette picks the palette matching the configured color scheme,
// resolving "auto" against the system preference.
func resolvePalette(cfg *config.Config) config.ColorPalette {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	dark := true
	switch cfg.Appearance.ColorScheme {
	case config.ColorSchemeDark:
		dark = true
	case config.ColorSchemeLight:
		dark = false
	default:
		dark = detectSystemDarkMode()
	}

	p := cfg.Appearance.LightPalette
	if dark {
		p = cfg.Appearance.DarkPalette
	}
	if p == (config.ColorPalette{}) {
		def := config.DefaultConfig().Appearance
		if dark {
			return def.DarkPalette
		}
		return def.LightPalette
	}
	return p
}
