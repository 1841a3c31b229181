// Package config provides configuration management for panekit with Viper integration.
package config

// File permission constants
const (
	dirPerm  = 0755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0644 // Standard file permissions (rw-r--r--)
)

// Config represents the complete configuration for panekit.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging" toml:"logging"`
	Registry   RegistryConfig   `mapstructure:"registry" yaml:"registry" toml:"registry"`
	Journal    JournalConfig    `mapstructure:"journal" yaml:"journal" toml:"journal"`
	Appearance AppearanceConfig `mapstructure:"appearance" yaml:"appearance" toml:"appearance"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level"`
	Format string `mapstructure:"format" yaml:"format" toml:"format"` // text or json
}

// RegistryConfig holds window-registry behavior configuration.
type RegistryConfig struct {
	// ModalExclusive deactivates other modal surfaces when a modal activates.
	ModalExclusive bool `mapstructure:"modal_exclusive" yaml:"modal_exclusive" toml:"modal_exclusive"`
	// FocusFollowsDismissal hands focus to the best remaining surface when the
	// focus owner unregisters or deactivates.
	FocusFollowsDismissal bool `mapstructure:"focus_follows_dismissal" yaml:"focus_follows_dismissal" toml:"focus_follows_dismissal"`
	// WarnUnknownIDs raises no-op operations on unknown window ids from debug
	// to warn level.
	WarnUnknownIDs bool `mapstructure:"warn_unknown_ids" yaml:"warn_unknown_ids" toml:"warn_unknown_ids"`
}

// JournalConfig holds the sqlite event-journal configuration.
type JournalConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" toml:"enabled"`
	// Path defaults to the XDG state directory when empty.
	Path        string `mapstructure:"path" yaml:"path" toml:"path"`
	RecentLimit int    `mapstructure:"recent_limit" yaml:"recent_limit" toml:"recent_limit"`
}

// ColorScheme selects which palette the terminal UI and the GTK shell
// render with.
type ColorScheme string

const (
	ColorSchemeAuto  ColorScheme = "auto"
	ColorSchemeLight ColorScheme = "light"
	ColorSchemeDark  ColorScheme = "dark"
)

// ColorPalette defines the colors shared by the terminal UI and the GTK
// shell stylesheet.
type ColorPalette struct {
	Background string `mapstructure:"background" yaml:"background" toml:"background"`
	Surface    string `mapstructure:"surface" yaml:"surface" toml:"surface"`
	Text       string `mapstructure:"text" yaml:"text" toml:"text"`
	Muted      string `mapstructure:"muted" yaml:"muted" toml:"muted"`
	Accent     string `mapstructure:"accent" yaml:"accent" toml:"accent"`
	Border     string `mapstructure:"border" yaml:"border" toml:"border"`
	Error      string `mapstructure:"error" yaml:"error" toml:"error"`
	Warning    string `mapstructure:"warning" yaml:"warning" toml:"warning"`
	Success    string `mapstructure:"success" yaml:"success" toml:"success"`
}

// AppearanceConfig holds appearance configuration.
type AppearanceConfig struct {
	ColorScheme  ColorScheme  `mapstructure:"color_scheme" yaml:"color_scheme" toml:"color_scheme"`
	LightPalette ColorPalette `mapstructure:"light_palette" yaml:"light_palette" toml:"light_palette"`
	DarkPalette  ColorPalette `mapstructure:"dark_palette" yaml:"dark_palette" toml:"dark_palette"`
}
