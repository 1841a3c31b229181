package config

// Default configuration constants
const (
	// Logging defaults
	defaultLogLevel  = "info"
	defaultLogFormat = "text" // text or json

	// Registry defaults
	defaultModalExclusive        = true
	defaultFocusFollowsDismissal = true
	defaultWarnUnknownIDs        = false

	// Journal defaults
	defaultJournalEnabled     = true
	defaultJournalRecentLimit = 50 // events
)

// DefaultConfig returns the default configuration values for panekit.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Registry: RegistryConfig{
			ModalExclusive:        defaultModalExclusive,
			FocusFollowsDismissal: defaultFocusFollowsDismissal,
			WarnUnknownIDs:        defaultWarnUnknownIDs,
		},
		Journal: JournalConfig{
			Enabled: defaultJournalEnabled,
			// Path is set dynamically in config.Load()
			RecentLimit: defaultJournalRecentLimit,
		},
		Appearance: AppearanceConfig{
			ColorScheme: ColorSchemeAuto,
			LightPalette: ColorPalette{
				Background: "#fafafa",
				Surface:    "#ffffff",
				Text:       "#1a1a1a",
				Muted:      "#6b6b6b",
				Accent:     "#4a90e2",
				Border:     "#d0d0d0",
				Error:      "#c0392b",
				Warning:    "#b8860b",
				Success:    "#1e8449",
			},
			DarkPalette: ColorPalette{
				Background: "#101014",
				Surface:    "#1a1a22",
				Text:       "#e8e8e8",
				Muted:      "#8a8a94",
				Accent:     "#4a90e2",
				Border:     "#33333d",
				Error:      "#e06c75",
				Warning:    "#e5c07b",
				Success:    "#98c379",
			},
		},
	}
}
