package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, saving, and live reload.
type Manager struct {
	mu             sync.RWMutex
	viper          *viper.Viper
	config         *Config
	configFile     string
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
}

// NewManager creates a configuration manager bound to the XDG config
// directory. It does not touch the filesystem until Load is called.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("PANEKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicit bindings so the common knobs work even without a config file.
	for _, key := range []string{"logging.level", "logging.format", "journal.enabled", "journal.path"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	return &Manager{
		viper:      v,
		configFile: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads the configuration from disk, creating a default config file on
// first run.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := fillJournalPath(config); err != nil {
		return err
	}

	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

// readConfigFile reads the config file, creating it from defaults when it
// does not exist yet.
func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := m.createDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create default config: %w", err)
	}

	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read created config file: %w", err)
	}
	return nil
}

// createDefaultConfig writes the default configuration and its JSON schema to
// the config directory.
func (m *Manager) createDefaultConfig() error {
	configDir := filepath.Dir(m.configFile)
	if err := os.MkdirAll(configDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := m.viper.SafeWriteConfigAs(m.configFile); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}

	// The schema is a convenience for editors; a failure here must not block
	// startup.
	if err := GenerateSchemaFile(); err != nil {
		fmt.Fprintf(os.Stderr, "panekit: failed to write config schema: %v\n", err)
	}

	return nil
}

// fillJournalPath resolves the journal path when the config leaves it empty.
func fillJournalPath(config *Config) error {
	if config.Journal.Path != "" {
		return nil
	}
	journalPath, err := GetJournalFile()
	if err != nil {
		return fmt.Errorf("failed to get journal path: %w", err)
	}
	config.Journal.Path = journalPath
	return nil
}

// setDefaults configures default values in Viper.
func (m *Manager) setDefaults() {
	m.setLoggingDefaults()
	m.setRegistryDefaults()
	m.setJournalDefaults()
	m.setAppearanceDefaults()
}

func (m *Manager) setLoggingDefaults() {
	m.viper.SetDefault("logging.level", defaultLogLevel)
	m.viper.SetDefault("logging.format", defaultLogFormat)
}

func (m *Manager) setRegistryDefaults() {
	m.viper.SetDefault("registry.modal_exclusive", defaultModalExclusive)
	m.viper.SetDefault("registry.focus_follows_dismissal", defaultFocusFollowsDismissal)
	m.viper.SetDefault("registry.warn_unknown_ids", defaultWarnUnknownIDs)
}

func (m *Manager) setJournalDefaults() {
	m.viper.SetDefault("journal.enabled", defaultJournalEnabled)
	m.viper.SetDefault("journal.path", "")
	m.viper.SetDefault("journal.recent_limit", defaultJournalRecentLimit)
}

func (m *Manager) setAppearanceDefaults() {
	defaults := DefaultConfig()
	m.viper.SetDefault("appearance.color_scheme", string(defaults.Appearance.ColorScheme))
	m.setPaletteDefaults("appearance.light_palette", defaults.Appearance.LightPalette)
	m.setPaletteDefaults("appearance.dark_palette", defaults.Appearance.DarkPalette)
}

func (m *Manager) setPaletteDefaults(prefix string, p ColorPalette) {
	m.viper.SetDefault(prefix+".background", p.Background)
	m.viper.SetDefault(prefix+".surface", p.Surface)
	m.viper.SetDefault(prefix+".text", p.Text)
	m.viper.SetDefault(prefix+".muted", p.Muted)
	m.viper.SetDefault(prefix+".accent", p.Accent)
	m.viper.SetDefault(prefix+".border", p.Border)
	m.viper.SetDefault(prefix+".error", p.Error)
	m.viper.SetDefault(prefix+".warning", p.Warning)
	m.viper.SetDefault(prefix+".success", p.Success)
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// ConfigFile returns the path of the configuration file the manager reads.
func (m *Manager) ConfigFile() string {
	return m.configFile
}

// Save validates the configuration and writes it to disk with deterministic
// section ordering.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	normalizeConfig(cfg)
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := WriteConfigOrdered(cfg, m.configFile); err != nil {
		return err
	}

	// The write above triggers fsnotify. The in-memory config is already
	// correct, so the watcher only needs to resync viper's cache.
	if m.watching {
		m.skipNextReload = true
	}

	configCopy := *cfg
	m.config = &configCopy
	return nil
}

// Global configuration manager instance.
var (
	globalManager *Manager
	initOnce      sync.Once
)

// Init initializes the global configuration manager. Call once at startup.
func Init() error {
	var initErr error
	initOnce.Do(func() {
		manager, err := NewManager()
		if err != nil {
			initErr = err
			return
		}
		if err := manager.Load(); err != nil {
			initErr = err
			return
		}
		globalManager = manager
	})
	if initErr != nil {
		return initErr
	}
	if globalManager == nil {
		return fmt.Errorf("configuration not initialized")
	}
	return nil
}

// Get returns the global configuration. Falls back to defaults when Init was
// never called.
func Get() *Config {
	if globalManager == nil {
		return DefaultConfig()
	}
	return globalManager.Get()
}

// GetManager returns the global configuration manager, or nil before Init.
func GetManager() *Manager {
	return globalManager
}
