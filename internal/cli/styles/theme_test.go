package styles_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/panekit/panekit/internal/cli/styles"
	"github.com/panekit/panekit/internal/config"
)

func TestNewThemeSelectsScheme(t *testing.T) {
	cfg := config.DefaultConfig()

	cfg.Appearance.ColorScheme = config.ColorSchemeDark
	dark := styles.NewTheme(cfg)
	require.Equal(t, cfg.Appearance.DarkPalette.Background, string(dark.Background))

	cfg.Appearance.ColorScheme = config.ColorSchemeLight
	light := styles.NewTheme(cfg)
	require.Equal(t, cfg.Appearance.LightPalette.Background, string(light.Background))
}

func TestNewThemeNilConfigFallsBack(t *testing.T) {
	theme := styles.NewTheme(nil)
	require.NotEmpty(t, string(theme.Background))
	require.NotEmpty(t, string(theme.Accent))
}

func TestBadges(t *testing.T) {
	theme := styles.NewTheme(config.DefaultConfig())

	require.Contains(t, theme.ZOrderBadge(7), "z7")
	require.Contains(t, theme.ModalBadge(), "modal")
	require.Contains(t, theme.PriorityBadge(5), "p+5")
	require.Contains(t, theme.PriorityBadge(-2), "p-2")
	require.Empty(t, theme.PriorityBadge(0))
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()

	require.Equal(t, "just now", styles.RelativeTime(now.Add(-10*time.Second)))
	require.Equal(t, "5m ago", styles.RelativeTime(now.Add(-5*time.Minute)))
	require.Equal(t, "1h ago", styles.RelativeTime(now.Add(-90*time.Minute)))
	require.Equal(t, "2d ago", styles.RelativeTime(now.Add(-48*time.Hour)))
}
