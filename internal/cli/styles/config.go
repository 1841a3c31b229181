package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/panekit/panekit/internal/config"
)

// ConfigRenderer renders config status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderConfigInfo renders the config file path line.
func (r *ConfigRenderer) RenderConfigInfo(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	pathStyle := r.theme.Subtle

	return fmt.Sprintf(
		"\n  %s Config %s\n",
		iconStyle.Render(IconConfig),
		pathStyle.Render(path),
	)
}

// RenderSummary renders the effective settings.
func (r *ConfigRenderer) RenderSummary(cfg *config.Config) string {
	keyStyle := r.theme.Subtle
	valStyle := r.theme.Highlight

	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}

	lines := []struct {
		key string
		val string
	}{
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
		{"registry.modal_exclusive", onOff(cfg.Registry.ModalExclusive)},
		{"registry.focus_follows_dismissal", onOff(cfg.Registry.FocusFollowsDismissal)},
		{"registry.warn_unknown_ids", onOff(cfg.Registry.WarnUnknownIDs)},
		{"journal.enabled", onOff(cfg.Journal.Enabled)},
		{"journal.path", cfg.Journal.Path},
		{"journal.recent_limit", fmt.Sprintf("%d", cfg.Journal.RecentLimit)},
		{"appearance.color_scheme", string(cfg.Appearance.ColorScheme)},
	}

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("    %s %s\n",
			keyStyle.Render(fmt.Sprintf("%-34s", l.key)),
			valStyle.Render(l.val),
		))
	}

	return sb.String()
}

// RenderCreated renders the message after a default config file was written.
func (r *ConfigRenderer) RenderCreated(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	pathStyle := r.theme.Subtle

	return fmt.Sprintf(
		"\n  %s Wrote default config to %s\n",
		iconStyle.Render(IconCheck),
		pathStyle.Render(path),
	)
}

// RenderExists renders the "config already present" message.
func (r *ConfigRenderer) RenderExists(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	pathStyle := r.theme.Subtle

	return fmt.Sprintf(
		"\n  %s Config already exists at %s\n",
		iconStyle.Render(IconInfo),
		pathStyle.Render(path),
	)
}

// RenderSchema renders the schema file location.
func (r *ConfigRenderer) RenderSchema(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	pathStyle := r.theme.Subtle

	return fmt.Sprintf(
		"\n  %s Wrote JSON schema to %s\n",
		iconStyle.Render(IconCheck),
		pathStyle.Render(path),
	)
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)

	return fmt.Sprintf(
		"\n  %s %v\n",
		iconStyle.Render(IconX),
		err,
	)
}
