package styles_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/panekit/panekit/internal/cli/styles"
	"github.com/panekit/panekit/internal/config"
)

func TestConfigRendererRenderConfigInfo(t *testing.T) {
	theme := styles.NewTheme(config.DefaultConfig())
	r := styles.NewConfigRenderer(theme)

	out := r.RenderConfigInfo("/tmp/panekit/config.toml")
	require.Contains(t, out, "Config")
	require.Contains(t, out, "config.toml")
}

func TestConfigRendererRenderSummary(t *testing.T) {
	theme := styles.NewTheme(config.DefaultConfig())
	r := styles.NewConfigRenderer(theme)

	cfg := config.DefaultConfig()
	cfg.Logging.Level = "debug"
	cfg.Registry.ModalExclusive = true
	cfg.Registry.WarnUnknownIDs = false

	out := r.RenderSummary(cfg)
	require.Contains(t, out, "logging.level")
	require.Contains(t, out, "debug")
	require.Contains(t, out, "registry.modal_exclusive")
	require.Contains(t, out, "journal.enabled")
	require.Contains(t, out, "appearance.color_scheme")
}

func TestConfigRendererRenderError(t *testing.T) {
	theme := styles.NewTheme(config.DefaultConfig())
	r := styles.NewConfigRenderer(theme)

	out := r.RenderError(errors.New("no such file"))
	require.Contains(t, out, "no such file")
}
