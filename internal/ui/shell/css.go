package shell

import (
	"strings"

	"github.com/panekit/panekit/internal/config"
)

// paletteCSSVars emits the palette as GTK CSS custom properties.
func paletteCSSVars(p config.ColorPalette) string {
	var sb strings.Builder
	sb.WriteString("  --bg: " + p.Background + ";\n")
	sb.WriteString("  --surface: " + p.Surface + ";\n")
	sb.WriteString("  --text: " + p.Text + ";\n")
	sb.WriteString("  --muted: " + p.Muted + ";\n")
	sb.WriteString("  --accent: " + p.Accent + ";\n")
	sb.WriteString("  --border: " + p.Border + ";\n")
	sb.WriteString("  --error: " + p.Error + ";\n")
	sb.WriteString("  --warning: " + p.Warning + ";\n")
	sb.WriteString("  --success: " + p.Success + ";\n")
	return sb.String()
}

// generateCSS creates the GTK4 stylesheet for the shell from the palette.
func generateCSS(p config.ColorPalette) string {
	var sb strings.Builder

	sb.WriteString("/* Theme variables */\n")
	sb.WriteString(":root {\n")
	sb.WriteString(paletteCSSVars(p))
	sb.WriteString("}\n\n")

	sb.WriteString(generateSurfaceCSS())
	sb.WriteString("\n")
	sb.WriteString(generatePanelCSS())

	return sb.String()
}

// generateSurfaceCSS styles the main surface behind the panels.
func generateSurfaceCSS() string {
	return `/* Main surface styling */
window {
	background-color: var(--bg);
	color: var(--text);
}

.surface-title {
	font-size: 1.25em;
	font-weight: bold;
	color: var(--text);
}

.surface-status {
	color: var(--muted);
	font-style: italic;
}

.surface-hint {
	color: var(--muted);
	font-size: 0.85em;
}

.surface-btn-row button {
	background-color: var(--surface);
	color: var(--text);
	border: 0.0625em solid var(--border);
	border-radius: 0.375em;
	padding: 0.25em 0.75em;
}

.surface-btn-row button:hover {
	border-color: var(--accent);
}
`
}

// generatePanelCSS styles the floating panels.
func generatePanelCSS() string {
	return `/* Floating panel styling */
.panel-container {
	background-color: var(--surface);
	color: var(--text);
	border: 0.0625em solid var(--border);
	border-radius: 0.5em;
	padding: 1em;
	box-shadow: 0 0.25em 1em rgba(0, 0, 0, 0.35);
}

.panel-heading {
	font-weight: bold;
	font-size: 1.1em;
	color: var(--text);
}

.panel-body {
	color: var(--muted);
}

.panel-btn-row {
	margin-top: 0.5em;
}

button.panel-btn {
	background-color: var(--bg);
	color: var(--text);
	border: 0.0625em solid var(--border);
	border-radius: 0.375em;
	padding: 0.25em 0.75em;
}

button.panel-btn:hover {
	border-color: var(--accent);
}

button.panel-btn-primary {
	background-color: var(--accent);
	color: var(--bg);
	border-color: var(--accent);
}

button.panel-btn-destructive {
	color: var(--error);
	border-color: var(--error);
}

.panel-dialog {
	border-color: var(--warning);
	border-width: 0.125em;
}
`
}
