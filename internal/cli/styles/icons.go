// Package styles provides reusable lipgloss-based TUI components.
package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "\uf02b" //  tag
	IconGitBranch = "\ue725" //  git branch
	IconCalendar  = "\uf073" //  calendar
	IconGithub    = "\uf09b" //  github
	IconHeart     = "\uf004" //  heart
	IconGo        = "\ue627" //  go gopher

	// Diagnostics
	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconInfo    = "\uf05a" // info

	// Filesystem
	IconFolder   = "\uf07b" // folder
	IconConfig   = "\ue615" // config
	IconDatabase = "\uf1c0" // database

	// UI
	IconCursor = "\uf054" // chevron-right
	IconPanel  = "\uf2d2" // window
	IconStack  = "\uf24d" // clone/stack
	IconFocus  = "\uf05b" // crosshairs
	IconClock  = "\uf017" // clock
	IconEvent  = "\uf0f6" // file-text
)
