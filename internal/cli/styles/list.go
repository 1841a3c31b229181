package styles

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	cursorEmpty    = "  "
	cursorSelected = "▸ " // ▸ Black right-pointing small triangle
)

// JournalItem represents a persisted window event for the list.
type JournalItem struct {
	Seq      int64
	Time     time.Time
	Type     string
	WindowID string
	ZOrder   int64
	Modal    bool
	Priority int
	Detail   string
}

// FilterValue implements list.Item.
func (i JournalItem) FilterValue() string {
	return i.Type + " " + i.WindowID + " " + i.Detail
}

// TitleValue returns the primary display line.
func (i JournalItem) TitleValue() string {
	if i.WindowID == "" {
		return "(no window)"
	}
	return i.WindowID
}

// JournalDelegate renders journal items with theme styling.
type JournalDelegate struct {
	Theme *Theme
}

// NewJournalDelegate creates a themed journal list delegate.
func NewJournalDelegate(theme *Theme) JournalDelegate {
	return JournalDelegate{Theme: theme}
}

// Height returns the height of each item.
func (d JournalDelegate) Height() int {
	if d.Theme == nil {
		return 2
	}
	return 2
}

// Spacing returns the spacing between items.
func (d JournalDelegate) Spacing() int {
	if d.Theme == nil {
		return 0
	}
	return 0
}

// Update handles item-level events.
func (d JournalDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	if d.Theme == nil {
		return nil
	}
	return nil
}

// eventStyle picks a foreground style for an event type.
func (d JournalDelegate) eventStyle(eventType string) lipgloss.Style {
	t := d.Theme
	switch eventType {
	case "registered", "activated":
		return t.SuccessStyle
	case "unregistered", "deactivated":
		return t.Subtle
	case "raised":
		return t.Highlight
	case "focus_changed":
		return t.Normal
	case "dismissed_outside":
		return t.WarningStyle
	default:
		return t.Normal
	}
}

// Render renders a single list item.
func (d JournalDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ji, ok := item.(JournalItem)
	if !ok {
		return
	}

	t := d.Theme
	isSelected := index == m.Index()
	const (
		maxDetailLength = 40
		ellipsisLength  = 3
	)

	idStyle := t.ListItemTitle
	if isSelected {
		idStyle = idStyle.Foreground(t.Accent).Bold(true)
	}

	cursor := cursorEmpty
	if isSelected {
		cursor = cursorSelected
	}

	// First line: cursor + event type + window id
	line1 := lipgloss.JoinHorizontal(
		lipgloss.Left,
		t.Highlight.Render(cursor),
		d.eventStyle(ji.Type).Render(fmt.Sprintf("%-17s", ji.Type)),
		" ",
		idStyle.Render(ji.TitleValue()),
	)

	// Second line: badges + detail
	badges := []string{t.ZOrderBadge(ji.ZOrder)}
	if ji.Modal {
		badges = append(badges, t.ModalBadge())
	}
	if b := t.PriorityBadge(ji.Priority); b != "" {
		badges = append(badges, b)
	}
	badges = append(badges, t.TimeBadge(ji.Time))

	detail := ji.Detail
	if len(detail) > maxDetailLength {
		detail = detail[:maxDetailLength-ellipsisLength] + "..."
	}

	parts := []string{strings.Repeat(" ", 3), strings.Join(badges, " ")}
	if detail != "" {
		parts = append(parts, " ", t.ListItemDesc.Render(detail))
	}
	line2 := lipgloss.JoinHorizontal(lipgloss.Left, parts...)

	_, _ = fmt.Fprintf(w, "%s\n%s", line1, line2)
}

// NewJournalList creates a themed list for journal items.
func NewJournalList(theme *Theme, items []JournalItem, width, height int) list.Model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	delegate := NewJournalDelegate(theme)

	l := list.New(listItems, delegate, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.SetShowPagination(true)

	l.Styles.PaginationStyle = lipgloss.NewStyle().Foreground(theme.Muted)
	l.Styles.ActivePaginationDot = lipgloss.NewStyle().Foreground(theme.Accent)
	l.Styles.InactivePaginationDot = lipgloss.NewStyle().Foreground(theme.Muted)

	return l
}
