package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/panekit/panekit/internal/cli/styles"
	"github.com/panekit/panekit/internal/journal"
	"github.com/panekit/panekit/internal/logging"
)

// JournalModel is the Bubble Tea model for browsing persisted window events.
type JournalModel struct {
	// UI components
	list    list.Model
	help    help.Model
	keys    styles.JournalKeyMap
	confirm *styles.ConfirmModel

	// State
	total         int64
	width         int
	height        int
	loading       bool
	statusMessage string
	err           error

	// Dependencies
	ctx     context.Context
	journal *journal.Journal
	limit   int
	theme   *styles.Theme
}

// JournalModelConfig holds configuration for the journal browser.
type JournalModelConfig struct {
	Journal *journal.Journal
	Limit   int
}

// NewJournalModel creates a journal browser model.
func NewJournalModel(ctx context.Context, theme *styles.Theme, cfg JournalModelConfig) JournalModel {
	limit := cfg.Limit
	if limit <= 0 {
		limit = 50
	}

	const (
		initialWidth  = 80
		initialHeight = 24
	)

	return JournalModel{
		list:    styles.NewJournalList(theme, nil, initialWidth, initialHeight-6),
		help:    styles.NewStyledHelp(theme),
		keys:    styles.DefaultJournalKeyMap(),
		loading: true,
		width:   initialWidth,
		height:  initialHeight,
		ctx:     ctx,
		journal: cfg.Journal,
		limit:   limit,
		theme:   theme,
	}
}

// journalLoadedMsg is sent when entries are loaded.
type journalLoadedMsg struct {
	items []styles.JournalItem
	total int64
	err   error
}

// journalClearedMsg is sent when the journal was cleared.
type journalClearedMsg struct {
	removed int64
	err     error
}

// Init implements tea.Model.
func (m JournalModel) Init() tea.Cmd {
	return m.loadEntries
}

// loadEntries reads the most recent journal entries.
func (m JournalModel) loadEntries() tea.Msg {
	log := logging.FromContext(m.ctx)

	if m.journal == nil {
		return journalLoadedMsg{err: fmt.Errorf("journal not available")}
	}

	entries, err := m.journal.Recent(m.ctx, m.limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to load journal entries")
		return journalLoadedMsg{err: err}
	}

	total, err := m.journal.Count(m.ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count journal entries")
		return journalLoadedMsg{err: err}
	}

	items := make([]styles.JournalItem, len(entries))
	for i, e := range entries {
		items[i] = styles.JournalItem{
			Seq:      e.ID,
			Time:     e.Time,
			Type:     string(e.Type),
			WindowID: string(e.WindowID),
			ZOrder:   e.ZOrder,
			Modal:    e.Modal,
			Priority: e.Priority,
			Detail:   e.Detail,
		}
	}

	log.Debug().Int("count", len(items)).Msg("loaded journal entries")
	return journalLoadedMsg{items: items, total: total}
}

// clearEntries deletes every persisted event.
func (m JournalModel) clearEntries() tea.Msg {
	if m.journal == nil {
		return journalClearedMsg{err: fmt.Errorf("journal not available")}
	}
	removed, err := m.journal.Clear(m.ctx)
	return journalClearedMsg{removed: removed, err: err}
}

// Update implements tea.Model.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle confirm modal
	if m.confirm != nil {
		return m.handleConfirmModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.list.SetSize(msg.Width, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			m.statusMessage = ""
			return m, m.loadEntries
		case key.Matches(msg, m.keys.Clear):
			if m.journal != nil && m.total > 0 {
				confirm := styles.NewConfirm(m.theme, fmt.Sprintf("Delete all %d recorded events?", m.total))
				m.confirm = &confirm
			}
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case journalLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.total = msg.total
		items := make([]list.Item, len(msg.items))
		for i, item := range msg.items {
			items[i] = item
		}
		return m, m.list.SetItems(items)

	case journalClearedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMessage = fmt.Sprintf("Cleared %d events.", msg.removed)
		m.loading = true
		return m, m.loadEntries
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m JournalModel) handleConfirmModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	confirm, cmd := m.confirm.Update(msg)
	m.confirm = &confirm
	if m.confirm.Done() {
		if m.confirm.Result() {
			cmd = m.clearEntries
		}
		m.confirm = nil
		return m, cmd
	}
	return m, cmd
}

// View implements tea.Model.
func (m JournalModel) View() string {
	t := m.theme

	// Handle confirm modal
	if m.confirm != nil {
		return m.confirm.View()
	}

	if m.loading {
		return t.Box.Render(styles.NewLoading(t, "Loading events...").View())
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(t.ErrorStyle.Render(fmt.Sprintf("%s Error: %v", styles.IconX, m.err)))
		b.WriteString("\n\n")
	}

	if len(m.list.Items()) == 0 && m.err == nil {
		b.WriteString(t.Subtle.Render("  No window events recorded yet."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	if m.statusMessage != "" {
		b.WriteString(t.Highlight.Render("  " + m.statusMessage))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m JournalModel) renderHeader() string {
	t := m.theme

	iconStyle := lipgloss.NewStyle().Foreground(t.Accent)
	icon := iconStyle.Render(styles.IconEvent)
	title := t.Title.MarginLeft(1).Render("Window event journal")

	shown := len(m.list.Items())
	stats := t.Subtle.Render(fmt.Sprintf("  showing %d of %d", shown, m.total))

	return icon + title + stats
}
