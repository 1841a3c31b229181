// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/panekit/panekit/internal/cli/styles"
	"github.com/panekit/panekit/internal/logging"
	"github.com/panekit/panekit/internal/ui/component"
	"github.com/panekit/panekit/internal/ui/input"
	"github.com/panekit/panekit/internal/ui/registry"
	"github.com/panekit/panekit/internal/ui/scene/scenetest"
)

const defaultEventLogSize = 64

// demoPanel is one selectable row in the demo: a floating panel plus the
// fake scene node backing it.
type demoPanel struct {
	label string
	panel *component.Panel
	node  *scenetest.Node
	modal bool
}

// eventRecorder mirrors registry events into the ring buffer shown in the
// event pane.
type eventRecorder struct {
	log *RingBuffer[registry.Event]
}

func (r eventRecorder) WindowEvent(ev registry.Event) {
	r.log.Add(ev)
}

// DemoModelConfig holds configuration for the demo model.
type DemoModelConfig struct {
	// Policy overrides the registry defaults when non-nil.
	Policy *registry.Policy

	// Observers receive registry events in addition to the event pane,
	// e.g. the journal.
	Observers []registry.Observer

	// EventLogSize caps the event pane history.
	EventLogSize int
}

// DemoModel is the Bubble Tea model for the interactive registry demo. It
// drives a live registry over a fake scene: panels register, raise, dismiss
// on outside presses, and hand off focus exactly as they would under a real
// toolkit.
type DemoModel struct {
	// UI components
	help help.Model
	keys styles.DemoKeyMap

	// State
	selectedIdx   int
	width         int
	height        int
	statusMessage string

	// Scene under demonstration
	tree        *scenetest.Tree
	reg         *registry.Registry
	router      *input.DismissRouter
	panels      []*demoPanel
	events      *RingBuffer[registry.Event]
	outsideHits *atomic.Int64

	// Dependencies
	ctx   context.Context
	theme *styles.Theme
}

// NewDemoModel creates a demo model with a fresh registry and scene.
func NewDemoModel(ctx context.Context, theme *styles.Theme, cfg DemoModelConfig) DemoModel {
	logSize := cfg.EventLogSize
	if logSize <= 0 {
		logSize = defaultEventLogSize
	}

	tree := scenetest.NewTree()
	events := NewRingBuffer[registry.Event](logSize)
	outsideHits := &atomic.Int64{}

	observers := append([]registry.Observer{eventRecorder{log: events}}, cfg.Observers...)

	reg := registry.New(ctx, registry.Options{
		Pointer:   tree,
		Policy:    cfg.Policy,
		Observers: observers,
		GlobalOutsideHandler: func() {
			outsideHits.Add(1)
		},
	})

	m := DemoModel{
		help:        styles.NewStyledHelp(theme),
		keys:        styles.DefaultDemoKeyMap(),
		tree:        tree,
		reg:         reg,
		router:      input.NewDismissRouter(ctx, reg),
		events:      events,
		outsideHits: outsideHits,
		width:       100,
		height:      30,
		ctx:         ctx,
		theme:       theme,
	}
	m.panels = m.buildPanels()

	// The dialog mounts lazily: modal surfaces activate on registration,
	// and the demo should start with the main surface on top.
	for _, p := range m.panels {
		if !p.modal {
			p.panel.Mount(p.node)
		}
	}

	return m
}

// buildPanels assembles the demo cast: three dismissable panels and one
// modal dialog competing for the same surface.
func (m DemoModel) buildPanels() []*demoPanel {
	mk := func(label string, opts component.PanelOptions) *demoPanel {
		node := m.tree.NewNode(label, nil)
		return &demoPanel{
			label: label,
			panel: component.NewPanel(m.reg, opts),
			node:  node,
			modal: opts.Modal,
		}
	}

	return []*demoPanel{
		mk("chat", component.PanelOptions{
			ID:                  "chat",
			CloseOnClickOutside: true,
		}),
		mk("settings", component.PanelOptions{
			ID:                  "settings",
			CloseOnClickOutside: true,
			Priority:            5,
		}),
		mk("menu", component.PanelOptions{
			ID:                  "menu",
			CloseOnClickOutside: true,
		}),
		mk("dialog", component.PanelOptions{
			ID:                  "dialog",
			CloseOnClickOutside: true,
			Modal:               true,
			Priority:            10,
		}),
	}
}

// Init implements tea.Model.
func (m DemoModel) Init() tea.Cmd {
	return nil
}

// Close tears down the registry. Call after the program exits.
func (m DemoModel) Close() error {
	return m.reg.Close()
}

// Update implements tea.Model.
func (m DemoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m DemoModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	log := logging.FromContext(m.ctx)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selectedIdx < len(m.panels)-1 {
			m.selectedIdx++
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		p := m.panels[m.selectedIdx]
		if !p.panel.Mounted() {
			p.panel.Mount(p.node)
			m.statusMessage = fmt.Sprintf("mounted %s", p.label)
			return m, nil
		}
		if p.panel.Toggle() {
			m.statusMessage = fmt.Sprintf("showing %s", p.label)
		} else {
			m.statusMessage = fmt.Sprintf("hid %s", p.label)
		}
		return m, nil

	case key.Matches(msg, m.keys.Front):
		p := m.panels[m.selectedIdx]
		if !p.panel.IsVisible() {
			m.statusMessage = fmt.Sprintf("%s is hidden", p.label)
			return m, nil
		}
		m.reg.BringToFront(p.panel.ID())
		m.statusMessage = fmt.Sprintf("raised %s", p.label)
		return m, nil

	case key.Matches(msg, m.keys.Click):
		p := m.panels[m.selectedIdx]
		if !p.panel.IsVisible() {
			m.statusMessage = fmt.Sprintf("%s is hidden", p.label)
			return m, nil
		}
		log.Debug().Str("panel", p.label).Msg("demo click inside panel")
		m.tree.Click(p.node)
		m.statusMessage = fmt.Sprintf("clicked inside %s", p.label)
		return m, nil

	case key.Matches(msg, m.keys.Outside):
		log.Debug().Msg("demo click on main surface")
		m.tree.ClickBackground()
		m.statusMessage = "clicked the main surface"
		return m, nil

	case key.Matches(msg, m.keys.Modal):
		return m.summonDialog()

	case key.Matches(msg, m.keys.Escape):
		if m.router.HandleEscape() {
			m.statusMessage = "dismissed the topmost panel"
		} else {
			m.statusMessage = "nothing to dismiss"
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// summonDialog mounts the modal dialog on first use and re-shows it after.
func (m DemoModel) summonDialog() (tea.Model, tea.Cmd) {
	for _, p := range m.panels {
		if !p.modal {
			continue
		}
		if !p.panel.Mounted() {
			p.panel.Mount(p.node)
		} else {
			p.panel.Show()
		}
		m.statusMessage = fmt.Sprintf("opened %s", p.label)
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m DemoModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderPanelPane(),
		"  ",
		m.renderEventPane(),
	)
	b.WriteString(panes)
	b.WriteString("\n")

	if m.statusMessage != "" {
		b.WriteString(m.theme.Subtle.Render(m.statusMessage))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m DemoModel) renderHeader() string {
	t := m.theme

	iconStyle := lipgloss.NewStyle().Foreground(t.Accent)
	icon := iconStyle.Render(styles.IconStack)
	title := t.Title.MarginLeft(1).Render("Panekit demo")

	focus := "none"
	if id, ok := m.reg.FocusOwner(); ok {
		focus = string(id)
	}
	stats := t.Subtle.Render(fmt.Sprintf("  %s focus %s  %s %d outside",
		styles.IconFocus, focus,
		styles.IconCursor, m.outsideHits.Load(),
	))

	return icon + title + stats
}

// renderPanelPane lists the demo panels with their live registry state.
func (m DemoModel) renderPanelPane() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(t.Subtitle.Render("Panels"))
	b.WriteString("\n")

	focusOwner, _ := m.reg.FocusOwner()

	for i, p := range m.panels {
		b.WriteString(m.renderPanelRow(p, i == m.selectedIdx, focusOwner))
		b.WriteString("\n")
	}

	return b.String()
}

func (m DemoModel) renderPanelRow(p *demoPanel, isSelected bool, focusOwner registry.WindowID) string {
	t := m.theme

	cursor := "  "
	if isSelected {
		cursor = t.Highlight.Render(styles.IconCursor + " ")
	}

	labelStyle := t.Normal
	if isSelected {
		labelStyle = t.Highlight
	}

	win, registered := m.reg.Window(p.panel.ID())

	var state string
	switch {
	case !registered:
		state = t.Subtle.Render("unmounted")
	case win.Active:
		state = t.SuccessStyle.Render("visible")
	default:
		state = t.Subtle.Render("hidden")
	}

	badges := make([]string, 0, 3)
	if registered {
		badges = append(badges, t.ZOrderBadge(win.ZOrder))
		if win.Config.Modal {
			badges = append(badges, t.ModalBadge())
		}
		if b := t.PriorityBadge(win.Config.Priority); b != "" {
			badges = append(badges, b)
		}
	}

	focusMark := ""
	if registered && p.panel.ID() == focusOwner {
		focusMark = " " + t.Highlight.Render(styles.IconFocus)
	}

	return fmt.Sprintf("%s%-10s %-9s %s%s",
		cursor,
		labelStyle.Render(p.label),
		state,
		strings.Join(badges, " "),
		focusMark,
	)
}

// renderEventPane shows the most recent registry events, newest last.
func (m DemoModel) renderEventPane() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(t.Subtitle.Render("Events"))
	b.WriteString("\n")

	events := m.events.GetAll()

	maxRows := m.height - 12
	if maxRows < 4 {
		maxRows = 4
	}
	if len(events) > maxRows {
		events = events[len(events)-maxRows:]
	}

	if len(events) == 0 {
		b.WriteString(t.Subtle.Render("  none yet"))
		b.WriteString("\n")
		return b.String()
	}

	for _, ev := range events {
		b.WriteString(m.renderEventRow(ev))
		b.WriteString("\n")
	}

	return b.String()
}

func (m DemoModel) renderEventRow(ev registry.Event) string {
	t := m.theme

	var typeStyle lipgloss.Style
	switch ev.Type {
	case registry.EventRegistered, registry.EventActivated:
		typeStyle = t.SuccessStyle
	case registry.EventUnregistered, registry.EventDeactivated:
		typeStyle = t.Subtle
	case registry.EventRaised:
		typeStyle = t.Highlight
	case registry.EventDismissedOutside:
		typeStyle = t.WarningStyle
	default:
		typeStyle = t.Normal
	}

	id := string(ev.WindowID)
	if id == "" {
		id = "-"
	}

	row := fmt.Sprintf("  %s %s",
		typeStyle.Render(fmt.Sprintf("%-18s", string(ev.Type))),
		t.Normal.Render(id),
	)
	if ev.ZOrder > 0 {
		row += " " + t.Subtle.Render(fmt.Sprintf("z%d", ev.ZOrder))
	}
	if ev.Detail != "" {
		row += " " + t.Subtle.Render(ev.Detail)
	}
	return row
}
