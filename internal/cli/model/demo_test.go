package model

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/panekit/panekit/internal/cli/styles"
	"github.com/panekit/panekit/internal/config"
	"github.com/panekit/panekit/internal/logging"
	"github.com/panekit/panekit/internal/ui/registry"
)

func newDemoTestModel(t *testing.T) DemoModel {
	t.Helper()
	ctx := logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "text"))
	theme := styles.NewTheme(config.DefaultConfig())
	m := NewDemoModel(ctx, theme, DemoModelConfig{})
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func press(t *testing.T, m DemoModel, msg tea.KeyMsg) DemoModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(DemoModel)
	require.True(t, ok)
	return model
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDemoStartsWithPanelsMountedHidden(t *testing.T) {
	m := newDemoTestModel(t)

	for _, id := range []registry.WindowID{"chat", "settings", "menu"} {
		require.True(t, m.reg.IsRegistered(id))
		require.False(t, m.reg.IsActive(id))
	}
	require.False(t, m.reg.IsRegistered("dialog"), "dialog mounts lazily")

	_, ok := m.reg.FocusOwner()
	require.False(t, ok)
}

func TestDemoToggleShowsAndFocusesPanel(t *testing.T) {
	m := newDemoTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.True(t, m.reg.IsActive("chat"))
	owner, ok := m.reg.FocusOwner()
	require.True(t, ok)
	require.Equal(t, registry.WindowID("chat"), owner)

	// Toggling again hides it and releases focus.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.reg.IsActive("chat"))
	_, ok = m.reg.FocusOwner()
	require.False(t, ok)
}

func TestDemoOutsideClickDismissesOpenPanels(t *testing.T) {
	m := newDemoTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // show chat
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})  // select settings
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // show settings

	require.True(t, m.reg.IsActive("chat"))
	require.True(t, m.reg.IsActive("settings"))

	m = press(t, m, runeKey('b'))

	require.False(t, m.reg.IsActive("chat"))
	require.False(t, m.reg.IsActive("settings"))
	require.Equal(t, int64(1), m.outsideHits.Load())
	require.Equal(t, "clicked the main surface", m.statusMessage)
}

func TestDemoClickInsidePanelKeepsItOpen(t *testing.T) {
	m := newDemoTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // show chat
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // show settings
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})    // back to chat

	m = press(t, m, runeKey('c'))

	require.True(t, m.reg.IsActive("chat"), "clicked panel stays open")
	require.False(t, m.reg.IsActive("settings"), "press was outside settings")

	owner, ok := m.reg.FocusOwner()
	require.True(t, ok)
	require.Equal(t, registry.WindowID("chat"), owner)
}

func TestDemoDialogMountsLazilyAndTakesFocus(t *testing.T) {
	m := newDemoTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // show chat
	m = press(t, m, runeKey('m'))                   // summon dialog

	require.True(t, m.reg.IsRegistered("dialog"))
	require.True(t, m.reg.IsActive("dialog"))

	owner, ok := m.reg.FocusOwner()
	require.True(t, ok)
	require.Equal(t, registry.WindowID("dialog"), owner)

	win, found := m.reg.Window("dialog")
	require.True(t, found)
	chat, _ := m.reg.Window("chat")
	require.Greater(t, win.ZOrder, chat.ZOrder)
}

func TestDemoEscapeDismissesTopmost(t *testing.T) {
	m := newDemoTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // show chat
	m = press(t, m, runeKey('m'))                   // dialog on top

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	require.False(t, m.reg.IsActive("dialog"), "escape removes the dialog first")
	require.True(t, m.reg.IsActive("chat"))

	owner, ok := m.reg.FocusOwner()
	require.True(t, ok)
	require.Equal(t, registry.WindowID("chat"), owner)
	require.Equal(t, "dismissed the topmost panel", m.statusMessage)
}

func TestDemoEscapeWithNothingOpen(t *testing.T) {
	m := newDemoTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, "nothing to dismiss", m.statusMessage)
}

func TestDemoEventPaneRecordsTransitions(t *testing.T) {
	m := newDemoTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	events := m.events.GetAll()
	require.NotEmpty(t, events)

	var sawRegistered, sawActivated bool
	for _, ev := range events {
		switch ev.Type {
		case registry.EventRegistered:
			sawRegistered = true
		case registry.EventActivated:
			sawActivated = true
		}
	}
	require.True(t, sawRegistered)
	require.True(t, sawActivated)

	view := m.View()
	require.Contains(t, view, "chat")
	require.Contains(t, view, "activated")
}

func TestDemoViewShowsPanelStates(t *testing.T) {
	m := newDemoTestModel(t)

	view := m.View()
	require.Contains(t, view, "Panels")
	require.Contains(t, view, "unmounted", "lazy dialog shows as unmounted")
	require.Contains(t, view, "hidden")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	view = m.View()
	require.Contains(t, view, "visible")
}

func TestDemoQuit(t *testing.T) {
	m := newDemoTestModel(t)

	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestRingBufferWrapsAround(t *testing.T) {
	rb := NewRingBuffer[int](3)
	for i := 1; i <= 5; i++ {
		rb.Add(i)
	}

	require.Equal(t, 3, rb.Len())
	require.Equal(t, []int{3, 4, 5}, rb.GetAll())
}

func TestRingBufferEmpty(t *testing.T) {
	rb := NewRingBuffer[string](4)
	require.Zero(t, rb.Len())
	require.Nil(t, rb.GetAll())
}
