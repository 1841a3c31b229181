package registry

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panekit/panekit/internal/ui/scene/scenetest"
)

// Two dismissable panels: a press inside the second closes only the first.
func TestPressInsideOnePanelClosesTheOther(t *testing.T) {
	r, tree, events := newTestRegistry(t)

	var closed1, closed2 int
	panel1 := tree.NewNode("panel1", nil)
	panel2 := tree.NewNode("panel2", nil)
	button2 := tree.NewNode("button2", panel2)

	r.Register("panel-1", panel1, WindowConfig{CloseOnClickOutside: true, CloseHandler: func() { closed1++ }})
	r.Register("panel-2", panel2, WindowConfig{CloseOnClickOutside: true, CloseHandler: func() { closed2++ }})
	r.SetActive("panel-1")
	r.SetActive("panel-2")

	tree.Click(button2)

	assert.Equal(t, 1, closed1, "press was outside panel-1")
	assert.Equal(t, 0, closed2, "press was inside panel-2")

	dismissed := events.of(EventDismissedOutside)
	require.Len(t, dismissed, 1)
	assert.Equal(t, WindowID("panel-1"), dismissed[0].WindowID)
}

func TestPressInsideOwnElementKeepsPanelOpen(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	var closed int
	panel := tree.NewNode("panel", nil)
	child := tree.NewNode("child", panel)
	r.Register("panel", panel, WindowConfig{CloseOnClickOutside: true, CloseHandler: func() { closed++ }})
	r.SetActive("panel")

	tree.Click(panel)
	tree.Click(child)

	assert.Zero(t, closed)
}

func TestBackgroundPressDismissesActivePanels(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	var closed int
	panel := tree.NewNode("panel", nil)
	r.Register("panel", panel, WindowConfig{CloseOnClickOutside: true, CloseHandler: func() { closed++ }})
	r.SetActive("panel")

	tree.ClickBackground()

	assert.Equal(t, 1, closed)
}

func TestInactivePanelIsNotDismissed(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	var closed int
	panel := tree.NewNode("panel", nil)
	r.Register("panel", panel, WindowConfig{CloseOnClickOutside: true, CloseHandler: func() { closed++ }})

	tree.ClickBackground()

	assert.Zero(t, closed, "inactive surfaces do not participate in dismissal")
}

func TestDetachedElementIsOutsideByDefinition(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	var closed int
	panel := tree.NewNode("panel", nil)
	child := tree.NewNode("child", panel)
	r.Register("panel", panel, WindowConfig{CloseOnClickOutside: true, CloseHandler: func() { closed++ }})
	r.SetActive("panel")

	panel.Detach()

	// Even a press on the panel's own child counts as outside once the
	// element left the tree: fail-safe closing.
	assert.True(t, r.IsClickOutside(child, "panel"))
	tree.Click(child)
	assert.Equal(t, 1, closed)
}

func TestNilElementIsOutsideByDefinition(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	var closed int
	r.Register("ghost", nil, WindowConfig{CloseOnClickOutside: true, CloseHandler: func() { closed++ }})
	r.SetActive("ghost")

	other := tree.NewNode("other", nil)
	tree.Click(other)

	assert.Equal(t, 1, closed)
	assert.True(t, r.IsClickOutside(other, "ghost"))
}

func TestNilTargetIsOutsideEverything(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	var closed int
	panel := tree.NewNode("panel", nil)
	r.Register("panel", panel, WindowConfig{CloseOnClickOutside: true, CloseHandler: func() { closed++ }})
	r.SetActive("panel")

	tree.Click(nil)

	assert.Equal(t, 1, closed)
	assert.True(t, r.IsClickOutside(nil, "panel"))
}

func TestMissingCloseHandlerWarnsAndSkips(t *testing.T) {
	r, tree, buf := newLoggedRegistry(t)

	var closed int
	broken := tree.NewNode("broken", nil)
	ok := tree.NewNode("ok", nil)
	r.Register("broken", broken, WindowConfig{CloseOnClickOutside: true})
	r.Register("ok", ok, WindowConfig{CloseOnClickOutside: true, CloseHandler: func() { closed++ }})
	r.SetActive("broken")
	r.SetActive("ok")

	require.NotPanics(t, func() { tree.ClickBackground() })

	assert.Equal(t, 1, closed, "the surface with a handler is still dismissed")
	assert.Contains(t, buf.String(), "no close handler")
	assert.True(t, r.IsRegistered("broken"))
}

// All surfaces are evaluated against the same captured target before any
// handler runs, so a handler that unregisters another pending surface cannot
// save it from dismissal.
func TestEvaluationCompletesBeforeHandlersRun(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	var order []string
	lower := tree.NewNode("lower", nil)
	upper := tree.NewNode("upper", nil)
	r.Register("lower", lower, WindowConfig{CloseOnClickOutside: true, CloseHandler: func() {
		order = append(order, "lower")
	}})
	r.Register("upper", upper, WindowConfig{CloseOnClickOutside: true, CloseHandler: func() {
		order = append(order, "upper")
		r.Unregister("lower")
	}})
	r.SetActive("lower")
	r.SetActive("upper")
	r.BringToFront("upper")

	tree.ClickBackground()

	assert.Equal(t, []string{"upper", "lower"}, order, "topmost first, both dismissed")
	assert.False(t, r.IsRegistered("lower"))
}

func TestIsClickOutsideUnknownWindow(t *testing.T) {
	r, tree, _ := newTestRegistry(t)
	target := tree.NewNode("target", nil)
	assert.True(t, r.IsClickOutside(target, "never-registered"))
}

func TestIsClickOutsideAll(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	panel := tree.NewNode("panel", nil)
	inner := tree.NewNode("inner", panel)
	stranger := tree.NewNode("stranger", nil)

	assert.True(t, r.IsClickOutsideAll(stranger), "vacuously true with nothing registered")

	// Inactive registrations still count for the global containment query.
	r.Register("panel", panel, WindowConfig{})

	assert.False(t, r.IsClickOutsideAll(inner))
	assert.False(t, r.IsClickOutsideAll(panel))
	assert.True(t, r.IsClickOutsideAll(stranger))
	assert.True(t, r.IsClickOutsideAll(nil))
}

func TestGlobalOutsideHandler(t *testing.T) {
	tree := scenetest.NewTree()
	var global int
	r := New(context.Background(), Options{
		Pointer:              tree,
		GlobalOutsideHandler: func() { global++ },
	})
	t.Cleanup(func() { _ = r.Close() })

	panel := tree.NewNode("panel", nil)
	inner := tree.NewNode("inner", panel)
	r.Register("panel", panel, WindowConfig{})

	tree.Click(inner)
	assert.Zero(t, global, "press inside a registered surface")

	tree.ClickBackground()
	assert.Equal(t, 1, global)
}

func TestSinglePointerListenerRegardlessOfWindowCount(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	for i := 0; i < 12; i++ {
		el := tree.NewNode(fmt.Sprintf("el-%d", i), nil)
		r.Register(WindowID(fmt.Sprintf("panel-%d", i)), el, WindowConfig{CloseOnClickOutside: true, CloseHandler: func() {}})
	}

	assert.Equal(t, 1, tree.ListenerCount())
}
