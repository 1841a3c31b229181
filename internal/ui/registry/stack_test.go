package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustZ(t *testing.T, r *Registry, id WindowID) int64 {
	t.Helper()
	w, ok := r.Window(id)
	require.True(t, ok, "window %s not registered", id)
	return w.ZOrder
}

func TestBringToFrontIsStrictlyMonotonic(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	a := tree.NewNode("a", nil)
	b := tree.NewNode("b", nil)
	r.Register("a", a, WindowConfig{})
	r.Register("b", b, WindowConfig{})

	seen := []int64{mustZ(t, r, "a"), mustZ(t, r, "b")}
	raise := func(id WindowID) {
		r.BringToFront(id)
		z := mustZ(t, r, id)
		for _, prev := range seen {
			assert.Greater(t, z, prev, "raise of %s must exceed every z seen so far", id)
		}
		seen = append(seen, z)
	}

	raise("a")
	raise("b")
	raise("a")
	raise("a")
	raise("b")
}

func TestZOrderOnlyEverIncreasesPerWindow(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	el := tree.NewNode("el", nil)
	r.Register("panel", el, WindowConfig{})
	prev := mustZ(t, r, "panel")
	for i := 0; i < 5; i++ {
		r.BringToFront("panel")
		z := mustZ(t, r, "panel")
		assert.Greater(t, z, prev)
		prev = z
	}
}

// Two non-modal panels: raising the second moves it strictly above the first
// and leaves the first untouched.
func TestRaiseSecondOfTwoPanels(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	first := tree.NewNode("first", nil)
	second := tree.NewNode("second", nil)
	r.Register("first", first, WindowConfig{})
	r.Register("second", second, WindowConfig{})
	r.SetActive("first")
	r.SetActive("second")

	firstZ := mustZ(t, r, "first")
	r.BringToFront("second")

	assert.Greater(t, mustZ(t, r, "second"), firstZ)
	assert.Equal(t, firstZ, mustZ(t, r, "first"), "untouched panel keeps its z-order")

	owner, ok := r.FocusOwner()
	require.True(t, ok)
	assert.Equal(t, WindowID("second"), owner)
}

func TestModalOutranksSamePassRaise(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	var toastFocused int
	dialog := tree.NewNode("dialog", nil)
	toast := tree.NewNode("toast", nil)
	r.Register("dialog", dialog, WindowConfig{Modal: true})
	r.Register("toast", toast, WindowConfig{FocusHandler: func() { toastFocused++ }})

	// The modal is active; raising a non-modal in the same pass must leave
	// the modal numerically higher and in possession of focus.
	r.BringToFront("toast")

	assert.Greater(t, mustZ(t, r, "dialog"), mustZ(t, r, "toast"))
	owner, ok := r.FocusOwner()
	require.True(t, ok)
	assert.Equal(t, WindowID("dialog"), owner)
	assert.Zero(t, toastFocused, "focus handler must not fire while a modal holds focus")

	// The raised panel still moved up relative to itself.
	prev := mustZ(t, r, "toast")
	r.BringToFront("toast")
	assert.Greater(t, mustZ(t, r, "toast"), prev)
}

func TestTwoActiveModalsKeepRelativeOrderOverRaise(t *testing.T) {
	policy := Policy{ModalExclusive: false, FocusFollowsDismissal: true}
	r, tree, _ := newTestRegistryWithPolicy(t, policy)

	m1 := tree.NewNode("m1", nil)
	m2 := tree.NewNode("m2", nil)
	n := tree.NewNode("n", nil)
	r.Register("m1", m1, WindowConfig{Modal: true})
	r.Register("m2", m2, WindowConfig{Modal: true})
	r.Register("n", n, WindowConfig{})

	require.Less(t, mustZ(t, r, "m1"), mustZ(t, r, "m2"))

	r.BringToFront("n")

	assert.Greater(t, mustZ(t, r, "m1"), mustZ(t, r, "n"))
	assert.Greater(t, mustZ(t, r, "m2"), mustZ(t, r, "m1"), "modal re-assert preserves relative order")
}

func TestModalExclusivityDeactivatesOtherModalsOnly(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	m1 := tree.NewNode("m1", nil)
	m2 := tree.NewNode("m2", nil)
	n := tree.NewNode("n", nil)
	r.Register("panel", n, WindowConfig{})
	r.SetActive("panel")
	r.Register("modal-1", m1, WindowConfig{Modal: true})
	require.True(t, r.IsActive("modal-1"))

	r.Register("modal-2", m2, WindowConfig{Modal: true})

	assert.False(t, r.IsActive("modal-1"), "previous modal deactivated")
	assert.True(t, r.IsActive("modal-2"))
	assert.True(t, r.IsActive("panel"), "non-modal surfaces are never touched")
}

func TestModalExclusivityDisabled(t *testing.T) {
	policy := Policy{ModalExclusive: false, FocusFollowsDismissal: true}
	r, tree, _ := newTestRegistryWithPolicy(t, policy)

	m1 := tree.NewNode("m1", nil)
	m2 := tree.NewNode("m2", nil)
	r.Register("modal-1", m1, WindowConfig{Modal: true})
	r.Register("modal-2", m2, WindowConfig{Modal: true})

	assert.True(t, r.IsActive("modal-1"))
	assert.True(t, r.IsActive("modal-2"))
}

func TestSetActiveRaisesModal(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	dialog := tree.NewNode("dialog", nil)
	toast := tree.NewNode("toast", nil)
	r.Register("dialog", dialog, WindowConfig{Modal: true})
	r.Register("toast", toast, WindowConfig{})
	r.SetInactive("dialog")
	r.BringToFront("toast")
	require.Greater(t, mustZ(t, r, "toast"), mustZ(t, r, "dialog"))

	r.SetActive("dialog")
	assert.Greater(t, mustZ(t, r, "dialog"), mustZ(t, r, "toast"),
		"an active modal may not sit below a non-modal surface")
}

func TestFocusHandoffPrefersPriority(t *testing.T) {
	cases := []struct {
		name       string
		priorities map[WindowID]int
		want       WindowID
	}{
		{
			name:       "highest priority wins",
			priorities: map[WindowID]int{"low": 0, "mid": 5, "high": 9},
			want:       "high",
		},
		{
			name:       "equal priority falls back to later registration",
			priorities: map[WindowID]int{"older": 5, "newer": 5},
			want:       "newer",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, tree, _ := newTestRegistry(t)

			// Registration order follows map-independent explicit order.
			order := []WindowID{"low", "mid", "high"}
			if len(tc.priorities) == 2 {
				order = []WindowID{"older", "newer"}
			}
			for _, id := range order {
				prio, ok := tc.priorities[id]
				if !ok {
					continue
				}
				el := tree.NewNode(string(id), nil)
				r.Register(id, el, WindowConfig{Priority: prio})
				r.SetActive(id)
			}

			leaving := tree.NewNode("leaving", nil)
			r.Register("leaving", leaving, WindowConfig{})
			r.BringToFront("leaving")
			owner, _ := r.FocusOwner()
			require.Equal(t, WindowID("leaving"), owner)

			r.Unregister("leaving")

			owner, ok := r.FocusOwner()
			require.True(t, ok)
			assert.Equal(t, tc.want, owner)
		})
	}
}

func TestFocusHandoffOnSetInactive(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	var chatFocused int
	chat := tree.NewNode("chat", nil)
	menu := tree.NewNode("menu", nil)
	r.Register("chat", chat, WindowConfig{Priority: 1, FocusHandler: func() { chatFocused++ }})
	r.Register("menu", menu, WindowConfig{})
	r.BringToFront("menu")
	r.SetActive("chat") // active but below the menu, so no focus transition
	require.Equal(t, 0, chatFocused)

	r.SetInactive("menu")

	owner, ok := r.FocusOwner()
	require.True(t, ok)
	assert.Equal(t, WindowID("chat"), owner)
	assert.Equal(t, 1, chatFocused)
	assert.True(t, r.IsRegistered("menu"), "deactivated window stays registered")
}

func TestFocusHandoffDisabledFallsBackToTop(t *testing.T) {
	policy := Policy{ModalExclusive: true, FocusFollowsDismissal: false}
	r, tree, _ := newTestRegistryWithPolicy(t, policy)

	low := tree.NewNode("low", nil)
	high := tree.NewNode("high", nil)
	top := tree.NewNode("top", nil)
	r.Register("high", high, WindowConfig{Priority: 9})
	r.SetActive("high")
	r.Register("low", low, WindowConfig{})
	r.BringToFront("low")
	r.Register("top", top, WindowConfig{})
	r.BringToFront("top")

	lowZ := mustZ(t, r, "low")
	highZ := mustZ(t, r, "high")
	require.Greater(t, lowZ, highZ, "low was raised after high activated")

	r.Unregister("top")

	// Without handoff the top-of-stack active surface takes focus; priority
	// is ignored and nothing is raised.
	owner, ok := r.FocusOwner()
	require.True(t, ok)
	assert.Equal(t, WindowID("low"), owner)
	assert.Equal(t, lowZ, mustZ(t, r, "low"))
	assert.Equal(t, highZ, mustZ(t, r, "high"))
}

func TestActivatingPanelUnderModalKeepsModalOnTop(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	dialog := tree.NewNode("dialog", nil)
	toast := tree.NewNode("toast", nil)
	r.Register("dialog", dialog, WindowConfig{Modal: true})
	r.Register("toast", toast, WindowConfig{})

	// The toast's base z-order postdates the modal's raise; activating it
	// must not leave it above the modal.
	r.SetActive("toast")

	assert.Greater(t, mustZ(t, r, "dialog"), mustZ(t, r, "toast"))
	owner, ok := r.FocusOwner()
	require.True(t, ok)
	assert.Equal(t, WindowID("dialog"), owner)
}

func TestFocusHandlerFiresOncePerTransition(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	var focused int
	el := tree.NewNode("el", nil)
	r.Register("panel", el, WindowConfig{FocusHandler: func() { focused++ }})

	r.BringToFront("panel")
	r.BringToFront("panel")
	r.BringToFront("panel")

	assert.Equal(t, 1, focused, "re-raising the focus owner is not a transition")
}
