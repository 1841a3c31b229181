package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRegisterUnregisterCycle(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	var closed int
	el := tree.NewNode("settings", nil)
	c := NewClient(r, "settings-panel")
	cfg := WindowConfig{CloseOnClickOutside: true, CloseHandler: func() { closed++ }}

	// Several mount/unmount cycles, then verify dismissal still works.
	for i := 0; i < 3; i++ {
		c.RegisterSelf(el, cfg)
		require.True(t, c.Registered())
		c.UnregisterSelf()
		require.False(t, c.Registered())
	}

	c.RegisterSelf(el, cfg)
	c.SetActive()
	tree.ClickBackground()

	assert.Equal(t, 1, closed, "re-registered surface participates in dismissal again")
}

func TestClientUnregisterWithoutRegisterIsNoOp(t *testing.T) {
	r, _, events := newTestRegistry(t)

	c := NewClient(r, "never-mounted")
	require.NotPanics(t, c.UnregisterSelf)
	require.NotPanics(t, c.UnregisterSelf)

	assert.Empty(t, events.all())
	assert.False(t, r.IsRegistered("never-mounted"))
}

func TestClientScopedRelease(t *testing.T) {
	r, tree, events := newTestRegistry(t)

	el := tree.NewNode("menu", nil)
	c := NewClient(r, "menu")

	release := c.Scoped(el, WindowConfig{})
	require.True(t, r.IsRegistered("menu"))

	release()
	release() // idempotent

	assert.False(t, r.IsRegistered("menu"))
	assert.Len(t, events.of(EventUnregistered), 1)
}

func TestClientPassthroughs(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	el := tree.NewNode("chat", nil)
	c := NewClient(r, "chat")
	assert.Equal(t, WindowID("chat"), c.ID())

	c.RegisterSelf(el, WindowConfig{})
	assert.False(t, c.Active())

	c.SetActive()
	assert.True(t, c.Active())

	c.SetInactive()
	assert.False(t, c.Active())

	c.BringToFront()
	assert.True(t, c.Active())
	owner, ok := r.FocusOwner()
	require.True(t, ok)
	assert.Equal(t, WindowID("chat"), owner)
}

func TestClientReRegisterReplacesEntry(t *testing.T) {
	r, tree, events := newTestRegistry(t)

	el1 := tree.NewNode("v1", nil)
	el2 := tree.NewNode("v2", nil)
	c := NewClient(r, "panel")

	c.RegisterSelf(el1, WindowConfig{})
	c.RegisterSelf(el2, WindowConfig{})

	w, ok := r.Window("panel")
	require.True(t, ok)
	assert.Same(t, el2, w.Element)
	assert.Len(t, events.of(EventReplaced), 1)
}
